package review

import (
	"strconv"
	"strings"
)

// ReviewDetails is the bonus-adjusted score breakdown computed once a
// record has a complete document set.
type ReviewDetails struct {
	GraduationScore           float64
	HasResearchBonus          bool
	HasOtherAchievementsBonus bool
	PriorityScore             float64
	TotalScore                float64
	ScholarshipPolicy         string
}

const priorityBonus = 0.50

// Score computes the admission score for a record. The graduation GPA
// is read from the 10-point column with decimal commas accepted; a
// priority category adds 0.50; the total caps at 10.00. Research and
// achievement bonuses are surfaced as flags only — they feed
// scholarship and ranking decisions elsewhere and must never change
// the total.
func Score(rec Record) ReviewDetails {
	gpaRaw, _ := rec.Get(FieldGPA10)
	gpa, err := strconv.ParseFloat(strings.ReplaceAll(gpaRaw, ",", "."), 64)
	if err != nil {
		gpa = 0
	}

	research, hasResearch := rec.Get(FieldResearchBonus)
	other, hasOther := rec.Get(FieldOtherAchievements)

	priority := 0.0
	if hasPriorityCategory(rec) {
		priority = priorityBonus
	}

	total := gpa + priority
	if total > 10 {
		total = 10
	}

	scholarship, _ := rec.Get(FieldScholarship)

	return ReviewDetails{
		GraduationScore:           gpa,
		HasResearchBonus:          hasResearch && research != SentinelNoResearch,
		HasOtherAchievementsBonus: hasOther && other != SentinelNoAchievements,
		PriorityScore:             priority,
		TotalScore:                total,
		ScholarshipPolicy:         scholarship,
	}
}
