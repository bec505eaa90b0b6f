package dto

import "github.com/soict-hust/gradadmit-api/internal/review"

// TimelineEvent is one stage of the review pipeline as rendered by the
// status page.
type TimelineEvent struct {
	Stage     string `json:"stage"`
	Date      string `json:"date,omitempty"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// ReviewDetails is the score breakdown shown once review has started.
type ReviewDetails struct {
	GraduationScore           float64 `json:"graduation_score"`
	HasResearchBonus          bool    `json:"has_research_bonus"`
	HasOtherAchievementsBonus bool    `json:"has_other_achievements_bonus"`
	PriorityScore             float64 `json:"priority_score"`
	TotalScore                float64 `json:"total_score"`
	ScholarshipPolicy         string  `json:"scholarship_policy,omitempty"`
}

// AdmissionDetails names the admitted major and orientation.
type AdmissionDetails struct {
	AdmittedMajor       string `json:"admitted_major"`
	AdmittedOrientation string `json:"admitted_orientation"`
}

// StatusReport is the derived application status for one applicant.
type StatusReport struct {
	Status           string            `json:"status"`
	Decision         string            `json:"decision"`
	Details          string            `json:"details"`
	Timeline         []TimelineEvent   `json:"timeline"`
	MissingDocuments []string          `json:"missing_documents,omitempty"`
	ReviewDetails    *ReviewDetails    `json:"review_details,omitempty"`
	AdmissionResult  string            `json:"admission_result,omitempty"`
	AdmissionDetails *AdmissionDetails `json:"admission_details,omitempty"`
}

// NewStatusReport converts the derivation result into its API shape.
func NewStatusReport(report review.Report) *StatusReport {
	out := &StatusReport{
		Status:           string(report.Status),
		Decision:         string(report.Decision),
		Details:          report.Details,
		Timeline:         make([]TimelineEvent, 0, len(report.Timeline)),
		MissingDocuments: report.MissingDocuments,
		AdmissionResult:  report.AdmissionResult,
	}

	for _, event := range report.Timeline {
		out.Timeline = append(out.Timeline, TimelineEvent{
			Stage:     event.Stage,
			Date:      event.Date,
			Completed: event.Completed,
			Current:   event.Current,
		})
	}

	if report.Review != nil {
		out.ReviewDetails = &ReviewDetails{
			GraduationScore:           report.Review.GraduationScore,
			HasResearchBonus:          report.Review.HasResearchBonus,
			HasOtherAchievementsBonus: report.Review.HasOtherAchievementsBonus,
			PriorityScore:             report.Review.PriorityScore,
			TotalScore:                report.Review.TotalScore,
			ScholarshipPolicy:         report.Review.ScholarshipPolicy,
		}
	}

	if report.Admission != nil {
		out.AdmissionDetails = &AdmissionDetails{
			AdmittedMajor:       report.Admission.AdmittedMajor,
			AdmittedOrientation: report.Admission.AdmittedOrientation,
		}
	}

	return out
}
