package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeRecord builds a record with every mandatory document present
// and no bonus or priority claims. Tests mutate it per scenario.
func completeRecord() Record {
	return Record{
		FieldSubmittedAt:       "17/10/2025 09:15:00",
		FieldFullName:          "Nguyễn Văn An",
		FieldEmail:             "an.nv@example.com",
		FieldGPA10:             "7.8",
		FieldPriorityCategory:  SentinelNoPriority,
		FieldResearchBonus:     SentinelNoResearch,
		FieldOtherAchievements: SentinelNoAchievements,
		FieldLinkPhoto:         "https://drive.example.com/photo",
		FieldLinkDegree:        "https://drive.example.com/degree",
		FieldLinkTranscript:    "https://drive.example.com/transcript",
		FieldLinkLanguageCert:  "https://drive.example.com/cert",
	}
}

var testNow = time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)

func currentStage(t *testing.T, timeline []TimelineEvent) TimelineEvent {
	t.Helper()
	var current *TimelineEvent
	for i := range timeline {
		if timeline[i].Current {
			require.Nil(t, current, "timeline has more than one current stage")
			current = &timeline[i]
		}
	}
	require.NotNil(t, current, "timeline has no current stage")
	return *current
}

func TestBuildReportNoRecord(t *testing.T) {
	report := BuildReport(nil, false, testNow)

	assert.Equal(t, StatusNotSubmitted, report.Status)
	require.Len(t, report.Timeline, 1)
	assert.Equal(t, stageSubmit, report.Timeline[0].Stage)
	assert.True(t, report.Timeline[0].Current)
	assert.Empty(t, report.Timeline[0].Date)
	assert.Nil(t, report.Review)
	assert.Empty(t, report.AdmissionResult)
}

func TestBuildReportMissingDocumentsOverridesDecision(t *testing.T) {
	// Missing language certificate and an acceptance already recorded:
	// the incomplete file set must win.
	rec := completeRecord()
	delete(rec, FieldLinkLanguageCert)
	rec[FieldDecision] = "Đạt điều kiện"

	report := BuildReport(rec, true, testNow)

	assert.Equal(t, StatusNeedsUpdate, report.Status)
	assert.Equal(t, []string{"4. Bản scan Chứng chỉ ngoại ngữ"}, report.MissingDocuments)
	assert.Contains(t, report.Details, "4. Bản scan Chứng chỉ ngoại ngữ")

	current := currentStage(t, report.Timeline)
	assert.Equal(t, stageSupplement, current.Stage)
	assert.Equal(t, "15/11/2025", current.Date)
	assert.Equal(t, stageSubmit, report.Timeline[0].Stage)
	assert.True(t, report.Timeline[0].Completed)
	assert.Equal(t, "17/10/2025", report.Timeline[0].Date)
}

func TestBuildReportMissingDocumentsAnyDecisionText(t *testing.T) {
	for _, decision := range []string{"", "Đủ điều kiện", "Hồ sơ không đạt", "vui lòng bổ sung"} {
		rec := completeRecord()
		delete(rec, FieldLinkPhoto)
		if decision != "" {
			rec[FieldDecision] = decision
		}

		report := BuildReport(rec, true, testNow)
		assert.Equal(t, StatusNeedsUpdate, report.Status, "decision %q", decision)
	}
}

func TestBuildReportSupplementRequestUsesLiteralText(t *testing.T) {
	rec := completeRecord()
	rec[FieldDecision] = "Hồ sơ thiếu minh chứng ưu tiên, vui lòng bổ sung"
	rec[FieldDecisionDate] = "2025-11-15T03:00:00Z"
	rec[FieldProcessingDate] = "12/11/2025"

	report := BuildReport(rec, true, testNow)

	assert.Equal(t, StatusNeedsUpdate, report.Status)
	assert.Equal(t, "Hồ sơ thiếu minh chứng ưu tiên, vui lòng bổ sung", report.Details)
	assert.Empty(t, report.MissingDocuments)

	current := currentStage(t, report.Timeline)
	assert.Equal(t, stageSupplement, current.Stage)
	assert.Equal(t, "15/11/2025", current.Date)
	assert.Equal(t, stageProcessing, report.Timeline[1].Stage)
	assert.True(t, report.Timeline[1].Completed)
	assert.Equal(t, "12/11/2025", report.Timeline[1].Date)
}

func TestBuildReportValidDecision(t *testing.T) {
	rec := completeRecord()
	rec[FieldDecision] = "Đạt điều kiện"
	rec[FieldDecisionDate] = "16/11/2025"
	rec[FieldGPA10] = "8,5"
	rec[FieldPriorityCategory] = "KV1"
	rec[FieldLinkPriority] = "https://drive.example.com/priority"

	report := BuildReport(rec, true, testNow)

	assert.Equal(t, StatusValid, report.Status)
	assert.Equal(t, DecisionAccepted, report.Decision)
	assert.Equal(t, msgValid, report.Details)

	current := currentStage(t, report.Timeline)
	assert.Equal(t, string(StatusValid), current.Stage)
	assert.True(t, current.Completed)
	assert.Equal(t, "16/11/2025", current.Date)

	require.NotNil(t, report.Review)
	assert.InDelta(t, 8.5, report.Review.GraduationScore, 1e-9)
	assert.InDelta(t, 0.50, report.Review.PriorityScore, 1e-9)
	assert.InDelta(t, 9.00, report.Review.TotalScore, 1e-9)
}

func TestBuildReportValidDecisionPrefersNote(t *testing.T) {
	rec := completeRecord()
	rec[FieldDecision] = "Đủ điều kiện"
	rec[FieldDecisionNote] = "Hồ sơ đạt, chờ hội đồng xét tuyển tháng 12."

	report := BuildReport(rec, true, testNow)

	assert.Equal(t, StatusValid, report.Status)
	assert.Equal(t, "Hồ sơ đạt, chờ hội đồng xét tuyển tháng 12.", report.Details)
}

func TestBuildReportNegatedConditionIsInvalid(t *testing.T) {
	rec := completeRecord()
	rec[FieldDecision] = "Không đủ điều kiện do thiếu kinh nghiệm nghiên cứu"

	report := BuildReport(rec, true, testNow)

	assert.Equal(t, StatusInvalid, report.Status)
	assert.Equal(t, DecisionRejected, report.Decision)
	assert.Equal(t, "Không đủ điều kiện do thiếu kinh nghiệm nghiên cứu", report.Details)
	assert.NotEqual(t, OutcomeAdmitted, report.AdmissionResult)
	assert.Nil(t, report.Admission)
}

func TestBuildReportUnrecognizedTextIsInvalidWithLiteralReason(t *testing.T) {
	rec := completeRecord()
	rec[FieldDecision] = "Điểm trung bình dưới ngưỡng xét tuyển"

	report := BuildReport(rec, true, testNow)

	assert.Equal(t, StatusInvalid, report.Status)
	assert.Equal(t, "Điểm trung bình dưới ngưỡng xét tuyển", report.Details)
	require.NotNil(t, report.Review)
}

func TestBuildReportEmptyDecisionIsProcessing(t *testing.T) {
	rec := completeRecord()

	report := BuildReport(rec, true, testNow)

	assert.Equal(t, StatusProcessing, report.Status)
	assert.Equal(t, msgProcessing, report.Details)

	current := currentStage(t, report.Timeline)
	assert.Equal(t, stageProcessing, current.Stage)
	assert.Empty(t, current.Date)
	assert.False(t, current.Completed)
	require.NotNil(t, report.Review)
	assert.NotEqual(t, OutcomeAdmitted, report.AdmissionResult)
}

func TestBuildReportTimelineHasAtMostOneCurrent(t *testing.T) {
	decisions := []string{"", "Đạt điều kiện", "Không đạt", "vui lòng bổ sung hồ sơ"}
	for _, decision := range decisions {
		rec := completeRecord()
		if decision != "" {
			rec[FieldDecision] = decision
		}
		report := BuildReport(rec, true, testNow)
		currentStage(t, report.Timeline)

		incomplete := completeRecord()
		delete(incomplete, FieldLinkDegree)
		if decision != "" {
			incomplete[FieldDecision] = decision
		}
		report = BuildReport(incomplete, true, testNow)
		currentStage(t, report.Timeline)
	}
}

func TestClassifyDecision(t *testing.T) {
	tests := []struct {
		text string
		want Decision
	}{
		{"", DecisionNone},
		{"Đủ điều kiện", DecisionAccepted},
		{"Đạt điều kiện", DecisionAccepted},
		{"DU DIEU KIEN", DecisionAccepted},
		{"Không đủ điều kiện", DecisionRejected},
		{"Hồ sơ thiếu minh chứng, vui lòng bổ sung", DecisionSupplement},
		{"Đủ điều kiện nhưng cần bổ sung bảng điểm", DecisionSupplement},
		{"Sai thông tin CCCD", DecisionRejected},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyDecision(tt.text), "text %q", tt.text)
	}
}
