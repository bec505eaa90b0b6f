package review

import (
	"strings"
	"time"
)

// Status is the authoritative application state shown to the
// applicant. Display values match the portal's Vietnamese labels.
type Status string

const (
	StatusNotSubmitted Status = "Chưa nộp hồ sơ"
	StatusSubmitted    Status = "Đã nộp thành công"
	StatusProcessing   Status = "Đang trong quá trình xử lý"
	StatusNeedsUpdate  Status = "Yêu cầu bổ sung"
	StatusValid        Status = "Hồ sơ hợp lệ"
	StatusInvalid      Status = "Hồ sơ không hợp lệ"
)

// Decision is the tagged reading of the reviewer's free-text verdict.
// The raw text stays authoritative for messages; the tag exists so
// downstream tooling stops keyword-matching on human phrasing.
type Decision string

const (
	DecisionNone       Decision = "none"
	DecisionSupplement Decision = "supplement_requested"
	DecisionAccepted   Decision = "accepted"
	DecisionRejected   Decision = "rejected"
)

// TimelineEvent is one stage of the review pipeline. Date is empty
// when the stage has no known date. At most one event is Current.
type TimelineEvent struct {
	Stage     string
	Date      string
	Completed bool
	Current   bool
}

// Report is the full derived view of one applicant record. It is
// recomputed from the raw record on every read and never persisted.
type Report struct {
	Status           Status
	Decision         Decision
	Details          string
	Timeline         []TimelineEvent
	MissingDocuments []string
	Review           *ReviewDetails
	AdmissionResult  string
	Admission        *AdmissionDetails
}

const (
	stageSubmit     = "Nộp hồ sơ"
	stageProcessing = "Phòng Sau đại học xử lý"
	stageSupplement = "Yêu cầu bổ sung"
	stageComplete   = "Hoàn tất xét duyệt"
)

const (
	msgNotSubmitted = "Bạn chưa nộp hồ sơ dự tuyển. Vui lòng hoàn thành và nộp hồ sơ trong thời hạn tuyển sinh."
	msgValid        = "Chúc mừng! Hồ sơ của bạn đã được duyệt và hợp lệ. Vui lòng đợi thông báo tiếp theo về kết quả xét tuyển."
	msgProcessing   = "Hồ sơ của bạn đã được tiếp nhận và đang trong quá trình xử lý. Vui lòng quay lại sau để cập nhật trạng thái."
)

// BuildReport derives the status report for one applicant. found is
// false when the store has no row for the applicant. now supplies the
// date stamped onto the automatic supplement-request stage.
//
// Rules apply in strict priority order: no record, then missing
// mandatory documents (which suppress any stored reviewer verdict,
// since an incomplete file set is never reviewable), then the
// reviewer's free-text decision. Do not reorder.
func BuildReport(rec Record, found bool, now time.Time) Report {
	if !found || len(rec) == 0 {
		return Report{
			Status:   StatusNotSubmitted,
			Decision: DecisionNone,
			Details:  msgNotSubmitted,
			Timeline: []TimelineEvent{
				{Stage: stageSubmit, Current: true},
			},
		}
	}

	submitted := fieldDate(rec, FieldSubmittedAt)
	processed := fieldDate(rec, FieldProcessingDate)
	decided := fieldDate(rec, FieldDecisionDate)

	decisionText, _ := rec.Get(FieldDecision)
	decision := classifyDecision(decisionText)

	if missing := MissingDocuments(rec); len(missing) > 0 {
		return Report{
			Status:           StatusNeedsUpdate,
			Decision:         decision,
			Details:          "Hồ sơ của bạn còn thiếu: " + strings.Join(missing, "; ") + ". Vui lòng bổ sung để hồ sơ được xét duyệt.",
			MissingDocuments: missing,
			Timeline: []TimelineEvent{
				{Stage: stageSubmit, Date: submitted, Completed: true},
				{Stage: stageSupplement, Date: now.Format(displayDateLayout), Current: true},
				{Stage: stageProcessing},
				{Stage: stageComplete},
			},
		}
	}

	note, _ := rec.Get(FieldDecisionNote)

	switch decision {
	case DecisionSupplement:
		return Report{
			Status:   StatusNeedsUpdate,
			Decision: decision,
			Details:  decisionText,
			Timeline: []TimelineEvent{
				{Stage: stageSubmit, Date: submitted, Completed: true},
				{Stage: stageProcessing, Date: processed, Completed: true},
				{Stage: stageSupplement, Date: decided, Current: true},
				{Stage: stageComplete},
			},
		}

	case DecisionAccepted:
		details := msgValid
		if note != "" {
			details = note
		}
		review := Score(rec)
		outcome, admission := ResolveAdmission(rec)
		return Report{
			Status:   StatusValid,
			Decision: decision,
			Details:  details,
			Timeline: []TimelineEvent{
				{Stage: stageSubmit, Date: submitted, Completed: true},
				{Stage: stageProcessing, Date: processed, Completed: true},
				{Stage: string(StatusValid), Date: decided, Completed: true, Current: true},
			},
			Review:          &review,
			AdmissionResult: outcome,
			Admission:       admission,
		}

	case DecisionRejected:
		review := Score(rec)
		return Report{
			Status:   StatusInvalid,
			Decision: decision,
			Details:  decisionText,
			Timeline: []TimelineEvent{
				{Stage: stageSubmit, Date: submitted, Completed: true},
				{Stage: stageProcessing, Date: processed, Completed: true},
				{Stage: string(StatusInvalid), Date: decided, Completed: true, Current: true},
			},
			Review: &review,
		}

	default:
		details := msgProcessing
		if note != "" {
			details = note
		}
		review := Score(rec)
		return Report{
			Status:   StatusProcessing,
			Decision: DecisionNone,
			Details:  details,
			Timeline: []TimelineEvent{
				{Stage: stageSubmit, Date: submitted, Completed: true},
				{Stage: stageProcessing, Date: processed, Current: true},
				{Stage: stageComplete},
			},
			Review: &review,
		}
	}
}

// classifyDecision turns the reviewer's free text into a tag. The
// keyword set is inherited from spreadsheet-era conventions and kept
// for already-stored text: a supplement request mentions "bổ sung",
// acceptance says the file meets conditions ("đủ/đạt điều kiện")
// without negating it, and any other non-empty text is a rejection
// with the text itself as the reason.
func classifyDecision(text string) Decision {
	n := Normalize(text)
	switch {
	case n == "":
		return DecisionNone
	case strings.Contains(n, "bosung"):
		return DecisionSupplement
	case (strings.Contains(n, "dudieukien") || strings.Contains(n, "datdieukien")) && !strings.Contains(n, "khong"):
		return DecisionAccepted
	default:
		return DecisionRejected
	}
}

func fieldDate(rec Record, field string) string {
	raw, ok := rec.Get(field)
	if !ok {
		return ""
	}
	formatted, ok := FormatDate(raw)
	if !ok {
		return ""
	}
	return formatted
}
