package review

import "strings"

// Admission outcomes as stored and displayed by the portal.
const (
	OutcomeAdmitted     = "Trúng tuyển"
	OutcomeRejected     = "Không trúng tuyển"
	OutcomeUndetermined = "Chưa có"
)

// AdmissionDetails names the major and orientation an admitted
// applicant was accepted into.
type AdmissionDetails struct {
	AdmittedMajor       string
	AdmittedOrientation string
}

const pendingUpdate = "Chờ cập nhật"

var rankedChoices = []struct {
	token       string
	majorKey    string
	orientation string
}{
	{"nv1", FieldFirstChoiceMajor, FieldFirstOrientation},
	{"nv2", FieldSecondChoiceMajor, FieldSecondOrientation},
	{"nv3", FieldThirdChoiceMajor, FieldThirdOrientation},
}

// ResolveAdmission reads the reviewer's results column. A rejection
// marker wins over the admission marker (its normalized form contains
// the admission marker as a substring); neither marker means the
// result is not out yet. On admission the first ranked-choice token
// named by the results text selects which choice's major and
// orientation apply; without a token the dedicated admitted-major
// columns are used.
func ResolveAdmission(rec Record) (string, *AdmissionDetails) {
	raw, ok := rec.Get(FieldAdmissionResult)
	if !ok {
		return OutcomeUndetermined, nil
	}

	n := Normalize(raw)
	switch {
	case strings.Contains(n, "khongtrungtuyen"):
		return OutcomeRejected, nil
	case strings.Contains(n, "trungtuyen"):
	default:
		return OutcomeUndetermined, nil
	}

	for _, choice := range rankedChoices {
		if !strings.Contains(n, choice.token) {
			continue
		}
		code, _ := rec.Get(choice.majorKey)
		orientation, hasOrientation := rec.Get(choice.orientation)
		if !hasOrientation {
			orientation = pendingUpdate
		}
		return OutcomeAdmitted, &AdmissionDetails{
			AdmittedMajor:       MajorName(code),
			AdmittedOrientation: orientation,
		}
	}

	major, hasMajor := rec.Get(FieldAdmittedMajor)
	if !hasMajor {
		major = pendingUpdate
	}
	orientation, hasOrientation := rec.Get(FieldAdmittedOrientation)
	if !hasOrientation {
		orientation = pendingUpdate
	}
	return OutcomeAdmitted, &AdmissionDetails{
		AdmittedMajor:       major,
		AdmittedOrientation: orientation,
	}
}
