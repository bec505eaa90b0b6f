package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	"github.com/soict-hust/gradadmit-api/internal/models"
	"github.com/soict-hust/gradadmit-api/internal/review"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
)

type sheetGateway interface {
	FetchRecord(ctx context.Context, email string) (review.Record, bool, error)
	SubmitApplication(ctx context.Context, email string, fields map[string]string) error
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

var (
	displayDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	idCardRe      = regexp.MustCompile(`^\d{12}$`)
	phoneRe       = regexp.MustCompile(`^\d{10}$`)
	decimalRe     = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	yearRe        = regexp.MustCompile(`^\d{4}$`)
	emailRe       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const submitTimestampLayout = "02/01/2006 15:04:05"

// ApplicationService reads and writes the application form against the
// spreadsheet gateway.
type ApplicationService struct {
	gateway sheetGateway
	audit   auditRecorder
	tables  review.LegacyTables
	logger  *zap.Logger
	now     func() time.Time
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(gateway sheetGateway, audit auditRecorder, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		gateway: gateway,
		audit:   audit,
		tables:  review.LoadLegacyTables(),
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the stored form for the applicant. The second result is
// false when nothing has been submitted yet; the form then carries
// only the account email for prefill.
func (s *ApplicationService) Get(ctx context.Context, email string) (*dto.ApplicationForm, bool, error) {
	rec, found, err := s.gateway.FetchRecord(ctx, email)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "application store unavailable")
	}
	if !found {
		return &dto.ApplicationForm{Email: email}, false, nil
	}
	return s.recordToForm(rec, email), true, nil
}

// Submit validates the form and writes it through the gateway.
func (s *ApplicationService) Submit(ctx context.Context, userID, email string, form *dto.ApplicationForm) error {
	if details := s.validate(form); len(details) > 0 {
		return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "application form has invalid fields"), details)
	}

	form.Email = email
	fields := s.formToHeaders(form)

	if err := s.gateway.SubmitApplication(ctx, email, fields); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to store application")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionApplicationSubmit,
		Resource:   "application",
		ResourceID: &userID,
		NewValues:  []byte(`{"status":"submitted"}`),
	}); err != nil {
		s.logger.Warn("failed to record application audit log", zap.Error(err))
	}

	s.logger.Info("application submitted", zap.String("email", email))
	return nil
}

// validate applies the portal's format rules and collects every
// violation keyed by the JSON field name.
func (s *ApplicationService) validate(form *dto.ApplicationForm) map[string]string {
	details := make(map[string]string)

	require := func(field, value string) bool {
		if strings.TrimSpace(value) == "" {
			details[field] = "trường này là bắt buộc"
			return false
		}
		return true
	}

	requireDate := func(field, value string) {
		if require(field, value) && !displayDateRe.MatchString(value) {
			details[field] = "ngày phải theo định dạng DD/MM/YYYY"
		}
	}

	require("full_name", form.FullName)
	require("gender", form.Gender)
	requireDate("dob", form.DOB)
	require("pob", form.POB)

	if require("id_card_number", form.IDCardNumber) && !idCardRe.MatchString(form.IDCardNumber) {
		details["id_card_number"] = "số CCCD phải gồm đúng 12 chữ số"
	}
	requireDate("id_card_issue_date", form.IDCardIssueDate)

	if require("phone", form.Phone) && !phoneRe.MatchString(form.Phone) {
		details["phone"] = "số điện thoại phải gồm đúng 10 chữ số"
	}
	if require("email", form.Email) && !emailRe.MatchString(form.Email) {
		details["email"] = "email không hợp lệ"
	}

	require("training_facility", form.TrainingFacility)
	require("first_choice_major", form.FirstChoiceMajor)
	s.validateChoices(form, details)

	require("university", form.University)
	if require("graduation_year", form.GraduationYear) && !yearRe.MatchString(form.GraduationYear) {
		details["graduation_year"] = "năm tốt nghiệp phải gồm 4 chữ số"
	}
	s.validateGPA(details, "gpa10", form.GPA10, 10)
	if strings.TrimSpace(form.GPA4) != "" {
		s.validateGPA(details, "gpa4", form.GPA4, 4)
	}

	if strings.TrimSpace(form.LanguageCertDate) != "" && !displayDateRe.MatchString(form.LanguageCertDate) {
		details["language_cert_date"] = "ngày phải theo định dạng DD/MM/YYYY"
	}
	if strings.TrimSpace(form.LanguageScore) != "" && !decimalRe.MatchString(form.LanguageScore) {
		details["language_score"] = "điểm phải là số"
	}

	return details
}

func (s *ApplicationService) validateGPA(details map[string]string, field, value string, max float64) {
	if strings.TrimSpace(value) == "" {
		details[field] = "trường này là bắt buộc"
		return
	}
	if !decimalRe.MatchString(value) {
		details[field] = "điểm phải là số với tối đa 2 chữ số thập phân"
		return
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v < 0 || v > max {
		details[field] = "điểm nằm ngoài thang cho phép"
	}
}

func (s *ApplicationService) validateChoices(form *dto.ApplicationForm, details map[string]string) {
	seen := map[string]string{}
	for field, major := range map[string]string{
		"first_choice_major":  form.FirstChoiceMajor,
		"second_choice_major": form.SecondChoiceMajor,
		"third_choice_major":  form.ThirdChoiceMajor,
	} {
		if major == "" {
			continue
		}
		if prev, dup := seen[major]; dup {
			details[field] = "nguyện vọng trùng lặp"
			details[prev] = "nguyện vọng trùng lặp"
			continue
		}
		seen[major] = field
	}
}

// formToHeaders renders the form as a header-keyed row for the sheet.
// Phone and ID numbers get a leading quote so the sheet keeps them as
// text instead of stripping leading zeroes.
func (s *ApplicationService) formToHeaders(form *dto.ApplicationForm) map[string]string {
	fields := map[string]string{
		review.FieldSubmittedAt: s.now().Format(submitTimestampLayout),

		review.FieldFullName:         form.FullName,
		review.FieldGender:           form.Gender,
		review.FieldDOB:              form.DOB,
		review.FieldPOB:              form.POB,
		review.FieldEthnicity:        form.Ethnicity,
		review.FieldNationality:      form.Nationality,
		review.FieldIDCardNumber:     "'" + form.IDCardNumber,
		review.FieldIDCardIssueDate:  form.IDCardIssueDate,
		review.FieldIDCardIssuePlace: form.IDCardIssuePlace,
		review.FieldPhone:            "'" + form.Phone,
		review.FieldEmail:            form.Email,
		review.FieldContactAddress:   form.ContactAddress,
		review.FieldWorkplace:        form.Workplace,

		review.FieldTrainingFacility:  form.TrainingFacility,
		review.FieldFirstChoiceMajor:  form.FirstChoiceMajor,
		review.FieldSecondChoiceMajor: form.SecondChoiceMajor,
		review.FieldThirdChoiceMajor:  form.ThirdChoiceMajor,
		review.FieldFirstOrientation:  form.FirstChoiceOrientation,
		review.FieldSecondOrientation: form.SecondChoiceOrientation,
		review.FieldThirdOrientation:  form.ThirdChoiceOrientation,

		review.FieldUniversity:        form.University,
		review.FieldGraduationYear:    form.GraduationYear,
		review.FieldGPA10:             form.GPA10,
		review.FieldGPA4:              form.GPA4,
		review.FieldGraduationMajor:   form.GraduationMajor,
		review.FieldDegreeClass:       form.DegreeClass,
		review.FieldGraduationSystem:  form.GraduationSystem,
		review.FieldSupplementaryCert: form.SupplementaryCert,

		review.FieldLanguage:           form.Language,
		review.FieldLanguageCertType:   form.LanguageCertType,
		review.FieldLanguageCertIssuer: form.LanguageCertIssuer,
		review.FieldLanguageScore:      form.LanguageScore,
		review.FieldLanguageCertDate:   form.LanguageCertDate,

		review.FieldResearchBonus:     form.ResearchBonus,
		review.FieldOtherAchievements: form.OtherAchievements,
		review.FieldPriorityCategory:  form.PriorityCategory,
		review.FieldScholarship:       form.ScholarshipPolicy,

		review.FieldLinkPhoto:        form.LinkPhoto,
		review.FieldLinkDegree:       form.LinkDegree,
		review.FieldLinkTranscript:   form.LinkTranscript,
		review.FieldLinkLanguageCert: form.LinkLanguageCert,
		review.FieldLinkPriority:     form.LinkPriority,
		review.FieldLinkResearch:     form.LinkResearch,
	}
	return fields
}

// recordToForm reads a stored row back into the form. Legacy free-text
// labels from older rows are translated to canonical codes, and stored
// dates are reformatted for display.
func (s *ApplicationService) recordToForm(rec review.Record, email string) *dto.ApplicationForm {
	get := func(field string) string {
		v, _ := rec.Get(field)
		return v
	}
	getDate := func(field string) string {
		raw, ok := rec.Get(field)
		if !ok {
			return ""
		}
		if formatted, ok := review.FormatDate(raw); ok {
			return formatted
		}
		return ""
	}

	form := &dto.ApplicationForm{
		FullName:         get(review.FieldFullName),
		Gender:           get(review.FieldGender),
		DOB:              getDate(review.FieldDOB),
		POB:              get(review.FieldPOB),
		Ethnicity:        get(review.FieldEthnicity),
		Nationality:      get(review.FieldNationality),
		IDCardNumber:     get(review.FieldIDCardNumber),
		IDCardIssueDate:  getDate(review.FieldIDCardIssueDate),
		IDCardIssuePlace: get(review.FieldIDCardIssuePlace),
		Phone:            get(review.FieldPhone),
		Email:            email,
		ContactAddress:   get(review.FieldContactAddress),
		Workplace:        get(review.FieldWorkplace),

		TrainingFacility:        get(review.FieldTrainingFacility),
		FirstChoiceMajor:        get(review.FieldFirstChoiceMajor),
		SecondChoiceMajor:       get(review.FieldSecondChoiceMajor),
		ThirdChoiceMajor:        get(review.FieldThirdChoiceMajor),
		FirstChoiceOrientation:  get(review.FieldFirstOrientation),
		SecondChoiceOrientation: get(review.FieldSecondOrientation),
		ThirdChoiceOrientation:  get(review.FieldThirdOrientation),

		University:        get(review.FieldUniversity),
		GraduationYear:    get(review.FieldGraduationYear),
		GPA10:             get(review.FieldGPA10),
		GPA4:              get(review.FieldGPA4),
		GraduationMajor:   get(review.FieldGraduationMajor),
		DegreeClass:       s.tables.DegreeClass.Translate(get(review.FieldDegreeClass)),
		GraduationSystem:  s.tables.GraduationSystem.Translate(get(review.FieldGraduationSystem)),
		SupplementaryCert: get(review.FieldSupplementaryCert),

		Language:           s.tables.Language.Translate(get(review.FieldLanguage)),
		LanguageCertType:   s.tables.LanguageCertType.Translate(get(review.FieldLanguageCertType)),
		LanguageCertIssuer: get(review.FieldLanguageCertIssuer),
		LanguageScore:      get(review.FieldLanguageScore),
		LanguageCertDate:   getDate(review.FieldLanguageCertDate),

		ResearchBonus:     s.tables.ResearchBonus.Translate(get(review.FieldResearchBonus)),
		OtherAchievements: get(review.FieldOtherAchievements),
		PriorityCategory:  s.tables.Priority.Translate(get(review.FieldPriorityCategory)),
		ScholarshipPolicy: s.tables.Scholarship.Translate(get(review.FieldScholarship)),

		LinkPhoto:        get(review.FieldLinkPhoto),
		LinkDegree:       get(review.FieldLinkDegree),
		LinkTranscript:   get(review.FieldLinkTranscript),
		LinkLanguageCert: get(review.FieldLinkLanguageCert),
		LinkPriority:     get(review.FieldLinkPriority),
		LinkResearch:     get(review.FieldLinkResearch),
	}
	return form
}
