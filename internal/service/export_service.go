package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
	"github.com/soict-hust/gradadmit-api/pkg/export"
)

type formGetter interface {
	Get(ctx context.Context, email string) (*dto.ApplicationForm, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatPDF ExportFormat = "pdf"
	ExportFormatCSV ExportFormat = "csv"
)

// ExportResult is one rendered document ready to stream.
type ExportResult struct {
	FileName    string
	ContentType string
	Payload     []byte
}

// ExportService renders the stored application as a printable
// document for the applicant to sign and mail in.
type ExportService struct {
	forms  formGetter
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(forms formGetter, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{forms: forms, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the applicant's stored form. Nothing to render until
// a form has been submitted.
func (s *ExportService) Export(ctx context.Context, email string, format ExportFormat) (*ExportResult, error) {
	form, found, err := s.forms.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no submitted application to export")
	}

	dataset := formDataset(form)

	var payload []byte
	var contentType, ext string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType, ext = "text/csv", "csv"
	case ExportFormatPDF, "":
		payload, err = s.pdf.Render(dataset, "Phiếu đăng ký dự tuyển")
		contentType, ext = "application/pdf", "pdf"
	default:
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "unsupported export format"),
			map[string]string{"format": string(format)},
		)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	fileName := fmt.Sprintf("application_%s.%s", sanitizeFilePart(email), ext)
	s.logger.Info("application exported", zap.String("email", email), zap.String("format", ext))

	return &ExportResult{FileName: fileName, ContentType: contentType, Payload: payload}, nil
}

// formDataset lays the form out as label/value rows in section order.
func formDataset(form *dto.ApplicationForm) export.Dataset {
	rows := []struct {
		label string
		value string
	}{
		{"Họ và tên", form.FullName},
		{"Giới tính", form.Gender},
		{"Ngày sinh", form.DOB},
		{"Nơi sinh", form.POB},
		{"Dân tộc", form.Ethnicity},
		{"Quốc tịch", form.Nationality},
		{"Số CCCD", form.IDCardNumber},
		{"Ngày cấp CCCD", form.IDCardIssueDate},
		{"Nơi cấp CCCD", form.IDCardIssuePlace},
		{"Số điện thoại", form.Phone},
		{"Email", form.Email},
		{"Địa chỉ liên hệ", form.ContactAddress},
		{"Cơ quan công tác", form.Workplace},
		{"Cơ sở đào tạo", form.TrainingFacility},
		{"Nguyện vọng 1", form.FirstChoiceMajor},
		{"Định hướng NV1", form.FirstChoiceOrientation},
		{"Nguyện vọng 2", form.SecondChoiceMajor},
		{"Định hướng NV2", form.SecondChoiceOrientation},
		{"Nguyện vọng 3", form.ThirdChoiceMajor},
		{"Định hướng NV3", form.ThirdChoiceOrientation},
		{"Trường tốt nghiệp đại học", form.University},
		{"Năm tốt nghiệp", form.GraduationYear},
		{"Điểm TB (hệ 10)", form.GPA10},
		{"Điểm TB (hệ 4)", form.GPA4},
		{"Ngành tốt nghiệp", form.GraduationMajor},
		{"Loại tốt nghiệp", form.DegreeClass},
		{"Hệ tốt nghiệp", form.GraduationSystem},
		{"Bổ sung kiến thức", form.SupplementaryCert},
		{"Ngoại ngữ", form.Language},
		{"Loại chứng chỉ", form.LanguageCertType},
		{"Nơi cấp chứng chỉ", form.LanguageCertIssuer},
		{"Điểm ngoại ngữ", form.LanguageScore},
		{"Ngày cấp chứng chỉ", form.LanguageCertDate},
		{"Nghiên cứu khoa học", form.ResearchBonus},
		{"Thành tích khác", form.OtherAchievements},
		{"Đối tượng ưu tiên", form.PriorityCategory},
		{"Học bổng", form.ScholarshipPolicy},
	}

	dataset := export.Dataset{Headers: []string{"Mục", "Nội dung"}}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Mục":      row.label,
			"Nội dung": row.value,
		})
	}
	return dataset
}

func sanitizeFilePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
