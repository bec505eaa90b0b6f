package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
	"github.com/soict-hust/gradadmit-api/pkg/export"
)

type mockFormGetter struct {
	form  *dto.ApplicationForm
	found bool
	err   error
}

func (m *mockFormGetter) Get(ctx context.Context, email string) (*dto.ApplicationForm, bool, error) {
	return m.form, m.found, m.err
}

type captureRenderer struct {
	dataset export.Dataset
	title   string
}

func (c *captureRenderer) Render(data export.Dataset, title string) ([]byte, error) {
	c.dataset = data
	c.title = title
	return []byte("%PDF-stub"), nil
}

func TestExportPDF(t *testing.T) {
	forms := &mockFormGetter{form: validForm(), found: true}
	pdf := &captureRenderer{}
	svc := NewExportService(forms, nil, pdf, zap.NewNop())

	res, err := svc.Export(context.Background(), "an.nv@example.com", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, "application_an_nv_example_com.pdf", res.FileName)
	assert.Equal(t, []string{"Mục", "Nội dung"}, pdf.dataset.Headers)
	require.NotEmpty(t, pdf.dataset.Rows)
	assert.Equal(t, "Nguyễn Văn An", pdf.dataset.Rows[0]["Nội dung"])
}

func TestExportCSV(t *testing.T) {
	forms := &mockFormGetter{form: validForm(), found: true}
	svc := NewExportService(forms, nil, nil, zap.NewNop())

	res, err := svc.Export(context.Background(), "an.nv@example.com", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Contains(t, string(res.Payload), "Nguyễn Văn An")
}

func TestExportNothingSubmitted(t *testing.T) {
	svc := NewExportService(&mockFormGetter{found: false, form: &dto.ApplicationForm{}}, nil, nil, zap.NewNop())

	_, err := svc.Export(context.Background(), "new@example.com", ExportFormatPDF)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportUnknownFormat(t *testing.T) {
	svc := NewExportService(&mockFormGetter{found: true, form: validForm()}, nil, nil, zap.NewNop())

	_, err := svc.Export(context.Background(), "an.nv@example.com", "docx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
