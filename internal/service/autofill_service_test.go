package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
)

type mockExtractor struct {
	fields map[string]string
	err    error
}

func (m *mockExtractor) ExtractFields(ctx context.Context, text string) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.fields, nil
}

func TestAutofillExtract(t *testing.T) {
	extractor := &mockExtractor{fields: map[string]string{
		"full_name": "Nguyễn Văn An",
		"dob":       "01/06/1999",
	}}
	svc := NewAutofillService(extractor, true, zap.NewNop())

	res, err := svc.Extract(context.Background(), dto.AutofillRequest{Text: "Tôi là Nguyễn Văn An, sinh ngày 01/06/1999"})
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn An", res.Fields["full_name"])
	assert.Equal(t, "01/06/1999", res.Fields["dob"])
}

func TestAutofillDisabled(t *testing.T) {
	svc := NewAutofillService(&mockExtractor{}, false, zap.NewNop())

	_, err := svc.Extract(context.Background(), dto.AutofillRequest{Text: "anything"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestAutofillEmptyText(t *testing.T) {
	svc := NewAutofillService(&mockExtractor{}, true, zap.NewNop())

	_, err := svc.Extract(context.Background(), dto.AutofillRequest{Text: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAutofillUpstreamFailure(t *testing.T) {
	svc := NewAutofillService(&mockExtractor{err: errors.New("quota exhausted")}, true, zap.NewNop())

	_, err := svc.Extract(context.Background(), dto.AutofillRequest{Text: "some cv text"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
