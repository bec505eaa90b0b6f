package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
)

type fieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (map[string]string, error)
}

// AutofillService turns free text (pasted CV, transcript) into a
// best-effort set of form fields via the generative model.
type AutofillService struct {
	extractor fieldExtractor
	enabled   bool
	logger    *zap.Logger
}

// NewAutofillService constructs an AutofillService.
func NewAutofillService(extractor fieldExtractor, enabled bool, logger *zap.Logger) *AutofillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutofillService{extractor: extractor, enabled: enabled, logger: logger}
}

// Extract runs the model over the text and returns the recognized
// fields. The result is a suggestion: nothing is written to the form
// store, the applicant reviews every value before submitting.
func (s *AutofillService) Extract(ctx context.Context, req dto.AutofillRequest) (*dto.AutofillResponse, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "autofill is not enabled on this deployment")
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "autofill needs some text to work with"),
			map[string]string{"text": "trường này là bắt buộc"},
		)
	}

	fields, err := s.extractor.ExtractFields(ctx, req.Text)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "autofill model unavailable")
	}

	s.logger.Info("autofill extraction complete", zap.Int("fields", len(fields)))
	return &dto.AutofillResponse{Fields: fields}, nil
}
