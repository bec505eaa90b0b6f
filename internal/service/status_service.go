package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	"github.com/soict-hust/gradadmit-api/internal/review"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
)

type recordFetcher interface {
	FetchRecord(ctx context.Context, email string) (review.Record, bool, error)
}

// StatusService derives the application status report on demand. The
// report is never cached: the spreadsheet row is the single source of
// truth and staff edit it out of band.
type StatusService struct {
	gateway recordFetcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewStatusService constructs a StatusService.
func NewStatusService(gateway recordFetcher, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{gateway: gateway, logger: logger, now: time.Now}
}

// Report fetches the applicant's row and derives the status report.
// When the row store is unreachable the error propagates so the client
// can retry; a fabricated "not submitted" would be worse than no
// answer.
func (s *StatusService) Report(ctx context.Context, email string) (*dto.StatusReport, error) {
	rec, found, err := s.gateway.FetchRecord(ctx, email)
	if err != nil {
		s.logger.Warn("status fetch failed", zap.String("email", email), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "application store unavailable")
	}

	report := review.BuildReport(rec, found, s.now())
	return dto.NewStatusReport(report), nil
}
