package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	"github.com/soict-hust/gradadmit-api/internal/service"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
	"github.com/soict-hust/gradadmit-api/pkg/response"
)

type statusService interface {
	Report(ctx context.Context, email string) (*dto.StatusReport, error)
}

// StatusHandler serves the derived application status.
type StatusHandler struct {
	statuses statusService
	metrics  *service.MetricsService
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(statuses statusService, metrics *service.MetricsService) *StatusHandler {
	return &StatusHandler{statuses: statuses, metrics: metrics}
}

// Report godoc
// @Summary Application status report
// @Description Derives the full status report from the stored record; a store outage yields 502 rather than a guessed status
// @Tags Status
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /application/status [get]
func (h *StatusHandler) Report(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	report, err := h.statuses.Report(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.RecordStatusReport(report.Status)
	response.JSON(c, http.StatusOK, report, nil)
}
