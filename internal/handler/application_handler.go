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

type applicationService interface {
	Get(ctx context.Context, email string) (*dto.ApplicationForm, bool, error)
	Submit(ctx context.Context, userID, email string, form *dto.ApplicationForm) error
}

type exportService interface {
	Export(ctx context.Context, email string, format service.ExportFormat) (*service.ExportResult, error)
}

// ApplicationHandler serves the application form endpoints.
type ApplicationHandler struct {
	applications applicationService
	exports      exportService
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(applications applicationService, exports exportService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, exports: exports}
}

// Get godoc
// @Summary Fetch stored application form
// @Description Returns the caller's stored form, or an empty prefill when nothing was submitted
// @Tags Application
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /application [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	form, found, err := h.applications.Get(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"submitted": found, "form": form}, nil)
}

// Submit godoc
// @Summary Submit application form
// @Description Validates and stores the full application form
// @Tags Application
// @Accept json
// @Produce json
// @Param payload body dto.ApplicationForm true "Application form"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /application [put]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var form dto.ApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}

	if err := h.applications.Submit(c.Request.Context(), claims.UserID, claims.Email, &form); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "application submitted"}, nil)
}

// Export godoc
// @Summary Export application as a document
// @Description Streams the stored form as PDF (default) or CSV
// @Tags Application
// @Produce application/pdf
// @Param format query string false "pdf or csv"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /application/export [get]
func (h *ApplicationHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := service.ExportFormat(c.Query("format"))
	res, err := h.exports.Export(c.Request.Context(), claims.Email, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+res.FileName+`"`)
	c.Data(http.StatusOK, res.ContentType, res.Payload)
}
