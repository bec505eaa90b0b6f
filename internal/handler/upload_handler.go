package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
	"github.com/soict-hust/gradadmit-api/pkg/response"
)

type uploadService interface {
	Upload(ctx context.Context, userID, email, fullName string, req dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
}

// UploadHandler accepts supporting documents for the application.
type UploadHandler struct {
	uploads uploadService
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(uploads uploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload godoc
// @Summary Upload a supporting document
// @Description Forwards one base64-encoded file to the document store and returns its URL
// @Tags Application
// @Accept json
// @Produce json
// @Param payload body dto.UploadDocumentRequest true "Document payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /application/documents [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid upload payload"))
		return
	}

	res, err := h.uploads.Upload(c.Request.Context(), claims.UserID, claims.Email, claims.FullName, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
