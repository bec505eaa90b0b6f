package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
	"github.com/soict-hust/gradadmit-api/pkg/response"
)

type autofillService interface {
	Extract(ctx context.Context, req dto.AutofillRequest) (*dto.AutofillResponse, error)
}

// AutofillHandler serves the form autofill assist.
type AutofillHandler struct {
	autofill autofillService
}

// NewAutofillHandler constructs the handler.
func NewAutofillHandler(autofill autofillService) *AutofillHandler {
	return &AutofillHandler{autofill: autofill}
}

// Extract godoc
// @Summary Autofill form fields from free text
// @Description Runs the generative model over pasted text and returns suggested field values
// @Tags Application
// @Accept json
// @Produce json
// @Param payload body dto.AutofillRequest true "Free text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /application/autofill [post]
func (h *AutofillHandler) Extract(c *gin.Context) {
	if claimsFromContext(c) == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.AutofillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid autofill payload"))
		return
	}

	res, err := h.autofill.Extract(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
