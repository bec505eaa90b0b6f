package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	"github.com/soict-hust/gradadmit-api/internal/middleware"
	"github.com/soict-hust/gradadmit-api/internal/models"
	"github.com/soict-hust/gradadmit-api/internal/service"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
)

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

type fakeApplicationSrv struct {
	form       *dto.ApplicationForm
	found      bool
	getErr     error
	submitErr  error
	lastUserID string
	lastEmail  string
	lastForm   *dto.ApplicationForm
}

func (f *fakeApplicationSrv) Get(_ context.Context, email string) (*dto.ApplicationForm, bool, error) {
	f.lastEmail = email
	return f.form, f.found, f.getErr
}

func (f *fakeApplicationSrv) Submit(_ context.Context, userID, email string, form *dto.ApplicationForm) error {
	f.lastUserID = userID
	f.lastEmail = email
	f.lastForm = form
	return f.submitErr
}

type fakeExportSrv struct {
	result     *service.ExportResult
	err        error
	lastFormat service.ExportFormat
}

func (f *fakeExportSrv) Export(_ context.Context, email string, format service.ExportFormat) (*service.ExportResult, error) {
	f.lastFormat = format
	return f.result, f.err
}

func applicantContext(rec *httptest.ResponseRecorder, method, target string, body []byte) (*gin.Context, *models.JWTClaims) {
	c, _ := gin.CreateTestContext(rec)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	claims := &models.JWTClaims{UserID: "u1", Email: "an.nv@example.com", FullName: "Nguyễn Văn An"}
	c.Set(middleware.ContextUserKey, claims)
	return c, claims
}

func TestApplicationHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApplicationSrv{form: &dto.ApplicationForm{FullName: "Nguyễn Văn An"}, found: true}
	h := NewApplicationHandler(srv, &fakeExportSrv{})

	rec := httptest.NewRecorder()
	c, _ := applicantContext(rec, http.MethodGet, "/application", nil)

	h.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "an.nv@example.com", srv.lastEmail)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Data["submitted"])
}

func TestApplicationHandlerGetUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewApplicationHandler(&fakeApplicationSrv{}, &fakeExportSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/application", nil)

	h.Get(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplicationHandlerSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApplicationSrv{}
	h := NewApplicationHandler(srv, &fakeExportSrv{})

	body, _ := json.Marshal(dto.ApplicationForm{FullName: "Nguyễn Văn An"})
	rec := httptest.NewRecorder()
	c, _ := applicantContext(rec, http.MethodPut, "/application", body)

	h.Submit(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", srv.lastUserID)
	require.NotNil(t, srv.lastForm)
	assert.Equal(t, "Nguyễn Văn An", srv.lastForm.FullName)
}

func TestApplicationHandlerSubmitValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApplicationSrv{submitErr: appErrors.WithDetails(
		appErrors.Clone(appErrors.ErrValidation, "application form has invalid fields"),
		map[string]string{"phone": "số điện thoại phải gồm đúng 10 chữ số"},
	)}
	h := NewApplicationHandler(srv, &fakeExportSrv{})

	body, _ := json.Marshal(dto.ApplicationForm{})
	rec := httptest.NewRecorder()
	c, _ := applicantContext(rec, http.MethodPut, "/application", body)

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")
}

func TestApplicationHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exports := &fakeExportSrv{result: &service.ExportResult{
		FileName:    "application_an.pdf",
		ContentType: "application/pdf",
		Payload:     []byte("%PDF-stub"),
	}}
	h := NewApplicationHandler(&fakeApplicationSrv{}, exports)

	rec := httptest.NewRecorder()
	c, _ := applicantContext(rec, http.MethodGet, "/application/export?format=pdf", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportFormatPDF, exports.lastFormat)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "application_an.pdf")
}
