package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/review"
	"github.com/soict-hust/gradadmit-api/pkg/config"
)

// SheetClient talks to the spreadsheet gateway: a single POST endpoint
// that dispatches on an "action" field and stores applicant rows under
// Vietnamese column headers.
type SheetClient struct {
	httpClient *http.Client
	baseURL    string
	sheetName  string
	logger     *zap.Logger
	observer   UpstreamObserver
}

// NewSheetClient builds a client for the configured gateway endpoint.
func NewSheetClient(cfg config.SheetsConfig, logger *zap.Logger, observer UpstreamObserver) *SheetClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &SheetClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.RecordURL,
		sheetName:  cfg.SheetName,
		logger:     logger,
		observer:   observer,
	}
}

// UploadFileRequest forwards one base64 document to the gateway.
type UploadFileRequest struct {
	Email            string
	FileName         string
	MimeType         string
	FileData         string
	ApplicantID      string
	ApplicantName    string
	LinkColumnHeader string
}

type sheetResponse struct {
	Success bool                   `json:"success"`
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	FileURL string                 `json:"fileUrl"`
}

func (r *sheetResponse) ok() bool {
	return r.Success || r.Status == "success"
}

// FetchRecord returns the stored row for an applicant email. The
// second result is false when the store has no row — a legitimate
// "not submitted" state, not an error.
func (c *SheetClient) FetchRecord(ctx context.Context, email string) (review.Record, bool, error) {
	resp, err := c.post(ctx, map[string]interface{}{
		"action": "getApplicationData",
		"email":  email,
	})
	if err != nil {
		return nil, false, fmt.Errorf("fetch record: %w", err)
	}

	if !resp.ok() || len(resp.Data) == 0 {
		return nil, false, nil
	}

	record := make(review.Record, len(resp.Data))
	for header, value := range resp.Data {
		record[header] = cellString(value)
	}
	return record, true, nil
}

// SubmitApplication writes the form fields into the applicant's row.
func (c *SheetClient) SubmitApplication(ctx context.Context, email string, fields map[string]string) error {
	payload := map[string]interface{}{
		"action":    "submitApplication",
		"sheetName": c.sheetName,
		"email":     email,
	}
	for header, value := range fields {
		payload[header] = value
	}

	resp, err := c.post(ctx, payload)
	if err != nil {
		return fmt.Errorf("submit application: %w", err)
	}
	if !resp.ok() {
		return fmt.Errorf("submit application rejected: %s", resp.Message)
	}
	return nil
}

// UploadFile stores a document through the gateway and returns the
// resulting accessible URL.
func (c *SheetClient) UploadFile(ctx context.Context, req UploadFileRequest) (string, error) {
	resp, err := c.post(ctx, map[string]interface{}{
		"action":           "uploadFile",
		"email":            req.Email,
		"fileName":         req.FileName,
		"mimeType":         req.MimeType,
		"fileData":         req.FileData,
		"applicantId":      req.ApplicantID,
		"applicantName":    req.ApplicantName,
		"linkColumnHeader": req.LinkColumnHeader,
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	if !resp.ok() {
		return "", fmt.Errorf("upload rejected: %s", resp.Message)
	}
	return resp.FileURL, nil
}

func (c *SheetClient) post(ctx context.Context, payload map[string]interface{}) (*sheetResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	// Cache-busting query param: the gateway sits behind an aggressive
	// edge cache.
	url := fmt.Sprintf("%s?v=%d", c.baseURL, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// The gateway only accepts simple-request content types.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveUpstreamCall(TargetSheet, time.Since(start), false)
		return nil, err
	}
	defer resp.Body.Close()

	latency := time.Since(start)
	success := resp.StatusCode >= 200 && resp.StatusCode <= 299
	c.observer.ObserveUpstreamCall(TargetSheet, latency, success)

	c.logger.Debug("sheet gateway call",
		zap.String("action", fmt.Sprint(payload["action"])),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
	)

	if !success {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var decoded sheetResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &decoded, nil
}

func cellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
