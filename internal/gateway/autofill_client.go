package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/pkg/config"
)

// AutofillClient calls a generative-model API to extract application
// form fields from free text (a CV or resume pasted by the applicant).
type AutofillClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *zap.Logger
	observer   UpstreamObserver
}

// NewAutofillClient builds a client from the autofill configuration.
func NewAutofillClient(cfg config.AutofillConfig, logger *zap.Logger, observer UpstreamObserver) *AutofillClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &AutofillClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     logger,
		observer:   observer,
	}
}

// autofillFieldKeys is the set of form fields the model is asked to
// extract. Document links and review columns are deliberately absent.
var autofillFieldKeys = []string{
	"full_name", "gender", "dob", "pob", "ethnicity", "nationality",
	"id_card_number", "id_card_issue_date", "id_card_issue_place",
	"phone", "contact_address", "workplace",
	"training_facility",
	"first_choice_major", "second_choice_major", "third_choice_major",
	"first_choice_orientation", "second_choice_orientation", "third_choice_orientation",
	"university", "graduation_year", "gpa10", "gpa4",
	"graduation_major", "degree_classification", "graduation_system", "supplementary_cert",
	"language", "language_cert_type", "language_cert_issuer", "language_score", "language_cert_date",
}

const autofillPrompt = `Bạn là một trợ lý tuyển sinh chuyên nghiệp. Hãy phân tích văn bản do người dùng cung cấp (CV, sơ yếu lý lịch) và trích xuất thông tin để điền vào đơn đăng ký sau đại học. Trả về dữ liệu dạng JSON đúng theo cấu trúc đã cho; bỏ trống trường không tìm thấy. Ngày tháng theo định dạng DD/MM/YYYY.

Văn bản của người dùng:
---
%s
---
`

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string      `json:"responseMimeType,omitempty"`
	ResponseSchema   *schemaNode `json:"responseSchema,omitempty"`
}

type schemaNode struct {
	Type       string                 `json:"type"`
	Properties map[string]*schemaNode `json:"properties,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// ExtractFields returns the best-effort structured field set for the
// given text. Any field may be omitted; values are never invented by
// this client.
func (c *AutofillClient) ExtractFields(ctx context.Context, text string) (map[string]string, error) {
	properties := make(map[string]*schemaNode, len(autofillFieldKeys))
	for _, key := range autofillFieldKeys {
		properties[key] = &schemaNode{Type: "STRING"}
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(autofillPrompt, text)}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   &schemaNode{Type: "OBJECT", Properties: properties},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveUpstreamCall(TargetAutofill, time.Since(start), false)
		return nil, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	success := resp.StatusCode >= 200 && resp.StatusCode <= 299
	c.observer.ObserveUpstreamCall(TargetAutofill, time.Since(start), success)

	if !success {
		return nil, fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("model returned no candidates")
	}

	raw := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	var extracted map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("parse extracted fields: %w", err)
	}

	fields := make(map[string]string, len(extracted))
	for key, value := range extracted {
		if !isAutofillField(key) {
			continue
		}
		if s := strings.TrimSpace(cellString(value)); s != "" {
			fields[key] = s
		}
	}

	c.logger.Debug("autofill extraction", zap.Int("fields", len(fields)))
	return fields, nil
}

func isAutofillField(key string) bool {
	for _, known := range autofillFieldKeys {
		if key == known {
			return true
		}
	}
	return false
}
