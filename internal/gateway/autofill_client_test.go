package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soict-hust/gradadmit-api/pkg/config"
)

func newTestAutofillClient(t *testing.T, handler http.HandlerFunc) *AutofillClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAutofillClient(config.AutofillConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		Timeout: 2 * time.Second,
	}, nil, nil)
}

func modelReply(t *testing.T, w http.ResponseWriter, fields map[string]string) {
	t.Helper()
	text, err := json.Marshal(fields)
	require.NoError(t, err)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]interface{}{{"text": string(text)}},
			}},
		},
	})
}

func TestAutofillExtractFields(t *testing.T) {
	client := newTestAutofillClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var payload generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.NotNil(t, payload.GenerationConfig)
		assert.Equal(t, "application/json", payload.GenerationConfig.ResponseMIMEType)
		assert.Contains(t, payload.GenerationConfig.ResponseSchema.Properties, "full_name")

		modelReply(t, w, map[string]string{
			"full_name": "Nguyễn Văn An",
			"dob":       "01/06/1999",
			"gpa10":     "8.5",
		})
	})

	fields, err := client.ExtractFields(context.Background(), "Tôi là Nguyễn Văn An...")
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn An", fields["full_name"])
	assert.Equal(t, "01/06/1999", fields["dob"])
	assert.Equal(t, "8.5", fields["gpa10"])
}

func TestAutofillDropsUnknownAndEmptyFields(t *testing.T) {
	client := newTestAutofillClient(t, func(w http.ResponseWriter, r *http.Request) {
		modelReply(t, w, map[string]string{
			"full_name":      "Nguyễn Văn An",
			"favorite_color": "blue",
			"phone":          "   ",
		})
	})

	fields, err := client.ExtractFields(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"full_name": "Nguyễn Văn An"}, fields)
}

func TestAutofillModelError(t *testing.T) {
	client := newTestAutofillClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.ExtractFields(context.Background(), "text")
	assert.Error(t, err)
}

func TestAutofillNoCandidates(t *testing.T) {
	client := newTestAutofillClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	})

	_, err := client.ExtractFields(context.Background(), "text")
	assert.Error(t, err)
}
