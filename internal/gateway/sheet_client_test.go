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

	"github.com/soict-hust/gradadmit-api/internal/review"
	"github.com/soict-hust/gradadmit-api/pkg/config"
)

func newTestSheetClient(t *testing.T, handler http.HandlerFunc) *SheetClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSheetClient(config.SheetsConfig{
		RecordURL: server.URL,
		SheetName: "DataDangky",
		Timeout:   2 * time.Second,
	}, nil, nil)
}

func TestSheetClientFetchRecord(t *testing.T) {
	client := newTestSheetClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "getApplicationData", payload["action"])
		assert.Equal(t, "an.nv@example.com", payload["email"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"Họ và tên":       "Nguyễn Văn An",
				"Điểm TB (hệ 10)": 8.5,
				"Năm TN":          float64(2022),
			},
		})
	})

	record, found, err := client.FetchRecord(context.Background(), "an.nv@example.com")

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, review.Record{
		"Họ và tên":       "Nguyễn Văn An",
		"Điểm TB (hệ 10)": "8.5",
		"Năm TN":          "2022",
	}, record)
}

func TestSheetClientFetchRecordNotFound(t *testing.T) {
	client := newTestSheetClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
	})

	_, found, err := client.FetchRecord(context.Background(), "new@example.com")

	require.NoError(t, err, "a missing row is not a transport failure")
	assert.False(t, found)
}

func TestSheetClientFetchRecordTransportFailure(t *testing.T) {
	client := newTestSheetClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := client.FetchRecord(context.Background(), "an.nv@example.com")

	assert.Error(t, err)
}

func TestSheetClientFetchRecordGarbledResponse(t *testing.T) {
	client := newTestSheetClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	})

	_, _, err := client.FetchRecord(context.Background(), "an.nv@example.com")

	assert.Error(t, err)
}

func TestSheetClientSubmitApplication(t *testing.T) {
	client := newTestSheetClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "submitApplication", payload["action"])
		assert.Equal(t, "DataDangky", payload["sheetName"])
		assert.Equal(t, "Hà Nội", payload["Nơi sinh"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "success"})
	})

	err := client.SubmitApplication(context.Background(), "an.nv@example.com", map[string]string{
		"Nơi sinh": "Hà Nội",
	})

	assert.NoError(t, err)
}

func TestSheetClientSubmitApplicationRejected(t *testing.T) {
	client := newTestSheetClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "error",
			"message": "row locked",
		})
	})

	err := client.SubmitApplication(context.Background(), "an.nv@example.com", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row locked")
}

func TestSheetClientUploadFile(t *testing.T) {
	client := newTestSheetClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "uploadFile", payload["action"])
		assert.Equal(t, "Link Ảnh thẻ", payload["linkColumnHeader"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"fileUrl": "https://drive.example.com/abc",
		})
	})

	url, err := client.UploadFile(context.Background(), UploadFileRequest{
		Email:            "an.nv@example.com",
		FileName:         "AnhThe_u1.jpg",
		MimeType:         "image/jpeg",
		FileData:         "data:image/jpeg;base64,aGVsbG8=",
		LinkColumnHeader: "Link Ảnh thẻ",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://drive.example.com/abc", url)
}
