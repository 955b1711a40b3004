package sheet

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

func TestEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "get", r.URL.Query().Get("action"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"amount": 1, "timestamp": "2024-03-01T08:00:00Z"}, {"amount": "0.5", "timestamp": "2024-03-01T20:00:00Z"}]`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.Events(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-01T08:00:00Z", records[0].Timestamp)
	assert.Equal(t, "0.5", records[1].Amount)
}

func TestEventsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Events(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint error 500")
}

func TestEventsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Events(context.Background())
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	var got dose.Raw
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "add", r.URL.Query().Get("action"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		io.WriteString(w, `{"ok": true}`)
	}))
	defer server.Close()

	err := NewClient(server.URL).Append(context.Background(), dose.NewRaw(1.5, mustTime(t)))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T08:00:00Z", got.Timestamp)
	assert.InDelta(t, 1.5, got.Amount.(float64), 1e-9)
}

func TestRemove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "remove", r.URL.Query().Get("action"))
		body, _ := io.ReadAll(r.Body)
		var req removeRequest
		require.NoError(t, sonic.Unmarshal(body, &req))
		removed := req.Timestamp == "2024-03-01T08:00:00Z"
		data, _ := sonic.Marshal(removeResponse{Removed: removed})
		w.Write(data)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	removed, err := client.Remove(context.Background(), "2024-03-01T08:00:00Z")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = client.Remove(context.Background(), "2024-03-02T08:00:00Z")
	require.NoError(t, err)
	assert.False(t, removed)
}

func mustTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
}
