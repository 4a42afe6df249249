package geolocation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skillerrors "timeskill/internal/common/errors"
	"timeskill/internal/common/logger"
)

func newTestClient(t *testing.T, baseURL string, retries int) *Client {
	t.Helper()
	return NewClient(&Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxRetries: retries,
	}, logger.NewTestLogger(t))
}

func TestClient_Resolve_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/geocode", r.URL.Path)
		assert.Equal(t, "Tokyo", r.URL.Query().Get("name"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"city":"Tokyo","region":"Tokyo","country":"Japan","latitude":35.6762,"longitude":139.6503,"timezone":"Asia/Tokyo"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)

	geo, err := client.Resolve(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", geo.City)
	assert.Equal(t, "Japan", geo.Country)
	assert.Equal(t, "Asia/Tokyo", geo.Timezone)
	assert.InDelta(t, 35.6762, geo.Latitude, 0.0001)
}

func TestClient_Resolve_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)

	_, err := client.Resolve(context.Background(), "Wakanda")
	require.Error(t, err)
	assert.True(t, errors.Is(err, skillerrors.ErrLocationNotFound))
	assert.Contains(t, err.Error(), "Wakanda")
}

func TestClient_Resolve_ClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)

	_, err := client.Resolve(context.Background(), "Nowhere")
	require.Error(t, err)
	assert.True(t, errors.Is(err, skillerrors.ErrLocationNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Resolve_ServerErrorRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"results":[{"city":"Paris","region":"Ile-de-France","country":"France","latitude":48.8566,"longitude":2.3522,"timezone":"Europe/Paris"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)

	geo, err := client.Resolve(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", geo.City)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Resolve_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	_, err := client.Resolve(context.Background(), "Paris")
	require.Error(t, err)
	assert.True(t, errors.Is(err, skillerrors.ErrLocationNotFound))
}

func TestClient_Resolve_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Resolve(ctx, "Paris")
	require.Error(t, err)
	assert.True(t, errors.Is(err, skillerrors.ErrLocationNotFound))
}

func TestGeolocation_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		geo  Geolocation
		want string
	}{
		{
			name: "city region country",
			geo:  Geolocation{City: "Paris", Region: "Ile-de-France", Country: "France"},
			want: "Paris, Ile-de-France, France",
		},
		{
			name: "region matching country is dropped",
			geo:  Geolocation{City: "Singapore", Region: "Singapore", Country: "Singapore"},
			want: "Singapore, Singapore",
		},
		{
			name: "missing region",
			geo:  Geolocation{City: "Tokyo", Country: "Japan"},
			want: "Tokyo, Japan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.geo.DisplayName())
		})
	}
}
