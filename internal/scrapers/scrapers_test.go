package scrapers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"addressfinder-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestFetchDocumentSendsBrowserUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><p class="x">hello</p></body></html>`))
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{}, telemetry.NewRecorder())
	doc, err := FetchDocument(context.Background(), client.R(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "hello", doc.Find("p.x").Text())
	require.Equal(t, DefaultUserAgent, gotAgent)
}

func TestFetchDocumentNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{UserAgent: "custom"}, telemetry.NewRecorder())
	_, err := FetchDocument(context.Background(), client.R(), srv.URL)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusForbidden, transportErr.StatusCode)
	require.Contains(t, err.Error(), "status 403")
}

func TestFetchDocumentNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	link := srv.URL
	srv.Close()

	rec := telemetry.NewRecorder()
	client := NewClient(ClientOptions{Timeout: time.Second}, rec)
	_, err := FetchDocument(context.Background(), client.R(), link)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Error(t, transportErr.Err)
	require.True(t, rec.Has("broken", "resty.response"))
}

func TestFetchDocumentHonoursCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(ClientOptions{RateLimit: 2, Burst: 2}, telemetry.NewRecorder())
	_, err := FetchDocument(ctx, client.R(), srv.URL)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, 0, transportErr.StatusCode)
}
