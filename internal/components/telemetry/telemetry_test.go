package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPIPrefixesIds(t *testing.T) {
	rec := NewRecorder()
	scoped := NewScopedAPI("sale_history", rec)

	scoped.ReportBroken("client.fetch-sales", "boom")
	scoped.ReportWarning("extract.row")
	scoped.ReportCount("records", 3)

	reports := rec.Reports()
	require.Len(t, reports, 3)
	require.Equal(t, "sale_history: client.fetch-sales", reports[0].ID)
	require.Equal(t, []any{"boom"}, reports[0].Params)
	require.True(t, rec.Has("warning", "extract.row"))
	require.Equal(t, []any{int64(3)}, reports[2].Params)
}

func TestSlogAPIWritesParams(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)

	InitSlogWriter(&buf, false)
	SlogAPI{}.ReportWarning("client.fetch", "first", 2)
	SlogAPI{}.ReportDebug("hidden unless verbose")

	out := buf.String()
	require.Contains(t, out, "id=client.fetch")
	require.Contains(t, out, "params.0=first")
	require.Contains(t, out, "params.1=2")
	require.NotContains(t, out, "hidden unless verbose")
}

func TestSetupOtelWithoutEndpointsIsNoop(t *testing.T) {
	o, err := SetupOtel(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, o.TracerProvider)
	require.Nil(t, o.MeterProvider)
	require.NoError(t, o.Shutdown(context.Background()))
}

func TestPerfStatsRecord(t *testing.T) {
	rec := NewRecorder()
	stats := newPerfStats(rec)
	require.NotPanics(t, func() {
		stats.record(context.Background())
		stats.record(context.Background())
	})

	ctx, cancel := context.WithCancel(context.Background())
	InstrumentPerfStats(ctx, time.Millisecond, rec)
	cancel()
}

func TestInstrumentResty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	rec := NewRecorder()
	client := resty.New()
	InstrumentResty(client, rec)

	_, err := client.R().Get(srv.URL + "/ok")
	require.NoError(t, err)
	require.False(t, rec.Has("warning", report_resty_response))

	_, err = client.R().Get(srv.URL + "/missing")
	require.NoError(t, err)
	require.True(t, rec.Has("warning", report_resty_response))

	var counts []any
	for _, r := range rec.Reports() {
		if r.Kind == "count" {
			counts = append(counts, r.Params...)
		}
	}
	require.Equal(t, []any{int64(1), int64(0), int64(1), int64(0)}, counts)
}
