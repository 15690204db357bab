package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mu        sync.Mutex
	exchanges map[string]Exchange
}

func (m *memoryOutput) Write(id string, exchange Exchange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges[id] = exchange
}

func TestInstrumentClientDumpsExchanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	out := &memoryOutput{exchanges: map[string]Exchange{}}
	client := resty.New()
	InstrumentClient(client, nil, out)

	_, err := client.R().SetHeader("User-Agent", "test-agent").Get(srv.URL + "/places")
	require.NoError(t, err)
	_, err = client.R().Get(srv.URL + "/again")
	require.NoError(t, err)

	require.Len(t, out.exchanges, 2)
	first := out.exchanges["1"]
	require.Equal(t, http.MethodGet, first.Method)
	require.Equal(t, srv.URL+"/places", first.Url)
	require.Equal(t, http.StatusOK, first.Status)
	require.Equal(t, "<html>ok</html>", first.ResponseBody)
	require.Equal(t, srv.URL+"/again", out.exchanges["2"].Url)

	dump := first.String()
	require.Contains(t, dump, "> GET "+srv.URL+"/places\n")
	require.Contains(t, dump, "> User-Agent: test-agent\n")
	require.Contains(t, dump, "< 200 OK")
	require.Contains(t, dump, "< X-Test: yes\n")
	require.True(t, strings.HasSuffix(dump, "\n\n<html>ok</html>"))
}

func TestInstrumentClientWithoutOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := resty.New()
	InstrumentClient(client, nil, nil)

	res, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode())
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resty")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	exchange := Exchange{Method: http.MethodGet, Url: "https://example.com/", Status: http.StatusNotFound}
	out.Write("1", exchange)
	written, err := os.ReadFile(filepath.Join(dir, "1.http"))
	require.NoError(t, err)
	require.Equal(t, exchange.String(), string(written))
	require.Contains(t, string(written), "< 404 Not Found")
}
