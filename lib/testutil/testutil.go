package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// ReadFixture reads testdata/<name> relative to the package under test.
func ReadFixture(t testing.TB, name string) []byte {
	body, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return body
}

// FixtureServer serves testdata files keyed by request path, "?query" may be
// appended to a key to require an exact raw query. Unknown requests get a 404.
// The server is closed when the test ends.
func FixtureServer(t testing.TB, fixtures map[string]string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := fixtures[r.URL.Path+"?"+r.URL.RawQuery]
		if !ok && r.URL.RawQuery == "" {
			name, ok = fixtures[r.URL.Path]
		}
		if !ok {
			http.NotFound(w, r)
			return
		}

		body, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Error(err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}
