package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"addressfinder-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv(PathEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFillsUnsetFields(t *testing.T) {
	t.Setenv(PathEnv, "")
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.json5", `{
		sale_history: { extraction: "row" },
		http: { timeout_seconds: 3 },
		server: { port: 9090 },
	}`)
	writeConfig(t, dir, "config.local.json5", `{ epc: { match_mode: "token" } }`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "row", cfg.SaleHistory.Extraction)
	require.Equal(t, Default().SaleHistory.BaseUrl, cfg.SaleHistory.BaseUrl)
	require.Equal(t, "token", cfg.Epc.MatchMode)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 1024, cfg.Server.SessionCapacity)

	opts := cfg.ClientOptions(nil)
	require.Equal(t, 3*time.Second, opts.Timeout)
	require.Equal(t, float64(2), opts.RateLimit)
}

func TestLoadRateLimitZeroDisablesLimiting(t *testing.T) {
	t.Setenv(PathEnv, "")
	path := writeConfig(t, t.TempDir(), "config.json5", `{ http: { rate_limit: 0 } }`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, float64(0), cfg.ClientOptions(nil).RateLimit)
	require.Equal(t, 2, cfg.Http.Burst)
	require.Equal(t, float64(2), Default().ClientOptions(nil).RateLimit)
}

func TestLoadPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "other.json5", `{ server: { port: 1234 } }`)
	t.Setenv(PathEnv, path)

	cfg, err := Load(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 1234, cfg.Server.Port)
}

func TestLoadRejectsUnknownModes(t *testing.T) {
	t.Setenv(PathEnv, "")
	table := []string{
		`{ sale_history: { extraction: "columns" } }`,
		`{ epc: { match_mode: "fuzzy" } }`,
	}

	for _, contents := range table {
		path := writeConfig(t, t.TempDir(), "config.json5", contents)
		_, err := Load(path)
		require.Error(t, err, contents)
	}
}

func TestNewFinder(t *testing.T) {
	f, err := Default().NewFinder(nil, telemetry.NewRecorder())
	require.NoError(t, err)
	require.NotNil(t, f)
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	t.Setenv(PathEnv, "")

	cfg, err := Load(filepath.Join("..", "..", "config.example.json5"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
