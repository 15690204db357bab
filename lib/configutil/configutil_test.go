package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string   `json:"name"`
	Port    int      `json:"port"`
	Verbose bool     `json:"verbose"`
	Ratio   *float64 `json:"ratio"`
	Nested  struct {
		Url string `json:"url"`
	} `json:"nested"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		name: "base",
		port: 8000,
		nested: { url: "https://example.com" },
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ port: 9000 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "base", cfg.Name)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "https://example.com", cfg.Nested.Url)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigOr(t *testing.T) {
	defaults := testConfig{Name: "default", Port: 8000}
	defaults.Nested.Url = "https://default.example.com"

	cfg, err := ReadConfigOr(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ port: 1234 }`)
	cfg, err = ReadConfigOr(filepath.Join(dir, "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Name)
	require.Equal(t, 1234, cfg.Port)
	require.Equal(t, "https://default.example.com", cfg.Nested.Url)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ port: `)

	_, err := ReadConfigOr(filepath.Join(dir, "config.json5"), testConfig{})
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestLayers(t *testing.T) {
	require.Equal(t, []string{"config.json5", "config.local.json5"}, Layers("config.json5"))
	require.Equal(t, []string{"conf/app.v2.json5", "conf/app.v2.local.json5"}, Layers("conf/app.v2.json5"))
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ name: "local" }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Name)
}

func TestReadConfigOrKeepsExplicitZeroPointers(t *testing.T) {
	ratio := 0.5
	defaults := testConfig{Port: 8000, Ratio: &ratio}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ ratio: 0 }`)
	cfg, err := ReadConfigOr(filepath.Join(dir, "config.json5"), defaults)
	require.NoError(t, err)
	require.NotNil(t, cfg.Ratio)
	require.Equal(t, 0.0, *cfg.Ratio)
	require.Equal(t, 0.5, ratio)
	require.Equal(t, 8000, cfg.Port)

	writeFile(t, filepath.Join(dir, "config.json5"), `{ ratio: 3 }`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ ratio: 0 }`)
	cfg, err = ReadConfigOr(filepath.Join(dir, "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, 0.0, *cfg.Ratio)

	other := t.TempDir()
	writeFile(t, filepath.Join(other, "config.json5"), `{ port: 1 }`)
	cfg, err = ReadConfigOr(filepath.Join(other, "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, 0.5, *cfg.Ratio)
}
