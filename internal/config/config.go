// Package config is the on-disk configuration of addressfinder and the
// builders that turn it into wired components.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/internal/finder"
	"addressfinder-backend/internal/scrapers"
	"addressfinder-backend/internal/scrapers/epc"
	"addressfinder-backend/internal/scrapers/salehistory"
	"addressfinder-backend/lib/configutil"
	"addressfinder-backend/lib/restyutil"

	"github.com/joho/godotenv"
)

// PathEnv overrides the config path given on the command line.
const PathEnv = "ADDRESSFINDER_CONFIG"

type SaleHistoryConfig struct {
	BaseUrl string `json:"base_url"`
	// Extraction is "positional" or "row".
	Extraction string `json:"extraction"`
}

type EpcConfig struct {
	BaseUrl string `json:"base_url"`
	// MatchMode is "substring" or "token".
	MatchMode string `json:"match_mode"`
}

type HttpConfig struct {
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// RateLimit is a pointer so an explicit 0, which disables limiting, is
	// not replaced by the default.
	RateLimit        *float64 `json:"rate_limit"`
	Burst            int      `json:"burst"`
	CloudflareBypass bool     `json:"cloudflare_bypass"`
}

type ServerConfig struct {
	Port            int      `json:"port"`
	SessionCapacity int      `json:"session_capacity"`
	AllowedOrigins  []string `json:"allowed_origins"`
}

type Config struct {
	SaleHistory SaleHistoryConfig `json:"sale_history"`
	Epc         EpcConfig         `json:"epc"`
	Http        HttpConfig        `json:"http"`
	Server      ServerConfig      `json:"server"`
	Telemetry   telemetry.Config  `json:"telemetry"`
}

func Default() Config {
	rateLimit := 2.0
	return Config{
		SaleHistory: SaleHistoryConfig{
			BaseUrl:    salehistory.DefaultBaseUrl,
			Extraction: salehistory.ModePositional.String(),
		},
		Epc: EpcConfig{
			BaseUrl:   epc.DefaultBaseUrl,
			MatchMode: epc.MatchSubstring.String(),
		},
		Http: HttpConfig{
			UserAgent:      scrapers.DefaultUserAgent,
			TimeoutSeconds: 10,
			RateLimit:      &rateLimit,
			Burst:          2,
		},
		Server: ServerConfig{
			Port:            8000,
			SessionCapacity: 1024,
			AllowedOrigins:  []string{"*"},
		},
	}
}

// Load reads `.env` if present, then the config at `path` (or at
// $ADDRESSFINDER_CONFIG when set) with its local overrides. Fields the files
// leave empty take their value from Default.
func Load(path string) (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if override := os.Getenv(PathEnv); override != "" {
		path = override
	}

	cfg, err := configutil.ReadConfigOr(path, Default())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	_, err = cfg.modes()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type parsedModes struct {
	extraction salehistory.Mode
	match      epc.MatchMode
}

func (c Config) modes() (parsedModes, error) {
	extraction, err := salehistory.ParseMode(c.SaleHistory.Extraction)
	if err != nil {
		return parsedModes{}, fmt.Errorf("sale_history.extraction: %w", err)
	}
	match, err := epc.ParseMatchMode(c.Epc.MatchMode)
	if err != nil {
		return parsedModes{}, fmt.Errorf("epc.match_mode: %w", err)
	}
	return parsedModes{extraction: extraction, match: match}, nil
}

// ClientOptions converts the http section, `dump` may be nil.
func (c Config) ClientOptions(dump restyutil.InstrumentOutput) scrapers.ClientOptions {
	var rateLimit float64
	if c.Http.RateLimit != nil {
		rateLimit = *c.Http.RateLimit
	}
	return scrapers.ClientOptions{
		UserAgent:        c.Http.UserAgent,
		Timeout:          time.Duration(c.Http.TimeoutSeconds) * time.Second,
		RateLimit:        rateLimit,
		Burst:            c.Http.Burst,
		CloudflareBypass: c.Http.CloudflareBypass,
		DumpOutput:       dump,
	}
}

// NewFinder wires both scraper clients over one shared http client.
func (c Config) NewFinder(dump restyutil.InstrumentOutput, tel telemetry.API) (*finder.Finder, error) {
	m, err := c.modes()
	if err != nil {
		return nil, err
	}

	httpClient := scrapers.NewClient(c.ClientOptions(dump), tel)
	sales := salehistory.NewClient(httpClient, salehistory.ClientOptions{
		BaseUrl: c.SaleHistory.BaseUrl,
		Mode:    m.extraction,
	}, tel)
	energy := epc.NewClient(httpClient, epc.ClientOptions{
		BaseUrl:   c.Epc.BaseUrl,
		MatchMode: m.match,
	}, tel)

	return finder.New(sales, energy, tel), nil
}
