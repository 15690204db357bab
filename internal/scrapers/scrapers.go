// Package scrapers holds what the individual site scrapers share: the
// browser-like http client and fetching a page into a goquery document.
package scrapers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// TransportError means the page could not be retrieved: the request failed or
// the server answered with a non-2xx status.
type TransportError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.Url, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: status %d", e.Url, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type ClientOptions struct {
	UserAgent string
	// Timeout of a single request, defaults to 10s.
	Timeout time.Duration
	// RateLimit in requests per second, 0 disables limiting.
	RateLimit float64
	Burst     int
	// CloudflareBypass swaps the transport for one with a browser-like TLS fingerprint.
	CloudflareBypass bool
	// DumpOutput receives every request/response pair when not nil.
	DumpOutput restyutil.InstrumentOutput
}

// NewClient creates the resty client every scraper fetches pages with.
func NewClient(opts ClientOptions, tel telemetry.API) *resty.Client {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New()
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetTimeout(timeout)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.InstrumentClient(httpClient, otel.Tracer("addressfinder.scrapers"), opts.DumpOutput)

	return httpClient
}

// FetchDocument sends `req` as a GET to `link` and parses the body. Any
// failure before a document exists is a *TransportError.
func FetchDocument(ctx context.Context, req *resty.Request, link string) (*goquery.Document, error) {
	res, err := req.SetContext(ctx).Get(link)
	if err != nil {
		return nil, &TransportError{Url: link, Err: err}
	}
	if res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		return nil, &TransportError{Url: res.Request.URL, StatusCode: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &TransportError{Url: res.Request.URL, StatusCode: res.StatusCode(), Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}
