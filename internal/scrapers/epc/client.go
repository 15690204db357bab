// Package epc looks up energy performance certificates on the government
// "find an energy certificate" service.
package epc

import (
	"context"
	"fmt"

	"addressfinder-backend/internal/components/assert"
	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/internal/postcode"
	"addressfinder-backend/internal/scrapers"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://find-energy-certificate.service.gov.uk"

const searchPath = "/find-a-certificate/search-by-postcode"

const (
	report_client_lookup_energy_info = "client.lookup-energy-info"
)

type Client struct {
	baseUrl string
	http    *resty.Client
	mode    MatchMode
	tel     telemetry.API
}

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl   string
	MatchMode MatchMode
}

func NewClient(http *resty.Client, opts ClientOptions, tel telemetry.API) Client {
	assert.NotNil(http)
	assert.NotNil(tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	return Client{
		baseUrl: baseUrl,
		http:    http,
		mode:    opts.MatchMode,
		tel:     telemetry.NewScopedAPI("epc", tel),
	}
}

// LookupEnergyInfo searches the certificates registered at `pc` for `house`.
// It never returns an error: failures are a Result with Outcome Failed.
func (c Client) LookupEnergyInfo(ctx context.Context, pc postcode.Postcode, house string) Result {
	link := c.baseUrl + searchPath
	c.tel.ReportDebug(report_client_lookup_energy_info, link, pc, house)

	req := c.http.R().SetQueryParam("postcode", pc.String())
	doc, err := scrapers.FetchDocument(ctx, req, link)
	if err != nil {
		c.tel.ReportBroken(report_client_lookup_energy_info, err, pc)
		return failed(err)
	}

	result := ExtractEnergyInfo(ctx, doc, house, c.mode)
	switch result.Outcome {
	case Failed:
		c.tel.ReportBroken(report_client_lookup_energy_info, fmt.Errorf("extract: %w", result.Err), pc, house)
	case NotFound:
		c.tel.ReportWarning(report_client_lookup_energy_info, "no certificate found", pc, house)
	}
	return result
}
