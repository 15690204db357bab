// Package salehistory scrapes the sale history table of a postcode's 192.com place page.
package salehistory

import (
	"context"
	"fmt"
	"net/url"

	"addressfinder-backend/internal/components/assert"
	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/internal/postcode"
	"addressfinder-backend/internal/property"
	"addressfinder-backend/internal/scrapers"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://www.192.com/places"

const (
	report_client_fetch_sales = "client.fetch-sales"
	report_extract_row        = "extract.row"
)

type Client struct {
	baseUrl   string
	http      *resty.Client
	extractor Extractor
	tel       telemetry.API
}

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	Mode    Mode
}

func NewClient(http *resty.Client, opts ClientOptions, tel telemetry.API) Client {
	assert.NotNil(http)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("sale_history", tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	return Client{
		baseUrl: baseUrl,
		http:    http,
		extractor: Extractor{
			Mode: opts.Mode,
			OnSkippedRow: func(index int, address string) {
				tel.ReportWarning(report_extract_row, fmt.Errorf("row %d is missing its date or price cell", index), address)
			},
		},
		tel: tel,
	}
}

// PageUrl is the place page for a postcode, ex. ".../places/b/B66/B66%201AA/".
func (c Client) PageUrl(pc postcode.Postcode) (string, error) {
	return url.JoinPath(c.baseUrl, pc.Area(), pc.District(), pc.String()+"/")
}

// FetchSales fetches and extracts the sale records for a postcode. A failed
// fetch returns a *scrapers.TransportError, never an empty result.
func (c Client) FetchSales(ctx context.Context, pc postcode.Postcode) ([]property.SaleRecord, error) {
	link, err := c.PageUrl(pc)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_sales, fmt.Errorf("build url: %w", err), pc)
		return nil, err
	}
	c.tel.ReportDebug(report_client_fetch_sales, link)

	doc, err := scrapers.FetchDocument(ctx, c.http.R(), link)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_sales, err, link)
		return nil, err
	}

	records, err := c.extractor.ExtractSales(ctx, doc)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_sales, err, link)
		return nil, err
	}

	c.tel.ReportCount("records", int64(len(records)))
	return records, nil
}
