// Package finder ties the scrapers together into the two user actions:
// searching a postcode and showing the details of one address.
package finder

import (
	"context"
	"fmt"
	"strings"

	"addressfinder-backend/internal/components/assert"
	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/internal/postcode"
	"addressfinder-backend/internal/property"
	"addressfinder-backend/internal/scrapers/epc"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_finder_search  = "finder.search"
	report_finder_details = "finder.details"
)

// SalesFetcher is implemented by salehistory.Client.
type SalesFetcher interface {
	FetchSales(ctx context.Context, pc postcode.Postcode) ([]property.SaleRecord, error)
}

// EnergyLookup is implemented by epc.Client.
type EnergyLookup interface {
	LookupEnergyInfo(ctx context.Context, pc postcode.Postcode, house string) epc.Result
}

// Session is the state of one user: the postcode they searched and the
// records it produced. Each search returns a new Session, records are never
// modified in place.
type Session struct {
	Postcode postcode.Postcode
	Records  []property.SaleRecord
}

// Empty reports whether the search found no sale records.
func (s Session) Empty() bool {
	return len(s.Records) == 0
}

func (s Session) Addresses() []string {
	return property.Addresses(s.Records)
}

// Details is everything shown for a selected address.
type Details struct {
	Record property.SaleRecord
	Parts  property.AddressParts
	Price  property.Price
	Energy epc.Result
}

type Finder struct {
	sales  SalesFetcher
	energy EnergyLookup
	tel    telemetry.API

	searches      metric.Int64Counter
	energyLookups metric.Int64Counter
}

func New(sales SalesFetcher, energy EnergyLookup, tel telemetry.API) *Finder {
	assert.NotNil(sales)
	assert.NotNil(energy)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("finder", tel)

	meter := otel.Meter("addressfinder.finder")
	searches, err := meter.Int64Counter(
		"addressfinder.searches",
		metric.WithDescription("Postcode searches by outcome."),
	)
	if err != nil {
		tel.ReportBroken(report_finder_search, fmt.Errorf("create counter: %w", err))
	}
	energyLookups, err := meter.Int64Counter(
		"addressfinder.energy_lookups",
		metric.WithDescription("Energy certificate lookups by outcome."),
	)
	if err != nil {
		tel.ReportBroken(report_finder_details, fmt.Errorf("create counter: %w", err))
	}

	return &Finder{
		sales:         sales,
		energy:        energy,
		tel:           tel,
		searches:      searches,
		energyLookups: energyLookups,
	}
}

func (f *Finder) count(ctx context.Context, counter metric.Int64Counter, outcome string) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Search normalizes `raw` and fetches its sale records. Blank input is an
// *InputError and nothing is fetched. A postcode with no records returns an
// empty Session and no error.
func (f *Finder) Search(ctx context.Context, raw string) (Session, error) {
	if strings.TrimSpace(raw) == "" {
		f.count(ctx, f.searches, "invalid_input")
		return Session{}, &InputError{Field: "postcode", Reason: "postcode is empty"}
	}

	pc := postcode.Normalize(raw)
	if !postcode.Valid(pc) {
		f.tel.ReportWarning(report_finder_search, "postcode does not look like a uk postcode", pc)
	}

	records, err := f.sales.FetchSales(ctx, pc)
	if err != nil {
		f.count(ctx, f.searches, "failed")
		return Session{Postcode: pc}, fmt.Errorf("search %s: %w", pc, err)
	}

	if len(records) == 0 {
		f.count(ctx, f.searches, "not_found")
	} else {
		f.count(ctx, f.searches, "found")
	}
	f.tel.ReportDebug(report_finder_search, pc, len(records))

	return Session{Postcode: pc, Records: records}, nil
}

// Details matches `address` against the session's records and looks up its
// energy certificate. A failed energy lookup is carried in Details.Energy and
// never turns into an error.
func (f *Finder) Details(ctx context.Context, session Session, address string) (Details, error) {
	record, parts, err := property.Match(session.Records, address)
	if err != nil {
		return Details{}, fmt.Errorf("details: %w", err)
	}

	price, err := property.ParsePrice(record.SalePrice)
	if err != nil {
		f.tel.ReportWarning(report_finder_details, err, record.Address)
	}

	energyPostcode := postcode.Normalize(parts.Postcode)
	energy := f.energy.LookupEnergyInfo(ctx, energyPostcode, parts.HouseNumber)
	f.count(ctx, f.energyLookups, energy.Outcome.String())

	return Details{
		Record: record,
		Parts:  parts,
		Price:  price,
		Energy: energy,
	}, nil
}
