package salehistory

import (
	"context"
	"fmt"

	"addressfinder-backend/internal/property"
	"addressfinder-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	addressSelector   = "td.js-ont-full-address.ont-hidden-on-smaller-than-tablet"
	saleDateSelector  = "td:nth-child(3)"
	salePriceSelector = "td:nth-child(4)"
)

// Mode picks how address, date and price cells are paired up.
type Mode int

const (
	// ModePositional selects the three columns independently across the whole
	// document and zips them by index. A row missing a cell shifts every
	// pairing after it. This is how the pages have always been read, and
	// fixtures depend on it.
	ModePositional Mode = iota
	// ModeRowScoped reads date and price from the same row as each address.
	ModeRowScoped
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "positional":
		return ModePositional, nil
	case "row":
		return ModeRowScoped, nil
	}
	return ModePositional, fmt.Errorf("unknown extraction mode %q", s)
}

func (m Mode) String() string {
	if m == ModeRowScoped {
		return "row"
	}
	return "positional"
}

// Extractor turns a sale history page into records.
type Extractor struct {
	Mode Mode
	// OnSkippedRow is called for each row ModeRowScoped drops, may be nil.
	OnSkippedRow func(index int, address string)
}

// ExtractSales returns the sale records on the page in document order.
//
// A page with no address cells yields no records and no error. A page with
// address cells that still yields no records does not have the expected
// table shape, and returns a *property.ExtractionError.
func (e Extractor) ExtractSales(ctx context.Context, doc *goquery.Document) ([]property.SaleRecord, error) {
	var records []property.SaleRecord
	var addressCount int

	switch e.Mode {
	case ModeRowScoped:
		records, addressCount = e.rowScoped(doc)
	default:
		records, addressCount = positional(ctx, doc)
	}

	if addressCount > 0 && len(records) == 0 {
		return nil, &property.ExtractionError{
			Component: "sale history",
			Reason:    fmt.Sprintf("found %d address cells but no sale date/price cells", addressCount),
		}
	}
	return records, nil
}

// ExtractSales reads the page with the default positional pairing.
func ExtractSales(ctx context.Context, doc *goquery.Document) ([]property.SaleRecord, error) {
	return Extractor{}.ExtractSales(ctx, doc)
}

func positional(ctx context.Context, doc *goquery.Document) ([]property.SaleRecord, int) {
	addresses := htmlutil.ColumnTexts(ctx, doc, addressSelector)
	dates := htmlutil.ColumnTexts(ctx, doc, saleDateSelector)
	prices := htmlutil.ColumnTexts(ctx, doc, salePriceSelector)

	n := min(len(addresses), len(dates), len(prices))
	records := make([]property.SaleRecord, n)
	for i := 0; i < n; i++ {
		records[i] = property.SaleRecord{
			Address:   addresses[i],
			SaleDate:  dates[i],
			SalePrice: prices[i],
		}
	}
	return records, len(addresses)
}

func (e Extractor) rowScoped(doc *goquery.Document) ([]property.SaleRecord, int) {
	var records []property.SaleRecord
	cells := doc.Find(addressSelector)

	cells.Each(func(i int, cell *goquery.Selection) {
		address := htmlutil.SelectionText(cell)
		row := cell.Closest("tr")
		date := row.ChildrenFiltered(saleDateSelector)
		price := row.ChildrenFiltered(salePriceSelector)

		if date.Length() == 0 || price.Length() == 0 {
			if e.OnSkippedRow != nil {
				e.OnSkippedRow(i, address)
			}
			return
		}

		records = append(records, property.SaleRecord{
			Address:   address,
			SaleDate:  htmlutil.SelectionText(date),
			SalePrice: htmlutil.SelectionText(price),
		})
	})

	return records, cells.Length()
}
