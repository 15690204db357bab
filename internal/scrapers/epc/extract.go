package epc

import (
	"context"
	"fmt"
	"strings"

	"addressfinder-backend/internal/property"
	"addressfinder-backend/lib/htmlutil"
	"addressfinder-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("addressfinder.scrapers.epc")

const (
	certificateLinkSelector = "a[href*='certificate']"
	ratingSelector          = "td:nth-child(2)"
	validUntilSelector      = "td:nth-child(3)"
)

// MatchMode decides when a certificate link's text counts as the house.
type MatchMode int

const (
	// MatchSubstring accepts any link whose text contains the house identifier,
	// so "12" also matches "120 High St".
	MatchSubstring MatchMode = iota
	// MatchToken requires the identifier as a whole token. This is stricter
	// than the lookup has historically been and must be opted into.
	MatchToken
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "substring":
		return MatchSubstring, nil
	case "token":
		return MatchToken, nil
	}
	return MatchSubstring, fmt.Errorf("unknown match mode %q", s)
}

func (m MatchMode) String() string {
	if m == MatchToken {
		return "token"
	}
	return "substring"
}

func (m MatchMode) matches(text, house string) bool {
	if m == MatchToken {
		return textutil.ContainsToken(text, house)
	}
	return strings.Contains(text, house)
}

// ExtractEnergyInfo finds the first certificate link, in document order, whose
// text matches `house` and reads the rating and expiry from the 2nd and 3rd
// cells of the table row containing it.
func ExtractEnergyInfo(ctx context.Context, doc *goquery.Document, house string, mode MatchMode) Result {
	_, span := tracer.Start(ctx, "ExtractEnergyInfo")
	defer span.End()

	links := doc.Find(certificateLinkSelector)
	span.SetAttributes(attribute.Int("candidates", links.Length()))

	for i := range links.Nodes {
		link := links.Eq(i)
		if !mode.matches(htmlutil.GetText(link.Nodes[0]), house) {
			continue
		}

		row := link.Closest("tr")
		if row.Length() == 0 {
			return failed(&property.ExtractionError{
				Component: "energy certificate",
				Reason:    fmt.Sprintf("certificate link for %q is not inside a table row", house),
			})
		}

		rating := row.Find(ratingSelector).First()
		validUntil := row.Find(validUntilSelector).First()
		if rating.Length() == 0 || validUntil.Length() == 0 {
			return failed(&property.ExtractionError{
				Component: "energy certificate",
				Reason:    fmt.Sprintf("row for %q is missing its rating or expiry cell", house),
			})
		}

		return found(EnergyInfo{
			Rating:     htmlutil.SelectionText(rating),
			ValidUntil: htmlutil.SelectionText(validUntil),
		})
	}

	return notFound
}
