package property

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Price is a sale price as scraped plus its parsed amount in pounds.
type Price struct {
	// Raw is the scraped text after mojibake repair.
	Raw    string
	Amount decimal.Decimal
	Parsed bool
}

var pricePrinter = message.NewPrinter(language.BritishEnglish)

// RepairMojibake undoes UTF-8 text that was decoded as Windows-1252, which is
// how "£" turns into "Â£". Strings that do not round-trip to valid UTF-8 are
// returned unchanged.
func RepairMojibake(s string) string {
	if !strings.ContainsAny(s, "ÂÃâ") {
		return s
	}
	encoded, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(encoded) {
		return s
	}
	return encoded
}

var priceReplacer = strings.NewReplacer("£", "", "GBP", "", ",", "", " ", "", "\u00a0", "")

// ParsePrice repairs and parses a scraped price like "£250,000" or "Â£250,000".
// When the amount cannot be parsed the returned Price still carries the
// repaired text for display.
func ParsePrice(raw string) (Price, error) {
	repaired := strings.TrimSpace(RepairMojibake(raw))
	price := Price{Raw: repaired}

	amount, err := decimal.NewFromString(priceReplacer.Replace(repaired))
	if err != nil {
		return price, fmt.Errorf("parse price %q: %w", raw, err)
	}
	price.Amount = amount
	price.Parsed = true
	return price, nil
}

// String renders the amount as "£250,000" (or "£99.50" with pence). Unparsed
// prices render their repaired raw text.
func (p Price) String() string {
	if !p.Parsed {
		return p.Raw
	}
	if p.Amount.IsInteger() {
		return pricePrinter.Sprintf("£%d", p.Amount.IntPart())
	}
	return pricePrinter.Sprintf("£%.2f", p.Amount.InexactFloat64())
}
