// Package property holds the sale record model and the logic that picks a
// record out of a batch and decomposes its address.
package property

import (
	"errors"
	"fmt"
	"strings"
)

// SaleRecord is one row of a sale history page, in document order.
type SaleRecord struct {
	Address   string
	SaleDate  string
	SalePrice string
}

// AddressParts is the decomposition of a SaleRecord address such as
// "12, Main St, Anytown, Bigshire, SW1A 1AA".
type AddressParts struct {
	HouseNumber  string
	AddressLine1 string
	Town         string
	County       string
	Postcode     string
}

// ErrNoMatchingRecord is returned by Match when no record has the selected address.
var ErrNoMatchingRecord = errors.New("no matching record")

// ExtractionError means a document or address was retrieved but did not have
// the shape the extractor relies on.
type ExtractionError struct {
	Component string
	Reason    string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.Component, e.Reason)
}

const addressSeparator = ", "

// Match returns the first record whose address equals `selected` exactly,
// together with its decomposed address.
func Match(records []SaleRecord, selected string) (SaleRecord, AddressParts, error) {
	for _, r := range records {
		if r.Address != selected {
			continue
		}
		parts, err := SplitAddress(r.Address)
		if err != nil {
			return r, AddressParts{}, err
		}
		return r, parts, nil
	}
	return SaleRecord{}, AddressParts{}, ErrNoMatchingRecord
}

// SplitAddress splits on ", " and keeps the first three and the last two
// segments. Middle segments of longer addresses are dropped. With exactly
// three segments county and postcode overlap line 1 and town.
func SplitAddress(address string) (AddressParts, error) {
	segments := strings.Split(address, addressSeparator)
	if len(segments) < 3 {
		return AddressParts{}, &ExtractionError{
			Component: "address",
			Reason:    fmt.Sprintf("%q has %d segment(s), need at least 3", address, len(segments)),
		}
	}
	for i, s := range segments {
		segments[i] = strings.TrimSpace(s)
	}

	n := len(segments)
	return AddressParts{
		HouseNumber:  segments[0],
		AddressLine1: segments[1],
		Town:         segments[2],
		County:       segments[n-2],
		Postcode:     segments[n-1],
	}, nil
}

// Addresses lists the address of each record, in order.
func Addresses(records []SaleRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Address
	}
	return out
}
