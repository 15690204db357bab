package server

import (
	"errors"
	"net/http"

	"addressfinder-backend/internal/finder"
	"addressfinder-backend/internal/property"
	"addressfinder-backend/internal/scrapers"
)

type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type sessionResponse struct {
	SessionId string      `json:"session_id"`
	Postcode  string      `json:"postcode"`
	Addresses []string    `json:"addresses"`
	Records   []recordRow `json:"records"`
}

type recordRow struct {
	Address   string `json:"address"`
	SaleDate  string `json:"sale_date"`
	SalePrice string `json:"sale_price"`
}

type energyResponse struct {
	Status     string `json:"status"`
	Rating     string `json:"rating"`
	ValidUntil string `json:"valid_until"`
	Error      string `json:"error,omitempty"`
}

type detailsResponse struct {
	Address      string `json:"address"`
	HouseNumber  string `json:"house_number"`
	AddressLine1 string `json:"address_line_1"`
	Town         string `json:"town"`
	County       string `json:"county"`
	Postcode     string `json:"postcode"`
	SaleDate     string `json:"sale_date"`
	SalePrice    string `json:"sale_price"`
	// SalePriceAmount is the price in pounds as a decimal string, nil when
	// the scraped price could not be parsed.
	SalePriceAmount *string        `json:"sale_price_amount"`
	Energy          energyResponse `json:"energy"`
}

func newRecordRows(records []property.SaleRecord) []recordRow {
	rows := make([]recordRow, len(records))
	for i, r := range records {
		rows[i] = recordRow{
			Address:   r.Address,
			SaleDate:  r.SaleDate,
			SalePrice: property.RepairMojibake(r.SalePrice),
		}
	}
	return rows
}

func newSessionResponse(id string, session finder.Session) sessionResponse {
	addresses := session.Addresses()
	if addresses == nil {
		addresses = []string{}
	}
	return sessionResponse{
		SessionId: id,
		Postcode:  session.Postcode.String(),
		Addresses: addresses,
		Records:   newRecordRows(session.Records),
	}
}

func newDetailsResponse(d finder.Details) detailsResponse {
	rating, validUntil := d.Energy.Display()
	energy := energyResponse{
		Status:     d.Energy.Outcome.String(),
		Rating:     rating,
		ValidUntil: validUntil,
	}
	if d.Energy.Err != nil {
		energy.Error = d.Energy.Err.Error()
	}

	var amount *string
	if d.Price.Parsed {
		s := d.Price.Amount.String()
		amount = &s
	}

	return detailsResponse{
		Address:         d.Record.Address,
		HouseNumber:     d.Parts.HouseNumber,
		AddressLine1:    d.Parts.AddressLine1,
		Town:            d.Parts.Town,
		County:          d.Parts.County,
		Postcode:        d.Parts.Postcode,
		SaleDate:        d.Record.SaleDate,
		SalePrice:       d.Price.String(),
		SalePriceAmount: amount,
		Energy:          energy,
	}
}

// statusOf maps the error taxonomy of finder to a response status.
func statusOf(err error) int {
	var inputErr *finder.InputError
	var transportErr *scrapers.TransportError
	var extractErr *property.ExtractionError

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, property.ErrNoMatchingRecord):
		return http.StatusNotFound
	case errors.As(err, &transportErr), errors.As(err, &extractErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
