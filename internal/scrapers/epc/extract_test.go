package epc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"addressfinder-backend/internal/property"
	"addressfinder-backend/lib/testutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	body := testutil.ReadFixture(t, name)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractEnergyInfoSubstring(t *testing.T) {
	doc := loadFixture(t, "search.html")

	// "12" is contained in "120, ..." which comes first in the document
	result := ExtractEnergyInfo(context.Background(), doc, "12", MatchSubstring)
	require.Equal(t, Found, result.Outcome)
	require.Equal(t, EnergyInfo{Rating: "C", ValidUntil: "3 May 2030"}, result.Info)
	require.NoError(t, result.Err)
}

func TestExtractEnergyInfoToken(t *testing.T) {
	doc := loadFixture(t, "search.html")

	result := ExtractEnergyInfo(context.Background(), doc, "12", MatchToken)
	require.Equal(t, Found, result.Outcome)
	require.Equal(t, EnergyInfo{Rating: "D", ValidUntil: "18 December 2028"}, result.Info)
}

func TestExtractEnergyInfoNotFound(t *testing.T) {
	doc := loadFixture(t, "search.html")

	result := ExtractEnergyInfo(context.Background(), doc, "42", MatchSubstring)
	require.Equal(t, NotFound, result.Outcome)
	require.NoError(t, result.Err)

	rating, validUntil := result.Display()
	require.Equal(t, "Not found", rating)
	require.Equal(t, "Not found", validUntil)
}

func TestExtractEnergyInfoInlineMarkup(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<table><tr>
		<td><a href="/energy-certificate/1">Flat <b>3</b>, Elm Rd</a></td>
		<td>B</td>
		<td>1 June 2031</td>
	</tr></table>`))
	require.NoError(t, err)

	for _, mode := range []MatchMode{MatchSubstring, MatchToken} {
		result := ExtractEnergyInfo(context.Background(), doc, "Flat 3", mode)
		require.Equal(t, Found, result.Outcome, mode.String())
		require.Equal(t, EnergyInfo{Rating: "B", ValidUntil: "1 June 2031"}, result.Info)
	}
}

func TestExtractEnergyInfoStructuralFailures(t *testing.T) {
	doc := loadFixture(t, "search.html")

	cases := []string{
		// link outside any table row
		"7, Elm",
		// row without rating or expiry cells
		"9, Elm",
	}
	for _, house := range cases {
		result := ExtractEnergyInfo(context.Background(), doc, house, MatchSubstring)
		require.Equal(t, Failed, result.Outcome, house)

		var extractErr *property.ExtractionError
		require.ErrorAs(t, result.Err, &extractErr, house)

		rating, validUntil := result.Display()
		require.Equal(t, "Error", rating)
		require.Equal(t, "Error", validUntil)
	}
}

func TestParseMatchMode(t *testing.T) {
	mode, err := ParseMatchMode("")
	require.NoError(t, err)
	require.Equal(t, MatchSubstring, mode)

	mode, err = ParseMatchMode("token")
	require.NoError(t, err)
	require.Equal(t, MatchToken, mode)

	_, err = ParseMatchMode("fuzzy")
	require.Error(t, err)
}
