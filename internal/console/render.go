package console

import (
	"io"

	"addressfinder-backend/internal/finder"
	"addressfinder-backend/internal/property"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderRecords prints the numbered record table, numbers start at 1.
func RenderRecords(w io.Writer, records []property.SaleRecord) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Address", "Sale date", "Sale price"})
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.Address, r.SaleDate, property.RepairMojibake(r.SalePrice)})
	}
	t.Render()
}

func RenderDetails(w io.Writer, d finder.Details) {
	rating, validUntil := d.Energy.Display()

	t := newTable(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Address", d.Record.Address},
		{"House number", d.Parts.HouseNumber},
		{"Address line 1", d.Parts.AddressLine1},
		{"Town", d.Parts.Town},
		{"County", d.Parts.County},
		{"Postcode", d.Parts.Postcode},
		{"Sale date", d.Record.SaleDate},
		{"Sale price", d.Price.String()},
		{"EPC rating", rating},
		{"EPC valid until", validUntil},
	})
	t.Render()
}
