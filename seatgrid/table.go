package seatgrid

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"seatplan-viewer-cli/model"
)

// Table writes one line per seat of the plan, in row and block order.
func Table(w io.Writer, plan model.SeatPlan) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Row", "Seat", "Status", "Type", "Price", "Access"})

	for _, row := range plan.Rows {
		for i, block := range row.Blocks {
			if i > 1 {
				break
			}
			for _, seat := range block.Seats {
				cell := NewSeatCell(seat, plan.CurrencyCode)
				status := "Available"
				price := formatPrice(seat.Price) + " " + plan.CurrencyCode
				if cell.State == Unavailable {
					status = "Not available"
					price = "-"
				}
				band := seat.PriceBand
				if band == "" {
					band = defaultPriceBand
				}
				t.AppendRow(table.Row{strconv.Itoa(row.RowNumber), seat.SeatNumber, status, band, price, seat.SeatAccess})
			}
		}
	}
	t.Render()
}
