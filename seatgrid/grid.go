// Package seatgrid turns a seat plan into a renderable grid: column headers
// taken from the first row, one or two seat blocks per row separated by an
// aisle, row labels on both sides, per-seat state and tooltip text.
//
// Render is pure; Draw and Table only format an already rendered GridView.
package seatgrid

import (
	"strconv"

	"seatplan-viewer-cli/model"
)

// GridView is the rendered form of a seat plan.
type GridView struct {
	AircraftType string        `json:"aircraftType"`
	CurrencyCode string        `json:"currencyCode"`
	Header       Header        `json:"header"`
	Rows         []GridRow     `json:"rows"`
	Legend       []LegendEntry `json:"legend"`
	// Misaligned holds row numbers whose block layout differs from the first
	// row. Those rows are still drawn under the first-row header.
	Misaligned []int `json:"misaligned,omitempty"`
}

// Header holds the column letters of the first row.
type Header struct {
	Left  []string `json:"left,omitempty"`
	Right []string `json:"right,omitempty"`
	Aisle bool     `json:"aisle"`
}

// Empty reports whether there is nothing to draw above the rows.
func (h Header) Empty() bool {
	return len(h.Left) == 0 && len(h.Right) == 0
}

type GridRow struct {
	Number int        `json:"number"`
	Label  string     `json:"label"`
	Left   []SeatCell `json:"left"`
	Right  []SeatCell `json:"right,omitempty"`
	Aisle  bool       `json:"aisle"`
}

// Cells returns the row's seats in left-to-right order.
func (r GridRow) Cells() []SeatCell {
	cells := make([]SeatCell, 0, len(r.Left)+len(r.Right))
	cells = append(cells, r.Left...)
	return append(cells, r.Right...)
}

type LegendEntry struct {
	State State  `json:"state"`
	Label string `json:"label"`
}

// Legend is the fixed two-entry legend shown with every plan.
func Legend() []LegendEntry {
	return []LegendEntry{
		{State: Available, Label: "Available"},
		{State: Unavailable, Label: "Not available"},
	}
}

// Render builds the grid for a plan. It never fails: an empty plan or a first
// row without blocks yields an empty header, and rows without blocks keep
// their labels with no seats.
func Render(plan model.SeatPlan) GridView {
	view := GridView{
		AircraftType: plan.AircraftType,
		CurrencyCode: plan.CurrencyCode,
		Header:       columnHeader(plan),
		Legend:       Legend(),
	}

	var reference []int
	if len(plan.Rows) > 0 {
		reference = blockShape(plan.Rows[0])
	}

	view.Rows = make([]GridRow, 0, len(plan.Rows))
	for _, row := range plan.Rows {
		view.Rows = append(view.Rows, renderRow(row, plan.CurrencyCode))
		if !sameShape(reference, blockShape(row)) {
			view.Misaligned = append(view.Misaligned, row.RowNumber)
		}
	}
	return view
}

func columnHeader(plan model.SeatPlan) Header {
	if len(plan.Rows) == 0 || len(plan.Rows[0].Blocks) == 0 {
		return Header{}
	}
	first := plan.Rows[0]
	header := Header{Left: blockLetters(first.Blocks[0])}
	if len(first.Blocks) > 1 {
		header.Right = blockLetters(first.Blocks[1])
		header.Aisle = true
	}
	return header
}

func blockLetters(block model.Block) []string {
	letters := make([]string, 0, len(block.Seats))
	for _, seat := range block.Seats {
		letters = append(letters, seat.Letter())
	}
	return letters
}

func renderRow(row model.Row, currency string) GridRow {
	out := GridRow{
		Number: row.RowNumber,
		Label:  strconv.Itoa(row.RowNumber),
	}
	if len(row.Blocks) > 0 {
		out.Left = renderBlock(row.Blocks[0], currency)
	}
	if len(row.Blocks) > 1 {
		out.Aisle = true
		out.Right = renderBlock(row.Blocks[1], currency)
	}
	return out
}

func renderBlock(block model.Block, currency string) []SeatCell {
	cells := make([]SeatCell, 0, len(block.Seats))
	for _, seat := range block.Seats {
		cells = append(cells, NewSeatCell(seat, currency))
	}
	return cells
}

// blockShape is the seat count of each consulted block (at most two).
func blockShape(row model.Row) []int {
	n := min(len(row.Blocks), 2)
	shape := make([]int, n)
	for i := 0; i < n; i++ {
		shape[i] = len(row.Blocks[i].Seats)
	}
	return shape
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
