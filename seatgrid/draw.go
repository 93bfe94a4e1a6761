package seatgrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const aisleWidth = 3

// DrawOptions controls the text rendering of a grid.
type DrawOptions struct {
	// ShowSeatNumbers prints full seat numbers instead of column letters.
	ShowSeatNumbers bool
	ShowCursor      bool
	Cursor          Position
}

// Draw renders the grid as terminal text: header letters, one line per row
// with the row label on both sides, then the legend.
func Draw(view GridView, opts DrawOptions) string {
	var b strings.Builder

	if len(view.Rows) == 0 {
		b.WriteString(hint("No rows in this seat plan."))
		b.WriteString("\n\n")
		b.WriteString(drawLegend(view.Legend))
		return b.String()
	}

	rowWidth := 2
	for _, row := range view.Rows {
		rowWidth = max(rowWidth, len(row.Label))
	}
	cellWidth := 1
	for _, row := range view.Rows {
		for _, cell := range row.Cells() {
			cellWidth = max(cellWidth, len(cellText(cell, opts)))
		}
	}
	cellWidth += 2

	if !view.Header.Empty() {
		b.WriteString(strings.Repeat(" ", rowWidth+1))
		b.WriteString(hint(headerLine(view.Header, cellWidth)))
		b.WriteString("\n")
	}

	cursorStyle := lipgloss.NewStyle().Reverse(true).Bold(true)
	for r, row := range view.Rows {
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, row.Label))
		for c, cell := range row.Left {
			b.WriteString(drawCell(cell, opts, cellWidth, opts.ShowCursor && opts.Cursor == Position{Row: r, Col: c}, cursorStyle))
		}
		if row.Aisle {
			b.WriteString(strings.Repeat(" ", aisleWidth))
			for c, cell := range row.Right {
				col := len(row.Left) + c
				b.WriteString(drawCell(cell, opts, cellWidth, opts.ShowCursor && opts.Cursor == Position{Row: r, Col: col}, cursorStyle))
			}
		}
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, row.Label))
	}

	b.WriteString("\n")
	b.WriteString(drawLegend(view.Legend))
	if len(view.Misaligned) > 0 {
		b.WriteString("\n")
		b.WriteString(hint(misalignedNote(view.Misaligned)))
	}
	return b.String()
}

func headerLine(header Header, cellWidth int) string {
	var b strings.Builder
	for _, letter := range header.Left {
		b.WriteString(padCell(letter, cellWidth))
	}
	if header.Aisle {
		b.WriteString(strings.Repeat(" ", aisleWidth))
		for _, letter := range header.Right {
			b.WriteString(padCell(letter, cellWidth))
		}
	}
	return b.String()
}

func drawCell(cell SeatCell, opts DrawOptions, width int, selected bool, cursorStyle lipgloss.Style) string {
	text := padCell(cellText(cell, opts), width)
	if selected {
		return cursorStyle.Inherit(StyleFor(cell.State)).Render(text)
	}
	return StyleFor(cell.State).Render(text)
}

func cellText(cell SeatCell, opts DrawOptions) string {
	if opts.ShowSeatNumbers && cell.SeatNumber != "" {
		return cell.SeatNumber
	}
	return cell.Letter
}

func drawLegend(entries []LegendEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, StyleFor(entry.State).Render("■")+" "+entry.Label)
	}
	return "Legend: " + strings.Join(parts, " • ")
}

func misalignedNote(rows []int) string {
	labels := make([]string, 0, len(rows))
	for _, n := range rows {
		labels = append(labels, strconv.Itoa(n))
	}
	return fmt.Sprintf("Rows %s differ from the first row layout; columns may not line up.", strings.Join(labels, ", "))
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
