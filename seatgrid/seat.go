package seatgrid

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"seatplan-viewer-cli/model"
)

type State string

const (
	Available   State = "available"
	Unavailable State = "unavailable"
)

const (
	defaultPriceBand  = "Standard"
	restrictedAccess  = "Restricted"
	restrictedSuffix  = " (Restricted access)"
	notAvailableLabel = "Not available"
)

// SeatCell is one drawable seat.
type SeatCell struct {
	SeatNumber string `json:"seatNumber"`
	Letter     string `json:"letter"`
	State      State  `json:"state"`
	Clickable  bool   `json:"clickable"`
	Tooltip    string `json:"tooltip"`
}

// NewSeatCell derives the visual state of a seat. Only IsAvailable decides the
// state; SeatAccess changes the tooltip text alone.
func NewSeatCell(seat model.Seat, currency string) SeatCell {
	cell := SeatCell{
		SeatNumber: seat.SeatNumber,
		Letter:     seat.Letter(),
		State:      Unavailable,
	}
	if seat.IsAvailable {
		cell.State = Available
		cell.Clickable = true
	}
	cell.Tooltip = Tooltip(seat, currency)
	return cell
}

// Tooltip returns the hover text for a seat.
func Tooltip(seat model.Seat, currency string) string {
	if !seat.IsAvailable {
		return "Seat " + seat.SeatNumber + "\n" + notAvailableLabel
	}
	band := seat.PriceBand
	if band == "" {
		band = defaultPriceBand
	}
	access := ""
	if seat.SeatAccess == restrictedAccess {
		access = restrictedSuffix
	}
	return "Seat " + seat.SeatNumber +
		"\nPrice: " + formatPrice(seat.Price) + " " + currency +
		"\nType: " + band + access
}

// Click invokes onSelect with the seat number when the seat is available.
// It reports whether the callback ran.
func Click(cell SeatCell, onSelect func(seatNumber string)) bool {
	if !cell.Clickable || onSelect == nil {
		return false
	}
	onSelect(cell.SeatNumber)
	return true
}

// StyleFor maps a seat state to its terminal style.
func StyleFor(state State) lipgloss.Style {
	switch state {
	case Available:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case Unavailable:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle()
	}
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
