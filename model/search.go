package model

import "strings"

// SearchInput holds the four form fields of a seat plan search, as typed by the user.
type SearchInput struct {
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	FlightNumber string `json:"flightNumber"`
	Date         string `json:"date"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (in SearchInput) Trimmed() SearchInput {
	return SearchInput{
		Departure:    strings.TrimSpace(in.Departure),
		Arrival:      strings.TrimSpace(in.Arrival),
		FlightNumber: strings.TrimSpace(in.FlightNumber),
		Date:         strings.TrimSpace(in.Date),
	}
}

// MissingFields lists the names of the fields that are empty after trimming.
func (in SearchInput) MissingFields() []string {
	t := in.Trimmed()
	var missing []string
	if t.Departure == "" {
		missing = append(missing, "departure")
	}
	if t.Arrival == "" {
		missing = append(missing, "arrival")
	}
	if t.FlightNumber == "" {
		missing = append(missing, "flightNumber")
	}
	if t.Date == "" {
		missing = append(missing, "date")
	}
	return missing
}
