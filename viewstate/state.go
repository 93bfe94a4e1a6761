// Package viewstate holds the search screen state as an immutable record.
// Every change goes through a named transition that returns a new State, so
// the rules (exactly one of idle, loading, error or plan; stale responses
// dropped) can be tested without a terminal.
package viewstate

import (
	"seatplan-viewer-cli/model"
	"seatplan-viewer-cli/service"
)

type Field int

const (
	FieldDeparture Field = iota
	FieldArrival
	FieldFlightNumber
	FieldDate
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldDeparture, FieldArrival, FieldFlightNumber, FieldDate}

func (f Field) String() string {
	switch f {
	case FieldDeparture:
		return "departure"
	case FieldArrival:
		return "arrival"
	case FieldFlightNumber:
		return "flightNumber"
	case FieldDate:
		return "date"
	default:
		return "unknown"
	}
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhasePlan
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhasePlan:
		return "plan"
	default:
		return "unknown"
	}
}

// State is the whole search screen. The zero value is an idle, empty form.
type State struct {
	Form       model.SearchInput
	Plan       *model.SeatPlan
	Err        string
	Loading    bool
	Generation uint64
	// Query is the input of the search that produced Plan or Err.
	Query model.SearchInput
}

func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseError
	case s.Plan != nil:
		return PhasePlan
	default:
		return PhaseIdle
	}
}

func (s State) Field(f Field) string {
	switch f {
	case FieldDeparture:
		return s.Form.Departure
	case FieldArrival:
		return s.Form.Arrival
	case FieldFlightNumber:
		return s.Form.FlightNumber
	case FieldDate:
		return s.Form.Date
	default:
		return ""
	}
}

// SetField edits one form field. Results on screen are left alone.
func (s State) SetField(f Field, value string) State {
	switch f {
	case FieldDeparture:
		s.Form.Departure = value
	case FieldArrival:
		s.Form.Arrival = value
	case FieldFlightNumber:
		s.Form.FlightNumber = value
	case FieldDate:
		s.Form.Date = value
	}
	return s
}

// SearchStarted clears the previous plan and error and opens a new
// generation. When a field is empty the search ends immediately in the error
// phase and ok is false: the caller must not fetch.
func (s State) SearchStarted() (next State, query model.SearchInput, ok bool) {
	s.Generation++
	s.Plan = nil
	s.Err = ""
	s.Query = s.Form.Trimmed()

	if len(s.Form.MissingFields()) > 0 {
		s.Loading = false
		s.Err = service.MessageFillAllFields
		return s, model.SearchInput{}, false
	}
	s.Loading = true
	return s, s.Query, true
}

// SearchSucceeded installs plan if gen is the current generation.
func (s State) SearchSucceeded(gen uint64, plan model.SeatPlan) State {
	if gen != s.Generation {
		return s
	}
	s.Loading = false
	s.Err = ""
	s.Plan = &plan
	return s
}

// SearchFailed shows message if gen is the current generation.
func (s State) SearchFailed(gen uint64, message string) State {
	if gen != s.Generation {
		return s
	}
	if message == "" {
		message = service.MessageUnknown
	}
	s.Loading = false
	s.Plan = nil
	s.Err = message
	return s
}
