package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"seatplan-viewer-cli/model"
	"seatplan-viewer-cli/service"
	"seatplan-viewer-cli/testutil"
	"seatplan-viewer-cli/viewstate"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

type fakeFetcher struct {
	plan  model.SeatPlan
	err   error
	calls []model.SearchInput
}

func (f *fakeFetcher) GetSeatPlan(_ context.Context, in model.SearchInput) (model.SeatPlan, error) {
	f.calls = append(f.calls, in)
	return f.plan, f.err
}

func twinBlockPlan(t *testing.T) model.SeatPlan {
	t.Helper()
	var plan model.SeatPlan
	if err := json.Unmarshal([]byte(testutil.TwinBlockPlanJSON), &plan); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return plan
}

func newTestModel(t *testing.T, fetcher *fakeFetcher, initial model.SearchInput) appModel {
	t.Helper()
	return New(Options{
		Client:  fetcher,
		Logger:  testutil.NewTestLogger(t),
		Initial: initial,
	}).(appModel)
}

func fullInput() model.SearchInput {
	return model.SearchInput{Departure: "TLS", Arrival: "ORY", FlightNumber: "1234", Date: "2025-06-01"}
}

func press(t *testing.T, m appModel, key tea.KeyMsg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(appModel), cmd
}

// runCmd executes cmd and returns every message it produces, expanding batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSeatPlanMsg(t *testing.T, msgs []tea.Msg) seatPlanMsg {
	t.Helper()
	for _, msg := range msgs {
		if planMsg, ok := msg.(seatPlanMsg); ok {
			return planMsg
		}
	}
	t.Fatalf("expected a seatPlanMsg among %d messages", len(msgs))
	return seatPlanMsg{}
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func TestTypingUpdatesFocusedField(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, model.SearchInput{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("TLS")})
	if got := m.state.Field(viewstate.FieldDeparture); got != "TLS" {
		t.Fatalf("expected departure %q, got %q", "TLS", got)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ORY")})
	if got := m.state.Field(viewstate.FieldArrival); got != "ORY" {
		t.Fatalf("expected arrival %q, got %q", "ORY", got)
	}
	if got := m.state.Field(viewstate.FieldDeparture); got != "TLS" {
		t.Fatalf("expected departure unchanged, got %q", got)
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, model.SearchInput{})

	for i := 1; i <= len(viewstate.Fields); i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		want := i % len(viewstate.Fields)
		if m.focusIndex != want {
			t.Fatalf("after %d tabs expected focus %d, got %d", i, want, m.focusIndex)
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusIndex != len(viewstate.Fields)-1 {
		t.Fatalf("expected shift+tab to wrap to the last field, got %d", m.focusIndex)
	}
}

func TestSubmit_MissingFieldDoesNotFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	in := fullInput()
	in.Date = ""
	m := newTestModel(t, fetcher, in)

	m, cmd := press(t, m, enterKey)
	if cmd != nil {
		t.Fatal("expected no command for an incomplete form")
	}
	if len(fetcher.calls) != 0 {
		t.Fatalf("expected no fetch, got %d", len(fetcher.calls))
	}
	if m.state.Phase() != viewstate.PhaseError {
		t.Fatalf("expected error phase, got %s", m.state.Phase())
	}
	if !strings.Contains(m.View(), "Error! "+service.MessageFillAllFields) {
		t.Fatalf("expected validation banner in view:\n%s", m.View())
	}
}

func TestSubmit_LoadsPlanAndFocusesGrid(t *testing.T) {
	fetcher := &fakeFetcher{plan: twinBlockPlan(t)}
	m := newTestModel(t, fetcher, fullInput())

	m, cmd := press(t, m, enterKey)
	if !m.state.Loading {
		t.Fatal("expected loading after submit")
	}
	if !strings.Contains(m.View(), "Searching...") {
		t.Fatalf("expected busy submit label in view:\n%s", m.View())
	}

	msg := findSeatPlanMsg(t, runCmd(cmd))
	if len(fetcher.calls) != 1 {
		t.Fatalf("expected exactly one fetch, got %d", len(fetcher.calls))
	}
	if fetcher.calls[0] != fullInput() {
		t.Fatalf("unexpected query: %+v", fetcher.calls[0])
	}

	next, _ := m.Update(msg)
	m = next.(appModel)
	if m.state.Phase() != viewstate.PhasePlan {
		t.Fatalf("expected plan phase, got %s", m.state.Phase())
	}
	if m.focus != focusGrid {
		t.Fatal("expected grid focus after a plan loads")
	}

	view := m.View()
	for _, want := range []string{"Seat plan - Flight 1234 (A320)", "14", "Seat 14A", "Price: 12.5 EUR"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	fetcher := &fakeFetcher{plan: twinBlockPlan(t)}
	m := newTestModel(t, fetcher, fullInput())

	m, _ = press(t, m, enterKey)
	gen := m.state.Generation

	m, cmd := press(t, m, enterKey)
	if cmd != nil {
		t.Fatal("expected no command while a search is in flight")
	}
	if m.state.Generation != gen {
		t.Fatalf("expected generation %d, got %d", gen, m.state.Generation)
	}
}

func TestSeatPlanMsg_StaleResultDropped(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, fullInput())
	m, _ = press(t, m, enterKey)

	next, _ := m.Update(seatPlanMsg{generation: m.state.Generation - 1, plan: twinBlockPlan(t)})
	m = next.(appModel)

	if !m.state.Loading {
		t.Fatal("expected stale result to leave the search loading")
	}
	if m.state.Plan != nil {
		t.Fatal("expected stale plan to be dropped")
	}
}

func TestSeatPlanMsg_ErrorShowsBanner(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, fullInput())
	m, _ = press(t, m, enterKey)

	apiErr := &service.APIError{StatusCode: 503, StatusText: "Service Unavailable"}
	next, _ := m.Update(seatPlanMsg{generation: m.state.Generation, err: apiErr})
	m = next.(appModel)

	if m.state.Phase() != viewstate.PhaseError {
		t.Fatalf("expected error phase, got %s", m.state.Phase())
	}
	if !strings.Contains(m.View(), "Error! API error: Service Unavailable") {
		t.Fatalf("expected API error banner in view:\n%s", m.View())
	}
	if m.focus != focusForm {
		t.Fatal("expected focus back on the form")
	}
}

func TestSeatPlanMsg_UnknownErrorMessage(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, fullInput())
	m, _ = press(t, m, enterKey)

	next, _ := m.Update(seatPlanMsg{generation: m.state.Generation, err: errors.New("")})
	m = next.(appModel)

	if m.state.Err == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func loadedModel(t *testing.T, selected *[]string) appModel {
	t.Helper()
	m := New(Options{
		Client:  &fakeFetcher{plan: twinBlockPlan(t)},
		Logger:  testutil.NewTestLogger(t),
		Initial: fullInput(),
		OnSeatSelected: func(seatNumber string) {
			*selected = append(*selected, seatNumber)
		},
	}).(appModel)

	m, cmd := press(t, m, enterKey)
	next, _ := m.Update(findSeatPlanMsg(t, runCmd(cmd)))
	return next.(appModel)
}

func TestGridEnter_SelectsAvailableSeat(t *testing.T) {
	var selected []string
	m := loadedModel(t, &selected)

	_, _ = press(t, m, enterKey)
	if len(selected) != 1 || selected[0] != "14A" {
		t.Fatalf("expected 14A to be selected, got %v", selected)
	}
}

func TestGridEnter_UnavailableSeatIgnored(t *testing.T) {
	var selected []string
	m := loadedModel(t, &selected)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if cell, ok := m.grid.CellAt(m.cursor); !ok || cell.SeatNumber != "14B" {
		t.Fatalf("expected cursor on 14B, got %+v", m.cursor)
	}
	_, _ = press(t, m, enterKey)
	if len(selected) != 0 {
		t.Fatalf("expected no selection for an unavailable seat, got %v", selected)
	}
}

func TestGridKeys_ToggleNumbersAndLeave(t *testing.T) {
	var selected []string
	m := loadedModel(t, &selected)

	before := m.showSeatNumbers
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.showSeatNumbers == before {
		t.Fatal("expected n to toggle seat numbers")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusForm {
		t.Fatal("expected esc to return to the form")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if m.focus != focusGrid {
		t.Fatal("expected ctrl+g to focus the grid")
	}
}
