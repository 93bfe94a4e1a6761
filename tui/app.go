package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"seatplan-viewer-cli/model"
	"seatplan-viewer-cli/seatgrid"
	"seatplan-viewer-cli/service"
	"seatplan-viewer-cli/viewstate"
)

// SeatPlanFetcher is the single network call behind a search.
type SeatPlanFetcher interface {
	GetSeatPlan(ctx context.Context, in model.SearchInput) (model.SeatPlan, error)
}

type Options struct {
	Client          SeatPlanFetcher
	Logger          *slog.Logger
	Initial         model.SearchInput
	ShowSeatNumbers bool
	// OnSeatSelected runs when an available seat is picked in the grid.
	OnSeatSelected func(seatNumber string)
}

type focusArea int

const (
	focusForm focusArea = iota
	focusGrid
)

type appModel struct {
	client SeatPlanFetcher
	logger *slog.Logger

	state viewstate.State

	width  int
	height int

	inputs     []textinput.Model
	focusIndex int
	focus      focusArea

	grid            seatgrid.GridView
	cursor          seatgrid.Position
	showSeatNumbers bool
	onSeatSelected  func(seatNumber string)

	spinner spinner.Model
}

type seatPlanMsg struct {
	generation uint64
	plan       model.SeatPlan
	err        error
}

var fieldPlaceholders = map[viewstate.Field]string{
	viewstate.FieldDeparture:    "Departure (e.g. TLS)",
	viewstate.FieldArrival:      "Arrival (e.g. ORY)",
	viewstate.FieldFlightNumber: "Flight number (e.g. 1234)",
	viewstate.FieldDate:         "Date (YYYY-MM-DD)",
}

var fieldLabels = map[viewstate.Field]string{
	viewstate.FieldDeparture:    "Departure",
	viewstate.FieldArrival:      "Arrival",
	viewstate.FieldFlightNumber: "Flight number",
	viewstate.FieldDate:         "Date",
}

func New(opts Options) tea.Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	client := opts.Client
	if client == nil {
		client = service.NewClient(nil, service.WithLogger(logger))
	}

	m := appModel{
		client:          client,
		logger:          logger,
		showSeatNumbers: opts.ShowSeatNumbers,
		onSeatSelected:  opts.OnSeatSelected,
	}
	if m.onSeatSelected == nil {
		m.onSeatSelected = func(seatNumber string) {
			logger.Info("seat selected", "seat", seatNumber)
		}
	}

	m.inputs = make([]textinput.Model, len(viewstate.Fields))
	for i, field := range viewstate.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldPlaceholders[field]
		in.CharLimit = 32
		in.Width = 28
		m.inputs[i] = in
	}
	if opts.Initial != (model.SearchInput{}) {
		m.setInitial(opts.Initial)
	}
	m.inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m *appModel) setInitial(in model.SearchInput) {
	values := []string{in.Departure, in.Arrival, in.FlightNumber, in.Date}
	for i, field := range viewstate.Fields {
		m.inputs[i].SetValue(values[i])
		m.state = m.state.SetField(field, values[i])
	}
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusGrid {
			return m.handleGridKey(msg)
		}
		return m.handleFormKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state.Loading {
			return m, cmd
		}
		return m, nil

	case seatPlanMsg:
		return m.applyResult(msg), nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "tab", "down":
		return m, m.focusField(m.focusIndex + 1)
	case "shift+tab", "up":
		return m, m.focusField(m.focusIndex - 1)
	case "ctrl+g":
		if m.hasGrid() {
			m.enterGrid()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	m.state = m.state.SetField(viewstate.Fields[m.focusIndex], m.inputs[m.focusIndex].Value())
	return m, cmd
}

func (m appModel) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "tab", "shift+tab":
		m.focus = focusForm
		return m, m.focusField(m.focusIndex)
	case "up", "k":
		m.cursor = m.grid.Move(m.cursor, -1, 0)
	case "down", "j":
		m.cursor = m.grid.Move(m.cursor, 1, 0)
	case "left", "h":
		m.cursor = m.grid.Move(m.cursor, 0, -1)
	case "right", "l":
		m.cursor = m.grid.Move(m.cursor, 0, 1)
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
	case "enter", " ":
		m.clickCursor()
	}
	return m, nil
}

// focusField moves keyboard focus to the input at index i, wrapping around.
func (m *appModel) focusField(i int) tea.Cmd {
	n := len(m.inputs)
	i = ((i % n) + n) % n
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focusIndex = i
	return m.inputs[i].Focus()
}

func (m appModel) submit() (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, nil
	}
	next, query, ok := m.state.SearchStarted()
	m.state = next
	m.grid = seatgrid.GridView{}
	m.cursor = seatgrid.Position{}
	if !ok {
		m.logger.Info("search rejected", "missing", strings.Join(m.state.Form.MissingFields(), ","))
		return m, nil
	}
	m.logger.Info("search started",
		"generation", next.Generation,
		"departure", query.Departure,
		"arrival", query.Arrival,
		"flight", query.FlightNumber,
		"date", query.Date,
	)
	return m, tea.Batch(m.fetchSeatPlanCmd(next.Generation, query), m.spinner.Tick)
}

func (m appModel) fetchSeatPlanCmd(generation uint64, query model.SearchInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		plan, err := client.GetSeatPlan(context.Background(), query)
		return seatPlanMsg{generation: generation, plan: plan, err: err}
	}
}

func (m appModel) applyResult(msg seatPlanMsg) appModel {
	if msg.generation != m.state.Generation {
		m.logger.Debug("dropping stale seat plan response", "generation", msg.generation, "current", m.state.Generation)
		return m
	}
	if msg.err != nil {
		m.logger.Warn("search failed", "generation", msg.generation, "error", msg.err)
		m.state = m.state.SearchFailed(msg.generation, service.ErrorMessage(msg.err))
		m.grid = seatgrid.GridView{}
		m.focus = focusForm
		return m
	}

	m.state = m.state.SearchSucceeded(msg.generation, msg.plan)
	m.grid = seatgrid.Render(msg.plan)
	m.cursor = firstAvailable(m.grid)
	if len(m.grid.Misaligned) > 0 {
		m.logger.Warn("rows differ from first row layout", "rows", m.grid.Misaligned)
	}
	m.logger.Info("seat plan loaded", "aircraft", msg.plan.AircraftType, "rows", len(msg.plan.Rows))
	if m.hasGrid() {
		m.enterGrid()
	}
	return m
}

func (m appModel) hasGrid() bool {
	return m.state.Phase() == viewstate.PhasePlan && len(m.grid.Rows) > 0
}

func (m *appModel) enterGrid() {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = focusGrid
}

// clickCursor reports the seat under the cursor to the selection callback.
func (m appModel) clickCursor() bool {
	cell, ok := m.grid.CellAt(m.cursor)
	if !ok {
		return false
	}
	return seatgrid.Click(cell, m.onSeatSelected)
}

func firstAvailable(view seatgrid.GridView) seatgrid.Position {
	for r, row := range view.Rows {
		for c, cell := range row.Cells() {
			if cell.State == seatgrid.Available {
				return seatgrid.Position{Row: r, Col: c}
			}
		}
	}
	return seatgrid.Position{}
}

func (m appModel) View() string {
	return m.headerView() + "\n\n" + m.formView() + "\n\n" + m.resultView()
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Seat Plan Viewer")
	hints := "ctrl+c quit • tab/↑↓ move between fields • enter search"
	if m.hasGrid() {
		hints += " • ctrl+g seat grid"
	}
	if m.focus == focusGrid {
		hints = "ctrl+c/q quit • esc back to form • arrows/hjkl move • enter select seat • n toggle numbers"
	}
	return title + "\n" + hint(hints)
}

func (m appModel) formView() string {
	labelStyle := lipgloss.NewStyle().Width(15)
	focusedLabel := labelStyle.Foreground(lipgloss.Color("63")).Bold(true)

	lines := make([]string, 0, len(m.inputs)+2)
	for i, field := range viewstate.Fields {
		label := labelStyle.Render(fieldLabels[field])
		if m.focus == focusForm && i == m.focusIndex {
			label = focusedLabel.Render(fieldLabels[field])
		}
		lines = append(lines, label+m.inputs[i].View())
	}

	button := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)
	label := "Search"
	if m.state.Loading {
		label = "Searching..."
		button = button.Faint(true)
	}
	lines = append(lines, "", button.Render(label))

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) resultView() string {
	switch m.state.Phase() {
	case viewstate.PhaseLoading:
		return fmt.Sprintf("%s Loading seat plan\n\n%s", m.spinner.View(), hint("Fetching data..."))
	case viewstate.PhaseError:
		return errorBanner(m.state.Err)
	case viewstate.PhasePlan:
		return m.planView()
	default:
		return hint("Fill in all four fields and press enter to see the seat plan.")
	}
}

func (m appModel) planView() string {
	title := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Seat plan - Flight %s (%s)", m.state.Query.FlightNumber, m.state.Plan.AircraftType),
	)
	grid := seatgrid.Draw(m.grid, seatgrid.DrawOptions{
		ShowSeatNumbers: m.showSeatNumbers,
		ShowCursor:      m.focus == focusGrid,
		Cursor:          m.cursor,
	})

	parts := []string{title, "", grid}
	if m.focus == focusGrid {
		if cell, ok := m.grid.CellAt(m.cursor); ok {
			parts = append(parts, "", tooltipBox(cell))
		}
	}
	return strings.Join(parts, "\n")
}

func tooltipBox(cell seatgrid.SeatCell) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(seatgrid.StyleFor(cell.State).GetForeground()).
		Render(cell.Tooltip)
}

func errorBanner(message string) string {
	label := lipgloss.NewStyle().Bold(true).Render("Error!")
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("1")).
		Render(label + " " + message)
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}
