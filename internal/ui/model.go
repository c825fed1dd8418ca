package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"lotpulse-tui/internal/api"
	"lotpulse-tui/internal/app"
	"lotpulse-tui/internal/theme"
)

// screen is the active top-level view.
type screen int

const (
	screenDashboard screen = iota
	screenAdd
	screenDetail
)

// detailTab selects which slice of the already-fetched detail data is shown.
// Switching tabs never re-fetches; the comps tab lazily fetches the full
// comp list on its first mount for a vehicle.
type detailTab int

const (
	tabAnalysis detailTab = iota
	tabCurve
	tabComps
	tabWaterfall
	tabHistory
	tabCount
)

func (t detailTab) String() string {
	switch t {
	case tabAnalysis:
		return "analysis"
	case tabCurve:
		return "curve"
	case tabComps:
		return "comps"
	case tabWaterfall:
		return "waterfall"
	case tabHistory:
		return "history"
	}
	return "?"
}

// dashAction is the dashboard scope's single in-flight-action slot.
type dashAction int

const (
	dashIdle dashAction = iota
	dashRunningAlarm
	dashAnalyzingAll
)

type Model struct {
	gw  app.Gateway
	log zerolog.Logger

	refreshInterval time.Duration
	exportPath      string

	width, height       int
	maxWidth, maxHeight int
	ready               bool

	screen screen

	// Dashboard
	dash        app.DashboardVM
	dashLoaded  bool
	dashLoadErr error
	dashGen     int
	dashBusy    dashAction
	dashStatus  string
	table       table.Model

	showHistory  bool
	alarmHistory []api.Alarm

	// Add form
	vinInput   textinput.Model
	priceInput textinput.Model
	costInput  textinput.Model
	addFocus   int
	addBusy    bool
	addErr     string

	// Detail
	selectedID    int
	detail        app.DetailVM
	detailLoaded  bool
	detailLoadErr error
	detailGen     int
	tab           detailTab
	comps         []api.Comp
	compsFetched  bool
	reanalyzingID int // vehicle id of the re-analyze chain in flight, 0 = free
	reanalyzeHits int // steps completed in the current chain
	applyingStep  int  // waterfall step in flight, 0 = free
	stepCursor    int
	detailStatus  string

	spinner  spinner.Model
	viewport viewport.Model
}

// Messages. Fetch messages carry the generation they were issued under so a
// superseded orchestration run can never write into the current view-model.

type dashLoadedMsg struct {
	gen int
	vm  app.DashboardVM
	err error
}

type detailLoadedMsg struct {
	gen       int
	vehicleID int
	vm        app.DetailVM
	err       error
}

type compsMsg struct {
	gen       int
	vehicleID int
	comps     []api.Comp
}

type alarmDoneMsg struct {
	alarm *api.Alarm
	err   error
}

type analyzeAllDoneMsg struct {
	err error
}

type submitDoneMsg struct {
	vehicle api.Vehicle
	err     error
}

type reanalyzeMsg struct {
	gen       int
	vehicleID int
	res       app.ReanalyzeResult
	err       error
}

type applyStepDoneMsg struct {
	gen       int
	vehicleID int
	step      int
	err       error
}

type alarmHistoryMsg struct {
	alarms []api.Alarm
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

type refreshMsg struct{}

func NewModel(gw app.Gateway, log zerolog.Logger, refreshInterval time.Duration, maxWidth, maxHeight int) Model {
	t := theme.Default

	vin := textinput.New()
	vin.Placeholder = "17-character VIN"
	vin.CharLimit = app.VINLength
	vin.Focus()

	price := textinput.New()
	price.Placeholder = "List price (optional)"

	cost := textinput.New()
	cost.Placeholder = "Acquisition cost (optional)"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Primary)

	return Model{
		gw:              gw,
		log:             log,
		refreshInterval: refreshInterval,
		maxWidth:        maxWidth,
		maxHeight:       maxHeight,
		exportPath:      "lotpulse-insights.csv",
		vinInput:        vin,
		priceInput:      price,
		costInput:       cost,
		table:           newVehicleTable(),
		spinner:         sp,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadDashboard(m.dashGen), m.spinner.Tick}
	if m.refreshInterval > 0 {
		cmds = append(cmds, scheduleRefresh(m.refreshInterval))
	}
	return tea.Batch(cmds...)
}

func scheduleRefresh(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func newVehicleTable() table.Model {
	t := theme.Default
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Vehicle", Width: 28},
		{Title: "Days", Width: 5},
		{Title: "Price", Width: 10},
		{Title: "P30", Width: 5},
		{Title: "P60", Width: 5},
		{Title: "P90", Width: 5},
		{Title: "Aging", Width: 8},
		{Title: "Action", Width: 9},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(t.Subtext)
	styles.Selected = styles.Selected.
		Foreground(t.Text).
		Background(t.Overlay).
		Bold(true)
	tbl.SetStyles(styles)
	return tbl
}
