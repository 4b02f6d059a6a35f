// Package browse is the interactive station browser: pick a station from a
// dataset's catalog, fetch its default data file and page through the
// decoded observations as a table or a chart.
package browse

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wavefarer/ndbc/ndbc"
)

type state int

const (
	stateLoadingStations state = iota
	stateStations
	stateLoadingData
	stateViewing
)

// Model drives the browser. Fetches run as tea commands so the UI stays
// responsive; results come back as messages.
type Model struct {
	client  *ndbc.Client
	dataset string

	state     state
	spinner   spinner.Model
	list      list.Model
	table     table.Model
	ds        *ndbc.BuoyDataset
	buoyID    string
	showChart bool
	err       error

	width  int
	height int
	keys   keyMap
	help   help.Model
}

// stationItem adapts a catalog entry to the bubbles list.
type stationItem struct {
	entry ndbc.CatalogEntry
}

func (s stationItem) Title() string       { return s.entry.ID }
func (s stationItem) Description() string { return s.entry.URL }
func (s stationItem) FilterValue() string { return s.entry.ID }

type stationsMsg struct {
	entries []ndbc.CatalogEntry
}

type datasetMsg struct {
	buoyID string
	ds     *ndbc.BuoyDataset
	err    error
}

// New builds the browser for one dataset.
func New(client *ndbc.Client, dataset string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Stations: " + dataset
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return Model{
		client:  client,
		dataset: dataset,
		state:   stateLoadingStations,
		spinner: sp,
		list:    l,
		keys:    keys,
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadStationsCmd())
}

func (m Model) loadStationsCmd() tea.Cmd {
	return func() tea.Msg {
		return stationsMsg{entries: m.client.Buoys(context.Background(), m.dataset)}
	}
}

func (m Model) loadDatasetCmd(buoyID string) tea.Cmd {
	return func() tea.Msg {
		ds, err := m.client.Buoy(context.Background(), m.dataset, buoyID, 0, "")
		return datasetMsg{buoyID: buoyID, ds: ds, err: err}
	}
}
