package browse

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const maxTableRows = 500

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
		if m.state == stateViewing {
			m.table.SetHeight(max(5, msg.Height-8))
		}
		return m, nil

	case tea.KeyMsg:
		// Don't steal keys while the list filter input is active.
		if m.state == stateStations && m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if m.state == stateStations {
				if item, ok := m.list.SelectedItem().(stationItem); ok {
					m.state = stateLoadingData
					m.err = nil
					return m, tea.Batch(m.spinner.Tick, m.loadDatasetCmd(item.entry.ID))
				}
			}
		case key.Matches(msg, m.keys.Back):
			if m.state == stateViewing {
				m.state = stateStations
				m.ds = nil
				m.showChart = false
				return m, nil
			}
		case key.Matches(msg, m.keys.Chart):
			if m.state == stateViewing {
				m.showChart = !m.showChart
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stationsMsg:
		m.state = stateStations
		items := make([]list.Item, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = stationItem{entry: e}
		}
		return m, m.list.SetItems(items)

	case datasetMsg:
		if msg.err != nil {
			m.state = stateStations
			m.err = msg.err
			return m, nil
		}
		m.state = stateViewing
		m.err = nil
		m.buoyID = msg.buoyID
		m.ds = msg.ds
		m.table = m.buildTable()
		return m, nil
	}

	// Delegate remaining messages to the active component.
	var cmd tea.Cmd
	switch m.state {
	case stateStations:
		m.list, cmd = m.list.Update(msg)
	case stateViewing:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// buildTable renders the decoded dataset into a bubbles table, capped at
// maxTableRows rows to keep the UI snappy on multi-year files.
func (m Model) buildTable() table.Model {
	cols := m.ds.Columns()
	columns := make([]table.Column, len(cols))
	for i, name := range cols {
		w := 12
		if name == "time" {
			w = 22
		}
		columns[i] = table.Column{Title: name, Width: w}
	}

	n := m.ds.Rows
	if n > maxTableRows {
		n = maxTableRows
	}
	rows := make([]table.Row, n)
	for i := 0; i < n; i++ {
		row := make(table.Row, len(cols))
		for j, name := range cols {
			row[j] = m.ds.Data[name].Cell(i)
		}
		rows[i] = row
	}

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(5, m.height-8)),
	)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
