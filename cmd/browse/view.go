package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/wavefarer/ndbc/ndbc"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	infoStyle  = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m Model) View() string {
	b := &strings.Builder{}

	switch m.state {
	case stateLoadingStations:
		fmt.Fprintf(b, "%s loading %s catalog…\n", m.spinner.View(), m.dataset)

	case stateStations:
		if m.err != nil {
			b.WriteString(errStyle.Render(m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString(m.list.View())

	case stateLoadingData:
		fmt.Fprintf(b, "%s fetching buoy data…\n", m.spinner.View())

	case stateViewing:
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s / %s", m.dataset, m.buoyID)))
		b.WriteString("\n")
		fmt.Fprintf(b, "%s\n", infoStyle.Render(fmt.Sprintf(
			"time=%d lat=%d lon=%d rows=%d",
			m.ds.TimeCount, m.ds.LatCount, m.ds.LonCount, m.ds.Rows)))
		if m.showChart {
			b.WriteString(m.renderChart())
		} else {
			b.WriteString(m.table.View())
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderChart plots the first numeric variable against the time axis.
func (m Model) renderChart() string {
	name, col, ok := m.firstNumericVariable()
	if !ok {
		return infoStyle.Render("no numeric variable to chart")
	}

	stamps := m.ds.Data["time"].Strings
	width := max(40, m.width-6)
	height := max(8, m.height-10)

	lc := timeserieslinechart.New(width, height)
	var minT, maxT time.Time
	var minV, maxV float64
	var plotted int
	for i := 0; i < len(stamps) && i < len(col.Floats); i++ {
		ts, err := time.Parse(time.RFC3339, stamps[i])
		if err != nil {
			continue // skip malformed
		}
		v := col.Floats[i]
		if plotted == 0 {
			minT, maxT = ts, ts
			minV, maxV = v, v
		}
		if ts.Before(minT) {
			minT = ts
		}
		if ts.After(maxT) {
			maxT = ts
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		lc.Push(timeserieslinechart.TimePoint{Time: ts, Value: v})
		plotted++
	}
	if plotted == 0 {
		return infoStyle.Render("no plottable points")
	}
	if minV == maxV { // add small padding
		maxV += 0.1
		minV -= 0.1
	}
	lc.SetTimeRange(minT, maxT)
	lc.SetViewTimeAndYRange(minT, maxT, minV, maxV)
	lc.DrawBraille()

	units := m.ds.Meta[name].Units
	legend := name
	if units != "" {
		legend += " (" + units + ")"
	}
	return lc.View() + "\n" + infoStyle.Render(legend)
}

// firstNumericVariable returns the first measured variable with a float
// column, which is what the chart plots by default.
func (m Model) firstNumericVariable() (string, ndbc.Column, bool) {
	for _, name := range m.ds.Variables {
		col := m.ds.Data[name]
		if col.Floats != nil {
			return name, col, true
		}
	}
	return "", ndbc.Column{}, false
}
