package ndbc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column is one typed column of the flattened observation table. Exactly one
// of the two slices is populated.
type Column struct {
	Floats  []float64
	Strings []string
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.Strings != nil {
		return len(c.Strings)
	}
	return len(c.Floats)
}

// Cell formats the value at index i for display.
func (c Column) Cell(i int) string {
	if c.Strings != nil {
		return c.Strings[i]
	}
	return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
}

// VariableMeta describes one measured variable from a decoded file.
type VariableMeta struct {
	Name           string
	Precision      string // base type in CDL notation, e.g. "float", "short"
	Units          string
	LongName       string
	MissingValue   string
	HasAddOffset   bool
	HasScaleFactor bool
}

// BuoyDataset is the decoded result of one buoy data file: per-variable
// metadata plus a row-oriented table whose columns are time, lat, lon and
// every measured variable. Rows is the Cartesian expansion of
// time x lat x lon.
type BuoyDataset struct {
	Meta map[string]VariableMeta
	Data map[string]Column

	// Variables holds the measured variable names in file order; Data also
	// carries "time", "lat" and "lon" columns.
	Variables []string

	Rows      int
	TimeCount int
	LatCount  int
	LonCount  int
}

var (
	dsHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	dsCellStyle   = lipgloss.NewStyle().PaddingRight(2)
	dsFaintStyle  = lipgloss.NewStyle().Faint(true)
)

// Columns returns the display column order: time, lat, lon, then the
// measured variables in file order.
func (d *BuoyDataset) Columns() []string {
	cols := []string{"time", "lat", "lon"}
	return append(cols, d.Variables...)
}

// Render produces a human-readable view of the dataset: dimension sizes,
// variable metadata and up to maxRows data rows. There is no format contract
// beyond readability.
func (d *BuoyDataset) Render(maxRows int) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s time=%d lat=%d lon=%d rows=%d\n",
		dsHeaderStyle.Render("dimensions:"), d.TimeCount, d.LatCount, d.LonCount, d.Rows)

	b.WriteString(dsHeaderStyle.Render("variables:"))
	b.WriteString("\n")
	for _, name := range d.Variables {
		m := d.Meta[name]
		fmt.Fprintf(b, "  %s (%s) %s", m.Name, m.Precision, m.Units)
		if m.LongName != "" {
			fmt.Fprintf(b, " %q", m.LongName)
		}
		if m.MissingValue != "" {
			fmt.Fprintf(b, " [missing=%s]", m.MissingValue)
		}
		b.WriteString("\n")
	}

	cols := d.Columns()
	var header []string
	for _, col := range cols {
		header = append(header, dsHeaderStyle.Render(col))
	}
	b.WriteString(strings.Join(header, "  "))
	b.WriteString("\n")

	n := d.Rows
	if maxRows > 0 && n > maxRows {
		n = maxRows
	}
	for i := 0; i < n; i++ {
		var cells []string
		for _, col := range cols {
			cells = append(cells, dsCellStyle.Render(d.Data[col].Cell(i)))
		}
		b.WriteString(strings.Join(cells, ""))
		b.WriteString("\n")
	}
	if n < d.Rows {
		b.WriteString(dsFaintStyle.Render(fmt.Sprintf("… %d more rows", d.Rows-n)))
		b.WriteString("\n")
	}
	return b.String()
}
