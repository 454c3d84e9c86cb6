package bench

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Unit is the time unit of the reported cells.
type Unit int

const (
	Nanoseconds = Unit(iota)
	Microseconds
)

func (u Unit) String() string {
	switch u {
	case Nanoseconds:
		return "ns"
	case Microseconds:
		return "us"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit returns the Unit of the given name, "ns" or "us".
func ParseUnit(name string) (Unit, error) {
	switch name {
	case "ns":
		return Nanoseconds, nil
	case "us":
		return Microseconds, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", name)
	}
}

// Format returns d in the unit u.
func (u Unit) Format(d time.Duration) string {
	if u == Microseconds {
		return fmt.Sprintf("%.2f", float64(d)/float64(time.Microsecond))
	}
	return fmt.Sprintf("%d", d.Nanoseconds())
}

const (
	cellWidth   = 10
	prefixWidth = 3 + 1 + 18
)

// Group is a named sub-table of columns.
type Group struct {
	Name    string
	Columns []Variant
}

// Table is the column layout of a report: groups printed side by side.
type Table struct {
	Groups []Group
}

// ForwardTable returns the layout of the forward report of reg: the groups
// "fwd" and "fwd-lazy".
func ForwardTable(reg *Registry) Table {
	return Table{Groups: []Group{
		{Name: "fwd", Columns: reg.Forward()},
		{Name: "fwd-lazy", Columns: reg.ForwardLazy()},
	}}
}

// InverseTable returns the layout of the inverse report of reg: the group "inv".
func InverseTable(reg *Registry) Table {
	return Table{Groups: []Group{
		{Name: "inv", Columns: reg.Inverse()},
	}}
}

// Columns returns the columns of all the groups, in order.
func (t Table) Columns() (cols []Variant) {
	for _, g := range t.Groups {
		cols = append(cols, g.Columns...)
	}
	return
}

// Reporter prints a Table: PrintHeader once, then PrintRow for each case.
type Reporter struct {
	w             io.Writer
	table         Table
	unit          Unit
	headerPrinted bool
}

// NewReporter returns a Reporter printing table to w with cells in the given unit.
func NewReporter(w io.Writer, table Table, unit Unit) *Reporter {
	return &Reporter{w: w, table: table, unit: unit}
}

// PrintHeader prints the group titles, a separator and the column labels.
func (r *Reporter) PrintHeader() (err error) {

	var title, labels strings.Builder

	fmt.Fprintf(&title, "%*s", prefixWidth, "")
	fmt.Fprintf(&labels, "%3s %18s", "N", "q")

	for _, g := range r.table.Groups {

		width := len(g.Columns) * (cellWidth + 1)

		fmt.Fprintf(&title, " | %-*s", width-1, g.Name)

		labels.WriteString(" |")
		for _, v := range g.Columns {
			fmt.Fprintf(&labels, " %*s", cellWidth, v.Label)
		}
	}

	header := strings.TrimRight(title.String(), " ") + "\n" +
		strings.Repeat("-", labels.Len()) + "\n" +
		labels.String() + "\n"

	if _, err = io.WriteString(r.w, header); err != nil {
		return fmt.Errorf("cannot PrintHeader: %w", err)
	}

	r.headerPrinted = true

	return
}

// PrintRow prints the median of every cell of row.
// Returns an error if the header has not been printed or if the cells of
// row do not match the columns of the table.
func (r *Reporter) PrintRow(row Row) (err error) {

	if !r.headerPrinted {
		return fmt.Errorf("cannot PrintRow: header not printed")
	}

	cols := r.table.Columns()

	if len(row.Cells) != len(cols) {
		return fmt.Errorf("cannot PrintRow: row has %d cells but table has %d columns", len(row.Cells), len(cols))
	}

	var line strings.Builder

	fmt.Fprintf(&line, "%3d %#18x", row.M, row.Q)

	var i int
	for _, g := range r.table.Groups {
		line.WriteString(" |")
		for _, v := range g.Columns {
			c := row.Cells[i]
			if c.Variant.ID != v.ID {
				return fmt.Errorf("cannot PrintRow: cell %d is %s but column is %s", i, c.Variant.ID, v.ID)
			}
			fmt.Fprintf(&line, " %*s", cellWidth, r.unit.Format(c.Measurement.Median))
			i++
		}
	}

	line.WriteString("\n")

	if _, err = io.WriteString(r.w, line.String()); err != nil {
		return fmt.Errorf("cannot PrintRow: %w", err)
	}

	return
}
