// Package frame holds tabular query results: named columns, one row per
// record, and an integer index carrying each record's sheet row number.
package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

// IndexColumn is the heading written for the index in exports.
const IndexColumn = "row"

// Frame is an immutable table of string cells.
type Frame struct {
	columns []string
	index   []int
	data    [][]string
	pos     map[int]int // index label -> data position
}

// New builds a frame. index and rows must have the same length; a row
// missing a column gets an empty cell.
func New(columns []string, index []int, rows []map[string]string) *Frame {
	f := &Frame{
		columns: append([]string(nil), columns...),
		index:   append([]int(nil), index...),
		data:    make([][]string, len(rows)),
		pos:     make(map[int]int, len(index)),
	}
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = row[col]
		}
		f.data[i] = cells
	}
	for i, label := range f.index {
		if _, dup := f.pos[label]; !dup {
			f.pos[label] = i
		}
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.data)
}

// Columns returns the column names.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Index returns the index labels in row order.
func (f *Frame) Index() []int {
	return append([]int(nil), f.index...)
}

// Loc returns the row labelled label.
func (f *Frame) Loc(label int) (map[string]string, bool) {
	i, ok := f.pos[label]
	if !ok {
		return nil, false
	}
	return f.row(i), true
}

// Row returns the i-th row by position.
func (f *Frame) Row(i int) map[string]string {
	if i < 0 || i >= len(f.data) {
		return nil
	}
	return f.row(i)
}

func (f *Frame) row(i int) map[string]string {
	out := make(map[string]string, len(f.columns))
	for j, col := range f.columns {
		out[col] = f.data[i][j]
	}
	return out
}

// Column returns every cell of the named column in row order.
func (f *Frame) Column(name string) ([]string, bool) {
	j := f.columnIndex(name)
	if j < 0 {
		return nil, false
	}
	out := make([]string, len(f.data))
	for i, row := range f.data {
		out[i] = row[j]
	}
	return out, true
}

func (f *Frame) columnIndex(name string) int {
	for j, col := range f.columns {
		if col == name {
			return j
		}
	}
	return -1
}

// String renders the frame as an aligned text table with the index as
// the first column.
func (f *Frame) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\t%s\n", strings.Join(f.columns, "\t"))
	for i, row := range f.data {
		fmt.Fprintf(w, "%d\t%s\n", f.index[i], strings.Join(row, "\t"))
	}
	w.Flush()
	return b.String()
}

// WriteCSV writes a header line followed by one line per row. The index
// is the first column.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{IndexColumn}, f.columns...)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, row := range f.data {
		if err := cw.Write(append([]string{strconv.Itoa(f.index[i])}, row...)); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", f.index[i], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the frame as a single-sheet workbook. The index is
// the first column and is stored as a number.
func (f *Frame) WriteXLSX(w io.Writer, sheet string) error {
	if sheet == "" {
		sheet = "Sheet1"
	}

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, 0, len(f.columns)+1)
	header = append(header, IndexColumn)
	for _, col := range f.columns {
		header = append(header, col)
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, row := range f.data {
		cells := make([]interface{}, 0, len(row)+1)
		cells = append(cells, f.index[i])
		for _, v := range row {
			cells = append(cells, v)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write xlsx row %d: %w", f.index[i], err)
		}
	}

	if _, err := book.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
