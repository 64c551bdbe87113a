package sheetdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/elbader17/sheetdb/pkg/frame"
)

// firstDataRow is the sheet row of the first record; row 1 is the header.
const firstDataRow = 2

// Table represents a worksheet within the spreadsheet.
type Table struct {
	db    *Database
	sheet Worksheet
	log   logrus.FieldLogger
}

// Name returns the worksheet title.
func (t *Table) Name() string {
	return t.sheet.Title
}

// Selection chooses the rows an operation applies to. Exactly one
// mechanism may be used: Field and Value together, RowNumbers, Where, or
// All. Select does not accept RowNumbers. Fields and Limit only apply to
// Select.
type Selection struct {
	Field      string
	Value      string
	RowNumbers []int
	Where      []Condition
	All        bool

	Fields []string
	Limit  int
}

// conditions turns a field/value pair into the equivalent condition list.
func (s Selection) conditions() []Condition {
	if s.Field != "" {
		return []Condition{{Field: s.Field, Op: Eq, Value: s.Value}}
	}
	return s.Where
}

func (s Selection) validate(op string, allowRows bool) error {
	if (s.Field == "") != (s.Value == "") {
		return fmt.Errorf("%w: field and value must both be assigned or both be empty", ErrConfig)
	}
	if !allowRows && len(s.RowNumbers) > 0 {
		return fmt.Errorf("%w: row numbers cannot be used to %s", ErrConfig, op)
	}

	used := 0
	for _, set := range []bool{s.Field != "", len(s.RowNumbers) > 0, len(s.Where) > 0, s.All} {
		if set {
			used++
		}
	}
	switch {
	case used == 0:
		return fmt.Errorf("%w: cannot %s rows without a select mechanism", ErrConfig, op)
	case used > 1:
		return fmt.Errorf("%w: only one way to select rows can be used at the same time", ErrConfig)
	}

	for _, n := range s.RowNumbers {
		if n < firstDataRow {
			return fmt.Errorf("%w: row number %d is not a data row", ErrConfig, n)
		}
	}
	return nil
}

// Result holds the records matched by Select, in sheet order.
type Result struct {
	fields  []string
	rows    []int
	records []Record
}

// Len returns the number of matched records.
func (r *Result) Len() int {
	return len(r.records)
}

// Fields returns the columns present in each record, in header order.
func (r *Result) Fields() []string {
	return r.fields
}

// RowNumbers returns the 1-based sheet row of each matched record.
func (r *Result) RowNumbers() []int {
	return r.rows
}

// Records returns the matched records.
func (r *Result) Records() []Record {
	return r.records
}

// Frame returns the matched records as a table indexed by row number.
func (r *Result) Frame() *frame.Frame {
	rows := make([]map[string]string, len(r.records))
	for i, rec := range r.records {
		rows[i] = rec
	}
	return frame.New(r.fields, r.rows, rows)
}

// Scan copies the matched records into dest, which must be a pointer to
// a slice of structs, struct pointers, Records or map[string]string.
func (r *Result) Scan(dest interface{}) error {
	return scanRecords(r.records, dest)
}

// parseHeader reads the header row. It is called before every record
// operation because the sheet can be edited by hand at any time.
func (t *Table) parseHeader(ctx context.Context) (*Header, error) {
	row, err := t.db.client.ReadRow(ctx, t.db.id, t.sheet.Title, 1)
	if err != nil {
		return nil, err
	}
	return ParseHeader(row)
}

// Header reads and validates the current header row.
func (t *Table) Header(ctx context.Context) (*Header, error) {
	return t.parseHeader(ctx)
}

// Select returns the records matching sel.
func (t *Table) Select(ctx context.Context, sel Selection) (*Result, error) {
	if sel.Field != "" && sel.Value != "" && len(sel.Where) > 0 {
		return nil, fmt.Errorf("%w: either field/value or where can be used but not both", ErrConfig)
	}
	if err := sel.validate("select", false); err != nil {
		return nil, err
	}
	if sel.Limit < 0 {
		return nil, fmt.Errorf("%w: limit cannot be negative", ErrConfig)
	}

	header, err := t.parseHeader(ctx)
	if err != nil {
		return nil, err
	}

	fields := header.Fields()
	if len(sel.Fields) > 0 {
		if !header.Subset(sel.Fields) {
			return nil, fmt.Errorf("%w: fields must be a sub-set of header", ErrConfig)
		}
		fields = inHeaderOrder(header, sel.Fields)
	}

	conditions := sel.conditions()
	if err := header.checkConditions(conditions); err != nil {
		return nil, err
	}

	data, err := t.db.client.ReadAll(ctx, t.db.id, t.sheet.Title)
	if err != nil {
		return nil, err
	}

	res := &Result{fields: fields}
	for i, row := range dataRows(data) {
		if !header.matches(row, conditions) {
			continue
		}
		res.rows = append(res.rows, i+firstDataRow)
		res.records = append(res.records, header.ToRecord(row, fields))
		if sel.Limit > 0 && len(res.records) == sel.Limit {
			break
		}
	}

	t.log.WithField("rows", len(res.rows)).Debug("selected records")
	return res, nil
}

// Insert appends record as the last row of the table.
func (t *Table) Insert(ctx context.Context, record Record) error {
	header, err := t.parseHeader(ctx)
	if err != nil {
		return err
	}

	row, err := header.ToRow(record)
	if err != nil {
		return err
	}

	if err := t.db.client.AppendRow(ctx, t.db.id, t.sheet.Title, row); err != nil {
		return err
	}

	t.log.Debug("inserted record")
	return nil
}

// InsertValue converts v to a Record and inserts it. v may be a Record,
// a map keyed by field name, or a struct (or pointer to one) whose
// fields carry `sheetdb` tags.
func (t *Table) InsertValue(ctx context.Context, v interface{}) error {
	record, err := recordFromValue(v)
	if err != nil {
		return err
	}
	return t.Insert(ctx, record)
}

// Update writes newValues into every row chosen by sel and returns the
// number of rows updated.
func (t *Table) Update(ctx context.Context, sel Selection, newValues Record) (int, error) {
	if err := sel.validate("update", true); err != nil {
		return 0, err
	}
	if len(newValues) == 0 {
		return 0, fmt.Errorf("%w: no values to update", ErrConfig)
	}

	header, err := t.parseHeader(ctx)
	if err != nil {
		return 0, err
	}

	for field := range newValues {
		if !header.Has(field) {
			return 0, fmt.Errorf("%w: cannot update %q, it is not in the header", ErrRecord, field)
		}
	}

	rows, err := t.resolveRows(ctx, header, sel)
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		// Header order keeps the writes deterministic.
		for col, field := range header.fields {
			value, ok := newValues[field]
			if !ok {
				continue
			}
			if err := t.db.client.UpdateCell(ctx, t.db.id, t.sheet.Title, row, col+1, value); err != nil {
				return 0, err
			}
		}
	}

	t.log.WithField("rows", len(rows)).Debug("updated records")
	return len(rows), nil
}

// Delete removes every row chosen by sel and returns the number of rows
// deleted.
func (t *Table) Delete(ctx context.Context, sel Selection) (int, error) {
	if err := sel.validate("delete", true); err != nil {
		return 0, err
	}

	header, err := t.parseHeader(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := t.resolveRows(ctx, header, sel)
	if err != nil {
		return 0, err
	}

	// Bottom-up: deleting a row shifts every row below it up by one.
	sort.Sort(sort.Reverse(sort.IntSlice(rows)))
	for _, row := range rows {
		if err := t.db.client.DeleteRow(ctx, t.db.id, t.sheet.ID, row); err != nil {
			return 0, err
		}
	}

	t.log.WithField("rows", len(rows)).Debug("deleted records")
	return len(rows), nil
}

// resolveRows returns the sorted, de-duplicated sheet rows chosen by sel.
func (t *Table) resolveRows(ctx context.Context, header *Header, sel Selection) ([]int, error) {
	if len(sel.RowNumbers) > 0 {
		return uniqueSorted(sel.RowNumbers), nil
	}

	conditions := sel.conditions()
	if err := header.checkConditions(conditions); err != nil {
		return nil, err
	}

	data, err := t.db.client.ReadAll(ctx, t.db.id, t.sheet.Title)
	if err != nil {
		return nil, err
	}

	var rows []int
	for i, row := range dataRows(data) {
		if header.matches(row, conditions) {
			rows = append(rows, i+firstDataRow)
		}
	}
	return rows, nil
}

// dataRows drops the header row from a full read of the sheet.
func dataRows(data [][]string) [][]string {
	if len(data) < firstDataRow {
		return nil
	}
	return data[firstDataRow-1:]
}

func inHeaderOrder(header *Header, fields []string) []string {
	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		want[f] = true
	}
	out := make([]string, 0, len(want))
	for _, f := range header.fields {
		if want[f] {
			out = append(out, f)
		}
	}
	return out
}

func uniqueSorted(rows []int) []int {
	seen := make(map[int]bool, len(rows))
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Ints(out)
	return out
}
