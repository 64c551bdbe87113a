package sheetdb

import (
	"context"
	"fmt"
)

// Query provides a fluent interface for building a Selection.
type Query struct {
	table *Table
	sel   Selection
	err   error
}

// Query starts a query on the table.
func (t *Table) Query() *Query {
	return &Query{
		table: t,
	}
}

// Match selects rows whose field equals value.
func (q *Query) Match(field, value string) *Query {
	q.sel.Field = field
	q.sel.Value = value
	return q
}

// Where adds a condition. op is an operator identifier such as "eq" or
// ">=", and value is formatted as a string.
func (q *Query) Where(field, op string, value interface{}) *Query {
	operator, err := ParseOperator(op)
	if err != nil {
		if q.err == nil {
			q.err = fmt.Errorf("where %s: %w", field, err)
		}
		return q
	}
	q.sel.Where = append(q.sel.Where, Cond(field, operator, value))
	return q
}

// All selects every data row.
func (q *Query) All() *Query {
	q.sel.All = true
	return q
}

// Rows selects rows by their 1-based sheet row number.
func (q *Query) Rows(rowNumbers ...int) *Query {
	q.sel.RowNumbers = append(q.sel.RowNumbers, rowNumbers...)
	return q
}

// Fields restricts the columns returned by Get and Scan.
func (q *Query) Fields(fields ...string) *Query {
	q.sel.Fields = append(q.sel.Fields, fields...)
	return q
}

// Limit sets the maximum number of results.
func (q *Query) Limit(n int) *Query {
	q.sel.Limit = n
	return q
}

// Selection returns the selection built so far.
func (q *Query) Selection() (Selection, error) {
	return q.sel, q.err
}

// Get runs the query as a select.
func (q *Query) Get(ctx context.Context) (*Result, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.table.Select(ctx, q.sel)
}

// Scan runs the query and copies the results into dest.
func (q *Query) Scan(ctx context.Context, dest interface{}) error {
	res, err := q.Get(ctx)
	if err != nil {
		return err
	}
	return res.Scan(dest)
}

// Count returns the number of matching rows.
func (q *Query) Count(ctx context.Context) (int, error) {
	res, err := q.Get(ctx)
	if err != nil {
		return 0, err
	}
	return res.Len(), nil
}

// Update writes newValues into every matching row.
func (q *Query) Update(ctx context.Context, newValues Record) (int, error) {
	if q.err != nil {
		return 0, q.err
	}
	return q.table.Update(ctx, q.sel, newValues)
}

// Delete removes every matching row.
func (q *Query) Delete(ctx context.Context) (int, error) {
	if q.err != nil {
		return 0, q.err
	}
	return q.table.Delete(ctx, q.sel)
}
