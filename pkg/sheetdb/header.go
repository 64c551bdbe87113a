package sheetdb

import (
	"fmt"
)

// Record is one data row keyed by field name.
type Record map[string]string

// Header is the parsed first row of a table.
type Header struct {
	fields   []string
	fieldIdx map[string]int // field -> column index
	idxField map[int]string // column index -> field
}

// ParseHeader validates the header row and builds its index maps.
func ParseHeader(fields []string) (*Header, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: worksheet must have a valid header", ErrHeader)
	}

	h := &Header{
		fields:   make([]string, len(fields)),
		fieldIdx: make(map[string]int, len(fields)),
		idxField: make(map[int]string, len(fields)),
	}
	copy(h.fields, fields)

	for i, field := range fields {
		if field == "" {
			return nil, fmt.Errorf("%w: an empty string cannot be used as a field's name (column %d)", ErrHeader, i+1)
		}
		if _, dup := h.fieldIdx[field]; dup {
			return nil, fmt.Errorf("%w: fields' names must be unique, %q repeats", ErrHeader, field)
		}
		h.fieldIdx[field] = i
		h.idxField[i] = field
	}

	return h, nil
}

// Fields returns the field names in column order.
func (h *Header) Fields() []string {
	out := make([]string, len(h.fields))
	copy(out, h.fields)
	return out
}

// Len returns the number of columns in the header.
func (h *Header) Len() int {
	return len(h.fields)
}

// Index returns the 0-based column of field.
func (h *Header) Index(field string) (int, bool) {
	i, ok := h.fieldIdx[field]
	return i, ok
}

// Field returns the field name at the 0-based column i.
func (h *Header) Field(i int) (string, bool) {
	f, ok := h.idxField[i]
	return f, ok
}

// Has reports whether field is part of the header.
func (h *Header) Has(field string) bool {
	_, ok := h.fieldIdx[field]
	return ok
}

// Subset reports whether every name in fields belongs to the header.
func (h *Header) Subset(fields []string) bool {
	for _, f := range fields {
		if !h.Has(f) {
			return false
		}
	}
	return true
}

// ToRecord converts a row aligned to the header into a Record holding
// only the requested fields. An empty fields list keeps the whole header.
func (h *Header) ToRecord(row []string, fields []string) Record {
	if len(fields) == 0 {
		fields = h.fields
	}
	out := make(Record, len(fields))
	for _, field := range fields {
		idx, ok := h.fieldIdx[field]
		if !ok {
			continue
		}
		out[field] = cell(row, idx)
	}
	return out
}

// ToRow converts a Record into a row aligned to the header. Fields the
// record omits are written as empty strings.
func (h *Header) ToRow(record Record) ([]string, error) {
	for key := range record {
		if !h.Has(key) {
			return nil, fmt.Errorf("%w: keys in record must be a sub-set of header, %q is not", ErrRecord, key)
		}
	}
	out := make([]string, len(h.fields))
	for i, field := range h.fields {
		out[i] = record[field]
	}
	return out, nil
}

// Matches reports whether row satisfies every condition.
func (h *Header) Matches(row []string, conditions []Condition) (bool, error) {
	if err := h.checkConditions(conditions); err != nil {
		return false, err
	}
	return h.matches(row, conditions), nil
}

func (h *Header) checkConditions(conditions []Condition) error {
	for _, c := range conditions {
		if !h.Has(c.Field) {
			return fmt.Errorf("%w: fields in conditions must be in table's header, %q is not", ErrConfig, c.Field)
		}
		if !c.Op.Valid() {
			return fmt.Errorf("%w: condition on %q has no valid operator", ErrConfig, c.Field)
		}
	}
	return nil
}

// matches assumes the conditions already passed checkConditions.
func (h *Header) matches(row []string, conditions []Condition) bool {
	for _, c := range conditions {
		if !c.Op.Compare(cell(row, h.fieldIdx[c.Field]), c.Value) {
			return false
		}
	}
	return true
}

// cell returns row[idx], treating cells past the end of a short row as
// empty. The Sheets API drops trailing empty cells from each row.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
