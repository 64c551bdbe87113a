package sheetdb

import (
	"context"
	"fmt"
	"testing"
)

// MockSheetsClient is an in-memory spreadsheet backend that records the
// mutating calls made against it. Set a *Func field to override a method.
type MockSheetsClient struct {
	ID     string
	Title  string
	Sheets []*MockSheet
	Others []SpreadsheetInfo

	SpreadsheetFunc func(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error)
	ReadAllFunc     func(ctx context.Context, spreadsheetID, sheet string) ([][]string, error)
	AppendRowFunc   func(ctx context.Context, spreadsheetID, sheet string, values []string) error
	UpdateCellFunc  func(ctx context.Context, spreadsheetID, sheet string, row, col int, value string) error
	DeleteRowFunc   func(ctx context.Context, spreadsheetID string, sheetID int64, row int) error

	ReadAllCalls    int
	AddCalls        []AddWorksheetCall
	DeleteWsCalls   []int64
	WriteRowCalls   []RowCall
	AppendCalls     []RowCall
	UpdateCellCalls []UpdateCellCall
	DeleteRowCalls  []int
}

type MockSheet struct {
	ID    int64
	Title string
	Rows  [][]string
}

type AddWorksheetCall struct {
	Title      string
	Rows, Cols int
}

type RowCall struct {
	Sheet  string
	Row    int
	Values []string
}

type UpdateCellCall struct {
	Sheet    string
	Row, Col int
	Value    string
}

func newMock(title string, header []string, rows ...[]string) *MockSheetsClient {
	sheet := &MockSheet{ID: 0, Title: title}
	if header != nil {
		sheet.Rows = append(sheet.Rows, header)
	}
	sheet.Rows = append(sheet.Rows, rows...)
	return &MockSheetsClient{
		ID:     "sheet-key",
		Title:  "Inventory",
		Sheets: []*MockSheet{sheet},
	}
}

func (m *MockSheetsClient) sheet(title string) *MockSheet {
	for _, s := range m.Sheets {
		if s.Title == title {
			return s
		}
	}
	return nil
}

func (m *MockSheetsClient) Spreadsheet(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	if m.SpreadsheetFunc != nil {
		return m.SpreadsheetFunc(ctx, spreadsheetID)
	}
	if spreadsheetID != m.ID {
		return nil, fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, spreadsheetID)
	}
	info := &SpreadsheetInfo{ID: m.ID, Title: m.Title}
	for i, s := range m.Sheets {
		info.Worksheets = append(info.Worksheets, Worksheet{ID: s.ID, Title: s.Title, Index: i})
	}
	return info, nil
}

func (m *MockSheetsClient) ListSpreadsheets(ctx context.Context, title string) ([]SpreadsheetInfo, error) {
	all := append([]SpreadsheetInfo{{ID: m.ID, Title: m.Title}}, m.Others...)
	if title == "" {
		return all, nil
	}
	var out []SpreadsheetInfo
	for _, s := range all {
		if s.Title == title {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockSheetsClient) AddWorksheet(ctx context.Context, spreadsheetID, title string, rows, cols int) (*Worksheet, error) {
	m.AddCalls = append(m.AddCalls, AddWorksheetCall{Title: title, Rows: rows, Cols: cols})
	var next int64
	for _, s := range m.Sheets {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	m.Sheets = append(m.Sheets, &MockSheet{ID: next, Title: title})
	return &Worksheet{ID: next, Title: title, Index: len(m.Sheets) - 1, RowCount: rows, ColumnCount: cols}, nil
}

func (m *MockSheetsClient) DeleteWorksheet(ctx context.Context, spreadsheetID string, sheetID int64) error {
	m.DeleteWsCalls = append(m.DeleteWsCalls, sheetID)
	for i, s := range m.Sheets {
		if s.ID == sheetID {
			m.Sheets = append(m.Sheets[:i], m.Sheets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrWorksheetNotFound, sheetID)
}

func (m *MockSheetsClient) ReadRow(ctx context.Context, spreadsheetID, sheet string, row int) ([]string, error) {
	s := m.sheet(sheet)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, sheet)
	}
	if row > len(s.Rows) {
		return nil, nil
	}
	return append([]string(nil), s.Rows[row-1]...), nil
}

func (m *MockSheetsClient) ReadAll(ctx context.Context, spreadsheetID, sheet string) ([][]string, error) {
	m.ReadAllCalls++
	if m.ReadAllFunc != nil {
		return m.ReadAllFunc(ctx, spreadsheetID, sheet)
	}
	s := m.sheet(sheet)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, sheet)
	}
	out := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *MockSheetsClient) WriteRow(ctx context.Context, spreadsheetID, sheet string, row int, values []string) error {
	m.WriteRowCalls = append(m.WriteRowCalls, RowCall{Sheet: sheet, Row: row, Values: values})
	s := m.sheet(sheet)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrWorksheetNotFound, sheet)
	}
	for len(s.Rows) < row {
		s.Rows = append(s.Rows, nil)
	}
	s.Rows[row-1] = append([]string(nil), values...)
	return nil
}

func (m *MockSheetsClient) AppendRow(ctx context.Context, spreadsheetID, sheet string, values []string) error {
	m.AppendCalls = append(m.AppendCalls, RowCall{Sheet: sheet, Values: values})
	if m.AppendRowFunc != nil {
		return m.AppendRowFunc(ctx, spreadsheetID, sheet, values)
	}
	s := m.sheet(sheet)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrWorksheetNotFound, sheet)
	}
	s.Rows = append(s.Rows, append([]string(nil), values...))
	return nil
}

func (m *MockSheetsClient) UpdateCell(ctx context.Context, spreadsheetID, sheet string, row, col int, value string) error {
	m.UpdateCellCalls = append(m.UpdateCellCalls, UpdateCellCall{Sheet: sheet, Row: row, Col: col, Value: value})
	if m.UpdateCellFunc != nil {
		return m.UpdateCellFunc(ctx, spreadsheetID, sheet, row, col, value)
	}
	s := m.sheet(sheet)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrWorksheetNotFound, sheet)
	}
	for len(s.Rows) < row {
		s.Rows = append(s.Rows, nil)
	}
	for len(s.Rows[row-1]) < col {
		s.Rows[row-1] = append(s.Rows[row-1], "")
	}
	s.Rows[row-1][col-1] = value
	return nil
}

func (m *MockSheetsClient) DeleteRow(ctx context.Context, spreadsheetID string, sheetID int64, row int) error {
	m.DeleteRowCalls = append(m.DeleteRowCalls, row)
	if m.DeleteRowFunc != nil {
		return m.DeleteRowFunc(ctx, spreadsheetID, sheetID, row)
	}
	for _, s := range m.Sheets {
		if s.ID != sheetID {
			continue
		}
		if row > len(s.Rows) {
			return fmt.Errorf("row %d out of range", row)
		}
		s.Rows = append(s.Rows[:row-1], s.Rows[row:]...)
		return nil
	}
	return fmt.Errorf("%w: id %d", ErrWorksheetNotFound, sheetID)
}

func (m *MockSheetsClient) Reset() {
	m.ReadAllCalls = 0
	m.AddCalls = nil
	m.DeleteWsCalls = nil
	m.WriteRowCalls = nil
	m.AppendCalls = nil
	m.UpdateCellCalls = nil
	m.DeleteRowCalls = nil
}

// testTable opens the first worksheet of mock through a Database.
func testTable(t testing.TB, mock *MockSheetsClient) *Table {
	t.Helper()
	db := testDB(mock)
	table, err := db.Table(context.Background(), mock.Sheets[0].Title)
	if err != nil {
		t.Fatalf("Table() unexpected error = %v", err)
	}
	return table
}

func testDB(mock *MockSheetsClient) *Database {
	return NewClient(mock, nil).database(SpreadsheetInfo{ID: mock.ID, Title: mock.Title})
}
