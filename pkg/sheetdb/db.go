// Package sheetdb provides a database-like interface for Google Sheets.
// A spreadsheet is a Database and each worksheet is a Table whose first
// row is the header. Tables support select, insert, update and delete
// over rows of text values.
package sheetdb

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SheetsClient is the spreadsheet API surface the facade is built on.
// Row and column numbers are 1-based.
type SheetsClient interface {
	Spreadsheet(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error)
	ListSpreadsheets(ctx context.Context, title string) ([]SpreadsheetInfo, error)
	AddWorksheet(ctx context.Context, spreadsheetID, title string, rows, cols int) (*Worksheet, error)
	DeleteWorksheet(ctx context.Context, spreadsheetID string, sheetID int64) error
	ReadRow(ctx context.Context, spreadsheetID, sheet string, row int) ([]string, error)
	ReadAll(ctx context.Context, spreadsheetID, sheet string) ([][]string, error)
	WriteRow(ctx context.Context, spreadsheetID, sheet string, row int, values []string) error
	AppendRow(ctx context.Context, spreadsheetID, sheet string, values []string) error
	UpdateCell(ctx context.Context, spreadsheetID, sheet string, row, col int, value string) error
	DeleteRow(ctx context.Context, spreadsheetID string, sheetID int64, row int) error
}

// SpreadsheetInfo describes a spreadsheet. Worksheets is only filled in by
// SheetsClient.Spreadsheet.
type SpreadsheetInfo struct {
	ID         string
	Title      string
	Worksheets []Worksheet
}

// Worksheet describes one sheet of a spreadsheet.
type Worksheet struct {
	ID          int64
	Title       string
	Index       int
	RowCount    int
	ColumnCount int
}

// Database represents one spreadsheet.
type Database struct {
	id     string
	title  string
	client SheetsClient
	log    logrus.FieldLogger
}

// ID returns the spreadsheet key.
func (db *Database) ID() string {
	return db.id
}

// Title returns the spreadsheet title as it was when the database was opened.
func (db *Database) Title() string {
	return db.title
}

// Table returns the table stored in the worksheet with the given name.
func (db *Database) Table(ctx context.Context, name string) (*Table, error) {
	ws, err := db.worksheet(ctx, name)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, name)
	}
	return db.table(*ws), nil
}

// CreateTable adds a worksheet named name and writes header as its first
// row. The header is validated lazily by the first record operation.
func (db *Database) CreateTable(ctx context.Context, name string, header []string) error {
	exists, err := db.TableExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: a table named %q already exists", ErrConfig, name)
	}

	cols := len(header)
	if cols == 0 {
		cols = 1
	}
	ws, err := db.client.AddWorksheet(ctx, db.id, name, 1, cols)
	if err != nil {
		return err
	}
	if err := db.client.WriteRow(ctx, db.id, ws.Title, 1, header); err != nil {
		return err
	}

	db.log.WithFields(logrus.Fields{
		"table":  name,
		"fields": len(header),
	}).Debug("created table")
	return nil
}

// DeleteTable removes the first worksheet named name.
func (db *Database) DeleteTable(ctx context.Context, name string) error {
	ws, err := db.worksheet(ctx, name)
	if err != nil {
		return err
	}
	if ws == nil {
		return fmt.Errorf("%w: the name %q did not match a table", ErrConfig, name)
	}

	if err := db.client.DeleteWorksheet(ctx, db.id, ws.ID); err != nil {
		return err
	}

	db.log.WithField("table", name).Debug("deleted table")
	return nil
}

// TableExists reports whether a worksheet named name exists.
func (db *Database) TableExists(ctx context.Context, name string) (bool, error) {
	ws, err := db.worksheet(ctx, name)
	if err != nil {
		return false, err
	}
	return ws != nil, nil
}

// Tables returns the worksheet titles in sheet order.
func (db *Database) Tables(ctx context.Context) ([]string, error) {
	info, err := db.client.Spreadsheet(ctx, db.id)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(info.Worksheets))
	for _, ws := range info.Worksheets {
		names = append(names, ws.Title)
	}
	return names, nil
}

// worksheet returns the first worksheet titled name, or nil.
func (db *Database) worksheet(ctx context.Context, name string) (*Worksheet, error) {
	info, err := db.client.Spreadsheet(ctx, db.id)
	if err != nil {
		return nil, err
	}
	for i := range info.Worksheets {
		if info.Worksheets[i].Title == name {
			return &info.Worksheets[i], nil
		}
	}
	return nil, nil
}

func (db *Database) table(ws Worksheet) *Table {
	return &Table{
		db:    db,
		sheet: ws,
		log:   db.log.WithField("table", ws.Title),
	}
}
