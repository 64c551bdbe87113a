package sheetdb

import (
	"errors"
	"fmt"
)

// ErrDatabase is the generic error for the sheetdb package. Every error
// raised by the facade itself wraps it.
var ErrDatabase = errors.New("sheetdb")

var (
	// ErrConfig reports an invalid combination of selectors, a malformed
	// condition, or a table name that collides or cannot be found.
	ErrConfig = fmt.Errorf("%w: invalid configuration", ErrDatabase)

	// ErrHeader reports a header row that is missing or malformed.
	ErrHeader = fmt.Errorf("%w: invalid header", ErrDatabase)

	// ErrRecord reports a record whose fields do not fit the header.
	ErrRecord = fmt.Errorf("%w: invalid record", ErrDatabase)

	// ErrRecordType reports a value that cannot be used as a record.
	ErrRecordType = fmt.Errorf("%w: record must be a mapping", ErrDatabase)
)

// Errors returned by the spreadsheet backend. They are not domain errors
// and are passed through to the caller.
var (
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrWorksheetNotFound   = errors.New("worksheet not found")
	ErrNoValidURLKey       = errors.New("no valid spreadsheet key found in url")
)
