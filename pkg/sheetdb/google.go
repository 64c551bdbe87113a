package sheetdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// googleClient implements SheetsClient on top of the Sheets v4 and
// Drive v3 APIs.
type googleClient struct {
	srv   *sheets.Service
	drive *drive.Service
}

func newGoogleClient(ctx context.Context, opts ...option.ClientOption) (*googleClient, error) {
	opts = append([]option.ClientOption{
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveReadonlyScope),
	}, opts...)

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	drv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &googleClient{
		srv:   srv,
		drive: drv,
	}, nil
}

func (c *googleClient) Spreadsheet(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	resp, err := c.srv.Spreadsheets.Get(spreadsheetID).
		Fields("spreadsheetId", "properties.title", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrSpreadsheetNotFound, spreadsheetID, err)
		}
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	info := &SpreadsheetInfo{ID: resp.SpreadsheetId}
	if resp.Properties != nil {
		info.Title = resp.Properties.Title
	}
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		info.Worksheets = append(info.Worksheets, worksheetFromProperties(sh.Properties))
	}
	return info, nil
}

func (c *googleClient) ListSpreadsheets(ctx context.Context, title string) ([]SpreadsheetInfo, error) {
	q := fmt.Sprintf("mimeType='%s' and trashed=false", spreadsheetMimeType)
	if title != "" {
		q += fmt.Sprintf(" and name='%s'", escapeQuery(title))
	}

	var out []SpreadsheetInfo
	err := c.drive.Files.List().
		Q(q).
		Fields("nextPageToken", "files(id,name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		PageSize(1000).
		Pages(ctx, func(list *drive.FileList) error {
			for _, f := range list.Files {
				out = append(out, SpreadsheetInfo{ID: f.Id, Title: f.Name})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list spreadsheets: %w", err)
	}
	return out, nil
}

func (c *googleClient) AddWorksheet(ctx context.Context, spreadsheetID, title string, rows, cols int) (*Worksheet, error) {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: title,
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(rows),
					ColumnCount: int64(cols),
				},
			},
		},
	}

	resp, err := c.batchUpdate(ctx, spreadsheetID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet %s: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return nil, fmt.Errorf("failed to add worksheet %s: empty reply", title)
	}

	ws := worksheetFromProperties(resp.Replies[0].AddSheet.Properties)
	return &ws, nil
}

func (c *googleClient) DeleteWorksheet(ctx context.Context, spreadsheetID string, sheetID int64) error {
	req := &sheets.Request{
		DeleteSheet: &sheets.DeleteSheetRequest{
			SheetId:         sheetID,
			ForceSendFields: []string{"SheetId"},
		},
	}
	if _, err := c.batchUpdate(ctx, spreadsheetID, req); err != nil {
		return fmt.Errorf("failed to delete worksheet %d: %w", sheetID, err)
	}
	return nil
}

func (c *googleClient) ReadRow(ctx context.Context, spreadsheetID, sheet string, row int) ([]string, error) {
	range_ := fmt.Sprintf("%s!%d:%d", quoteSheet(sheet), row, row)
	values, err := c.read(ctx, spreadsheetID, range_)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values[0], nil
}

func (c *googleClient) ReadAll(ctx context.Context, spreadsheetID, sheet string) ([][]string, error) {
	return c.read(ctx, spreadsheetID, quoteSheet(sheet))
}

func (c *googleClient) WriteRow(ctx context.Context, spreadsheetID, sheet string, row int, values []string) error {
	range_ := fmt.Sprintf("%s!A%d", quoteSheet(sheet), row)
	return c.write(ctx, spreadsheetID, range_, [][]interface{}{toInterfaces(values)})
}

func (c *googleClient) AppendRow(ctx context.Context, spreadsheetID, sheet string, values []string) error {
	range_ := quoteSheet(sheet) + "!A1"
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{toInterfaces(values)},
	}

	_, err := c.srv.Spreadsheets.Values.Append(spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	if err != nil {
		return fmt.Errorf("failed to append to range %s: %w", range_, err)
	}
	return nil
}

func (c *googleClient) UpdateCell(ctx context.Context, spreadsheetID, sheet string, row, col int, value string) error {
	range_ := fmt.Sprintf("%s!%s%d", quoteSheet(sheet), columnIndexToLetter(col-1), row)
	return c.write(ctx, spreadsheetID, range_, [][]interface{}{{value}})
}

func (c *googleClient) write(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.srv.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()

	if err != nil {
		return fmt.Errorf("failed to write to range %s: %w", range_, err)
	}
	return nil
}

func (c *googleClient) DeleteRow(ctx context.Context, spreadsheetID string, sheetID int64, row int) error {
	req := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: int64(row - 1),
				EndIndex:   int64(row),
				// The first worksheet has ID 0, which is otherwise omitted.
				ForceSendFields: []string{"SheetId"},
			},
		},
	}
	if _, err := c.batchUpdate(ctx, spreadsheetID, req); err != nil {
		return fmt.Errorf("failed to delete row %d: %w", row, err)
	}
	return nil
}

func (c *googleClient) read(ctx context.Context, spreadsheetID, range_ string) ([][]string, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", range_, err)
	}

	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = fmt.Sprint(v)
		}
	}
	return out, nil
}

func (c *googleClient) batchUpdate(ctx context.Context, spreadsheetID string, reqs ...*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return c.srv.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: reqs,
	}).Context(ctx).Do()
}

func worksheetFromProperties(p *sheets.SheetProperties) Worksheet {
	ws := Worksheet{
		ID:    p.SheetId,
		Title: p.Title,
		Index: int(p.Index),
	}
	if p.GridProperties != nil {
		ws.RowCount = int(p.GridProperties.RowCount)
		ws.ColumnCount = int(p.GridProperties.ColumnCount)
	}
	return ws
}

func isNotFound(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusNotFound
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// quoteSheet renders a worksheet title for use in A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func columnIndexToLetter(index int) string {
	if index < 0 {
		return "A"
	}
	result := ""
	for index >= 0 {
		result = string(rune('A'+index%26)) + result
		index = index/26 - 1
	}
	return result
}
