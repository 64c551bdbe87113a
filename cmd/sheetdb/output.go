package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/elbader17/sheetdb/pkg/frame"
	"github.com/elbader17/sheetdb/pkg/sheetdb"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
	formatRows  = "rows"
)

type outputFlags struct {
	format string
	xlsx   string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", formatTable, "Output format: table|csv|json|rows")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "Also write the result to this .xlsx file")
}

func (o *outputFlags) validate() error {
	switch o.format {
	case formatTable, formatCSV, formatJSON, formatRows:
		return nil
	default:
		return fmt.Errorf("unknown format %q: use table, csv, json or rows", o.format)
	}
}

type jsonRecord struct {
	Row    int            `json:"row"`
	Record sheetdb.Record `json:"record"`
}

// writeResult prints a select result. The rows format prints only the
// sheet row numbers, one per line.
func writeResult(w io.Writer, f *frame.Frame, records []sheetdb.Record, format string) error {
	switch format {
	case formatTable:
		_, err := io.WriteString(w, f.String())
		return err
	case formatCSV:
		return f.WriteCSV(w)
	case formatJSON:
		index := f.Index()
		out := make([]jsonRecord, len(records))
		for i, rec := range records {
			out[i] = jsonRecord{Row: index[i], Record: rec}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case formatRows:
		for _, row := range f.Index() {
			if _, err := fmt.Fprintln(w, row); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeWorkbook(path string, f *frame.Frame, sheet string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := f.WriteXLSX(file, sheet); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	log.WithFields(log.Fields{"file": path, "rows": f.Len()}).Info("Workbook written")
	return nil
}
