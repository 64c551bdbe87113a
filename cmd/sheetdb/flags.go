package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elbader17/sheetdb/pkg/sheetdb"
)

// selectorFlags are the command line form of sheetdb.Selection.
type selectorFlags struct {
	field  string
	value  string
	where  []string
	all    bool
	rows   []int
	fields []string
	limit  int
}

// register adds the selector flags to cmd. Select takes --fields and
// --limit; update and delete take --rows instead.
func (s *selectorFlags) register(cmd *cobra.Command, forSelect bool) {
	flags := cmd.Flags()
	flags.StringVar(&s.field, "field", "", "Match records whose field equals --value")
	flags.StringVar(&s.value, "value", "", "Value for --field")
	flags.StringArrayVar(&s.where, "where", nil, "Condition as field,op,value with op one of eq,ne,gt,ge,lt,le (repeatable, all must hold)")
	flags.BoolVar(&s.all, "all", false, "Select every record")

	if forSelect {
		flags.StringSliceVar(&s.fields, "fields", nil, "Comma separated fields to print, in header order")
		flags.IntVar(&s.limit, "limit", 0, "Maximum number of records (0 for no limit)")
	} else {
		flags.IntSliceVar(&s.rows, "rows", nil, "Comma separated sheet row numbers, the first record is row 2")
	}
}

func (s *selectorFlags) selection() (sheetdb.Selection, error) {
	sel := sheetdb.Selection{
		Field:      s.field,
		Value:      s.value,
		RowNumbers: s.rows,
		All:        s.all,
		Fields:     s.fields,
		Limit:      s.limit,
	}

	for _, w := range s.where {
		cond, err := sheetdb.ParseCondition(strings.SplitN(w, ",", 3))
		if err != nil {
			return sheetdb.Selection{}, fmt.Errorf("invalid --where %q: %w", w, err)
		}
		sel.Where = append(sel.Where, cond)
	}

	return sel, nil
}

// parseAssignments turns field=value arguments into a record. The value
// may be empty and may itself contain '='.
func parseAssignments(args []string) (sheetdb.Record, error) {
	record := make(sheetdb.Record, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected field=value", arg)
		}
		if _, dup := record[field]; dup {
			return nil, fmt.Errorf("field %s assigned more than once", field)
		}
		record[field] = value
	}
	return record, nil
}
