package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newTablesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd.Context(), opts)
			if err != nil {
				return err
			}

			names, err := db.Tables(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCreateTableCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-table [name] [field...]",
		Short: "Create a table with the given header",
		Long: `Create a new worksheet and write the header to its first row.

Example: sheetdb create-table People name age email`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if err := db.CreateTable(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			log.WithField("table", args[0]).Info("Table created")
			return nil
		},
	}
}

func newDropTableCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-table [name]",
		Short: "Delete a table and all its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if err := db.DeleteTable(cmd.Context(), args[0]); err != nil {
				return err
			}
			log.WithField("table", args[0]).Info("Table deleted")
			return nil
		},
	}
}

func newSelectCmd(opts *globalOptions) *cobra.Command {
	var sel selectorFlags
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "select [table]",
		Short: "Print the records matching a selector",
		Long: `Print the records matching a selector.

Examples:
  sheetdb select People --field name --value alice
  sheetdb select People --where age,gt,30 --where name,ne,bob --fields name
  sheetdb select People --all --format csv --xlsx people.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := sel.selection()
			if err != nil {
				return err
			}
			if err := out.validate(); err != nil {
				return err
			}

			table, err := openTable(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			res, err := table.Select(cmd.Context(), selection)
			if err != nil {
				return err
			}

			f := res.Frame()
			if err := writeResult(cmd.OutOrStdout(), f, res.Records(), out.format); err != nil {
				return err
			}
			if out.xlsx != "" {
				return writeWorkbook(out.xlsx, f, table.Name())
			}
			return nil
		},
	}

	sel.register(cmd, true)
	out.register(cmd)

	return cmd
}

func newInsertCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insert [table] [field=value...]",
		Short: "Append a record to a table",
		Long: `Append a record as the last row of a table. Fields left out are
written as empty cells.

Example: sheetdb insert People name=alice age=30`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			table, err := openTable(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			if err := table.Insert(cmd.Context(), record); err != nil {
				return err
			}
			log.WithField("table", table.Name()).Info("Record inserted")
			return nil
		},
	}
}

func newUpdateCmd(opts *globalOptions) *cobra.Command {
	var sel selectorFlags

	cmd := &cobra.Command{
		Use:   "update [table] [field=value...]",
		Short: "Overwrite fields of the records matching a selector",
		Long: `Overwrite fields of the records matching a selector.

Examples:
  sheetdb update People status=active --field id --value 7
  sheetdb update People status=archived --rows 2,5`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			selection, err := sel.selection()
			if err != nil {
				return err
			}

			table, err := openTable(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			n, err := table.Update(cmd.Context(), selection, values)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"table": table.Name(), "rows": n}).Info("Records updated")
			return nil
		},
	}

	sel.register(cmd, false)

	return cmd
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	var sel selectorFlags

	cmd := &cobra.Command{
		Use:   "delete [table]",
		Short: "Delete the records matching a selector",
		Long: `Delete the records matching a selector.

Examples:
  sheetdb delete People --where age,lt,18
  sheetdb delete People --rows 3,4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := sel.selection()
			if err != nil {
				return err
			}

			table, err := openTable(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			n, err := table.Delete(cmd.Context(), selection)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"table": table.Name(), "rows": n}).Info("Records deleted")
			return nil
		},
	}

	sel.register(cmd, false)

	return cmd
}
