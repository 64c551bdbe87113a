package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/elbader17/sheetdb/pkg/sheetdb"
)

const (
	envCredentials = "SHEETDB_CREDENTIALS"
	envSpreadsheet = "SHEETDB_SPREADSHEET"
)

type globalOptions struct {
	credentials string
	spreadsheet string
	verbose     bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "sheetdb",
		Short: "Use a Google spreadsheet as a database of tables",
		Long: `Every worksheet of the spreadsheet is a table. The first row of a
worksheet is its header; every row below it is a record.

Credentials and the spreadsheet can also be set with SHEETDB_CREDENTIALS
and SHEETDB_SPREADSHEET, in the environment or in a .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
			log.SetFormatter(&log.TextFormatter{
				FullTimestamp: true,
			})

			if err := godotenv.Load(); err != nil {
				log.Debug("No .env file found, using system environment variables")
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.credentials, "credentials", "", "Path to a service account or OAuth client JSON file (env "+envCredentials+")")
	flags.StringVar(&opts.spreadsheet, "spreadsheet", "", "Spreadsheet key or URL (env "+envSpreadsheet+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		newTablesCmd(opts),
		newCreateTableCmd(opts),
		newDropTableCmd(opts),
		newSelectCmd(opts),
		newInsertCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)

	return rootCmd
}

func (o *globalOptions) resolve() (credentials, spreadsheet string, err error) {
	credentials = o.credentials
	if credentials == "" {
		credentials = os.Getenv(envCredentials)
	}
	spreadsheet = o.spreadsheet
	if spreadsheet == "" {
		spreadsheet = os.Getenv(envSpreadsheet)
	}

	if credentials == "" {
		return "", "", fmt.Errorf("credentials are required: use --credentials or %s", envCredentials)
	}
	if spreadsheet == "" {
		return "", "", fmt.Errorf("spreadsheet is required: use --spreadsheet or %s", envSpreadsheet)
	}
	return credentials, spreadsheet, nil
}

func openDatabase(ctx context.Context, opts *globalOptions) (*sheetdb.Database, error) {
	credentials, spreadsheet, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	client, err := sheetdb.New(ctx, sheetdb.Config{
		CredentialsFile: credentials,
		Logger:          log.StandardLogger(),
	})
	if err != nil {
		return nil, err
	}

	if strings.Contains(spreadsheet, "/") {
		return client.OpenByURL(ctx, spreadsheet)
	}
	return client.OpenByKey(ctx, spreadsheet)
}

func openTable(ctx context.Context, opts *globalOptions, name string) (*sheetdb.Table, error) {
	db, err := openDatabase(ctx, opts)
	if err != nil {
		return nil, err
	}
	return db.Table(ctx, name)
}
