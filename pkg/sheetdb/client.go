package sheetdb

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Config holds client configuration.
type Config struct {
	Credentials     []byte // Service account or OAuth client JSON
	CredentialsFile string // Path to the same, used when Credentials is empty
	Logger          logrus.FieldLogger
	Options         []option.ClientOption
}

// Client opens spreadsheets and hands them out as Databases.
type Client struct {
	backend SheetsClient
	log     logrus.FieldLogger
}

// New creates a Client backed by the Google Sheets and Drive APIs.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if len(cfg.Credentials) == 0 && cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("credentials are required")
	}

	opts := make([]option.ClientOption, 0, len(cfg.Options)+1)
	if len(cfg.Credentials) > 0 {
		opts = append(opts, option.WithCredentialsJSON(cfg.Credentials))
	} else {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, cfg.Options...)

	backend, err := newGoogleClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return NewClient(backend, cfg.Logger), nil
}

// Authorize logs in with the given credentials JSON. Extra options are
// passed to the underlying API clients after the credentials, so they can
// override the HTTP client, endpoint or scopes.
func Authorize(ctx context.Context, credentials []byte, opts ...option.ClientOption) (*Client, error) {
	return New(ctx, Config{
		Credentials: credentials,
		Options:     opts,
	})
}

// NewClient wraps an existing backend. A nil logger falls back to the
// logrus standard logger.
func NewClient(backend SheetsClient, logger logrus.FieldLogger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		backend: backend,
		log:     logger,
	}
}

// Open opens the first spreadsheet with the given title.
func (c *Client) Open(ctx context.Context, title string) (*Database, error) {
	found, err := c.backend.ListSpreadsheets(ctx, title)
	if err != nil {
		return nil, err
	}
	for _, s := range found {
		if s.Title == title {
			return c.OpenByKey(ctx, s.ID)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, title)
}

// OpenByKey opens the spreadsheet with the given key (its ID).
func (c *Client) OpenByKey(ctx context.Context, key string) (*Database, error) {
	info, err := c.backend.Spreadsheet(ctx, key)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"spreadsheet": info.ID,
		"title":       info.Title,
	}).Debug("opened spreadsheet")
	return c.database(*info), nil
}

// OpenByURL opens the spreadsheet a Google Sheets URL points to.
func (c *Client) OpenByURL(ctx context.Context, url string) (*Database, error) {
	key, err := KeyFromURL(url)
	if err != nil {
		return nil, err
	}
	return c.OpenByKey(ctx, key)
}

// OpenAll opens every spreadsheet visible to the client, or only those
// with the given title when title is not empty.
func (c *Client) OpenAll(ctx context.Context, title string) ([]*Database, error) {
	found, err := c.backend.ListSpreadsheets(ctx, title)
	if err != nil {
		return nil, err
	}

	dbs := make([]*Database, 0, len(found))
	for _, s := range found {
		if title != "" && s.Title != title {
			continue
		}
		dbs = append(dbs, c.database(s))
	}
	return dbs, nil
}

func (c *Client) database(info SpreadsheetInfo) *Database {
	return &Database{
		id:     info.ID,
		title:  info.Title,
		client: c.backend,
		log:    c.log.WithField("spreadsheet", info.ID),
	}
}

var urlKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`[?&]key=([a-zA-Z0-9_-]+)`),
}

// KeyFromURL extracts the spreadsheet key from a Google Sheets URL.
func KeyFromURL(url string) (string, error) {
	for _, re := range urlKeyPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoValidURLKey, url)
}
