package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gsheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// Client wraps a Sheets API service scoped to one spreadsheet
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewClient authenticates with a service account and returns a client
// for the given spreadsheet. Private keys pasted through env files often
// carry literal "\n" sequences; those are unescaped here.
func NewClient(ctx context.Context, spreadsheetID, serviceAccountEmail, privateKey string) (*Client, error) {
	conf := &jwt.Config{
		Email:      serviceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
		Scopes:     []string{gsheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// EnsureWorksheet creates the named worksheet with a header row if the
// spreadsheet does not already have it
func (c *Client) EnsureWorksheet(ctx context.Context, title string, headers []string) error {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to load spreadsheet: %w", err)
	}

	for _, sheet := range doc.Sheets {
		if sheet.Properties.Title == title {
			return nil
		}
	}

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create worksheet %s: %w", title, err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	vr := &gsheets.ValueRange{Values: [][]interface{}{headerRow}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, title+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header row for %s: %w", title, err)
	}

	return nil
}

func (c *Client) getValues(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}
	return resp.Values, nil
}

func (c *Client) updateValues(ctx context.Context, writeRange string, values []interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{values}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update range %s: %w", writeRange, err)
	}
	return nil
}

// appendValues appends one row and returns the sheet row number it
// landed on
func (c *Client) appendValues(ctx context.Context, appendRange string, values []interface{}) (int64, error) {
	vr := &gsheets.ValueRange{Values: [][]interface{}{values}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, appendRange, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to append to range %s: %w", appendRange, err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("append to %s returned no update metadata", appendRange)
	}
	return rowNumberFromRange(resp.Updates.UpdatedRange)
}

// rowNumberFromRange extracts the row number from an A1-notation range
// such as "Ledger!A5:H5"
func rowNumberFromRange(a1 string) (int64, error) {
	i := len(a1)
	for i > 0 && a1[i-1] >= '0' && a1[i-1] <= '9' {
		i--
	}
	if i == len(a1) {
		return 0, fmt.Errorf("range %q has no trailing row number", a1)
	}
	return strconv.ParseInt(a1[i:], 10, 64)
}

// cellString reads a cell as a trimmed string, tolerating short rows
// and non-string cell types
func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

// cellInt64 reads a cell as an integer, returning ok=false for
// non-numeric content
func cellInt64(row []interface{}, idx int) (int64, bool) {
	s := cellString(row, idx)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Sheets sometimes renders integers as floats ("3.0")
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, false
		}
		return int64(f), true
	}
	return n, true
}
