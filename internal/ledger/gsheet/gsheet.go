// Package gsheet keeps the ledger in a Google Sheets spreadsheet with the
// same sheet layout as the local workbook store. Load reads the whole range,
// Save clears it and writes the new sequence back.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"kharcha/internal/core"
)

var header = []interface{}{"Date", "Category", "Amount (INR)", "Type", "Note"}

type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheet         string
}

// New creates a Sheets-backed store for the given spreadsheet and sheet.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheet string) (*Store, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheet = strings.TrimSpace(sheet)
	if sheet == "" {
		sheet = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}, nil
}

func newSheetsService(ctx context.Context) (*sheetsapi.Service, error) {
	inlineJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credsFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inlineJSON == "" && credsFile == "" {
		credsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inlineJSON != "":
		credentialsJSON = []byte(inlineJSON)
	case credsFile != "":
		b, err := os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := sheetsapi.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// Load reads every row of the ledger sheet. Fail-loud: a transient API error
// must not look like an empty ledger, because the next save would then wipe
// the remote data.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	rng := fmt.Sprintf("%s!A:E", s.sheet)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var txns []core.Transaction
	for i, row := range resp.Values {
		if i == 0 {
			continue
		}
		cols := toStrings(row)
		t, ok := parseRow(cols)
		if !ok {
			continue
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// Save clears the ledger range and writes header plus rows in one update.
func (s *Store) Save(ctx context.Context, txns []core.Transaction) error {
	rng := fmt.Sprintf("%s!A:E", s.sheet)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}

	values := make([][]interface{}, 0, len(txns)+1)
	values = append(values, header)
	for _, t := range txns {
		values = append(values, []interface{}{t.Timestamp, t.Category, t.Amount.Rupees(), string(t.Kind), t.Note})
	}
	vr := &sheetsapi.ValueRange{Values: values}
	writeRange := fmt.Sprintf("%s!A1", s.sheet)
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write %s: %w", writeRange, err)
	}
	return nil
}

func parseRow(cols []string) (core.Transaction, bool) {
	if len(cols) < 4 {
		return core.Transaction{}, false
	}
	paise, ok := core.ParseAmount(cols[2])
	if !ok {
		return core.Transaction{}, false
	}
	t := core.Transaction{
		Timestamp: cols[0],
		Category:  cols[1],
		Amount:    core.Money{Paise: paise},
		Kind:      core.Kind(cols[3]),
	}
	if len(cols) >= 5 {
		t.Note = cols[4]
	}
	return t, true
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		// fmt.Sprint(nil) would yield "<nil>", a blank cell stays blank.
		if v == nil {
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
