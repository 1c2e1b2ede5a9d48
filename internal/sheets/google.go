package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"inventario-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	// Sayfa yoksa bu boyutlarda oluşturulur
	ledgerGridRows = 1000
	ledgerGridCols = 20

	valueInputUserEntered = "USER_ENTERED"
)

type GoogleOptions struct {
	CredentialsFile      string
	CatalogSpreadsheetID string
	CatalogSheetName     string // boşsa ilk sayfa
	LedgerSpreadsheetID  string
	LedgerSheetName      string
}

// GoogleStore reads and writes Google Sheets through a single service client built at startup.
type GoogleStore struct {
	svc  *gsheets.Service
	opts GoogleOptions
}

// NewGoogleStore authenticates with a service-account key file. Extra client options
// are appended after the credentials (tests point the client at a fake endpoint).
func NewGoogleStore(ctx context.Context, opts GoogleOptions, extra ...option.ClientOption) (*GoogleStore, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts,
			option.WithCredentialsFile(opts.CredentialsFile),
			option.WithScopes(gsheets.SpreadsheetsScope),
		)
	}
	clientOpts = append(clientOpts, extra...)

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, newError("google.NewService", KindAuth, err)
	}
	return &GoogleStore{svc: svc, opts: opts}, nil
}

func (s *GoogleStore) FetchAll(ctx context.Context) ([]Row, error) {
	const op = "google.FetchAll"

	sheet := s.opts.CatalogSheetName
	if sheet == "" {
		titles, err := s.sheetTitles(ctx, op, s.opts.CatalogSpreadsheetID)
		if err != nil {
			return nil, err
		}
		if len(titles) == 0 {
			return []Row{}, nil
		}
		sheet = titles[0]
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.opts.CatalogSpreadsheetID, quoteSheet(sheet)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(op, err)
	}
	return rowsToRecords(resp.Values), nil
}

func (s *GoogleStore) OpenLedger(ctx context.Context) (Ledger, error) {
	const op = "google.OpenLedger"

	titles, err := s.sheetTitles(ctx, op, s.opts.LedgerSpreadsheetID)
	if err != nil {
		return nil, err
	}
	l := &googleLedger{store: s, sheet: s.opts.LedgerSheetName}
	for _, t := range titles {
		if t == s.opts.LedgerSheetName {
			return l, nil
		}
	}

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: s.opts.LedgerSheetName,
					GridProperties: &gsheets.GridProperties{
						RowCount:    ledgerGridRows,
						ColumnCount: ledgerGridCols,
					},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.opts.LedgerSpreadsheetID, req).Context(ctx).Do(); err != nil {
		return nil, classify(op, err)
	}

	header := make([]any, len(models.LedgerHeader))
	for i, h := range models.LedgerHeader {
		header[i] = h
	}
	if err := l.AppendRow(ctx, header); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *GoogleStore) sheetTitles(ctx context.Context, op, spreadsheetID string) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(op, err)
	}
	titles := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh == nil || sh.Properties == nil {
			return nil, newError(op, KindMalformed, errors.New("sheet without properties"))
		}
		titles = append(titles, sh.Properties.Title)
	}
	return titles, nil
}

type googleLedger struct {
	store *GoogleStore
	sheet string
}

func (l *googleLedger) AppendRow(ctx context.Context, values []any) error {
	const op = "google.AppendRow"
	vr := &gsheets.ValueRange{Values: [][]any{values}}
	_, err := l.store.svc.Spreadsheets.Values.Append(l.store.opts.LedgerSpreadsheetID, quoteSheet(l.sheet)+"!A1", vr).
		ValueInputOption(valueInputUserEntered).
		InsertDataOption("OVERWRITE").
		Context(ctx).
		Do()
	if err != nil {
		return classify(op, err)
	}
	return nil
}

func (l *googleLedger) FindRow(ctx context.Context, col int, value string) (int, error) {
	const op = "google.FindRow"
	resp, err := l.store.svc.Spreadsheets.Values.Get(l.store.opts.LedgerSpreadsheetID, quoteSheet(l.sheet)).
		Context(ctx).
		Do()
	if err != nil {
		return 0, classify(op, err)
	}
	for i := 1; i < len(resp.Values); i++ {
		row := resp.Values[i]
		if col <= len(row) && cellString(row[col-1]) == value {
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

func (l *googleLedger) UpdateCell(ctx context.Context, row, col int, value any) error {
	const op = "google.UpdateCell"
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return newError(op, KindMalformed, err)
	}
	vr := &gsheets.ValueRange{Values: [][]any{{value}}}
	_, err = l.store.svc.Spreadsheets.Values.Update(l.store.opts.LedgerSpreadsheetID, quoteSheet(l.sheet)+"!"+cell, vr).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return classify(op, err)
	}
	return nil
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// classify maps a Google client error onto a Kind.
func classify(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return newError(op, KindAuth, err)
		case http.StatusNotFound:
			return newError(op, KindNotFound, err)
		case http.StatusBadRequest:
			return newError(op, KindMalformed, err)
		default:
			return newError(op, KindTransport, err)
		}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return newError(op, KindAuth, err)
	}

	return newError(op, KindTransport, fmt.Errorf("sheets api: %w", err))
}
