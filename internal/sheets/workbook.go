package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"inventario-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// WorkbookStore keeps the catalog and the ledger in a local .xlsx file.
// The file is reopened on every call; the mutex only serializes access to the file itself.
type WorkbookStore struct {
	path         string
	catalogSheet string // boşsa ilk sayfa
	ledgerSheet  string

	mu sync.Mutex
}

func NewWorkbookStore(path, catalogSheet, ledgerSheet string) *WorkbookStore {
	return &WorkbookStore{
		path:         path,
		catalogSheet: catalogSheet,
		ledgerSheet:  ledgerSheet,
	}
}

func (s *WorkbookStore) FetchAll(ctx context.Context) ([]Row, error) {
	const op = "workbook.FetchAll"
	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindTransport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(op)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := s.catalogSheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return []Row{}, nil
		}
		sheet = list[0]
	}
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		return nil, newError(op, KindNotFound, fmt.Errorf("sheet %q", sheet))
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, newError(op, KindMalformed, err)
	}

	values := make([][]any, len(raw))
	for r, cells := range raw {
		values[r] = make([]any, len(cells))
		for c, cell := range cells {
			values[r][c] = typedCell(f, sheet, c+1, r+1, cell)
		}
	}
	return rowsToRecords(values), nil
}

func (s *WorkbookStore) OpenLedger(ctx context.Context) (Ledger, error) {
	const op = "workbook.OpenLedger"
	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindTransport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		// dosya yoksa ilk kayıtta oluşturulur
		f = excelize.NewFile()
		if err := s.createLedgerSheet(f); err != nil {
			f.Close()
			return nil, newError(op, KindTransport, err)
		}
		if err := f.SaveAs(s.path); err != nil {
			f.Close()
			return nil, newError(op, KindTransport, err)
		}
		f.Close()
		return &workbookLedger{store: s}, nil
	}
	if err != nil {
		return nil, newError(op, KindMalformed, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(s.ledgerSheet); idx != -1 {
		return &workbookLedger{store: s}, nil
	}
	if err := s.createLedgerSheet(f); err != nil {
		return nil, newError(op, KindTransport, err)
	}
	if err := f.Save(); err != nil {
		return nil, newError(op, KindTransport, err)
	}
	return &workbookLedger{store: s}, nil
}

func (s *WorkbookStore) createLedgerSheet(f *excelize.File) error {
	if _, err := f.NewSheet(s.ledgerSheet); err != nil {
		return err
	}
	header := make([]any, len(models.LedgerHeader))
	for i, h := range models.LedgerHeader {
		header[i] = h
	}
	return f.SetSheetRow(s.ledgerSheet, "A1", &header)
}

func (s *WorkbookStore) open(op string) (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newError(op, KindNotFound, err)
	}
	if err != nil {
		return nil, newError(op, KindMalformed, err)
	}
	return f, nil
}

type workbookLedger struct {
	store *WorkbookStore
}

func (l *workbookLedger) AppendRow(ctx context.Context, values []any) error {
	const op = "workbook.AppendRow"
	if err := ctx.Err(); err != nil {
		return newError(op, KindTransport, err)
	}

	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(op)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(s.ledgerSheet)
	if err != nil {
		return newError(op, KindNotFound, err)
	}

	typed := make([]any, len(values))
	for i, v := range values {
		typed[i] = userEntered(v)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return newError(op, KindMalformed, err)
	}
	if err := f.SetSheetRow(s.ledgerSheet, cell, &typed); err != nil {
		return newError(op, KindTransport, err)
	}
	if err := f.Save(); err != nil {
		return newError(op, KindTransport, err)
	}
	return nil
}

func (l *workbookLedger) FindRow(ctx context.Context, col int, value string) (int, error) {
	const op = "workbook.FindRow"
	if err := ctx.Err(); err != nil {
		return 0, newError(op, KindTransport, err)
	}

	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(op)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := f.GetRows(s.ledgerSheet)
	if err != nil {
		return 0, newError(op, KindNotFound, err)
	}
	for i := 1; i < len(rows); i++ {
		if col <= len(rows[i]) && rows[i][col-1] == value {
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

func (l *workbookLedger) UpdateCell(ctx context.Context, row, col int, value any) error {
	const op = "workbook.UpdateCell"
	if err := ctx.Err(); err != nil {
		return newError(op, KindTransport, err)
	}

	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(op)
	if err != nil {
		return err
	}
	defer f.Close()

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return newError(op, KindMalformed, err)
	}
	if err := f.SetCellValue(s.ledgerSheet, cell, userEntered(value)); err != nil {
		return newError(op, KindTransport, err)
	}
	if err := f.Save(); err != nil {
		return newError(op, KindTransport, err)
	}
	return nil
}

var numericText = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// userEntered types numeric-looking text as a number, the way a person typing into the sheet would get.
func userEntered(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	t := strings.TrimSpace(s)
	if !numericText.MatchString(t) {
		return s
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return s
	}
	return n
}

// typedCell returns numbers for numeric cells and the raw text for everything else.
func typedCell(f *excelize.File, sheet string, col, row int, raw string) any {
	if raw == "" {
		return ""
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	ct, err := f.GetCellType(sheet, name)
	if err != nil {
		return raw
	}
	if ct != excelize.CellTypeUnset && ct != excelize.CellTypeNumber {
		return raw
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
