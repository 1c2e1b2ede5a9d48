package sheets

import (
	"errors"
	"fmt"
	"testing"
)

func TestRowsToRecords(t *testing.T) {
	values := [][]any{
		{"Producto", "Codigo", "", "Precio_Venta"},
		{"Aceite", "A-1", "ignored", 15000.0},
		{},
		{"  ", ""},
		{"Jabón", "J-2"},
	}

	rows := rowsToRecords(values)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	if rows[0]["Producto"] != "Aceite" || rows[0]["Precio_Venta"] != 15000.0 {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if _, ok := rows[0][""]; ok {
		t.Errorf("empty header must not become a key")
	}
	if rows[1]["Precio_Venta"] != "" {
		t.Errorf("missing trailing cell should read as empty string, got %#v", rows[1]["Precio_Venta"])
	}
}

func TestRowsToRecordsEmpty(t *testing.T) {
	if got := rowsToRecords(nil); len(got) != 0 {
		t.Fatalf("expected no rows, got %v", got)
	}
	if got := rowsToRecords([][]any{{"Producto"}}); len(got) != 0 {
		t.Fatalf("header only should give no rows, got %v", got)
	}
}

func TestErrorKinds(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", newError("op", KindAuth, base))

	if !errors.Is(err, ErrAuth) {
		t.Errorf("expected ErrAuth to match")
	}
	if errors.Is(err, ErrTransport) {
		t.Errorf("ErrTransport must not match an auth error")
	}
	if !errors.Is(err, base) {
		t.Errorf("expected the cause to stay reachable")
	}

	var serr *Error
	if !errors.As(err, &serr) || serr.Op != "op" {
		t.Errorf("expected *Error with op, got %v", serr)
	}
}

func TestUserEntered(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{"50000", 50000.0},
		{" 12.5 ", 12.5},
		{"-3", -3.0},
		{"P1", "P1"},
		{"NaN", "NaN"},
		{"1e5", "1e5"},
		{"", ""},
		{42, 42},
	}
	for _, tt := range tests {
		if got := userEntered(tt.in); got != tt.want {
			t.Errorf("userEntered(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
