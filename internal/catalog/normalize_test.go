package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Bogotá", "bogota"},
		{"bogota", "bogota"},
		{"  Bogotá   D.C. ", "bogota d.c."},
		{"RIOHACHA", "riohacha"},
		{"Ñame\tcriollo\n", "name criollo"},
		{"Crème Brûlée", "creme brulee"},
		{"otros países", "otros paises"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Bogotá", "  La  Guajira ", "ÁÉÍÓÚ üñ", "Río Hacha", "x"} {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestNormalizeAny(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, ""},
		{"AB-1 ", "ab-1"},
		{1234567.0, "1234567"},
		{12.5, "12.5"},
		{7, "7"},
	}
	for _, tt := range tests {
		if got := NormalizeAny(tt.input); got != tt.want {
			t.Errorf("NormalizeAny(%#v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
