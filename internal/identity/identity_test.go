package identity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Núria", "nuria"},
		{"nuria", "nuria"},
		{"  ANNA SOLER ", "anna soler"},
		{"Logística", "logistica"},
		{"Çubells", "cubells"},
		{"Martí Pagès", "marti pages"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Núria", "nuria") {
		t.Error("accented and plain forms must match")
	}
	if !Equal("ANNA soler", "Anna Soler ") {
		t.Error("case and surrounding spaces must not matter")
	}
	if Equal("Anna Soler", "Anna Solé") {
		t.Error("different names must not match")
	}
}
