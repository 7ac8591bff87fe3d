package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only spaces", "    ", ""},
		{"leading and trailing", "  Kreta  ", "Kreta"},
		{"internal run", "Zakopane   centrum", "Zakopane centrum"},
		{"tabs and newlines", "Rzym\t\nWłochy", "Rzym Włochy"},
		{"already clean", "Kreta", "Kreta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	input := "  Morskie   Oko  "
	once := TrimAndNormalize(input)
	twice := TrimAndNormalize(once)
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeDestination(t *testing.T) {
	if got := NormalizeDestination("  KRETA "); got != "kreta" {
		t.Errorf("expected %q, got %q", "kreta", got)
	}
}

func TestEscapeRegex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kreta", "kreta"},
		{"(a+)+b", `\(a\+\)\+b`},
		{"a.b", `a\.b`},
		{"[x]$", `\[x\]\$`},
	}

	for _, tt := range tests {
		if got := EscapeRegex(tt.input); got != tt.want {
			t.Errorf("EscapeRegex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeRegex_Idempotent(t *testing.T) {
	// Escaping an already escaped string escapes the backslashes
	// again, so idempotency does not hold here and callers must only
	// escape once. This test documents the single-pass contract.
	once := EscapeRegex("a.b")
	if once != `a\.b` {
		t.Fatalf("unexpected single escape: %q", once)
	}
}
