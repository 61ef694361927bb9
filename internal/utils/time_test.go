package utils

import "testing"

func TestParseTimestamp_Layouts(t *testing.T) {
	for _, in := range []string{
		"2026-03-01T08:30:00Z",
		"2026-03-01 08:30:00",
		"2026-03-01T08:30",
		" 2026-03-01 08:30 ",
	} {
		ts, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if ts.Year() != 2026 || ts.Minute() != 30 {
			t.Fatalf("%q parsed to %v", in, ts)
		}
	}
	if _, err := ParseTimestamp("tomorrow"); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(1250.5); got != "1,250.50" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCurrency(-3); got != "-3.00" {
		t.Fatalf("got %q", got)
	}
}

func TestLooksLikeEmail(t *testing.T) {
	if !LooksLikeEmail("a@b.co") || LooksLikeEmail("nobody") || LooksLikeEmail("a b@c.d") {
		t.Fatalf("unexpected email shape results")
	}
}
