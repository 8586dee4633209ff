package outline

import "testing"

func TestAccept(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Introduction", true},
		{"  Methods  ", true},
		{"1.2 Background", true},
		{"Ab", false},
		{"  a ", false},
		{"1234", false},
		{"١٢٣٤", false},
		{"References", false},
		{"APPENDIX", false},
		{"  Bibliography ", false},
		{"Contents", false},
		{"figure", false},
		{"Figure 3: Throughput", true},
		{"See https://example.org", false},
		{"http://example.com/page", false},
		{"HTTPS://EXAMPLE.COM", false},
		{"•••", false},
		{"---- * ----", false},
		{"■ ■ ■", false},
		{"Résumé", true},
		{"概要と目的", true},
	}
	opts := DefaultOptions()
	for _, tt := range tests {
		if got := opts.Accept(tt.text); got != tt.want {
			t.Errorf("Accept(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestAccept_CustomDenylist(t *testing.T) {
	opts := DefaultOptions()
	opts.Denylist = []string{"Inhaltsverzeichnis", "STRASSE"}
	if opts.Accept("inhaltsverzeichnis") {
		t.Error("expected case-folded denylist match")
	}
	if opts.Accept("Straße") {
		t.Error("expected full case folding to match ß with SS")
	}
	if !opts.Accept("References") {
		t.Error("expected default denylist to be replaced")
	}
}

func TestAccept_MinTextLength(t *testing.T) {
	opts := DefaultOptions()
	opts.MinTextLength = 6
	if opts.Accept("Short") {
		t.Error("expected 5-rune text rejected at min length 6")
	}
	if !opts.Accept("Longer") {
		t.Error("expected 6-rune text accepted")
	}
}
