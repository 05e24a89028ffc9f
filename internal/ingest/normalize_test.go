package ingest

import "testing"

func TestNormalizeCourt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Dotted abbreviation", "S.D.N.Y.", "SDNY"},
		{"Dotted without trailing period", "S.D.N.Y", "SDNY"},
		{"Spaces and periods", "N.D. Cal.", "NDCAL"},
		{"Already clean", "SDNY", "SDNY"},
		{"Lowercase input", "s.d.n.y.", "SDNY"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCourt(tt.raw); got != tt.want {
				t.Errorf("NormalizeCourt(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeJudge(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Hon prefix", "Hon. Maria Rodriguez", "maria rodriguez"},
		{"Judge prefix", "Judge Maria Rodriguez", "maria rodriguez"},
		{"Justice prefix", "Justice Sarah Chen", "sarah chen"},
		{"Hon without period", "Hon Maria Rodriguez", "maria rodriguez"},
		{"No prefix", "Maria Rodriguez", "maria rodriguez"},
		{"Extra whitespace", "  Judge   Sarah   Chen  ", "sarah chen"},
		{"Honorific only", "Hon.", ""},
		{"Honorific only no period", "Judge", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeJudge(tt.raw); got != tt.want {
				t.Errorf("NormalizeJudge(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeJudgeVariantsCollapse(t *testing.T) {
	a := NormalizeJudge("Hon. Maria Rodriguez")
	b := NormalizeJudge("Judge Maria Rodriguez")
	if a != b {
		t.Errorf("expected honorific variants to collapse, got %q and %q", a, b)
	}
}

func TestNormalizeParty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Simple", "Acme Corp", "acme corp"},
		{"Extra whitespace", "  Acme   Corp  ", "acme corp"},
		{"Mixed case", "ACME Corp", "acme corp"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeParty(tt.raw); got != tt.want {
				t.Errorf("NormalizeParty(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}

	// Legal-entity suffix variants stay distinct on purpose
	if NormalizeParty("Acme Corp") == NormalizeParty("Acme Corporation") {
		t.Error("Corp and Corporation should not normalize to the same key")
	}
}
