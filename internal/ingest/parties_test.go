package ingest

import (
	"reflect"
	"testing"
)

func TestParseParties(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []PartyRef
	}{
		{
			name:  "Roles with plural normalization",
			input: "John Smith (plaintiff); Acme Corp, Jane Doe (defendants)",
			want: []PartyRef{
				{Name: "John Smith", Role: "plaintiff"},
				{Name: "Acme Corp", Role: "defendant"},
				{Name: "Jane Doe", Role: "defendant"},
			},
		},
		{
			name:  "Comma-separated single-role sections",
			input: "TechStart Inc (plaintiff); MegaCorp (defendant)",
			want: []PartyRef{
				{Name: "TechStart Inc", Role: "plaintiff"},
				{Name: "MegaCorp", Role: "defendant"},
			},
		},
		{
			name:  "Slash separator",
			input: "Robert Anderson (plaintiff) / HealthPlus Insurance Co. (defendant)",
			want: []PartyRef{
				{Name: "Robert Anderson", Role: "plaintiff"},
				{Name: "HealthPlus Insurance Co.", Role: "defendant"},
			},
		},
		{
			name:  "No role defaults to other",
			input: "John Smith, Jane Doe",
			want: []PartyRef{
				{Name: "John Smith", Role: "other"},
				{Name: "Jane Doe", Role: "other"},
			},
		},
		{
			name:  "Case-insensitive role token",
			input: "John Smith (PLAINTIFF)",
			want: []PartyRef{
				{Name: "John Smith", Role: "plaintiff"},
			},
		},
		{
			name:  "Intervenor and third_party roles",
			input: "State of Ohio (intervenor); Smith LLC (third_party)",
			want: []PartyRef{
				{Name: "State of Ohio", Role: "intervenor"},
				{Name: "Smith LLC", Role: "third_party"},
			},
		},
		{
			name:  "Unknown parenthetical is not a role",
			input: "John Smith (deceased)",
			want: []PartyRef{
				{Name: "John Smith (deceased)", Role: "other"},
			},
		},
		{
			name:  "Empty sections skipped",
			input: ";; John Smith (plaintiff) ;",
			want: []PartyRef{
				{Name: "John Smith", Role: "plaintiff"},
			},
		},
		{
			name:  "Empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseParties(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseParties(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
