package ingest

import (
	"regexp"
	"strings"
)

// PartyRef is one parsed (name, role) pair from a free-text party string.
type PartyRef struct {
	Name string
	Role string
}

var (
	partySectionRe = regexp.MustCompile(`[;/]`)
	partyRoleRe    = regexp.MustCompile(`(?i)\((plaintiff|defendant|plaintiffs|defendants|third_party|intervenor|other)\)`)
	parenthesesRe  = regexp.MustCompile(`\([^)]*\)`)
)

// ParseParties parses a free-text party string into ordered (name, role)
// pairs. Sections are separated by ";" or "/"; each section may carry one
// parenthesized role token applying to every name in it. Names without a
// role are tagged "other". Never fails; empty input yields an empty slice.
//
//	"John Smith (plaintiff); Acme Corp, Jane Doe (defendants)"
//	→ [(John Smith, plaintiff), (Acme Corp, defendant), (Jane Doe, defendant)]
func ParseParties(partiesStr string) []PartyRef {
	if partiesStr == "" {
		return nil
	}

	var parties []PartyRef

	for _, section := range partySectionRe.Split(partiesStr, -1) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		role := "other"
		if m := partyRoleRe.FindStringSubmatch(section); m != nil {
			role = strings.ToLower(m[1])
			// Normalize plural forms
			role = strings.TrimSuffix(role, "s")
			// Drop all parenthetical text, role token included
			section = strings.TrimSpace(parenthesesRe.ReplaceAllString(section, ""))
		}

		for _, name := range strings.Split(section, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				parties = append(parties, PartyRef{Name: name, Role: role})
			}
		}
	}

	return parties
}
