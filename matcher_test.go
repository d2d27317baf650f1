package main

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"France", "france"},
		{"  Côte d'Ivoire ", "cote divoire"},
		{"The Gambia", "gambia"},
		{"Myanmar (Burma)", "myanmar"},
		{"Timor-Leste", "timorleste"},
		{"GUINEA-BISSAU", "guineabissau"},
		{"São Tomé and Príncipe", "sao tome and principe"},
		{"  united   states  ", "united states"},
		{"", ""},
		{"   ", ""},
		{"()", ""},
	}

	for _, tc := range tests {
		if got := normalize(tc.in); got != tc.want {
			t.Errorf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalizeAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UK", "united kingdom"},
		{"The UK", "united kingdom"},
		{"U.S.A.", "united states"},
		{"Ivory Coast", "cote divoire"},
		{"Republic of Korea", "south korea"},
		{"Holland", "netherlands"},
		{"East Timor", "timorleste"},
		// No alias: the normalized form is already canonical.
		{"Deutschland", "deutschland"},
		{"France", "france"},
	}

	for _, tc := range tests {
		if got := canonicalize(tc.in); got != tc.want {
			t.Errorf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Every alias must resolve to the normalized form of an actual question
// bank entry, or answers routed through it could never match anything.
func TestAliasTargetsExistInBank(t *testing.T) {
	bank := make(map[string]bool, len(countries))
	for _, c := range countries {
		bank[normalize(c.Name)] = true
	}

	for from, to := range aliases {
		if !bank[to] {
			t.Errorf("alias %q -> %q does not resolve to a bank entry", from, to)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		expected  string
		want      bool
	}{
		{"exact", "France", "France", true},
		{"case and whitespace", "  fRaNcE ", "France", true},
		{"diacritic variant", "Côte d'Ivoire", "Cote d'Ivoire", true},
		{"alias uk", "UK", "United Kingdom", true},
		{"alias ivory coast", "ivory coast", "Cote d'Ivoire", true},
		{"alias usa", "USA", "United States", true},
		{"alias us short", "US", "United States", true},
		{"unlisted synonym stays wrong", "Deutschland", "Germany", false},
		{"leading the", "The Gambia", "Gambia", true},
		{"parenthetical dropped", "Myanmar (Burma)", "Myanmar", true},
		{"whole word of longer name", "Kingdom", "United Kingdom", true},
		{"word boundary respected", "King", "United Kingdom", false},
		{"two letter fragment without alias", "de", "Germany", false},
		{"unrelated", "Spain", "Portugal", false},
		{"empty submitted", "", "France", false},
		{"empty expected", "France", "", false},
		{"whitespace only", "   ", "France", false},
		{"symbols only", "?!", "France", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isCorrect(tc.submitted, tc.expected); got != tc.want {
				t.Errorf("isCorrect(%q, %q) = %v, want %v", tc.submitted, tc.expected, got, tc.want)
			}
		})
	}
}

// The whole-word containment rule is a deliberate approximation. These
// cases document its behavior for countries whose names overlap; they are
// not bugs to fix without changing the matching rule itself.
func TestIsCorrectKnownApproximations(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		expected  string
		want      bool
	}{
		{"sudan counts for south sudan", "Sudan", "South Sudan", true},
		{"korea counts for south korea", "Korea", "South Korea", true},
		{"korea counts for north korea too", "Korea", "North Korea", true},
		{"niger does not reach nigeria", "Niger", "Nigeria", false},
		{"dominica does not reach dominican republic", "Dominica", "Dominican Republic", false},
		{"guinea counts for equatorial guinea", "Guinea", "Equatorial Guinea", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isCorrect(tc.submitted, tc.expected); got != tc.want {
				t.Errorf("isCorrect(%q, %q) = %v, want %v", tc.submitted, tc.expected, got, tc.want)
			}
		})
	}
}
