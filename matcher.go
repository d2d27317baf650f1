package main

import (
	"regexp"
	"strings"

	"github.com/gosimple/unidecode"
)

// minContained is the shortest canonical string allowed to count as a
// whole-word substring of the other side. Shorter fragments only match
// through the alias table or exact equality.
const minContained = 3

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	disallowed    = regexp.MustCompile(`[^a-z0-9 ]+`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// aliases maps common short or colloquial forms to the question bank's
// entry for the same country. Keys and values both live in normalized
// space, since lookup happens after normalization.
var aliases = map[string]string{
	"uk":                       "united kingdom",
	"great britain":            "united kingdom",
	"britain":                  "united kingdom",
	"us":                       "united states",
	"usa":                      "united states",
	"america":                  "united states",
	"united states of america": "united states",
	"ivory coast":              "cote divoire",
	"republic of korea":        "south korea",
	"korea republic":           "south korea",
	"dprk":                     "north korea",
	"holland":                  "netherlands",
	"uae":                      "united arab emirates",
	"drc":                      "democratic republic of the congo",
	"dr congo":                 "democratic republic of the congo",
	"congo kinshasa":           "democratic republic of the congo",
	"congo brazzaville":        "republic of the congo",
	"czechia":                  "czech republic",
	"burma":                    "myanmar",
	"swaziland":                "eswatini",
	"cabo verde":               "cape verde",
	"east timor":               "timorleste",
	"timor leste":              "timorleste",
	"guinea bissau":            "guineabissau",
	"vatican":                  "vatican city",
	"holy see":                 "vatican city",
	"macedonia":                "north macedonia",
	"turkiye":                  "turkey",
}

// normalize reduces a country name to a comparison-ready form: lowercase,
// accents folded to ASCII, parenthetical content dropped, a leading "the"
// dropped, everything outside [a-z0-9 ] dropped, whitespace collapsed.
func normalize(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	s = parenthetical.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "the ")
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// canonicalize normalizes s and resolves it through the alias table.
func canonicalize(s string) string {
	n := normalize(s)
	if alias, ok := aliases[n]; ok {
		return alias
	}
	return n
}

// containsWord reports whether needle appears in haystack delimited by
// word boundaries.
func containsWord(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

// isCorrect decides whether a submitted free-text answer names the
// expected country. The two sides are canonicalized identically and match
// if they are equal, or if either appears as a whole-word substring of the
// other and is at least minContained characters long. Pure; no state.
func isCorrect(submitted, expected string) bool {
	sub := canonicalize(submitted)
	exp := canonicalize(expected)

	if sub == "" || exp == "" {
		return false
	}
	if sub == exp {
		return true
	}
	if len(sub) >= minContained && containsWord(exp, sub) {
		return true
	}
	if len(exp) >= minContained && containsWord(sub, exp) {
		return true
	}

	return false
}
