package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// SearchColumns are the dataset columns a "column:value" query may name.
var SearchColumns = []string{"id", "price", "district", "rooms", "floor", "floors", "area", "type", "cond", "walls"}

// searchVocabularies lists the known values per column, in lookup order.
// They are broader than the request vocabularies because stored rows carry
// legacy labels.
var searchVocabularies = []struct {
	column string
	values []string
}{
	{"district", []string{"primorsky", "malinovsky", "kievsky", "suvorovsky"}},
	{"type", []string{
		"new", "new ", "czech", "special project", "khrushchevka", "guest", "old fund", "kharkiv",
		"moscow", "cellular", "belgian", "stalinka", "jugoslavsky", "a small family",
		"private house", "under construction", "house under construction",
	}},
	{"cond", []string{
		"renovation", "after builders", "after overhaul", "after makeup", "residential clean",
		"need. in cap. renovation", "need. in cosm. renovation", "need. in tech. renovation",
		"author's design", "modern design", "expanded clay-concrete", "building materials",
		"design classic", "house under construction",
	}},
	{"walls", []string{
		"brick", "monolith", "panel", "block-brick", "shell rock", "aerated concrete",
		"foam concrete", "reed, dranka", "blocky", "plastic", "mixed", "concrete",
		"reinforced concrete", "shell brick", "metal-plastic", "metalwork", "wood",
		"silicate brick",
	}},
}

var (
	digitsOnly = regexp.MustCompile(`^[0-9]+$`)
	colonSpace = regexp.MustCompile(`\s*:\s*`)
)

// SearchQuery is a dataset search resolved to one column.
type SearchQuery struct {
	Column string
	Value  string
	// Numeric queries match the column exactly; others match by substring.
	Numeric bool
}

// ParseSearchQuery resolves a free-form search. It accepts "column:value",
// a bare number whose column is guessed from its magnitude, or bare text
// looked up in the vocabularies.
func ParseSearchQuery(query string) (SearchQuery, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return SearchQuery{}, false
	}

	if !strings.Contains(q, ":") {
		if digitsOnly.MatchString(q) {
			return SearchQuery{Column: ColumnForNumber(q), Value: q, Numeric: true}, true
		}
		column, value, ok := ResolveSearchTerm(q, "")
		return SearchQuery{Column: column, Value: value}, ok
	}

	parts := strings.Split(colonSpace.ReplaceAllString(q, ":"), ":")
	if len(parts) != 2 || !isSearchColumn(parts[0]) {
		return SearchQuery{}, false
	}
	if digitsOnly.MatchString(parts[1]) {
		return SearchQuery{Column: parts[0], Value: parts[1], Numeric: true}, true
	}
	column, value, ok := ResolveSearchTerm(parts[1], parts[0])
	return SearchQuery{Column: column, Value: value}, ok
}

// ResolveSearchTerm returns the first vocabulary value containing text, in
// the order districts, types, conditions, walls. A non-empty column is kept
// as the column to search even when the value comes from another list.
//
// Containment is one-way and unanchored, so short terms resolve to the first
// longer value that happens to contain them ("ick" finds "brick"), and
// "walls:kiev" searches walls for "kievsky".
func ResolveSearchTerm(text, column string) (string, string, bool) {
	if text == "" {
		return "", "", false
	}
	for _, vocab := range searchVocabularies {
		for _, v := range vocab.values {
			if !strings.Contains(v, text) {
				continue
			}
			if column == "" {
				column = vocab.column
			}
			return column, v, true
		}
	}
	return "", "", false
}

// ColumnForNumber guesses which column a bare number refers to.
func ColumnForNumber(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "price"
	}
	switch {
	case n > 0 && n < 4:
		return "rooms"
	case n > 3 && n < 10:
		return "floor"
	case n > 9 && n < 26:
		return "floors"
	case n > 25 && n < 200:
		return "area"
	default:
		return "price"
	}
}

func isSearchColumn(column string) bool {
	for _, c := range SearchColumns {
		if c == column {
			return true
		}
	}
	return false
}
