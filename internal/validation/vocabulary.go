package validation

import (
	"strings"

	"estimator/internal/model"
)

// Allowed values per categorical column, lower-cased.
var vocabularies = map[string][]string{
	model.ColumnDistrict: {"primorsky", "malinovsky", "kievsky", "suvorovsky"},
	model.ColumnType: {
		"new", "czech", "special project", "khrushchevka", "guest", "old fund", "kharkiv",
		"moscow", "cellular", "belgian", "stalinka", "jugoslavsky", "a small family",
		"private house", "under construction",
	},
	model.ColumnCond: {
		"renovation", "after builders", "after overhaul", "after makeup", "residential clean",
		"need. in cap. renovation", "need. in cosm. renovation", "need. in tech. renovation",
		"author's design", "modern design", "expanded clay-concrete",
	},
	model.ColumnWalls: {
		"brick", "monolith", "panel", "block-brick", "shell rock", "aerated concrete",
		"foam concrete", "reed, dranka",
	},
}

// Allowed reports whether value is in the vocabulary of column, ignoring case.
func Allowed(column, value string) bool {
	v := strings.ToLower(value)
	for _, allowed := range vocabularies[column] {
		if v == allowed {
			return true
		}
	}
	return false
}

// Vocabulary returns a copy of the allowed values of column.
func Vocabulary(column string) []string {
	return append([]string(nil), vocabularies[column]...)
}
