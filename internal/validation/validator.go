package validation

import (
	"fmt"
	"regexp"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"

	"estimator/internal/model"
)

const (
	MsgFloorOrder      = "Invalid value: total floors cannot be less than current floor"
	MsgSuspiciousCode  = "Illegal characters or suspicious code detected!"
	MsgNonLatinDetails = "Description must contain only English (Latin) letters and allowed symbols!"
)

var (
	suspicious = regexp.MustCompile(`(?is)` +
		`<\s*script.*?>` +
		`|eval\s*\(` +
		`|alert\s*\(` +
		`|onerror\s*=` +
		`|onload\s*=` +
		`|\{.*?\}` +
		`|<[a-zA-Z]+\s*>` +
		`|(SELECT|DROP|INSERT|DELETE|UPDATE|ALTER|CREATE|EXEC|UNION|OR\s+1=1)` +
		`|--` +
		`|;` +
		`|/\*.*?\*/`)

	quotedLatin = regexp.MustCompile(`"[A-Za-z\s]+"`)
	latinOnly   = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?+()\-"'%]+$`)
)

// InvalidValue is the message reported for a field outside its vocabulary or range.
func InvalidValue(field string) string {
	return fmt.Sprintf("Invalid value for field: %s", field)
}

// Validate checks a request against the categorical vocabularies and the
// live numeric ranges. Every problem is reported; nil means the request is valid.
func Validate(in model.PropertyRecord, r model.Ranges) []model.FieldError {
	var errs []model.FieldError
	add := func(field, msg string) {
		errs = append(errs, model.FieldError{Field: field, Error: msg})
	}

	for _, col := range model.CategoricalColumns {
		if !Allowed(col, in.Categorical(col)) {
			add(col, InvalidValue(col))
		}
	}

	if !within(float64(in.Rooms), r.Rooms.Min, r.Rooms.Max) {
		add("rooms", InvalidValue("rooms"))
	}
	if !within(float64(in.Floor), r.Floor.Min, r.Floor.Max) {
		add("floor", InvalidValue("floor"))
	}
	if !within(float64(in.Floors), r.Floors.Min, r.Floors.Max) {
		add("floors", InvalidValue("floors"))
	}
	if in.Floors < in.Floor {
		add("floors", MsgFloorOrder)
	}
	if !within(in.Area, r.Area.Min+model.AreaMargin, r.Area.Max) {
		add("area", InvalidValue("area"))
	}

	if in.Description != nil && *in.Description != "" {
		desc := *in.Description
		if Suspicious(desc) {
			add("desc", MsgSuspiciousCode)
		}
		if !latinOnly.MatchString(desc) {
			add("desc", MsgNonLatinDetails)
		}
	}

	return errs
}

// Suspicious reports whether text carries script, template or SQL fragments.
// Double-quoted Latin phrases are exempt, so `near "Union Square"` passes.
func Suspicious(text string) bool {
	unquoted := quotedLatin.ReplaceAllString(text, " ")
	if suspicious.MatchString(unquoted) {
		return true
	}
	// libinjection parses plain words as attribute names, so it only sees
	// text that carries markup.
	return strings.ContainsAny(unquoted, "<>=`") && libinjection.IsXSS(unquoted)
}

func within(v, min, max float64) bool {
	return v >= min && v <= max
}
