package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimal = regexp.MustCompile(`^[0-9]+(\.[0-9]*)?$`)

// CoerceInt reads a request field as an integer. Digit strings are parsed,
// any other string becomes 0 so that range validation reports it. Missing
// values and fractional numbers are errors.
func CoerceInt(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("value is missing")
	case string:
		s := strings.TrimSpace(x)
		if !digitsOnly.MatchString(s) {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("value %q out of range", s)
		}
		return n, nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("value %v is not an integer", x)
		}
		return int(x), nil
	case int:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", x)
		}
		return CoerceInt(f)
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

// CoerceFloat reads a request field as a decimal number, with the same
// leniency as CoerceInt.
func CoerceFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("value is missing")
	case string:
		s := strings.TrimSpace(x)
		if !decimal.MatchString(s) {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("value %v is not finite", x)
		}
		return x, nil
	case int:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", x)
		}
		return CoerceFloat(f)
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

// CoerceString reads a request field as text. Missing values are errors.
func CoerceString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", fmt.Errorf("value is missing")
	case string:
		return x, nil
	case float64, int, json.Number:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
