package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString converts a json.RawMessage to a string, handling documents
// that carry numbers or booleans where a string is expected. Returns empty
// string for null/empty.
func FlexibleString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return fmt.Sprintf("%d", int64(numVal))
		}
		return fmt.Sprintf("%g", numVal)
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return fmt.Sprintf("%t", boolVal)
	}

	return string(raw)
}

// FlexibleBool converts a json.RawMessage to a bool, accepting booleans,
// "YES"/"NO"-style strings and 0/1 numbers. Returns def for null/empty or
// unrecognized values.
func FlexibleBool(raw json.RawMessage, def bool) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return def
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return boolVal
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		switch strings.ToLower(strings.TrimSpace(strVal)) {
		case "true", "yes", "y", "1":
			return true
		case "false", "no", "n", "0":
			return false
		}
		return def
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return numVal != 0
	}

	return def
}

// FlexibleFloat converts a json.RawMessage to a float64, accepting numbers and
// numeric strings. Returns def for null/empty or unparseable values.
func FlexibleFloat(raw json.RawMessage, def float64) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return def
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return numVal
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(strVal), 64); err == nil {
			return f
		}
	}

	return def
}

// FlexibleInt converts a json.RawMessage to an *int, accepting numbers and
// numeric strings. Returns nil when no integer can be extracted.
func FlexibleInt(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		v := int(numVal)
		return &v
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(strVal)); err == nil {
			return &n
		}
	}

	return nil
}
