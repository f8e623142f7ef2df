package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// missingTokens are the string forms that count as absent after trimming and
// lower-casing.
var missingTokens = map[string]struct{}{
	"n/a":     {},
	"na":      {},
	"none":    {},
	"unknown": {},
	"missing": {},
}

// IsMissing reports whether a field value counts as absent for derivation
// purposes. Nil is missing. Numbers, including zero, never are. Everything
// else is classified by its trimmed, lower-cased string form: empty or one of
// the sentinel tokens means missing.
func IsMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return false
	case *Value:
		if t == nil {
			return true
		}
		return missingText(string(*t))
	case Value:
		return missingText(string(t))
	case string:
		return missingText(t)
	default:
		return missingText(fmt.Sprint(v))
	}
}

func missingText(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return true
	}
	_, ok := missingTokens[s]
	return ok
}
