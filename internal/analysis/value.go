package analysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a scalar field captured as the classifier emitted it. Upstream
// payloads are not consistent about types: the same field arrives as a JSON
// number in one response and a quoted string in the next. The literal form is
// kept for display and export; numeric interpretation happens on demand.
type Value string

// UnmarshalJSON accepts strings, numbers, booleans, and null. Non-string
// scalars keep their literal text; null becomes the empty value.
func (v *Value) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	*v = Value(b)
	return nil
}

func (v Value) String() string { return string(v) }

// Float interprets the value as a number. The second return is false for
// empty, non-numeric, and non-finite values.
func (v Value) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// StringList decodes a JSON array whose elements may not all be strings;
// each element contributes its literal form. Anything that is not an array
// degrades to an empty list rather than failing the surrounding decode.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	var vals []Value
	if err := json.Unmarshal(b, &vals); err != nil {
		*l = nil
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	*l = out
	return nil
}
