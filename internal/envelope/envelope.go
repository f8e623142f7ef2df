package envelope

import "encoding/json"

// Shape tags the wire envelope a result arrived in. Upstream document kinds
// disagree about wrapping: some flag success explicitly, some split the risk
// assessment from the extraction, and the oldest ones return the result bare.
type Shape string

const (
	// ShapeFlagged is {success: bool, data?, error?, message?}.
	ShapeFlagged Shape = "flagged"
	// ShapeSplit is {data: {...}, risk_assessment: {...}} with no success flag.
	ShapeSplit Shape = "split"
	// ShapeBare is a response whose body is the canonical result itself.
	ShapeBare Shape = "bare"
)

const (
	// DefaultFailureMessage stands in when a failure envelope carries no
	// usable message of its own.
	DefaultFailureMessage = "Analysis failed. Please try again."

	// UnexpectedFormatMessage reports a payload no known shape matches.
	UnexpectedFormatMessage = "Unexpected response format from analysis service."
)

// FailureError is the failure outcome of envelope parsing: the classifier
// reported an error, or the payload was unusable. Message is always set.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string {
	return "analysis failed: " + e.Message
}

// Envelope is the success outcome: the detected shape plus the canonical
// result object extracted from it.
type Envelope struct {
	Shape  Shape
	Result json.RawMessage
}

// Parse classifies a raw classifier response and extracts the canonical
// result. Exactly one outcome is produced: an Envelope on success, or a
// *FailureError carrying a display-ready message. No other error type is
// returned.
func Parse(raw []byte) (*Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, &FailureError{Message: UnexpectedFormatMessage}
	}

	switch detectShape(fields) {
	case ShapeFlagged:
		return parseFlagged(raw, fields)
	case ShapeSplit:
		return parseSplit(raw, fields)
	default:
		return &Envelope{Shape: ShapeBare, Result: raw}, nil
	}
}

// detectShape resolves which variant a response object is, by key presence
// alone. Flagged wins over split when both marker sets appear.
func detectShape(fields map[string]json.RawMessage) Shape {
	if _, ok := fields["success"]; ok {
		return ShapeFlagged
	}
	_, hasData := fields["data"]
	_, hasRisk := fields["risk_assessment"]
	if hasData && hasRisk {
		return ShapeSplit
	}
	return ShapeBare
}

func parseFlagged(raw []byte, fields map[string]json.RawMessage) (*Envelope, error) {
	var ok bool
	if err := json.Unmarshal(fields["success"], &ok); err != nil {
		// A non-boolean success key is not the flagged contract; fall back to
		// treating the whole object as the result.
		return &Envelope{Shape: ShapeBare, Result: raw}, nil
	}
	if !ok {
		return nil, &FailureError{Message: failureMessage(fields)}
	}
	if data, present := fields["data"]; present && isObject(data) {
		return &Envelope{Shape: ShapeFlagged, Result: data}, nil
	}
	return &Envelope{Shape: ShapeBare, Result: raw}, nil
}

func parseSplit(raw []byte, fields map[string]json.RawMessage) (*Envelope, error) {
	data := fields["data"]
	if !isObject(data) {
		return &Envelope{Shape: ShapeBare, Result: raw}, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return &Envelope{Shape: ShapeBare, Result: raw}, nil
	}
	merged["risk_assessment"] = fields["risk_assessment"]
	result, err := json.Marshal(merged)
	if err != nil {
		return nil, &FailureError{Message: UnexpectedFormatMessage}
	}
	return &Envelope{Shape: ShapeSplit, Result: result}, nil
}

// failureMessage resolves a failure envelope's display message: error, then
// message, then the generic default. Only non-empty strings count.
func failureMessage(fields map[string]json.RawMessage) string {
	for _, key := range []string{"error", "message"} {
		if s, ok := stringField(fields[key]); ok && s != "" {
			return s
		}
	}
	return DefaultFailureMessage
}

func stringField(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isObject(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return c == '{'
		}
	}
	return false
}
