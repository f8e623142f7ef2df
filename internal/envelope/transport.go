package envelope

import "encoding/json"

// TransportMessage resolves a display message from a transport-level error
// payload, for analyses that failed before any envelope was produced. Some
// callers forward the failed HTTP exchange whole, so the upstream body may
// sit nested under response.data. Chain: error, message, response.data.error,
// response.data.message, then the generic default.
func TransportMessage(raw []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return DefaultFailureMessage
	}
	for _, key := range []string{"error", "message"} {
		if s, ok := stringField(fields[key]); ok && s != "" {
			return s
		}
	}

	var resp struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if respRaw, ok := fields["response"]; ok {
		if err := json.Unmarshal(respRaw, &resp); err == nil {
			for _, key := range []string{"error", "message"} {
				if s, ok := stringField(resp.Data[key]); ok && s != "" {
					return s
				}
			}
		}
	}
	return DefaultFailureMessage
}
