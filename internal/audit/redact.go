package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RedactionMarker replaces the value of every sensitive key.
const RedactionMarker = "***hidden***"

// sensitiveKeys is a denylist: any key not listed here is logged verbatim.
var sensitiveKeys = map[string]struct{}{
	"password":        {},
	"hashed_password": {},
}

// IsSensitiveKey reports whether values under key are redacted.
func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[key]
	return ok
}

// Redact returns a deep copy of a JSON-like value with every sensitive key,
// at any depth, replaced by RedactionMarker. The input is never modified.
func Redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitiveKey(k) {
				out[k] = RedactionMarker
				continue
			}
			out[k] = Redact(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Redact(val)
		}
		return out
	default:
		return v
	}
}

// Normalize converts an arbitrary Go value into its JSON-like form
// (nil, bool, json.Number, string, []any, map[string]any) so that struct
// tags decide key names before redaction. Typed nil pointers become nil.
func Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal change value: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode change value: %w", err)
	}
	return out, nil
}
