package crud

import "encoding/json"

// DefaultErrorMessage is stored when a failure carries no usable payload.
const DefaultErrorMessage = "request failed"

// APIError is the normalized backend error payload: either a human-readable
// message ({message} or {detail}) or a field → message validation map.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

// ParseErrorPayload maps a raw error body onto an APIError. Recognized
// shapes: {"message": ...}, {"detail": ...}, or a validation mapping of
// field name → string | [string, ...] where the first array element wins.
// Anything else yields the default message.
func ParseErrorPayload(status int, body []byte) *APIError {
	out := &APIError{Status: status, Message: DefaultErrorMessage}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return out
	}

	if msg, ok := payload["message"].(string); ok && msg != "" {
		out.Message = msg
		return out
	}
	if msg, ok := payload["detail"].(string); ok && msg != "" {
		out.Message = msg
		return out
	}

	fields := make(map[string]string)
	for name, v := range payload {
		switch val := v.(type) {
		case string:
			fields[name] = val
		case []any:
			if len(val) > 0 {
				if s, ok := val[0].(string); ok {
					fields[name] = s
				}
			}
		}
	}
	if len(fields) > 0 {
		out.Fields = fields
		// Keep the default message: field errors are for the form to map.
	}
	return out
}

// errorMessage extracts the displayable message from any error.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	if api, ok := err.(*APIError); ok && api.Message != "" {
		return api.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}
