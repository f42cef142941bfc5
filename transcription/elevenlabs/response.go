package elevenlabs

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/scribeproxy/errors"
)

// MapResponse turns an upstream status and body into either the verbatim
// JSON result or an upstream AppError carrying the upstream status.
//
// For failures the message is taken from detail.message, message or
// error.message, in that order, falling back to "API Error: <status>
// <statusText>". Details are the detail object when present, otherwise the
// whole parsed body. A body that is not JSON becomes the message itself.
func MapResponse(status int, statusText string, body []byte) (json.RawMessage, error) {
	if status >= 200 && status < 300 {
		if !json.Valid(body) {
			var v any
			err := json.Unmarshal(body, &v)
			return nil, errors.Internal(fmt.Errorf("parse upstream response: %w", err))
		}
		return json.RawMessage(body), nil
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		text := string(body)
		if text == "" {
			text = fmt.Sprintf("HTTP %d: %s", status, statusText)
		}
		data = map[string]any{"message": text}
	}

	obj, _ := data.(map[string]any)
	message := firstMessage(
		nestedString(obj, "detail", "message"),
		stringField(obj, "message"),
		nestedString(obj, "error", "message"),
	)
	if message == "" {
		message = fmt.Sprintf("API Error: %d %s", status, statusText)
	}

	var details any = data
	if d, ok := obj["detail"]; ok && truthy(d) {
		details = d
	}
	return nil, errors.Upstream(status, message, details)
}

func firstMessage(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func nestedString(obj map[string]any, outer, key string) string {
	inner, _ := obj[outer].(map[string]any)
	return stringField(inner, key)
}

// truthy mirrors how loosely typed JSON consumers treat a present value.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	}
	return true
}
