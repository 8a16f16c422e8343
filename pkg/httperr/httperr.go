package httperr

import (
	"errors"
	"strings"
)

// Message strips the sentinel text that services wrap around a detail, in
// either the "detail: <sentinel>" or the "<sentinel>: detail" form.
func Message(err error, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if sentinel != nil && errors.Is(err, sentinel) {
		if trimmed := strings.TrimSuffix(msg, ": "+sentinel.Error()); trimmed != msg && trimmed != "" {
			return trimmed
		}
		if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg && trimmed != "" {
			return trimmed
		}
	}
	return msg
}
