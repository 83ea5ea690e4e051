package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed: %s: %s", e.Provider, e.Status, e.Body)
}

// IsPaymentRequired reports whether err signals an exhausted account balance,
// either as an HTTP 402 from the provider or as a message mentioning it.
func IsPaymentRequired(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusPaymentRequired {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "402") || strings.Contains(msg, "credits")
}
