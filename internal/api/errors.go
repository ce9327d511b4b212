// errors.go defines the error taxonomy surfaced by the API client.
package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the service rejects the presented
// credential. By the time a caller sees it the stored credential has
// been cleared and the session invalidation hook has fired.
var ErrUnauthorized = errors.New("api: unauthorized")

// RequestError reports any non-authorization remote failure
// (validation, server error, transport). It carries no session-state
// side effect.
type RequestError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d: %s", e.Status, e.Detail)
}
