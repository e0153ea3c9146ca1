package utils

import (
	"net/http"

	"dashmart/globals"
)

// GetSessionIDFromRequest returns the shopper session set by middleware.Session,
// falling back to the header and finally the default session.
func GetSessionIDFromRequest(r *http.Request) string {
	if id, ok := r.Context().Value(globals.SessionIDKey).(string); ok && id != "" {
		return id
	}
	if id := r.Header.Get(globals.SessionHeader); id != "" {
		return id
	}
	return globals.DefaultSession
}
