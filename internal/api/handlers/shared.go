// Package handlers contains the HTTP layer adapters: they parse requests,
// delegate to the service layer, and translate errors into status codes.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// parseJSON decodes a request body into the given type, rejecting unknown
// fields so typos surface as 400s instead of silently dropped data.
func parseJSON[T any](r *http.Request) (T, error) {
	var payload T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid JSON body: %w", err)
	}

	return payload, nil
}
