// Package response contains the helpers every handler uses to write HTTP
// responses, so that success and error payloads share one JSON shape.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the JSON body of every non-2xx response. Details is
// optional extra context, such as per-field validation messages.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON body with the given status code. A nil
// data writes only the status, which is what 204 No Content needs. An
// encoding failure is logged; at that point the status line is already out,
// so there is nothing better to send.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes an ErrorResponse with the given status code. The
// message is the user-facing description; details may carry an error string,
// a field map, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
