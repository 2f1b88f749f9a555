// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every API handler sends JSON back to the client. Success responses may
// be any shape (an applicant, a list). Error responses always look like:
//
//	{ "message": "All fields are required." }
package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/orgconnect/internal/validation"
)

// Public error messages. The client shows these to the user verbatim.
const (
	MsgFieldsRequired = "All fields are required."
	MsgInvalidRole    = "Role must be either Intern or Volunteer."
	MsgInvalidBody    = "Invalid request body."
	MsgInternal       = "Internal Server Error"
)

// Response is the envelope returned for error cases.
type Response struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Order matters: Header() → WriteHeader() → body. Once WriteHeader is
// called, headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message wraps a public message into the error envelope.
func Message(msg string) Response {
	return Response{Message: msg}
}

// ValidationError converts validator field errors into one public
// message. A missing field wins over every other failure, so a request
// with an empty name and a bogus role reads "All fields are required.".
func ValidationError(errs validator.ValidationErrors) Response {
	msg := MsgInvalidBody

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			return Message(MsgFieldsRequired)
		case validation.TagRole:
			msg = MsgInvalidRole
		}
	}

	return Message(msg)
}
