package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgInternalError = "Internal Server Error"
	MsgInvalidInput  = "invalid input"
	MsgTokenMissing  = "missing token"
	MsgTokenInvalid  = "invalid token"
	MsgFileTooLarge  = "File too large"
	MsgRouteNotFound = "Route not found"
)

// Error is a classified failure that maps directly onto an HTTP response.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(status int, message string, err error) *Error {
	return &Error{StatusCode: status, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message, nil)
}

// Conflict reports a uniqueness or precondition violation. The API reports these as 400.
func Conflict(message string) *Error {
	return NewError(http.StatusBadRequest, message, nil)
}

func BadRequest(message string, err error) *Error {
	return NewError(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *Error {
	return NewError(http.StatusUnauthorized, message, err)
}

func TooLarge(message string) *Error {
	return NewError(http.StatusRequestEntityTooLarge, message, nil)
}

// Internal hides err behind the generic message.
func Internal(err error) *Error {
	return NewError(http.StatusInternalServerError, MsgInternalError, err)
}

// StatusOf returns the HTTP status err maps to; unclassified errors are 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// Invalid turns a binding error into a 400, naming the fields that failed validation.
func Invalid(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest(MsgInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return BadRequest(MsgInvalidInput+": "+strings.Join(msgs, ", "), err)
}
