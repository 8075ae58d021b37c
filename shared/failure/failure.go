package failure

import (
	"errors"
	"net/http"
)

// Failure is an error the HTTP layer can show to the caller as is. Code is
// the response status. Domain packages declare their failures as package
// level values so callers can match them with errors.Is.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// BadRequest exposes err's message with a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

// As returns the Failure carried anywhere in err's chain.
func As(err error) (*Failure, bool) {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail, true
	}

	return nil, false
}

// StatusCode is the status err maps to, 500 for anything that is not a Failure.
func StatusCode(err error) int {
	if fail, ok := As(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}
