package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a transport-level failure that already knows its HTTP status.
// Param names the path or query parameter at fault, if any.
type Error struct {
	Status int
	Code   string
	Param  string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	case e.Status != 0:
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// InvalidParam reports a malformed path or query parameter as 400 invalid_<name>.
func InvalidParam(name, want string) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   "invalid_" + name,
		Param:  name,
		Err:    fmt.Errorf("%s must be %s", name, want),
	}
}

var errBadToken = errors.New("missing or invalid token")

// Unauthorized hides why a credential was rejected.
func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "unauthorized", errBadToken)
}

func Forbidden(err error) *Error {
	return New(http.StatusForbidden, "forbidden", err)
}

// As unwraps err into an *Error when one is present in the chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}
