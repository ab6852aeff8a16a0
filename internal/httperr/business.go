package httperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindInactive
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		// duplicates are reported as bad input
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInactive, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func newErr(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

// ErrBusiness is a validation failure identified only by its code.
func ErrBusiness(code string) error {
	return newErr(KindValidation, code, "")
}

func ErrValidation(code, message string) error   { return newErr(KindValidation, code, message) }
func ErrUnauthorized(code, message string) error { return newErr(KindUnauthorized, code, message) }
func ErrInactive(code, message string) error     { return newErr(KindInactive, code, message) }
func ErrForbidden(code, message string) error    { return newErr(KindForbidden, code, message) }
func ErrNotFound(code, message string) error     { return newErr(KindNotFound, code, message) }
func ErrConflict(code, message string) error     { return newErr(KindConflict, code, message) }
func ErrUnavailable(code, message string) error  { return newErr(KindUnavailable, code, message) }

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns 0 for errors that are not business errors.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}
