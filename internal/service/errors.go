package service

import (
	"errors"
	"strings"
)

// ErrCode classifies errors callers can act on
type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrInvalidInput ErrCode = "INVALID_INPUT"
	ErrUnavailable  ErrCode = "UNAVAILABLE"
	ErrConflict     ErrCode = "DATE_CONFLICT"
	ErrPastDate     ErrCode = "PAST_DATE"
)

// Error is a client-facing failure with a code. Dates lists the booked days
// behind an ErrConflict.
type Error struct {
	Code    ErrCode
	Message string
	Dates   []string
}

func (e *Error) Error() string {
	if len(e.Dates) > 0 {
		return e.Message + ": " + strings.Join(e.Dates, ", ")
	}
	return e.Message
}

func newErr(code ErrCode, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Code extracts the error code, or "" for errors that are not client faults
func Code(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
