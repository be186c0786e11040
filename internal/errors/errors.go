// Package errors defines the typed failures surfaced by the wallet core.
package errors

import (
	stderrors "errors"
	"fmt"
)

// DomainError is a typed failure. Two DomainErrors match under errors.Is when
// their codes are equal, so detailed messages still compare against sentinels.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func Newf(code, format string, args ...interface{}) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected store or runtime failure. The cause is kept
// for logging but never becomes part of the message.
func Internal(err error) *DomainError {
	return &DomainError{Code: CodeInternalFailure, Message: "internal failure", Err: err}
}

// AsDomain extracts the DomainError from err, if any.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or CodeInternalFailure.
func CodeOf(err error) string {
	if de, ok := AsDomain(err); ok {
		return de.Code
	}
	return CodeInternalFailure
}
