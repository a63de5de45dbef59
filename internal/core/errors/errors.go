// Package errors carries a machine-readable code and position context
// alongside failures from parsing, config loading and file handling.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type ErrorCode string

const (
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeNotSupported    ErrorCode = "NOT_SUPPORTED"
	CodeSyntax          ErrorCode = "SYNTAX_ERROR"
)

// Context keys. Line and column are 1-based.
const (
	CtxPath      = "path"
	CtxOperation = "operation"
	CtxDialect   = "dialect"
	CtxSymbol    = "symbol"
	CtxLine      = "line"
	CtxColumn    = "column"
)

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]any
}

// WithContext sets key on e and returns e for chaining.
func (e *DomainError) WithContext(key string, value any) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error renders "[CODE] message: cause (k=v ...)" with context keys sorted so
// the same failure always prints the same way.
func (e *DomainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Context) == 0 {
		return b.String()
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString(" (")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, e.Context[k])
	}
	b.WriteByte(')')
	return b.String()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg}
}

func Newf(code ErrorCode, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps err as the cause so errors.Is still reaches it.
func Wrap(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// AddContext annotates the nearest DomainError in err's chain. Errors that
// carry no code become INTERNAL_ERROR.
func AddContext(err error, key string, value any) error {
	if de := find(err); de != nil {
		de.WithContext(key, value)
		return err
	}
	return (&DomainError{Code: CodeInternal, Message: "wrapped error", Err: err}).WithContext(key, value)
}

func IsCode(err error, code ErrorCode) bool {
	de := find(err)
	return de != nil && de.Code == code
}

// CodeOf returns "" when err carries no code.
func CodeOf(err error) ErrorCode {
	if de := find(err); de != nil {
		return de.Code
	}
	return ""
}

func find(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
