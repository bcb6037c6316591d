package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Error is the structured error type used across the service.
//
// It carries:
//   - Status: HTTP status to respond with (0 means unspecified → 500);
//   - Kind: short classification label for telemetry ("errorKind");
//   - Message: human-readable description;
//   - Stack: textual trace captured when the error was constructed;
//   - Cause: wrapped underlying error for errors.Is / errors.As.
type Error struct {
	Status  int
	Kind    string
	Message string
	Stack   string
	Cause   error
}

// Option mutates an Error during construction with E.
type Option func(*Error)

// WithStatus sets the HTTP status the error should produce.
func WithStatus(status int) Option {
	return func(e *Error) { e.Status = status }
}

// WithKind sets the classification label reported as errorKind.
func WithKind(kind string) Option {
	return func(e *Error) { e.Kind = kind }
}

// WithCause attaches the underlying error.
func WithCause(err error) Option {
	return func(e *Error) { e.Cause = err }
}

// E builds an Error and captures the caller's stack.
func E(msg string, opts ...Option) *Error {
	e := &Error{Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	e.Stack = captureStack(msg, 3)
	return e
}

// Wrap builds an Error around a cause, keeping the cause's message.
func Wrap(err error, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	e := &Error{Message: err.Error(), Cause: err}
	for _, opt := range opts {
		opt(e)
	}
	e.Stack = captureStack(e.Message, 3)
	return e
}

// Recovered converts a recovered panic value into an Error whose stack
// starts at the panic site's handler frame.
func Recovered(v any) *Error {
	msg := fmt.Sprintf("panic: %v", v)
	return &Error{
		Message: msg,
		Kind:    "Panic",
		Stack:   captureStack(msg, 3),
	}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Unwrap enables errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// StatusOf extracts the declared HTTP status from err. Errors without a
// declared, valid status map to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 && http.StatusText(e.Status) != "" {
		return e.Status
	}
	return http.StatusInternalServerError
}

// KindOf extracts the classification label from err, defaulting to the
// generic "Error" label.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	return "Error"
}

// TraceOf returns the textual stack captured with err, if any.
func TraceOf(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) && e.Stack != "" {
		return e.Stack, true
	}
	return "", false
}

// captureStack renders the calling goroutine's frames in the
// conventional "at <func> (<file>:<line>:<column>)" trace layout. Go
// does not track columns, so the column is always 0.
func captureStack(msg string, skip int) string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s", msg)
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "\n    at %s (%s:%d:0)", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
