package catalog

import "errors"

// ErrorKind classifies failures of the read API.
type ErrorKind int

const (
	// KindService is an unexpected store or query failure.
	KindService ErrorKind = iota
	// KindNotFound means the requested id has no matching row.
	KindNotFound
	// KindValidation means the request identifier is malformed.
	KindValidation
)

// Error is returned by every Service operation. Message is safe to show to
// callers; Err carries the underlying cause and must only be logged.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFoundError 资源不存在
func NotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// ValidationError 请求参数错误
func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ServiceError wraps an unexpected failure behind a generic message.
func ServiceError(msg string, err error) *Error {
	return &Error{Kind: KindService, Message: msg, Err: err}
}

// KindOf returns the kind of err, treating any foreign error as KindService.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindService
}
