package serverutils

import "fmt"

// ErrorKind classifies pipeline failures so the HTTP layer can translate them
// without inspecting message strings.
type ErrorKind string

const (
	KindInvalidInput           ErrorKind = "INVALID_INPUT"
	KindExtractionFailed       ErrorKind = "EXTRACTION_FAILED"
	KindNoBackendAvailable     ErrorKind = "NO_BACKEND_AVAILABLE"
	KindUnexpectedBackendError ErrorKind = "UNEXPECTED_BACKEND_ERROR"
	KindNotFound               ErrorKind = "NOT_FOUND"
	KindInternal               ErrorKind = "INTERNAL"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(kind ErrorKind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func InvalidInput(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

func ExtractionFailed(message string, cause error) *AppError {
	return &AppError{Kind: KindExtractionFailed, Message: message, Cause: cause}
}

func NoBackendAvailable(message string) *AppError {
	return &AppError{Kind: KindNoBackendAvailable, Message: message}
}

func UnexpectedBackendError(message string, cause error) *AppError {
	return &AppError{Kind: KindUnexpectedBackendError, Message: message, Cause: cause}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}
