package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that the key is absent in the registry store. Expected during fan-out.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrConnect means that a connection to a remote server could not be established.
	ErrConnect = "connect_error"
	// ErrProtocol means that a remote server answered with a malformed or incomplete response.
	ErrProtocol = "protocol_error"
	// ErrServerUnreachable is the caller-facing code for any probe failure.
	ErrServerUnreachable = "server_unreachable"
)

// CrawlerError represents an error within the context of the crawler services.
type CrawlerError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewCrawlerError creates a new CrawlerError.
func NewCrawlerError(code string, message string, inner error) *CrawlerError {
	return &CrawlerError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *CrawlerError {
	if coded := ToCrawlerError(inner); coded != nil {
		return coded
	}
	return NewCrawlerError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *CrawlerError {
	if coded := ToCrawlerError(inner); coded != nil {
		return coded
	}
	return NewCrawlerError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *CrawlerError {
	if coded := ToCrawlerError(inner); coded != nil {
		return coded
	}
	return NewCrawlerError(ErrBadParameter, message, inner)
}

// NewConnectError wraps a dial, handshake-transport or timeout failure.
func NewConnectError(message string, inner error) *CrawlerError {
	if coded := ToCrawlerError(inner); coded != nil {
		return coded
	}
	return NewCrawlerError(ErrConnect, message, inner)
}

// NewProtocolError wraps a malformed, missing or error response.
func NewProtocolError(message string, inner error) *CrawlerError {
	if coded := ToCrawlerError(inner); coded != nil {
		return coded
	}
	return NewCrawlerError(ErrProtocol, message, inner)
}

func (e CrawlerError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e CrawlerError) Unwrap() error {
	return e.Inner
}

// ToCrawlerError returns a pointer to a crawler error, or nil if it is not one.
func ToCrawlerError(err error) *CrawlerError {
	var e *CrawlerError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToCrawlerErrorCode returns the code of the error, if available.
func ToCrawlerErrorCode(err error) string {
	if coded := ToCrawlerError(err); coded != nil {
		return coded.Code
	}
	return ""
}

func IsCrawlerError(err error, code string) bool {
	if coded := ToCrawlerError(err); coded != nil {
		return coded.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsCrawlerError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsCrawlerError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsCrawlerError(err, ErrBadParameter)
}

func IsConnectError(err error) bool {
	return IsCrawlerError(err, ErrConnect)
}

func IsProtocolError(err error) bool {
	return IsCrawlerError(err, ErrProtocol)
}

// IsProbeError reports whether err is a connect or protocol failure of a single remote call.
func IsProbeError(err error) bool {
	return IsConnectError(err) || IsProtocolError(err)
}
