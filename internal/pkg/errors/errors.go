package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrTooMany      = errors.New("too many requests")
	ErrInternal     = errors.New("internal")

	// Document pipeline errors.
	ErrRead            = errors.New("document read failed")
	ErrUnsupportedMIME = errors.New("unsupported content type")
	ErrFileTooLarge    = errors.New("file too large")

	// Model call errors. The caller is expected to distinguish these;
	// none of them is retried below the handler layer.
	ErrNetwork         = errors.New("model transport failed")
	ErrEmptyResponse   = errors.New("empty model response")
	ErrSchemaViolation = errors.New("model response violates schema")

	// Chat session errors.
	ErrChatTurn      = errors.New("chat turn failed")
	ErrSessionClosed = errors.New("session closed")
	ErrSessionBusy   = errors.New("session busy")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsSchemaViolation(err error) bool {
	return errors.Is(err, ErrSchemaViolation)
}
