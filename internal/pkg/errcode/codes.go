package errcode

const (
	ErrUnknown = 20000000 + iota
	ErrUnauthorized
	ErrForbidden
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrTooMany
	ErrInternal
	ErrInvalidFile
	ErrFileTooLarge
	ErrUploadFailed
	ErrAIUnavailable
	ErrModelNetwork
	ErrModelEmptyResponse
	ErrModelSchemaViolation
	ErrChatTurnFailed
	ErrSessionClosed
	ErrSessionBusy
)
