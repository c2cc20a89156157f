package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/documind/documind/internal/ai"
	"github.com/documind/documind/internal/middleware"
	"github.com/documind/documind/internal/pkg/errcode"
	appErr "github.com/documind/documind/internal/pkg/errors"
	"github.com/documind/documind/internal/pkg/response"
)

func getWorkspaceID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextWorkspaceIDKey)
	workspaceID, _ := value.(string)
	return workspaceID
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrSessionClosed):
		response.Error(c, errcode.ErrSessionClosed, "session closed")
	case errors.Is(err, appErr.ErrSessionBusy):
		response.Error(c, errcode.ErrSessionBusy, "a message is already in flight")
	case errors.Is(err, appErr.ErrFileTooLarge):
		response.Error(c, errcode.ErrFileTooLarge, "file too large")
	case errors.Is(err, appErr.ErrUnsupportedMIME):
		response.Error(c, errcode.ErrInvalidFile, "only images and PDF are accepted")
	case errors.Is(err, appErr.ErrRead):
		response.Error(c, errcode.ErrInvalidFile, "failed to read document")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, ai.ErrUnavailable):
		response.Error(c, errcode.ErrAIUnavailable, "ai not configured")
	// ErrChatTurn wraps the underlying cause, so it is matched before
	// the plain model errors.
	case errors.Is(err, appErr.ErrChatTurn):
		response.Error(c, errcode.ErrChatTurnFailed, "chat turn failed")
	case errors.Is(err, appErr.ErrEmptyResponse):
		response.Error(c, errcode.ErrModelEmptyResponse, "model returned no content")
	case errors.Is(err, appErr.ErrSchemaViolation):
		response.Error(c, errcode.ErrModelSchemaViolation, "model response did not match the expected schema")
	case errors.Is(err, appErr.ErrNetwork):
		response.Error(c, errcode.ErrModelNetwork, "model call failed")
	case errors.Is(err, appErr.ErrTooMany):
		response.Error(c, errcode.ErrTooMany, "too many requests")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
