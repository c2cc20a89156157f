package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/documind/documind/internal/model"
	"github.com/documind/documind/internal/pkg/errcode"
	"github.com/documind/documind/internal/pkg/response"
	"github.com/documind/documind/internal/service"
)

type ChatHandler struct {
	chats *service.ChatService
}

func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

type createSessionRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
}

type sessionItem struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Ctime      int64  `json:"ctime"`
}

// CreateSession opens a chat session grounded in one stored document.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "document_id is required")
		return
	}
	session, err := h.chats.CreateSession(c.Request.Context(), getWorkspaceID(c), req.DocumentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, sessionItem{
		ID:         session.ID,
		DocumentID: session.DocumentID,
		Ctime:      session.Ctime,
	})
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	Answer string `json:"answer"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request body")
		return
	}
	answer, err := h.chats.Send(c.Request.Context(), getWorkspaceID(c), c.Param("id"), req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, sendMessageResponse{Answer: answer})
}

type transcriptResponse struct {
	Turns []model.ChatTurn `json:"turns"`
}

func (h *ChatHandler) Transcript(c *gin.Context) {
	turns, err := h.chats.Transcript(getWorkspaceID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, transcriptResponse{Turns: turns})
}

func (h *ChatHandler) CloseSession(c *gin.Context) {
	if err := h.chats.CloseSession(getWorkspaceID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
