package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/documind/documind/internal/pkg/response"
	"github.com/documind/documind/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type openWorkspaceRequest struct {
	AccessPassword string `json:"access_password"`
}

type openWorkspaceResponse struct {
	Token string `json:"token"`
}

// OpenWorkspace issues a fresh workspace token. The request body is
// optional unless the instance is password protected.
func (h *AuthHandler) OpenWorkspace(c *gin.Context) {
	var req openWorkspaceRequest
	_ = c.ShouldBindJSON(&req)
	token, err := h.auth.OpenWorkspace(req.AccessPassword)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, openWorkspaceResponse{Token: token})
}
