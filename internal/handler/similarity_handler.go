package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/documind/documind/internal/pkg/errcode"
	"github.com/documind/documind/internal/pkg/response"
	"github.com/documind/documind/internal/service"
)

type SimilarityHandler struct {
	similarity *service.SimilarityService
}

func NewSimilarityHandler(similarity *service.SimilarityService) *SimilarityHandler {
	return &SimilarityHandler{similarity: similarity}
}

type compareRequest struct {
	DocumentIDA string `json:"document_id_a" binding:"required"`
	DocumentIDB string `json:"document_id_b" binding:"required"`
}

// Compare assesses two stored documents in the order given. Swapping
// the two ids is a different request and may score differently.
func (h *SimilarityHandler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "two document ids are required")
		return
	}
	result, err := h.similarity.Compare(c.Request.Context(), getWorkspaceID(c), req.DocumentIDA, req.DocumentIDB)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
