package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/documind/documind/internal/model"
	"github.com/documind/documind/internal/pkg/errcode"
	"github.com/documind/documind/internal/pkg/response"
	"github.com/documind/documind/internal/service"
)

const defaultListLimit = 100

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type documentItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Ctime     int64  `json:"ctime"`
}

func toDocumentItem(doc *model.Document) documentItem {
	return documentItem{
		ID:        doc.ID,
		Name:      doc.Name,
		MimeType:  doc.MimeType,
		SizeBytes: doc.SizeBytes,
		Ctime:     doc.Ctime,
	}
}

// Upload accepts one multipart file under the "file" field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalid, "missing file field")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, fmt.Sprintf("open upload: %v", err))
		return
	}
	defer file.Close()
	doc, err := h.documents.Upload(c.Request.Context(), getWorkspaceID(c), file, fileHeader.Filename)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toDocumentItem(doc))
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), getWorkspaceID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toDocumentItem(doc))
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	docs, err := h.documents.List(c.Request.Context(), getWorkspaceID(c), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	items := make([]documentItem, 0, len(docs))
	for i := range docs {
		items = append(items, toDocumentItem(&docs[i]))
	}
	response.Success(c, items)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), getWorkspaceID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func parseLimit(raw string) uint {
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || limit == 0 || limit > 1000 {
		return defaultListLimit
	}
	return uint(limit)
}
