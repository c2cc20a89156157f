package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/documind/documind/internal/model"
	"github.com/documind/documind/internal/pkg/errcode"
	"github.com/documind/documind/internal/pkg/response"
	"github.com/documind/documind/internal/service"
)

type AnalysisHandler struct {
	analyses  *service.AnalysisService
	documents *service.DocumentService
	reports   *service.ReportService
}

func NewAnalysisHandler(analyses *service.AnalysisService, documents *service.DocumentService, reports *service.ReportService) *AnalysisHandler {
	return &AnalysisHandler{analyses: analyses, documents: documents, reports: reports}
}

type analysisItem struct {
	ID         string                `json:"id"`
	DocumentID string                `json:"document_id"`
	Model      string                `json:"model"`
	Result     *model.AnalysisResult `json:"result"`
	Ctime      int64                 `json:"ctime"`
}

func toAnalysisItem(record *model.AnalysisRecord) analysisItem {
	return analysisItem{
		ID:         record.ID,
		DocumentID: record.DocumentID,
		Model:      record.Model,
		Result:     record.Result,
		Ctime:      record.Ctime,
	}
}

// Analyze runs the model against one stored document. Every call is a
// fresh run; previous results stay untouched.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	record, err := h.analyses.Analyze(c.Request.Context(), getWorkspaceID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toAnalysisItem(record))
}

func (h *AnalysisHandler) Get(c *gin.Context) {
	record, err := h.analyses.Get(c.Request.Context(), getWorkspaceID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toAnalysisItem(record))
}

func (h *AnalysisHandler) List(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	records, err := h.analyses.List(c.Request.Context(), getWorkspaceID(c), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	items := make([]analysisItem, 0, len(records))
	for i := range records {
		items = append(items, toAnalysisItem(&records[i]))
	}
	response.Success(c, items)
}

// Report renders the analysis as a standalone HTML page.
func (h *AnalysisHandler) Report(c *gin.Context) {
	workspaceID := getWorkspaceID(c)
	record, err := h.analyses.Get(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	doc, err := h.documents.Get(c.Request.Context(), workspaceID, record.DocumentID)
	if err != nil {
		handleError(c, err)
		return
	}
	page, err := h.reports.Render(doc, record)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

type searchResponse struct {
	DocumentIDs []string `json:"document_ids"`
}

// Search finds documents whose analyzed text is semantically closest to
// the query.
func (h *AnalysisHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, errcode.ErrInvalid, "missing query")
		return
	}
	topK := 10
	if raw := c.Query("top_k"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			topK = parsed
		}
	}
	ids, err := h.analyses.SemanticSearch(c.Request.Context(), getWorkspaceID(c), query, topK)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, searchResponse{DocumentIDs: ids})
}
