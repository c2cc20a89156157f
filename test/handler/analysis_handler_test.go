package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/documind/documind/internal/pkg/errcode"
)

func TestAnalyzeAndFetch(t *testing.T) {
	router, cleanup := setupRouter(t, &scriptedProvider{generateText: validAnalysisJSON})
	defer cleanup()

	token := openWorkspace(t, router)
	docID := uploadPDF(t, router, token, "invoice.pdf")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/documents/"+docID+"/analyze", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var analyzed struct {
		Code int `json:"code"`
		Data struct {
			ID         string `json:"id"`
			DocumentID string `json:"document_id"`
			Result     struct {
				DocumentType    string  `json:"documentType"`
				ConfidenceScore float64 `json:"confidenceScore"`
				FraudDetection  struct {
					Score int `json:"score"`
				} `json:"fraudDetection"`
			} `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &analyzed))
	require.Equal(t, 0, analyzed.Code)
	require.Equal(t, docID, analyzed.Data.DocumentID)
	require.Equal(t, "Invoice", analyzed.Data.Result.DocumentType)
	require.InDelta(t, 0.92, analyzed.Data.Result.ConfidenceScore, 1e-9)
	require.Equal(t, 5, analyzed.Data.Result.FraudDetection.Score)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/analyses/"+analyzed.Data.ID, token, nil)
	var fetched struct {
		Code int `json:"code"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
	require.Equal(t, analyzed.Data.ID, fetched.Data.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+analyzed.Data.ID+"/report", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	page := recorder.Body.String()
	require.True(t, strings.Contains(page, "invoice.pdf"))
	require.True(t, strings.Contains(page, "INVOICE #100"))
}

func TestAnalyzeSchemaViolation(t *testing.T) {
	router, cleanup := setupRouter(t, &scriptedProvider{generateText: `{"ocrText": "x"}`})
	defer cleanup()

	token := openWorkspace(t, router)
	docID := uploadPDF(t, router, token, "broken.pdf")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/documents/"+docID+"/analyze", token, nil)
	var envelope struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Equal(t, int(errcode.ErrModelSchemaViolation), envelope.Code)
}

func TestSemanticSearch(t *testing.T) {
	router, cleanup := setupRouter(t, &scriptedProvider{generateText: validAnalysisJSON})
	defer cleanup()

	token := openWorkspace(t, router)
	docID := uploadPDF(t, router, token, "searchable.pdf")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/documents/"+docID+"/analyze", token, nil)
	var analyzed struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &analyzed))
	require.Equal(t, 0, analyzed.Code)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/analyses/search?q=invoice", token, nil)
	var search struct {
		Code int `json:"code"`
		Data struct {
			DocumentIDs []string `json:"document_ids"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &search))
	require.Equal(t, 0, search.Code)
	require.Contains(t, search.Data.DocumentIDs, docID)
}
