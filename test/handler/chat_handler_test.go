package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/documind/documind/internal/pkg/errcode"
)

func TestSimilarityCompare(t *testing.T) {
	router, cleanup := setupRouter(t, &scriptedProvider{generateText: validSimilarityJSON})
	defer cleanup()

	token := openWorkspace(t, router)
	docA := uploadPDF(t, router, token, "original.pdf")
	docB := uploadPDF(t, router, token, "copy.pdf")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/similarity", token, map[string]string{
		"document_id_a": docA,
		"document_id_b": docB,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var result struct {
		Code int `json:"code"`
		Data struct {
			SimilarityScore int      `json:"similarityScore"`
			Explanation     string   `json:"explanation"`
			Differences     []string `json:"differences"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, 0, result.Code)
	require.Equal(t, 97, result.Data.SimilarityScore)
	require.NotNil(t, result.Data.Differences)
}

func TestChatSessionFlow(t *testing.T) {
	router, cleanup := setupRouter(t, &scriptedProvider{chatText: "The total is $250."})
	defer cleanup()

	token := openWorkspace(t, router)
	docID := uploadPDF(t, router, token, "invoice.pdf")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/chat/sessions", token, map[string]string{
		"document_id": docID,
	})
	var created struct {
		Code int `json:"code"`
		Data struct {
			ID         string `json:"id"`
			DocumentID string `json:"document_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.Equal(t, 0, created.Code)
	require.Equal(t, docID, created.Data.DocumentID)
	sessionID := created.Data.ID

	resp = doJSON(t, router, http.MethodPost, "/api/v1/chat/sessions/"+sessionID+"/messages", token, map[string]string{
		"text": "What is the total?",
	})
	var sent struct {
		Code int `json:"code"`
		Data struct {
			Answer string `json:"answer"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &sent))
	require.Equal(t, 0, sent.Code)
	require.Equal(t, "The total is $250.", sent.Data.Answer)

	// Seed turns stay hidden: the transcript holds only the visible
	// exchange.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/chat/sessions/"+sessionID+"/messages", token, nil)
	var transcript struct {
		Code int `json:"code"`
		Data struct {
			Turns []struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"turns"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &transcript))
	require.Len(t, transcript.Data.Turns, 2)
	require.Equal(t, "user", transcript.Data.Turns[0].Role)
	require.Equal(t, "assistant", transcript.Data.Turns[1].Role)

	// Whitespace-only input is rejected before any model call.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/chat/sessions/"+sessionID+"/messages", token, map[string]string{
		"text": "   ",
	})
	var rejected struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rejected))
	require.Equal(t, int(errcode.ErrInvalid), rejected.Code)

	resp = doJSON(t, router, http.MethodDelete, "/api/v1/chat/sessions/"+sessionID, token, nil)
	var closed struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &closed))
	require.Equal(t, 0, closed.Code)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/chat/sessions/"+sessionID+"/messages", token, nil)
	var gone struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &gone))
	require.Equal(t, int(errcode.ErrNotFound), gone.Code)
}
