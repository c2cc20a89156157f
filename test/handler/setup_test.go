package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/documind/documind/internal/ai"
	"github.com/documind/documind/internal/chat"
	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/filestore"
	"github.com/documind/documind/internal/handler"
	"github.com/documind/documind/internal/middleware"
	"github.com/documind/documind/internal/repo"
	"github.com/documind/documind/internal/service"
	"github.com/documind/documind/test/testutil"
)

const validAnalysisJSON = `{
	"ocrText": "INVOICE #100",
	"summaryShort": "An invoice.",
	"summaryMedium": "An invoice for services.",
	"summaryLong": "A detailed invoice for services rendered in January.",
	"documentType": "Invoice",
	"confidenceScore": 0.92,
	"fraudDetection": {"isSuspicious": false, "score": 5, "reasoning": "no anomalies"},
	"entities": [{"text": "100", "category": "InvoiceNumber"}]
}`

const validSimilarityJSON = `{
	"similarityScore": 97,
	"explanation": "Nearly identical invoices.",
	"similarities": ["same vendor", "same total"],
	"differences": []
}`

// scriptedProvider serves canned structured output so handler flows can
// run without a live model.
type scriptedProvider struct {
	generateText string
	chatText     string
}

func (p *scriptedProvider) Name() string {
	return "scripted"
}

func (p *scriptedProvider) Generate(ctx context.Context, model string, req *ai.GenerateRequest) (string, error) {
	return p.generateText, nil
}

func (p *scriptedProvider) Chat(ctx context.Context, model string, history []ai.Turn, message string) (string, error) {
	return p.chatText, nil
}

func (p *scriptedProvider) Embed(ctx context.Context, model string, text string, taskType string) ([]float32, error) {
	emb := make([]float32, 768)
	emb[0] = 1
	return emb, nil
}

func setupRouter(t *testing.T, provider ai.IProvider) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)
	docRepo := repo.NewDocumentRepo(conn)
	analysisRepo := repo.NewAnalysisRepo(conn)
	embeddingRepo := repo.NewEmbeddingRepo(conn)

	tmpDir, err := os.MkdirTemp("", "documind-upload-*")
	require.NoError(t, err)
	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{
			"dir": tmpDir,
		},
	})
	require.NoError(t, err)

	manager := ai.NewManager(provider, ai.ManagerConfig{
		Model:      "gemini-2.5-flash",
		EmbedModel: "text-embedding-004",
		Timeout:    10 * time.Second,
	})
	sessions := chat.NewStore(100, time.Hour)

	jwtSecret := []byte("test-secret")
	authService := service.NewAuthService(jwtSecret, time.Hour, "")
	documentService := service.NewDocumentService(docRepo, analysisRepo, embeddingRepo, store, 20*1024*1024)
	analysisService := service.NewAnalysisService(manager, documentService, analysisRepo, embeddingRepo)

	deps := handler.RouterDeps{
		Auth:       authService,
		Documents:  documentService,
		Analyses:   analysisService,
		Reports:    service.NewReportService(),
		Similarity: service.NewSimilarityService(manager, documentService),
		Chats:      service.NewChatService(manager, documentService, sessions),
		JWTSecret:  jwtSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, func() {
		cleanup()
		_ = os.RemoveAll(tmpDir)
	}
}

func openWorkspace(t *testing.T, router http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/workspace", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Code int `json:"code"`
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.NotEmpty(t, result.Data.Token)
	return result.Data.Token
}

func uploadPDF(t *testing.T, router http.Handler, token, name string) string {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7 test document bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Code int `json:"code"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, 0, result.Code)
	require.NotEmpty(t, result.Data.ID)
	return result.Data.ID
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}
