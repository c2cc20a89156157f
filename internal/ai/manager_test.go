package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/documind/documind/internal/encoder"
	"github.com/documind/documind/internal/model"
	appErr "github.com/documind/documind/internal/pkg/errors"
)

type fakeProvider struct {
	generateText string
	generateErr  error
	chatText     string
	chatErr      error
	lastReq      *GenerateRequest
	lastHistory  []Turn
	calls        int
	deadline     time.Time
	hasDeadline  bool
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) Generate(ctx context.Context, model string, req *GenerateRequest) (string, error) {
	p.calls++
	p.lastReq = req
	p.deadline, p.hasDeadline = ctx.Deadline()
	return p.generateText, p.generateErr
}

func (p *fakeProvider) Chat(ctx context.Context, model string, history []Turn, message string) (string, error) {
	p.calls++
	p.lastHistory = history
	return p.chatText, p.chatErr
}

func (p *fakeProvider) Embed(ctx context.Context, model string, text string, taskType string) ([]float32, error) {
	p.calls++
	return []float32{0.1, 0.2}, nil
}

func testDoc(t *testing.T) *model.EncodedDocument {
	t.Helper()
	return encoder.FromBytes([]byte("%PDF-1.7 fake"), "invoice.pdf", "application/pdf")
}

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

func TestAnalyzeDocument(t *testing.T) {
	provider := &fakeProvider{generateText: validAnalysisJSON}
	mgr := NewManager(provider, ManagerConfig{Model: "gemini-2.5-flash"})

	result, err := mgr.AnalyzeDocument(context.Background(), testDoc(t))
	require.NoError(t, err)
	require.Equal(t, model.DocumentTypeInvoice, result.DocumentType)
	require.Equal(t, "INVOICE #100", result.OCRText)
	require.InDelta(t, 0.92, result.ConfidenceScore, 1e-9)
	require.False(t, result.FraudDetection.IsSuspicious)
	require.Equal(t, 5, result.FraudDetection.Score)
	require.Len(t, result.Entities, 1)

	// Request carries the document inline plus the instruction, with the
	// schema constraint attached.
	require.NotNil(t, provider.lastReq.Schema)
	require.Len(t, provider.lastReq.Parts, 2)
	require.Equal(t, "application/pdf", provider.lastReq.Parts[0].InlineData.MIMEType)
}

func TestAnalyzeDocumentAcceptsFencedJSON(t *testing.T) {
	provider := &fakeProvider{generateText: "```json\n" + validAnalysisJSON + "\n```"}
	mgr := NewManager(provider, ManagerConfig{Model: "gemini-2.5-flash"})

	result, err := mgr.AnalyzeDocument(context.Background(), testDoc(t))
	require.NoError(t, err)
	require.Equal(t, model.DocumentTypeInvoice, result.DocumentType)
}

func TestAnalyzeDocumentSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown type":       `{"ocrText":"x","summaryShort":"s","summaryMedium":"m","summaryLong":"l","documentType":"Postcard","confidenceScore":0.5,"fraudDetection":{"isSuspicious":false,"score":1,"reasoning":"r"},"entities":[]}`,
		"confidence too big": `{"ocrText":"x","summaryShort":"s","summaryMedium":"m","summaryLong":"l","documentType":"Other","confidenceScore":1.5,"fraudDetection":{"isSuspicious":false,"score":1,"reasoning":"r"},"entities":[]}`,
		"fraud out of range": `{"ocrText":"x","summaryShort":"s","summaryMedium":"m","summaryLong":"l","documentType":"Other","confidenceScore":0.5,"fraudDetection":{"isSuspicious":true,"score":150,"reasoning":"r"},"entities":[]}`,
		"missing field":      `{"summaryShort":"s","summaryMedium":"m","summaryLong":"l","documentType":"Other","confidenceScore":0.5,"fraudDetection":{"isSuspicious":false,"score":1,"reasoning":"r"},"entities":[]}`,
		"not json":           `the document is an invoice`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			mgr := NewManager(&fakeProvider{generateText: payload}, ManagerConfig{Model: "m"})
			_, err := mgr.AnalyzeDocument(context.Background(), testDoc(t))
			require.ErrorIs(t, err, appErr.ErrSchemaViolation)
		})
	}
}

func TestAnalyzeDocumentEmptyResponse(t *testing.T) {
	mgr := NewManager(&fakeProvider{generateText: ""}, ManagerConfig{Model: "m"})
	_, err := mgr.AnalyzeDocument(context.Background(), testDoc(t))
	require.ErrorIs(t, err, appErr.ErrEmptyResponse)
}

func TestAnalyzeDocumentTransportFailure(t *testing.T) {
	mgr := NewManager(&fakeProvider{generateErr: errors.New("dial tcp: timeout")}, ManagerConfig{Model: "m"})
	_, err := mgr.AnalyzeDocument(context.Background(), testDoc(t))
	require.ErrorIs(t, err, appErr.ErrNetwork)
}

func TestCompareDocuments(t *testing.T) {
	provider := &fakeProvider{generateText: `{"similarityScore":97,"explanation":"nearly identical","similarities":["same layout"],"differences":[]}`}
	mgr := NewManager(provider, ManagerConfig{Model: "m"})

	result, err := mgr.CompareDocuments(context.Background(), testDoc(t), testDoc(t))
	require.NoError(t, err)
	require.Equal(t, 97, result.SimilarityScore)
	require.NotNil(t, result.Differences)
	require.Empty(t, result.Differences)

	// Instruction first, then both documents in caller order.
	require.Len(t, provider.lastReq.Parts, 3)
	require.NotEmpty(t, provider.lastReq.Parts[0].Text)
}

func TestCompareDocumentsScoreOutOfRange(t *testing.T) {
	provider := &fakeProvider{generateText: `{"similarityScore":130,"explanation":"x","similarities":[],"differences":[]}`}
	mgr := NewManager(provider, ManagerConfig{Model: "m"})
	_, err := mgr.CompareDocuments(context.Background(), testDoc(t), testDoc(t))
	require.ErrorIs(t, err, appErr.ErrSchemaViolation)
}

func TestSeedHistoryShape(t *testing.T) {
	history, err := SeedHistory(testDoc(t))
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, RoleUser, history[0].Role)
	require.Equal(t, RoleModel, history[1].Role)
	require.NotNil(t, history[0].Parts[0].InlineData)
	require.Equal(t, chatSeedAck, history[1].Parts[0].Text)
}

func TestCallTimeoutDeadline(t *testing.T) {
	provider := &fakeProvider{generateText: validAnalysisJSON}
	mgr := NewManager(provider, ManagerConfig{Model: "m", Timeout: time.Minute})

	before := time.Now()
	_, err := mgr.AnalyzeDocument(context.Background(), testDoc(t))
	require.NoError(t, err)
	require.True(t, provider.hasDeadline)
	require.WithinDuration(t, before.Add(time.Minute), provider.deadline, 5*time.Second)
}

func TestCallWithoutTimeoutHasNoDeadline(t *testing.T) {
	provider := &fakeProvider{generateText: validAnalysisJSON}
	mgr := NewManager(provider, ManagerConfig{Model: "m"})

	_, err := mgr.AnalyzeDocument(context.Background(), testDoc(t))
	require.NoError(t, err)
	require.False(t, provider.hasDeadline)
}

func TestChatEmptyModelAnswer(t *testing.T) {
	mgr := NewManager(&fakeProvider{chatText: ""}, ManagerConfig{Model: "m"})
	_, err := mgr.Chat(context.Background(), nil, "what is the total?")
	require.ErrorIs(t, err, appErr.ErrEmptyResponse)
}
