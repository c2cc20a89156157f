package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/documind/documind/internal/encoder"
	"github.com/documind/documind/internal/model"
	appErr "github.com/documind/documind/internal/pkg/errors"
)

const (
	analysisTemperature = 0.2
	compareTemperature  = 0.3
)

type ManagerConfig struct {
	Model      string
	EmbedModel string
	Timeout    time.Duration
}

// Manager drives the document operations against one provider. Calls
// are independent: nothing is cached and nothing is retried, a repeated
// call re-runs the full analysis.
type Manager struct {
	provider IProvider
	cfg      ManagerConfig
}

func NewManager(provider IProvider, cfg ManagerConfig) *Manager {
	return &Manager{provider: provider, cfg: cfg}
}

func (m *Manager) Model() string {
	return m.cfg.Model
}

// AnalyzeDocument runs the full single-document analysis: OCR, three-tier
// summaries, classification, fraud assessment and entity extraction.
func (m *Manager) AnalyzeDocument(ctx context.Context, doc *model.EncodedDocument) (*model.AnalysisResult, error) {
	docPart, err := inlinePart(doc)
	if err != nil {
		return nil, err
	}
	text, err := m.generate(ctx, &GenerateRequest{
		Parts:       []Part{docPart, {Text: analysisInstruction}},
		Schema:      analysisSchema(),
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, err
	}
	payload := []byte(stripFences(text))
	if err := checkRequired(payload, "ocrText", "summaryShort", "summaryMedium", "summaryLong", "documentType", "confidenceScore", "fraudDetection", "entities"); err != nil {
		return nil, err
	}
	var result model.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrSchemaViolation, err)
	}
	if err := validateAnalysis(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CompareDocuments assesses visual, textual and semantic similarity of
// two documents. Argument order is passed through to the request; the
// result is not guaranteed symmetric under swapping a and b.
func (m *Manager) CompareDocuments(ctx context.Context, a, b *model.EncodedDocument) (*model.SimilarityResult, error) {
	partA, err := inlinePart(a)
	if err != nil {
		return nil, err
	}
	partB, err := inlinePart(b)
	if err != nil {
		return nil, err
	}
	text, err := m.generate(ctx, &GenerateRequest{
		Parts:       []Part{{Text: compareInstruction}, partA, partB},
		Schema:      similaritySchema(),
		Temperature: compareTemperature,
	})
	if err != nil {
		return nil, err
	}
	payload := []byte(stripFences(text))
	if err := checkRequired(payload, "similarityScore", "explanation", "differences", "similarities"); err != nil {
		return nil, err
	}
	var result model.SimilarityResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrSchemaViolation, err)
	}
	if err := validateSimilarity(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SeedHistory builds the hidden opening exchange of a chat session
// bound to one document.
func SeedHistory(doc *model.EncodedDocument) ([]Turn, error) {
	docPart, err := inlinePart(doc)
	if err != nil {
		return nil, err
	}
	return []Turn{
		{Role: RoleUser, Parts: []Part{docPart, {Text: chatSeedInstruction}}},
		{Role: RoleModel, Parts: []Part{{Text: chatSeedAck}}},
	}, nil
}

// Chat sends one user message against the given history and returns the
// model turn text.
func (m *Manager) Chat(ctx context.Context, history []Turn, message string) (string, error) {
	ctx, cancel := m.callContext(ctx)
	defer cancel()
	text, err := m.provider.Chat(ctx, m.cfg.Model, history, message)
	if err != nil {
		return "", wrapProviderErr(err)
	}
	if text == "" {
		return "", appErr.ErrEmptyResponse
	}
	return text, nil
}

func (m *Manager) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	if m.cfg.EmbedModel == "" {
		return nil, ErrUnavailable
	}
	ctx, cancel := m.callContext(ctx)
	defer cancel()
	values, err := m.provider.Embed(ctx, m.cfg.EmbedModel, text, taskType)
	if err != nil {
		return nil, wrapProviderErr(err)
	}
	return values, nil
}

func (m *Manager) generate(ctx context.Context, req *GenerateRequest) (string, error) {
	ctx, cancel := m.callContext(ctx)
	defer cancel()
	text, err := m.provider.Generate(ctx, m.cfg.Model, req)
	if err != nil {
		return "", wrapProviderErr(err)
	}
	if text == "" {
		return "", appErr.ErrEmptyResponse
	}
	return text, nil
}

func (m *Manager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.cfg.Timeout)
}

func wrapProviderErr(err error) error {
	if err == ErrUnavailable {
		return err
	}
	return fmt.Errorf("%w: %v", appErr.ErrNetwork, err)
}

func inlinePart(doc *model.EncodedDocument) (Part, error) {
	raw, err := encoder.Bytes(doc)
	if err != nil {
		return Part{}, err
	}
	return Part{InlineData: &Blob{MIMEType: doc.MimeType, Data: raw}}, nil
}

func validateAnalysis(result *model.AnalysisResult) error {
	if !model.ValidDocumentType(result.DocumentType) {
		return fmt.Errorf("%w: documentType %q", appErr.ErrSchemaViolation, result.DocumentType)
	}
	if result.ConfidenceScore < 0 || result.ConfidenceScore > 1 || math.IsNaN(result.ConfidenceScore) {
		return fmt.Errorf("%w: confidenceScore %v", appErr.ErrSchemaViolation, result.ConfidenceScore)
	}
	if result.FraudDetection.Score < 0 || result.FraudDetection.Score > 100 {
		return fmt.Errorf("%w: fraudDetection.score %d", appErr.ErrSchemaViolation, result.FraudDetection.Score)
	}
	if result.Entities == nil {
		result.Entities = []model.Entity{}
	}
	return nil
}

func validateSimilarity(result *model.SimilarityResult) error {
	if result.SimilarityScore < 0 || result.SimilarityScore > 100 {
		return fmt.Errorf("%w: similarityScore %d", appErr.ErrSchemaViolation, result.SimilarityScore)
	}
	if result.Similarities == nil {
		result.Similarities = []string{}
	}
	if result.Differences == nil {
		result.Differences = []string{}
	}
	return nil
}

// checkRequired rejects payloads missing a required top-level field.
// A zero value for a present field is the model's answer; an absent
// field is a contract break.
func checkRequired(payload []byte, keys ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("%w: %v", appErr.ErrSchemaViolation, err)
	}
	for _, key := range keys {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("%w: missing field %q", appErr.ErrSchemaViolation, key)
		}
	}
	return nil
}

// stripFences removes a markdown code fence if the model wrapped its
// JSON in one despite the schema constraint.
func stripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
