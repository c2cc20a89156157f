package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/documind/documind/internal/ai"
	"github.com/documind/documind/internal/model"
	"github.com/documind/documind/internal/repo"
)

type AnalysisService struct {
	manager    *ai.Manager
	documents  *DocumentService
	analyses   *repo.AnalysisRepo
	embeddings *repo.EmbeddingRepo
}

func NewAnalysisService(manager *ai.Manager, documents *DocumentService, analyses *repo.AnalysisRepo, embeddings *repo.EmbeddingRepo) *AnalysisService {
	return &AnalysisService{
		manager:    manager,
		documents:  documents,
		analyses:   analyses,
		embeddings: embeddings,
	}
}

// Analyze runs the full analysis of one stored document and persists
// the result. Each call re-runs the model; nothing is cached.
func (s *AnalysisService) Analyze(ctx context.Context, workspaceID, docID string) (*model.AnalysisRecord, error) {
	doc, encoded, err := s.documents.Load(ctx, workspaceID, docID)
	if err != nil {
		return nil, err
	}
	result, err := s.manager.AnalyzeDocument(ctx, encoded)
	if err != nil {
		return nil, err
	}
	record := &model.AnalysisRecord{
		ID:          newID(),
		WorkspaceID: workspaceID,
		DocumentID:  doc.ID,
		Model:       s.manager.Model(),
		Result:      result,
		Ctime:       time.Now().Unix(),
	}
	if err := s.analyses.Create(ctx, record); err != nil {
		return nil, err
	}
	// Embedding sync is best effort: search degrades, analysis succeeds.
	if err := s.syncEmbedding(ctx, workspaceID, doc.ID, result.OCRText); err != nil {
		logutil.GetLogger(ctx).Warn("embedding sync failed", zap.String("doc_id", doc.ID), zap.Error(err))
	}
	return record, nil
}

func (s *AnalysisService) Get(ctx context.Context, workspaceID, id string) (*model.AnalysisRecord, error) {
	return s.analyses.GetByID(ctx, workspaceID, id)
}

func (s *AnalysisService) List(ctx context.Context, workspaceID string, limit uint) ([]model.AnalysisRecord, error) {
	return s.analyses.ListByWorkspace(ctx, workspaceID, limit)
}

// SemanticSearch returns document ids of past analyses nearest to the
// query text.
func (s *AnalysisService) SemanticSearch(ctx context.Context, workspaceID, query string, topK int) ([]string, error) {
	emb, err := s.manager.Embed(ctx, query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return s.embeddings.SearchNearest(ctx, workspaceID, emb, topK)
}

func (s *AnalysisService) syncEmbedding(ctx context.Context, workspaceID, docID, text string) error {
	if text == "" {
		return nil
	}
	hash := sha256.Sum256([]byte(text))
	contentHash := hex.EncodeToString(hash[:])
	existing, err := s.embeddings.GetByDocID(ctx, docID)
	if err == nil && existing.ContentHash == contentHash {
		return nil
	}
	emb, err := s.manager.Embed(ctx, text, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return err
	}
	return s.embeddings.Upsert(ctx, &model.DocumentEmbedding{
		DocumentID:  docID,
		WorkspaceID: workspaceID,
		Embedding:   emb,
		ContentHash: contentHash,
		Mtime:       time.Now().Unix(),
	})
}
