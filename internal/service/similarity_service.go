package service

import (
	"context"

	"github.com/documind/documind/internal/ai"
	"github.com/documind/documind/internal/model"
)

type SimilarityService struct {
	manager   *ai.Manager
	documents *DocumentService
}

func NewSimilarityService(manager *ai.Manager, documents *DocumentService) *SimilarityService {
	return &SimilarityService{manager: manager, documents: documents}
}

// Compare assesses the similarity of two stored documents. The caller's
// order is preserved in the request, and swapping the arguments may
// produce a different result; that asymmetry comes from the model.
func (s *SimilarityService) Compare(ctx context.Context, workspaceID, docIDA, docIDB string) (*model.SimilarityResult, error) {
	_, encodedA, err := s.documents.Load(ctx, workspaceID, docIDA)
	if err != nil {
		return nil, err
	}
	_, encodedB, err := s.documents.Load(ctx, workspaceID, docIDB)
	if err != nil {
		return nil, err
	}
	return s.manager.CompareDocuments(ctx, encodedA, encodedB)
}
