package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/documind/documind/internal/encoder"
	"github.com/documind/documind/internal/filestore"
	"github.com/documind/documind/internal/model"
	appErr "github.com/documind/documind/internal/pkg/errors"
	"github.com/documind/documind/internal/repo"
)

type DocumentService struct {
	docs       *repo.DocumentRepo
	analyses   *repo.AnalysisRepo
	embeddings *repo.EmbeddingRepo
	store      filestore.Store
	maxSize    int64
}

func NewDocumentService(docs *repo.DocumentRepo, analyses *repo.AnalysisRepo, embeddings *repo.EmbeddingRepo, store filestore.Store, maxSize int64) *DocumentService {
	return &DocumentService{
		docs:       docs,
		analyses:   analyses,
		embeddings: embeddings,
		store:      store,
		maxSize:    maxSize,
	}
}

// Upload reads, validates and persists one document. Only image/* and
// application/pdf are accepted.
func (s *DocumentService) Upload(ctx context.Context, workspaceID string, r io.Reader, name string) (*model.Document, error) {
	limited := r
	if s.maxSize > 0 {
		limited = io.LimitReader(r, s.maxSize+1)
	}
	encoded, err := encoder.Encode(limited, name)
	if err != nil {
		return nil, err
	}
	if s.maxSize > 0 && encoded.SizeBytes > s.maxSize {
		return nil, appErr.ErrFileTooLarge
	}
	if !encoder.AllowedMIME(encoded.MimeType) {
		return nil, fmt.Errorf("%w: %s", appErr.ErrUnsupportedMIME, encoded.MimeType)
	}

	raw, err := encoder.Bytes(encoded)
	if err != nil {
		return nil, err
	}
	doc := &model.Document{
		ID:          newID(),
		WorkspaceID: workspaceID,
		Name:        name,
		MimeType:    encoded.MimeType,
		SizeBytes:   encoded.SizeBytes,
		FileKey:     buildFileKey(name),
		Ctime:       time.Now().Unix(),
	}
	if err := s.store.Save(ctx, doc.FileKey, bytes.NewReader(raw), doc.SizeBytes); err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, workspaceID, docID string) (*model.Document, error) {
	return s.docs.GetByID(ctx, workspaceID, docID)
}

func (s *DocumentService) List(ctx context.Context, workspaceID string, limit uint) ([]model.Document, error) {
	return s.docs.List(ctx, workspaceID, limit)
}

// Load rebuilds the transport-ready form of a stored document from the
// file store.
func (s *DocumentService) Load(ctx context.Context, workspaceID, docID string) (*model.Document, *model.EncodedDocument, error) {
	doc, err := s.docs.GetByID(ctx, workspaceID, docID)
	if err != nil {
		return nil, nil, err
	}
	file, err := s.store.Open(ctx, doc.FileKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", appErr.ErrRead, err)
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", appErr.ErrRead, err)
	}
	return doc, encoder.FromBytes(raw, doc.Name, doc.MimeType), nil
}

// Delete removes the document row plus its stored bytes, analyses and
// embedding. File removal failures are logged, not surfaced: the row is
// gone and the retention job will not see the orphan again, so losing
// the blob is the lesser problem.
func (s *DocumentService) Delete(ctx context.Context, workspaceID, docID string) error {
	doc, err := s.docs.GetByID(ctx, workspaceID, docID)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, workspaceID, docID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.FileKey); err != nil {
		logutil.GetLogger(ctx).Warn("delete stored file failed", zap.String("key", doc.FileKey), zap.Error(err))
	}
	if err := s.analyses.DeleteByDocument(ctx, docID); err != nil {
		return err
	}
	return s.embeddings.DeleteByDocument(ctx, docID)
}

func buildFileKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return newID() + ext
}
