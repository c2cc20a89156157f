package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/documind/documind/internal/filestore"
	"github.com/documind/documind/internal/repo"
)

// RetentionJob removes documents older than the configured retention
// period, together with their stored bytes, analyses and embeddings.
// Uploads are transient working material, not an archive.
type RetentionJob struct {
	docs       *repo.DocumentRepo
	analyses   *repo.AnalysisRepo
	embeddings *repo.EmbeddingRepo
	store      filestore.Store
	retention  time.Duration
}

func NewRetentionJob(docs *repo.DocumentRepo, analyses *repo.AnalysisRepo, embeddings *repo.EmbeddingRepo, store filestore.Store, retention time.Duration) *RetentionJob {
	return &RetentionJob{
		docs:       docs,
		analyses:   analyses,
		embeddings: embeddings,
		store:      store,
		retention:  retention,
	}
}

func (j *RetentionJob) Name() string {
	return "retention"
}

func (j *RetentionJob) Run(ctx context.Context) error {
	if j.retention <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-j.retention).Unix()
	logger := logutil.GetLogger(ctx)

	expired, err := j.docs.ListBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, doc := range expired {
		// Blob first, row second: a leftover row retries next run, a
		// leftover blob would be orphaned forever.
		if err := j.store.Delete(ctx, doc.FileKey); err != nil {
			logger.Warn("delete expired file failed", zap.String("key", doc.FileKey), zap.Error(err))
			continue
		}
		if err := j.docs.DeleteByID(ctx, doc.ID); err != nil {
			logger.Warn("delete expired document failed", zap.String("doc_id", doc.ID), zap.Error(err))
		}
	}

	removedAnalyses, err := j.analyses.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	removedEmbeddings, err := j.embeddings.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	logger.Info("retention sweep done",
		zap.Int("documents", len(expired)),
		zap.Int64("analyses", removedAnalyses),
		zap.Int64("embeddings", removedEmbeddings),
	)
	return nil
}
