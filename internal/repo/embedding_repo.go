package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/documind/documind/internal/model"
)

type EmbeddingRepo struct {
	db *sqlx.DB
}

func NewEmbeddingRepo(db *sqlx.DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

func (r *EmbeddingRepo) Upsert(ctx context.Context, emb *model.DocumentEmbedding) error {
	query := `
		INSERT INTO document_embeddings (document_id, workspace_id, embedding, content_hash, mtime)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (document_id) DO UPDATE SET
			workspace_id = EXCLUDED.workspace_id,
			embedding = EXCLUDED.embedding,
			content_hash = EXCLUDED.content_hash,
			mtime = EXCLUDED.mtime`
	_, err := r.db.ExecContext(ctx, query,
		emb.DocumentID, emb.WorkspaceID, pgvector.NewVector(emb.Embedding), emb.ContentHash, emb.Mtime)
	return err
}

func (r *EmbeddingRepo) GetByDocID(ctx context.Context, docID string) (*model.DocumentEmbedding, error) {
	query := `
		SELECT document_id, workspace_id, embedding, content_hash, mtime
		FROM document_embeddings WHERE document_id = $1`
	row := r.db.QueryRowContext(ctx, query, docID)
	var emb model.DocumentEmbedding
	var vec pgvector.Vector
	if err := row.Scan(&emb.DocumentID, &emb.WorkspaceID, &vec, &emb.ContentHash, &emb.Mtime); err != nil {
		return nil, err
	}
	emb.Embedding = vec.Slice()
	return &emb, nil
}

// SearchNearest returns up to topK document ids of the workspace ordered
// by cosine distance to the query vector.
func (r *EmbeddingRepo) SearchNearest(ctx context.Context, workspaceID string, query []float32, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 4
	}
	sqlStr := `
		SELECT document_id
		FROM document_embeddings
		WHERE workspace_id = $1
		ORDER BY embedding <=> $2
		LIMIT $3`
	rows, err := r.db.QueryContext(ctx, sqlStr, workspaceID, pgvector.NewVector(query), topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *EmbeddingRepo) DeleteByDocument(ctx context.Context, docID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM document_embeddings WHERE document_id = $1`, docID)
	return err
}

func (r *EmbeddingRepo) DeleteBefore(ctx context.Context, cutoff int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM document_embeddings WHERE mtime < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
