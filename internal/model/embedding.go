package model

// DocumentEmbedding is the vector form of one analyzed document's
// extracted text, used for semantic search across past analyses.
type DocumentEmbedding struct {
	DocumentID  string    `json:"document_id"`
	WorkspaceID string    `json:"workspace_id"`
	Embedding   []float32 `json:"embedding"`
	ContentHash string    `json:"content_hash"`
	Mtime       int64     `json:"mtime"`
}
