package model

// EncodedDocument is the transport-ready form of one uploaded file:
// raw bytes as standard base64 (no data-URL prefix) plus the source
// MIME type. Instances are immutable and safe to share.
type EncodedDocument struct {
	Content      string `json:"content"`
	MimeType     string `json:"mime_type"`
	OriginalName string `json:"original_name"`
	SizeBytes    int64  `json:"size_bytes"`
}

// Document is the stored metadata of one uploaded file. The raw bytes
// live in the file store under FileKey.
type Document struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int64  `json:"size_bytes"`
	FileKey     string `json:"file_key"`
	Ctime       int64  `json:"ctime"`
}
