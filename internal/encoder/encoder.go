package encoder

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/documind/documind/internal/model"
	appErr "github.com/documind/documind/internal/pkg/errors"
)

// Encode turns a raw file into its transport-ready form. The content is
// standard base64 with no data-URL prefix, the MIME type is sniffed from
// the leading bytes with the filename extension as fallback, and
// SizeBytes is the pre-encoding byte length. On read failure no partial
// document is produced.
func Encode(r io.Reader, name string) (*model.EncodedDocument, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrRead, err)
	}
	return FromBytes(raw, name, ""), nil
}

// FromBytes builds an EncodedDocument from bytes already in memory.
// mimeType overrides sniffing when non-empty.
func FromBytes(raw []byte, name, mimeType string) *model.EncodedDocument {
	if mimeType == "" {
		mimeType = DetectMIME(raw, name)
	}
	return &model.EncodedDocument{
		Content:      base64.StdEncoding.EncodeToString(raw),
		MimeType:     mimeType,
		OriginalName: name,
		SizeBytes:    int64(len(raw)),
	}
}

// Bytes decodes the document content back to the original bytes.
func Bytes(doc *model.EncodedDocument) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrRead, err)
	}
	return raw, nil
}

// DetectMIME sniffs the content type from the leading bytes. Sniffing
// cannot distinguish many document formats, so a recognized filename
// extension wins over the generic octet-stream fallback.
func DetectMIME(raw []byte, name string) string {
	head := raw
	if len(head) > 512 {
		head = head[:512]
	}
	detected := http.DetectContentType(head)
	if detected == "application/octet-stream" || strings.HasPrefix(detected, "text/plain") {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			return byExt
		}
	}
	return detected
}

// AllowedMIME reports whether the type is in the accepted families:
// image/* and application/pdf.
func AllowedMIME(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType == "application/pdf" || strings.HasPrefix(mimeType, "image/")
}
