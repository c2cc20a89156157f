package encoder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/documind/documind/internal/pkg/errors"
)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestEncodeRoundTrip(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	doc, err := Encode(bytes.NewReader(raw), "scan.jpg")
	require.NoError(t, err)
	require.Equal(t, int64(len(raw)), doc.SizeBytes)
	require.Equal(t, "image/jpeg", doc.MimeType)
	require.False(t, strings.HasPrefix(doc.Content, "data:"))

	decoded, err := Bytes(doc)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestEncodeReadFailure(t *testing.T) {
	doc, err := Encode(failingReader{}, "scan.jpg")
	require.Nil(t, doc)
	require.ErrorIs(t, err, appErr.ErrRead)
}

func TestDetectMIME(t *testing.T) {
	require.Equal(t, "application/pdf", DetectMIME([]byte("%PDF-1.7\n1 0 obj\n"), "contract"))

	// Sniffing yields octet-stream for unknown magic, the extension wins.
	unknown := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	require.Equal(t, "application/pdf", DetectMIME(unknown, "contract.pdf"))
}

func TestAllowedMIME(t *testing.T) {
	require.True(t, AllowedMIME("application/pdf"))
	require.True(t, AllowedMIME("image/png"))
	require.True(t, AllowedMIME("IMAGE/JPEG; charset=binary"))
	require.False(t, AllowedMIME("text/html"))
	require.False(t, AllowedMIME("application/zip"))
}
