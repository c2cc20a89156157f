package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGeminiRole(t *testing.T) {
	require.Equal(t, genai.RoleUser, toGeminiRole(RoleUser))
	require.Equal(t, genai.RoleModel, toGeminiRole(RoleModel))
	// Unknown roles fall back to user rather than leaking through.
	require.Equal(t, genai.RoleUser, toGeminiRole("system"))

	// The mapped value must slot into a content literal as the SDK
	// declares it.
	content := &genai.Content{Role: toGeminiRole(RoleModel)}
	require.Equal(t, genai.RoleModel, content.Role)
}

func TestToGeminiSchema(t *testing.T) {
	schema := toGeminiSchema(analysisSchema())
	require.Equal(t, genai.TypeObject, schema.Type)
	require.Contains(t, schema.Required, "documentType")
	require.Equal(t, genai.TypeString, schema.Properties["documentType"].Type)
	require.Len(t, schema.Properties["documentType"].Enum, 7)
	require.Equal(t, genai.TypeArray, schema.Properties["entities"].Type)
	require.Equal(t, genai.TypeObject, schema.Properties["entities"].Items.Type)
	require.Equal(t, genai.TypeInteger, schema.Properties["fraudDetection"].Properties["score"].Type)
}
