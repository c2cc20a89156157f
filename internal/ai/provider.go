package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned when the configured provider has no usable
// credential.
var ErrUnavailable = errors.New("ai not configured")

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Blob is inline binary content attached to a request part.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Part is one piece of a multimodal message: text or inline data.
type Part struct {
	Text       string
	InlineData *Blob
}

// Turn is one message of a conversation history.
type Turn struct {
	Role  string
	Parts []Part
}

// Schema is a provider-neutral output schema. Providers translate it
// into their native structured-output constraint.
type Schema struct {
	Type        SchemaType
	Description string
	Enum        []string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
)

// GenerateRequest is one structured generation call. When Schema is set
// the provider must constrain the output to JSON matching it.
type GenerateRequest struct {
	Parts       []Part
	Schema      *Schema
	Temperature float32
}

type IProvider interface {
	Name() string
	Generate(ctx context.Context, model string, req *GenerateRequest) (string, error)
	// Chat sends one message against an explicit prior history and returns
	// the model turn. The provider holds no conversation state of its own.
	Chat(ctx context.Context, model string, history []Turn, message string) (string, error)
	Embed(ctx context.Context, model string, text string, taskType string) ([]float32, error)
}

type ProviderFactory func(args interface{}) (IProvider, error)

var registry = map[string]ProviderFactory{}

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func NewProvider(name string, args interface{}) (IProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("ai provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode ai provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode ai provider config: %w", err)
	}
	return nil
}
