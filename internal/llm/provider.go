// Package llm abstracts the generative-model collaborator behind a
// Provider interface with interchangeable Gemini, OpenAI, and Anthropic
// implementations, plus retry and request-logging middleware.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the model-caller contract. Operations are single-shot
// and synchronous; cancellation of the caller's wait does not cancel
// an already-issued upstream call.
type Provider interface {
	// Generate sends a prompt to the model and returns its output.
	// When the request carries a Schema, providers with native
	// structured output enforce it and the content is validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// VisionProvider is implemented by providers that can read images.
// The file-upload path uses it to pull problem text out of a photo.
type VisionProvider interface {
	Provider

	// GenerateVision sends a prompt together with an inline image.
	GenerateVision(ctx context.Context, req Request, img Image) (*Response, error)
}

// Image is inline binary image content for vision requests.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and output constraints.
	System string

	// Messages is the conversation. Tutoring operations are single-turn,
	// so this is normally one user message.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform to.
	// Providers without native structured output ignore it at request
	// time; the response is still validated against it.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in 0.0-1.0. Zero value means deterministic.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema definition used to steer and validate
// structured output.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "math-solution".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	// Content is the generated text. With a Schema in the request this
	// is schema-validated JSON; otherwise raw text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
