package llm

import (
	"context"
	"encoding/json"
)

// Provider generates model completions for the advisor features.
// Implementations exist for Anthropic, OpenAI, Gemini and DeepSeek,
// plus a deterministic mock for tests. All of them speak the same
// Request and Response shapes, so the planner and matcher never care
// which vendor is configured.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the provider
	// asks for structured output and validates the result against the
	// schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the concrete model this provider targets.
	ModelID() string
}

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Request carries everything a single completion needs.
type Request struct {
	// System frames the model's role. The planner puts the student's
	// profile and the relevant catalog sections here so follow-up turns
	// stay cheap.
	System string

	// Messages is the conversation so far. Peer matching sends a single
	// user turn; plan sessions replay their accumulated history.
	Messages []Message

	// Schema, when non-nil, constrains the response to structured JSON.
	// Left nil, Content comes back as the raw text wrapped in a JSON
	// string.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0.0, 1.0]. Zero means deterministic output, which
	// is what the matcher wants; the planner runs slightly warmer.
	Temperature float64
}

// Schema describes the JSON shape a structured response must satisfy.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "peer-match". It doubles as
	// the schema name for vendors that require one.
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is a JSON Schema document as nested maps.
	Definition map[string]any
}

// Response is the normalized result of a completion.
type Response struct {
	// Content holds validated JSON when the request carried a Schema,
	// otherwise the raw text as a JSON string.
	Content json.RawMessage

	// Usage is the token accounting reported by the vendor.
	Usage Usage

	// Model is the model that actually answered, as reported by the
	// vendor. May differ from the configured alias.
	Model string

	// StopReason is normalized across vendors to "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type ctxKey int

const purposeCtxKey ctxKey = iota

// WithPurpose tags the context with the feature driving this request,
// e.g. "plan-recommend" or "peer-match". The logging decorator reads it.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey, purpose)
}

// PurposeFrom returns the purpose tag, or "unknown" when none was set.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeCtxKey).(string); ok {
		return p
	}
	return "unknown"
}

// resolveModel translates a friendly alias (like "claude-haiku") into the
// vendor's model ID. Names missing from the alias table pass through
// untouched, so operators can pin exact model versions.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
