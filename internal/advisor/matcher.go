package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/llm"
	"github.com/zhihang-app/zhihang/internal/user"
)

// matchLimit is how many similar users a match returns.
const matchLimit = 3

// matchSchema constrains the model's answer to a list of user ids.
var matchSchema = &llm.Schema{
	Name:        "peer-match",
	Description: "The most similar users to the target, ordered by similarity.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"matches": map[string]any{
				"type":     "array",
				"maxItems": 5,
				"items": map[string]any{
					"type":    "string",
					"pattern": "^user_[0-9]+$",
				},
			},
		},
		"required":             []string{"matches"},
		"additionalProperties": false,
	},
}

var userIDPattern = regexp.MustCompile(`user_\d+`)

// Matcher finds students with similar trajectories via the LLM provider.
type Matcher struct {
	users    user.Repository
	provider llm.Provider
	log      *zap.Logger

	// MaxTokens bounds one reply. Zero means the provider default.
	MaxTokens int
}

// NewMatcher creates a matcher.
func NewMatcher(users user.Repository, provider llm.Provider, log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{users: users, provider: provider, log: log, MaxTokens: 1024}
}

// MatchPeers returns up to three user ids most similar to userID. The
// model answers twice: an initial pick, then a validation pass over its
// own answer; only the validated result is used.
func (m *Matcher) MatchPeers(ctx context.Context, userID string) ([]string, error) {
	target, err := m.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := m.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	base, err := buildMatchPrompt(userID, target, all)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "peer-match")

	first, err := m.generate(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("initial matching pass: %w", err)
	}

	validation := fmt.Sprintf(
		"%s\nInitial Matching Result:\n%s\n\nValidate the result above: check that every id exists in the database and that the picks really are the closest trajectories. Return the corrected final answer. Do not mention the validation step.",
		base, first)
	final, err := m.generate(ctx, validation)
	if err != nil {
		return nil, fmt.Errorf("validation pass: %w", err)
	}

	matches := extractUserIDs(final, userID)
	m.log.Info("peer match completed",
		zap.String("user_id", userID), zap.Strings("matches", matches))
	return matches, nil
}

func (m *Matcher) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.provider.Generate(ctx, llm.Request{
		System:    matchSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    matchSchema,
		MaxTokens: m.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return string(resp.Content), nil
}

// extractUserIDs pulls user ids out of a model answer. The structured
// {"matches": [...]} form is preferred; a plain-text answer falls back to
// pattern extraction. The target id is excluded and order is preserved.
func extractUserIDs(answer, selfID string) []string {
	var structured struct {
		Matches []string `json:"matches"`
	}
	candidates := userIDPattern.FindAllString(answer, -1)
	if err := json.Unmarshal([]byte(answer), &structured); err == nil && len(structured.Matches) > 0 {
		candidates = structured.Matches
	}

	seen := make(map[string]bool, len(candidates))
	var out []string
	for _, id := range candidates {
		if id == selfID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == matchLimit {
			break
		}
	}
	return out
}
