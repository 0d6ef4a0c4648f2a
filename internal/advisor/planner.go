package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/llm"
	"github.com/zhihang-app/zhihang/internal/user"
)

// Planner generates personalized learning-plan recommendations, keeping a
// per-user conversation so follow-up demands refine earlier answers.
type Planner struct {
	users    user.Repository
	catalogs catalog.Source
	provider llm.Provider
	sessions *SessionStore
	log      *zap.Logger

	// MaxTokens bounds one reply. Zero means the provider default.
	MaxTokens int
}

// NewPlanner creates a planner.
func NewPlanner(users user.Repository, catalogs catalog.Source, provider llm.Provider, sessions *SessionStore, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		users:     users,
		catalogs:  catalogs,
		provider:  provider,
		sessions:  sessions,
		log:       log,
		MaxTokens: 4096,
	}
}

// Recommend answers one demand in the user's plan dialogue and returns the
// advisor's reply. The first call of a session loads and freezes the
// catalog context; later calls only append to the conversation.
func (p *Planner) Recommend(ctx context.Context, userID, demand string) (string, error) {
	rec, err := p.users.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	sess, ok := p.sessions.Get(userID)
	if !ok {
		base, err := p.buildBase(ctx, rec)
		if err != nil {
			return "", err
		}
		sess = p.sessions.Create(userID, base)
		p.log.Info("plan session started",
			zap.String("user_id", userID), zap.String("session_id", sess.ID))
	}

	sess.Turns = append(sess.Turns, Turn{Role: llm.RoleUser, Content: demand})

	messages := make([]llm.Message, 0, len(sess.Turns)+1)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: sess.BasePrompt})
	for _, t := range sess.Turns {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}

	resp, err := p.provider.Generate(llm.WithPurpose(ctx, "plan-recommend"), llm.Request{
		System:    planSystemPrompt,
		Messages:  messages,
		MaxTokens: p.MaxTokens,
	})
	if err != nil {
		// Drop the unanswered turn so a retry does not double it.
		sess.Turns = sess.Turns[:len(sess.Turns)-1]
		return "", fmt.Errorf("generate recommendation: %w", err)
	}

	reply := rawToText(resp.Content)
	sess.Turns = append(sess.Turns, Turn{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

// ResetSession discards the user's plan conversation.
func (p *Planner) ResetSession(userID string) {
	p.sessions.Reset(userID)
}

func (p *Planner) buildBase(ctx context.Context, rec *user.Record) (string, error) {
	courses, err := p.catalogs.Load(ctx, catalog.KindCourses)
	if err != nil {
		return "", fmt.Errorf("load courses catalog: %w", err)
	}
	research, err := p.catalogs.Load(ctx, catalog.KindResearch)
	if err != nil {
		return "", fmt.Errorf("load research catalog: %w", err)
	}
	competitions, err := p.catalogs.Load(ctx, catalog.KindCompetitions)
	if err != nil {
		return "", fmt.Errorf("load competitions catalog: %w", err)
	}
	reqs, err := p.catalogs.Requirements(ctx)
	if err != nil {
		return "", fmt.Errorf("load requirements catalog: %w", err)
	}
	return buildPlanBasePrompt(rec, courses, research, competitions, reqs)
}

// rawToText unwraps a schema-less response: providers return plain text,
// which may or may not arrive as a quoted JSON string.
func rawToText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
