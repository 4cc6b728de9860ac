package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/devfolio/devfolio/backend/internal/portfolio"
	"github.com/devfolio/devfolio/backend/pkg/logger"
	"github.com/devfolio/devfolio/backend/pkg/metrics"
)

// historyLimit bounds how many prior turns are forwarded to the model.
const historyLimit = 6

// ErrAllModelsFailed is returned when every model in the fallback chain was
// reported unavailable by the provider.
var ErrAllModelsFailed = errors.New("all configured models failed")

// ContextSource supplies the live portfolio data folded into the system
// prompt. *portfolio.Service satisfies it.
type ContextSource interface {
	ListProjects(ctx context.Context) ([]*portfolio.Project, error)
	ListExperience(ctx context.Context) ([]*portfolio.Experience, error)
}

// Turn is one prior exchange supplied by the client; the server holds no
// conversation state.
type Turn struct {
	Role    string `json:"role"` // "user" | "bot"
	Content string `json:"content"`
}

// Reply is the chat response. Err is set when the canned fallback was used;
// the HTTP status is still 200 in that case.
type Reply struct {
	Response       string   `json:"response"`
	QuickReplies   []string `json:"quickReplies"`
	ConversationID string   `json:"conversationId"`
	Timestamp      string   `json:"timestamp"`
	Model          string   `json:"model,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"`
	Err            string   `json:"error,omitempty"`
}

// Service assembles the prompt from live portfolio data and walks the model
// fallback chain.
type Service struct {
	completer Completer
	source    ContextSource
	cache     *contextCache
	models    []string
	operator  string
	enabled   bool
}

// NewService builds the chatbot service. enabled=false (no API key) makes
// every request short-circuit to the canned direct-contact response.
func NewService(completer Completer, source ContextSource, redisClient *redis.Client, models []string, operator string, enabled bool) *Service {
	return &Service{
		completer: completer,
		source:    source,
		cache:     newContextCache(redisClient, 5*time.Minute),
		models:    models,
		operator:  operator,
		enabled:   enabled,
	}
}

// Respond never fails from the caller's perspective: every error path
// degrades to a canned reply carrying the operator's contact address.
func (s *Service) Respond(ctx context.Context, message string, history []Turn) Reply {
	if !s.enabled {
		metrics.ChatbotRequests.WithLabelValues("canned").Inc()
		return s.cannedReply(message, "")
	}

	text, model, err := s.answer(ctx, message, history)
	if err != nil {
		logger.Errorf("chatbot pipeline failed: %v", err)
		metrics.ChatbotRequests.WithLabelValues("fallback").Inc()
		return s.cannedReply(message, "llm_unavailable")
	}

	metrics.ChatbotRequests.WithLabelValues("answered").Inc()
	return Reply{
		Response:       text,
		QuickReplies:   suggestReplies(message, text),
		ConversationID: uuid.NewString(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Model:          model,
		Confidence:     0.9,
	}
}

func (s *Service) answer(ctx context.Context, message string, history []Turn) (string, string, error) {
	system, err := s.systemPrompt(ctx)
	if err != nil {
		return "", "", fmt.Errorf("assemble context: %w", err)
	}

	msgs := make([]ChatMessage, 0, historyLimit+2)
	msgs = append(msgs, ChatMessage{Role: "system", Content: system})
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, t := range history {
		role := "user"
		if t.Role == "bot" || t.Role == "assistant" {
			role = "assistant"
		}
		msgs = append(msgs, ChatMessage{Role: role, Content: t.Content})
	}
	msgs = append(msgs, ChatMessage{Role: "user", Content: message})

	return s.complete(ctx, msgs)
}

// complete walks the fallback chain. Only "model unavailable" errors advance
// to the next model; anything else propagates immediately.
func (s *Service) complete(ctx context.Context, msgs []ChatMessage) (string, string, error) {
	for _, model := range s.models {
		text, err := s.completer.Complete(ctx, model, msgs)
		if err == nil {
			return text, model, nil
		}
		if isModelUnavailable(err) {
			logger.Warnf("model %s unavailable, trying next: %v", model, err)
			metrics.ChatbotModelFallbacks.WithLabelValues(model).Inc()
			continue
		}
		return "", "", err
	}
	return "", "", ErrAllModelsFailed
}

// isModelUnavailable classifies provider errors that mean the model itself is
// gone (decommissioned, renamed, not served) rather than a transient failure.
func isModelUnavailable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 400 || apiErr.StatusCode == 404 {
			return true
		}
		msg := strings.ToLower(apiErr.Message)
		for _, marker := range []string{"decommissioned", "deprecated", "not found", "does not exist", "no longer supported"} {
			if strings.Contains(msg, marker) {
				return true
			}
		}
	}
	return false
}

func (s *Service) systemPrompt(ctx context.Context) (string, error) {
	if cached, ok := s.cache.get(ctx); ok {
		return cached, nil
	}

	projects, err := s.source.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	experience, err := s.source.ListExperience(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are the assistant on a personal portfolio website. ")
	b.WriteString("Answer questions about the site owner's work, skills and experience, ")
	b.WriteString("concisely and in a friendly tone. ")
	fmt.Fprintf(&b, "For direct contact, point visitors to %s.\n\n", s.operator)

	b.WriteString("Projects:\n")
	for _, p := range projects {
		techs := p.Technologies
		if len(techs) > 3 {
			techs = techs[:3]
		}
		fmt.Fprintf(&b, "- %s (%s)\n", p.Title, strings.Join(techs, ", "))
	}

	b.WriteString("\nExperience:\n")
	for _, e := range experience {
		tense := "previously"
		if e.IsCurrentRole {
			tense = "currently"
		}
		fmt.Fprintf(&b, "- %s %s at %s\n", tense, e.Position, e.Company)
	}

	prompt := b.String()
	s.cache.set(ctx, prompt)
	return prompt, nil
}

// cannedReply is the degraded response used when no model could answer.
func (s *Service) cannedReply(message, errMarker string) Reply {
	return Reply{
		Response: fmt.Sprintf(
			"I can't reach my language model right now, but you can reach the site owner directly at %s - they usually reply within a day or two.",
			s.operator),
		QuickReplies:   suggestReplies(message, "contact"),
		ConversationID: uuid.NewString(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Err:            errMarker,
	}
}
