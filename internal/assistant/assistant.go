// Package assistant turns a user chat message plus session state into an
// assistant reply and a set of consideration updates. Provider failures
// never escape: the caller always gets usable text and a (possibly empty)
// update map.
package assistant

import (
	"context"
	"log"
	"time"

	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/forge"
	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/providers"
)

const timeout = 120 * time.Second

// historyWindow is how many recent turns are replayed to the model.
const historyWindow = 10

const (
	unavailableNotice = "I'm sorry, but the AI assistant is not currently available. Please check that the OpenAI API key is properly configured."
	apologyNotice     = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."
)

type Assistant struct {
	client providers.LLMClient
	cfg    *config.Config
}

// Result is what a chat turn produces: the user-visible reply and the
// structured or inferred consideration updates to merge.
type Result struct {
	Response string
	Updates  map[string]string
}

// New builds an assistant. client may be nil, in which case every turn
// answers with a fixed unavailable notice.
func New(client providers.LLMClient, cfg *config.Config) *Assistant {
	return &Assistant{client: client, cfg: cfg}
}

// Respond runs one chat turn. On provider failure it substitutes a fixed
// apology and no updates. When the reply carries no structured updates
// block, keyword inference supplies placeholder updates instead.
func (a *Assistant) Respond(ctx context.Context, userMessage string, sess *models.Session) Result {
	if a.client == nil {
		return Result{Response: unavailableNotice, Updates: map[string]string{}}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := a.client.Complete(ctx, a.buildMessages(userMessage, sess))
	if err != nil {
		log.Printf("chat completion: %v", err)
		return Result{Response: apologyNotice, Updates: map[string]string{}}
	}

	visible, updates := forge.ParseAssistantReply(reply)
	if len(updates) == 0 {
		updates = forge.InferUpdates(a.cfg, userMessage, sess)
	}
	return Result{Response: visible, Updates: updates}
}

func (a *Assistant) buildMessages(userMessage string, sess *models.Session) []providers.ChatMessage {
	messages := []providers.ChatMessage{
		{Role: providers.RoleSystem, Content: a.systemPrompt(sess)},
	}

	history := sess.ChatHistory
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, turn := range history {
		messages = append(messages,
			providers.ChatMessage{Role: providers.RoleUser, Content: turn.UserMessage},
			providers.ChatMessage{Role: providers.RoleAssistant, Content: turn.AIResponse},
		)
	}

	return append(messages, providers.ChatMessage{Role: providers.RoleUser, Content: userMessage})
}
