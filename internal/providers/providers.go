// Package providers wraps third-party chat-completion APIs behind a
// single interface: an ordered sequence of role-tagged messages in, one
// assistant text reply out.
package providers

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role    Role
	Content string
}

// LLMClient is the opaque completion function the rest of the app sees.
// Implementations may fail with network, auth, or rate-limit errors;
// callers are expected to degrade rather than propagate those.
type LLMClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
