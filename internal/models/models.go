package models

import (
	"encoding/json"
	"time"
)

// Session accumulates one ideation conversation: the current state of each
// consideration plus the recent chat history. Sessions are lazily created
// on first access and never deleted.
type Session struct {
	SessionID      string                   `json:"session_id"`
	CreatedAt      time.Time                `json:"created_at"`
	LastUpdated    time.Time                `json:"last_updated"`
	Considerations map[string]Consideration `json:"considerations"`
	ChatHistory    []ChatTurn               `json:"chat_history"`
}

// Consideration is the state of a single consideration field. Older data
// may persist a consideration as a bare JSON string; UnmarshalJSON accepts
// that form and flags it so readers can compute completeness on demand.
type Consideration struct {
	Content       string         `json:"content"`
	PreviousValue string         `json:"previous_value"`
	Metadata      map[string]any `json:"metadata"`
	IsComplete    bool           `json:"is_complete"`

	// Legacy marks a value decoded from the old bare-string representation.
	// Its IsComplete field is meaningless until the record is rewritten.
	Legacy bool `json:"-"`
}

func (c *Consideration) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		*c = Consideration{Content: legacy, Legacy: true}
		return nil
	}

	type plain Consideration
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Consideration(p)
	return nil
}

// MarshalJSON always writes the structured form, upgrading legacy values
// on the next save.
func (c Consideration) MarshalJSON() ([]byte, error) {
	type plain Consideration
	p := plain(c)
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	return json.Marshal(p)
}

// ChatTurn is one user message and the assistant's reply. Turns are
// immutable once appended.
type ChatTurn struct {
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
}

// Idea is a published snapshot of a session. Its considerations are a
// value copy; later session edits do not affect it. Only the view counter
// and the comment list change after submission.
type Idea struct {
	ID             string                   `json:"id"`
	SessionID      string                   `json:"session_id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	Considerations map[string]Consideration `json:"considerations"`
	SubmittedAt    time.Time                `json:"submitted_at"`
	ReviewUntil    time.Time                `json:"review_until"`
	Status         string                   `json:"status"` // "under_review"
	Views          int                      `json:"views"`
	Comments       []Comment                `json:"comments"`
}

type Comment struct {
	ID        string    `json:"id"`
	IdeaID    string    `json:"idea_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// IdeaSummary is the marketplace listing projection of an Idea.
type IdeaSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SubmittedAt  time.Time `json:"submitted_at"`
	ReviewUntil  time.Time `json:"review_until"`
	Status       string    `json:"status"`
	Views        int       `json:"views"`
	CommentCount int       `json:"comment_count"`
}
