// Package forge implements the consideration state model: merging chat
// turns and direct edits into per-field state, scoring completion, and
// projecting finished sessions into marketplace ideas.
package forge

import (
	"errors"
	"strings"

	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/store"
)

var (
	// ErrInvalidField is returned when an update names an unknown
	// consideration id. The session is left untouched.
	ErrInvalidField = errors.New("unknown consideration id")

	// ErrCannotSubmit is returned when a session does not meet the
	// minimum completed-consideration count.
	ErrCannotSubmit = errors.New("not enough completed considerations")
)

// Service mediates between the document store and the consideration state
// model. It performs whole-document reads and writes with no concurrency
// control: two racing requests on the same session apply last-write-wins.
type Service struct {
	store store.Store
	cfg   *config.Config
}

func NewService(st store.Store, cfg *config.Config) *Service {
	return &Service{store: st, cfg: cfg}
}

func (s *Service) Config() *config.Config {
	return s.cfg
}

// WordCount counts whitespace-separated words, the unit of the completion
// threshold.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// contentOf normalizes the legacy-vs-structured duality down to the
// current text.
func contentOf(c models.Consideration) string {
	return c.Content
}

// isComplete evaluates a consideration against the word threshold. Legacy
// values have no trustworthy is_complete flag, so their word count is
// computed on demand.
func isComplete(c models.Consideration, minWords int) bool {
	if c.Legacy {
		return WordCount(strings.TrimSpace(c.Content)) >= minWords
	}
	return c.IsComplete
}
