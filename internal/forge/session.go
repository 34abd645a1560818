package forge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/store"
)

// maxChatHistory bounds the retained conversation; older turns are dropped
// FIFO on append.
const maxChatHistory = 50

// LoadSession returns the stored session, or a fresh empty one when the
// document is missing or unreadable. Loading never fails from the caller's
// point of view.
func (s *Service) LoadSession(sessionID string) *models.Session {
	data, err := s.store.Read(store.NamespaceSessions, sessionID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("loading session %s: %v", sessionID, err)
		}
		return newSession(sessionID)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Printf("parsing session %s: %v", sessionID, err)
		return newSession(sessionID)
	}
	if sess.Considerations == nil {
		sess.Considerations = map[string]models.Consideration{}
	}
	// Documents written before timestamps were recorded decode with zero
	// times; backfill so they render and sort sensibly.
	now := time.Now()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	if sess.LastUpdated.IsZero() {
		sess.LastUpdated = now
	}
	sess.SessionID = sessionID
	return &sess
}

func newSession(sessionID string) *models.Session {
	now := time.Now()
	return &models.Session{
		SessionID:      sessionID,
		CreatedAt:      now,
		LastUpdated:    now,
		Considerations: map[string]models.Consideration{},
	}
}

// SaveSession persists the whole session document and bumps last_updated.
func (s *Service) SaveSession(sess *models.Session) error {
	sess.LastUpdated = time.Now()
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", sess.SessionID, err)
	}
	if err := s.store.Write(store.NamespaceSessions, sess.SessionID, data); err != nil {
		return fmt.Errorf("saving session %s: %w", sess.SessionID, err)
	}
	return nil
}

// AddTurn appends a chat turn and persists the session, trimming history
// to the most recent maxChatHistory turns.
func (s *Service) AddTurn(sessionID, userMessage, aiResponse string) error {
	sess := s.LoadSession(sessionID)
	sess.ChatHistory = append(sess.ChatHistory, models.ChatTurn{
		Timestamp:   time.Now(),
		UserMessage: userMessage,
		AIResponse:  aiResponse,
	})
	if len(sess.ChatHistory) > maxChatHistory {
		sess.ChatHistory = sess.ChatHistory[len(sess.ChatHistory)-maxChatHistory:]
	}
	return s.SaveSession(sess)
}

// UpdateConsideration merges new content into one field and persists the
// whole session. The field's existing content moves to previous_value and
// is_complete is recomputed from the new content's word count.
func (s *Service) UpdateConsideration(sessionID, fieldID, content string) (*models.Session, error) {
	if !s.cfg.IsValidField(fieldID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidField, fieldID)
	}

	sess := s.LoadSession(sessionID)
	mergeConsideration(sess, fieldID, content, s.cfg.Requirements.MinWordsPerConsideration)
	if err := s.SaveSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ApplyUpdates merges a batch of field updates, such as those parsed from
// an assistant reply. Unknown field ids are skipped with a log line rather
// than failing the batch.
func (s *Service) ApplyUpdates(sessionID string, updates map[string]string) {
	for fieldID, content := range updates {
		if _, err := s.UpdateConsideration(sessionID, fieldID, content); err != nil {
			log.Printf("updating consideration %s: %v", fieldID, err)
		}
	}
}

func mergeConsideration(sess *models.Session, fieldID, content string, minWords int) {
	complete := WordCount(content) >= minWords

	prev, ok := sess.Considerations[fieldID]
	switch {
	case !ok:
		sess.Considerations[fieldID] = models.Consideration{
			Content:       content,
			PreviousValue: "",
			Metadata:      map[string]any{},
			IsComplete:    complete,
		}
	case prev.Legacy:
		// Normalize the old bare-string form: the legacy text becomes the
		// previous value and the record is rewritten structured.
		sess.Considerations[fieldID] = models.Consideration{
			Content:       content,
			PreviousValue: prev.Content,
			Metadata:      map[string]any{},
			IsComplete:    complete,
		}
	default:
		prev.PreviousValue = prev.Content
		prev.Content = content
		prev.IsComplete = complete
		sess.Considerations[fieldID] = prev
	}
}
