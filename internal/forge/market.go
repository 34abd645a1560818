package forge

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/store"
)

const (
	reviewPeriod = 7 * 24 * time.Hour

	titleMaxLen       = 100
	descriptionMaxLen = 500
	summaryMaxLen     = 300

	defaultTitle       = "Untitled Startup Idea"
	defaultDescription = "No description available."
)

// SubmitIdea promotes a session to the public marketplace. The session
// must meet the minimum completed-consideration count; the idea carries a
// value copy of the considerations, so later session edits don't leak into
// the published snapshot.
func (s *Service) SubmitIdea(sessionID string) (*models.Idea, error) {
	sess := s.LoadSession(sessionID)
	if !s.CompletionStatus(sess).CanSubmit {
		return nil, ErrCannotSubmit
	}

	now := time.Now()
	idea := &models.Idea{
		ID:             uuid.New().String(),
		SessionID:      sessionID,
		Title:          extractTitle(sess),
		Description:    extractDescription(sess),
		Considerations: snapshotConsiderations(sess.Considerations),
		SubmittedAt:    now,
		ReviewUntil:    now.Add(reviewPeriod),
		Status:         "under_review",
		Views:          0,
		Comments:       []models.Comment{},
	}

	if err := s.saveIdea(idea); err != nil {
		return nil, err
	}
	return idea, nil
}

// GetIdea loads one idea and increments its view counter, persisting the
// new count immediately. Concurrent reads race on the counter; a lost
// increment is acceptable.
func (s *Service) GetIdea(ideaID string) (*models.Idea, error) {
	idea, err := s.loadIdea(ideaID)
	if err != nil {
		return nil, err
	}

	idea.Views++
	if err := s.saveIdea(idea); err != nil {
		log.Printf("persisting view count for idea %s: %v", ideaID, err)
	}
	return idea, nil
}

// ListIdeas returns marketplace summaries sorted most recent first.
// Unreadable idea documents are skipped.
func (s *Service) ListIdeas() []models.IdeaSummary {
	docs, err := s.store.List(store.NamespaceIdeas)
	if err != nil {
		log.Printf("listing ideas: %v", err)
		return nil
	}

	summaries := make([]models.IdeaSummary, 0, len(docs))
	for _, doc := range docs {
		var idea models.Idea
		if err := json.Unmarshal(doc, &idea); err != nil {
			continue
		}
		summaries = append(summaries, Summarize(&idea))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].SubmittedAt.After(summaries[j].SubmittedAt)
	})
	return summaries
}

// AddComment appends a comment to a published idea. Comments are
// append-only; there is no edit or delete.
func (s *Service) AddComment(ideaID, author, content string) (*models.Comment, error) {
	idea, err := s.loadIdea(ideaID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(author) == "" {
		author = "Anonymous"
	}
	comment := models.Comment{
		ID:        uuid.New().String(),
		IdeaID:    ideaID,
		Author:    strings.TrimSpace(author),
		Content:   content,
		Timestamp: time.Now(),
	}
	idea.Comments = append(idea.Comments, comment)

	if err := s.saveIdea(idea); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Summarize projects an idea into its listing entry, with the tighter
// description cap used on the marketplace page.
func Summarize(idea *models.Idea) models.IdeaSummary {
	return models.IdeaSummary{
		ID:           idea.ID,
		Title:        idea.Title,
		Description:  truncate(idea.Description, summaryMaxLen),
		SubmittedAt:  idea.SubmittedAt,
		ReviewUntil:  idea.ReviewUntil,
		Status:       idea.Status,
		Views:        idea.Views,
		CommentCount: len(idea.Comments),
	}
}

func (s *Service) loadIdea(ideaID string) (*models.Idea, error) {
	data, err := s.store.Read(store.NamespaceIdeas, ideaID)
	if err != nil {
		return nil, err
	}
	var idea models.Idea
	if err := json.Unmarshal(data, &idea); err != nil {
		return nil, store.ErrNotFound
	}
	return &idea, nil
}

func (s *Service) saveIdea(idea *models.Idea) error {
	data, err := json.MarshalIndent(idea, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding idea %s: %w", idea.ID, err)
	}
	if err := s.store.Write(store.NamespaceIdeas, idea.ID, data); err != nil {
		return fmt.Errorf("saving idea %s: %w", idea.ID, err)
	}
	return nil
}

func snapshotConsiderations(src map[string]models.Consideration) map[string]models.Consideration {
	dst := make(map[string]models.Consideration, len(src))
	for id, c := range src {
		if c.Metadata != nil {
			meta := make(map[string]any, len(c.Metadata))
			for k, v := range c.Metadata {
				meta[k] = v
			}
			c.Metadata = meta
		}
		dst[id] = c
	}
	return dst
}

// extractTitle uses the first sentence of the problem definition.
func extractTitle(sess *models.Session) string {
	problem := strings.TrimSpace(contentOf(sess.Considerations["problem_definition"]))
	if problem == "" {
		return defaultTitle
	}
	title, _, _ := strings.Cut(problem, ".")
	title = strings.TrimSpace(title)
	if title == "" {
		return defaultTitle
	}
	return truncate(title, titleMaxLen)
}

// extractDescription concatenates the three core considerations.
func extractDescription(sess *models.Session) string {
	var parts []string
	for _, fieldID := range []string{"problem_definition", "solution_approach", "target_market"} {
		content := strings.TrimSpace(contentOf(sess.Considerations[fieldID]))
		if content != "" {
			parts = append(parts, content)
		}
	}

	description := strings.Join(parts, " ")
	if description == "" {
		return defaultDescription
	}
	return truncate(description, descriptionMaxLen)
}

// truncate caps text at max characters, cutting on a rune boundary so
// multibyte content never persists as invalid UTF-8.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
