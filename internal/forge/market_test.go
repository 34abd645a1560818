package forge

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/apocrypha/forge/internal/store"
)

// completeSession fills n considerations past the word threshold.
func completeSession(t *testing.T, svc *Service, sessionID string, n int) {
	t.Helper()
	fields := svc.cfg.FieldIDs()
	for i := 0; i < n; i++ {
		content := words(100)
		if fields[i] == "problem_definition" {
			content = "Rural clinics lose patient records. " + content
		}
		_, err := svc.UpdateConsideration(sessionID, fields[i], content)
		require.NoError(t, err)
	}
}

func TestSubmitIdeaRejectsIncompleteSession(t *testing.T) {
	svc := newTestService(t)
	completeSession(t, svc, "s1", 4)

	_, err := svc.SubmitIdea("s1")
	require.ErrorIs(t, err, ErrCannotSubmit)
}

func TestSubmitIdeaCreatesSnapshot(t *testing.T) {
	svc := newTestService(t)
	completeSession(t, svc, "s1", 6)

	idea, err := svc.SubmitIdea("s1")
	require.NoError(t, err)
	require.NotEmpty(t, idea.ID)
	require.Equal(t, "s1", idea.SessionID)
	require.Equal(t, "under_review", idea.Status)
	require.Equal(t, 0, idea.Views)
	require.WithinDuration(t, idea.SubmittedAt.Add(7*24*time.Hour), idea.ReviewUntil, time.Second)

	// Later session edits must not alter the published idea.
	_, err = svc.UpdateConsideration("s1", "problem_definition", "completely different now")
	require.NoError(t, err)

	stored, err := svc.loadIdea(idea.ID)
	require.NoError(t, err)
	require.Contains(t, stored.Considerations["problem_definition"].Content, "Rural clinics")
}

func TestSubmitIdeaTitleFromProblemDefinition(t *testing.T) {
	svc := newTestService(t)
	completeSession(t, svc, "s1", 6)

	idea, err := svc.SubmitIdea("s1")
	require.NoError(t, err)
	require.Equal(t, "Rural clinics lose patient records", idea.Title)
}

func TestExtractTitleDefaultsAndTruncates(t *testing.T) {
	svc := newTestService(t)

	sess := svc.LoadSession("s1")
	require.Equal(t, "Untitled Startup Idea", extractTitle(sess))

	long := strings.Repeat("a", 150)
	mergeConsideration(sess, "problem_definition", long, 100)
	title := extractTitle(sess)
	require.Len(t, title, 103)
	require.True(t, strings.HasSuffix(title, "..."))
}

func TestTitleAndDescriptionTruncateOnRuneBoundary(t *testing.T) {
	svc := newTestService(t)

	sess := svc.LoadSession("s1")
	mergeConsideration(sess, "problem_definition", strings.Repeat("界", 120), 100)
	mergeConsideration(sess, "solution_approach", strings.Repeat("解", 600), 100)

	title := extractTitle(sess)
	require.True(t, utf8.ValidString(title))
	require.Equal(t, 103, utf8.RuneCountInString(title))
	require.True(t, strings.HasSuffix(title, "..."))

	description := extractDescription(sess)
	require.True(t, utf8.ValidString(description))
	require.Equal(t, 503, utf8.RuneCountInString(description))
}

func TestExtractDescriptionConcatenatesCoreFields(t *testing.T) {
	svc := newTestService(t)

	sess := svc.LoadSession("s1")
	mergeConsideration(sess, "problem_definition", "Problem.", 100)
	mergeConsideration(sess, "target_market", "Market.", 100)
	mergeConsideration(sess, "solution_approach", "Solution.", 100)

	require.Equal(t, "Problem. Solution. Market.", extractDescription(sess))
}

func TestExtractDescriptionDefault(t *testing.T) {
	svc := newTestService(t)
	sess := svc.LoadSession("s1")
	require.Equal(t, "No description available.", extractDescription(sess))
}

func TestGetIdeaIncrementsViews(t *testing.T) {
	svc := newTestService(t)
	completeSession(t, svc, "s1", 6)
	idea, err := svc.SubmitIdea("s1")
	require.NoError(t, err)

	first, err := svc.GetIdea(idea.ID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Views)

	second, err := svc.GetIdea(idea.ID)
	require.NoError(t, err)
	require.Equal(t, 2, second.Views)
}

func TestGetIdeaNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetIdea("missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddCommentAppends(t *testing.T) {
	svc := newTestService(t)
	completeSession(t, svc, "s1", 6)
	idea, err := svc.SubmitIdea("s1")
	require.NoError(t, err)

	c1, err := svc.AddComment(idea.ID, "", "love it")
	require.NoError(t, err)
	require.Equal(t, "Anonymous", c1.Author)
	require.Equal(t, idea.ID, c1.IdeaID)

	c2, err := svc.AddComment(idea.ID, "Sam", "me too")
	require.NoError(t, err)
	require.Equal(t, "Sam", c2.Author)

	stored, err := svc.loadIdea(idea.ID)
	require.NoError(t, err)
	require.Len(t, stored.Comments, 2)
	require.Equal(t, "love it", stored.Comments[0].Content)
}

func TestAddCommentMissingIdea(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddComment("missing", "Sam", "hello")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListIdeasSortedNewestFirst(t *testing.T) {
	svc := newTestService(t)

	completeSession(t, svc, "s1", 6)
	first, err := svc.SubmitIdea("s1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	completeSession(t, svc, "s2", 6)
	second, err := svc.SubmitIdea("s2")
	require.NoError(t, err)

	summaries := svc.ListIdeas()
	require.Len(t, summaries, 2)
	require.Equal(t, second.ID, summaries[0].ID)
	require.Equal(t, first.ID, summaries[1].ID)
}

func TestSummarizeTruncatesDescription(t *testing.T) {
	svc := newTestService(t)
	completeSession(t, svc, "s1", 6)
	idea, err := svc.SubmitIdea("s1")
	require.NoError(t, err)

	summary := Summarize(idea)
	require.LessOrEqual(t, len(summary.Description), 303)
	require.Equal(t, len(idea.Comments), summary.CommentCount)
}
