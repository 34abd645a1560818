package forge

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/models"
)

func emptySession() *models.Session {
	return &models.Session{Considerations: map[string]models.Consideration{}}
}

func TestInferUpdatesKeywordMatch(t *testing.T) {
	cfg := config.Default()
	updates := InferUpdates(cfg, "The problem is clinics lose track of their market", emptySession())

	require.Contains(t, updates, "problem_definition")
	require.Contains(t, updates, "target_market")
}

func TestInferUpdatesNeverExceedsCap(t *testing.T) {
	cfg := config.Default()
	// Hits nearly every trigger set at once.
	msg := "problem market solution competitor business technical team growth"

	updates := InferUpdates(cfg, msg, emptySession())

	require.LessOrEqual(t, len(updates), 3)
}

func TestInferUpdatesTopsUpEmptyFields(t *testing.T) {
	cfg := config.Default()
	// No keywords at all: the cap is filled from the configured field
	// order instead.
	updates := InferUpdates(cfg, "hello there", emptySession())

	require.Len(t, updates, 3)
	require.Contains(t, updates, "problem_definition")
	require.Contains(t, updates, "target_market")
	require.Contains(t, updates, "solution_approach")
}

func TestInferUpdatesSkipsSubstantialContent(t *testing.T) {
	cfg := config.Default()
	sess := emptySession()
	sess.Considerations["problem_definition"] = models.Consideration{
		Content: strings.Repeat("already written content ", 5), // well over 50 chars
	}

	updates := InferUpdates(cfg, "the problem is big", sess)

	require.NotContains(t, updates, "problem_definition")
}

func TestInferUpdatesExactly50CharsIsSubstantial(t *testing.T) {
	cfg := config.Default()
	sess := emptySession()
	sess.Considerations["problem_definition"] = models.Consideration{
		Content: strings.Repeat("x", 50),
	}

	updates := InferUpdates(cfg, "the problem is big", sess)

	require.NotContains(t, updates, "problem_definition")
}

func TestInferUpdatesEmbedsMessagePrefix(t *testing.T) {
	cfg := config.Default()
	updates := InferUpdates(cfg, "the problem is handwritten records", emptySession())

	require.Contains(t, updates["problem_definition"], "the problem is handwritten records")
}

func TestInferUpdatesLongMultibytePrefixStaysValid(t *testing.T) {
	cfg := config.Default()
	msg := "problem " + strings.Repeat("市場の課題", 30)

	updates := InferUpdates(cfg, msg, emptySession())

	placeholder := updates["problem_definition"]
	require.NotEmpty(t, placeholder)
	require.True(t, utf8.ValidString(placeholder))
}

func TestInferUpdatesOnlyConfiguredFields(t *testing.T) {
	cfg := config.Default()
	updates := InferUpdates(cfg, "problem market solution team growth", emptySession())

	for fieldID := range updates {
		require.True(t, cfg.IsValidField(fieldID), "unexpected field %s", fieldID)
	}
}

func TestInferUpdatesNilSession(t *testing.T) {
	cfg := config.Default()
	updates := InferUpdates(cfg, "we have a problem", nil)

	require.NotEmpty(t, updates)
	require.LessOrEqual(t, len(updates), 3)
}
