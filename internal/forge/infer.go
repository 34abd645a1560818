package forge

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/models"
)

const (
	// maxInferredUpdates caps how many placeholder fields one turn can fill.
	maxInferredUpdates = 3
	// minContentChars is the floor below which existing content counts as
	// thin and may be overwritten by a placeholder.
	minContentChars = 50
	// messagePrefixLen is how much of the user message gets embedded in a
	// placeholder.
	messagePrefixLen = 100
)

// fieldTrigger maps a consideration to the keywords that suggest the user
// is talking about it, with the placeholder template used when it fires.
// Kept as an explicit ordered table so the heuristic is tunable and
// testable on its own.
type fieldTrigger struct {
	fieldID  string
	keywords []string
	template string
}

var fieldTriggers = []fieldTrigger{
	{"problem_definition", []string{"problem", "issue", "challenge"}, "Based on the conversation, the problem involves %s..."},
	{"target_market", []string{"market", "customer", "user", "target"}, "Target market analysis based on: %s..."},
	{"solution_approach", []string{"solution", "approach", "how", "method"}, "Solution approach considering: %s..."},
	{"competitive_analysis", []string{"competitor", "competition", "competitive"}, "Competitive analysis based on: %s..."},
	{"business_model", []string{"business", "revenue", "money", "model"}, "Business model considerations: %s..."},
	{"technical_feasibility", []string{"technical", "technology", "feasibility", "tech"}, "Technical feasibility analysis: %s..."},
	{"team_structure", []string{"team", "people", "hire", "role"}, "Team structure considerations: %s..."},
	{"growth_strategy", []string{"growth", "scale", "expand", "strategy"}, "Growth strategy based on: %s..."},
}

// InferUpdates guesses which considerations a user message is relevant to
// when the assistant reply carried no structured block. The output is
// placeholder text the user is expected to revise, never final content.
// It fills at most maxInferredUpdates fields and never touches a field
// whose existing content is already substantial.
func InferUpdates(cfg *config.Config, userMessage string, sess *models.Session) map[string]string {
	updates := map[string]string{}
	messageLower := strings.ToLower(userMessage)
	prefix := userMessage
	if runes := []rune(prefix); len(runes) > messagePrefixLen {
		prefix = string(runes[:messagePrefixLen])
	}

	var considerations map[string]models.Consideration
	if sess != nil {
		considerations = sess.Considerations
	}

	for _, trigger := range fieldTriggers {
		if len(updates) >= maxInferredUpdates {
			break
		}
		if !cfg.IsValidField(trigger.fieldID) {
			continue
		}
		if !matchesAny(messageLower, trigger.keywords) {
			continue
		}
		if hasContent(considerations[trigger.fieldID]) {
			continue
		}
		updates[trigger.fieldID] = fmt.Sprintf(trigger.template, prefix)
	}

	// Top up with still-empty fields, in configured order, until the cap.
	for _, fieldID := range cfg.FieldIDs() {
		if len(updates) >= maxInferredUpdates {
			break
		}
		if _, done := updates[fieldID]; done {
			continue
		}
		if hasContent(considerations[fieldID]) {
			continue
		}
		updates[fieldID] = fmt.Sprintf("Basic %s considerations based on the startup idea...",
			strings.ReplaceAll(fieldID, "_", " "))
	}

	return updates
}

func matchesAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

func hasContent(c models.Consideration) bool {
	return utf8.RuneCountInString(strings.TrimSpace(c.Content)) >= minContentChars
}
