package assistant

import (
	"fmt"
	"strings"

	"github.com/apocrypha/forge/internal/forge"
	"github.com/apocrypha/forge/internal/models"
)

const systemPromptTemplate = `FORMATTING RULE: Use ONLY plain text. NO bold, NO asterisks, NO markdown, NO special formatting. Just regular text.

You are the Agentic Startup Factory (ASF), an AI assistant that helps ideators refine startup ideas through structured considerations. You guide users through %d core consideration categories to develop comprehensive startup concepts.

Your role is to:
1. Ask insightful questions to help develop ideas
2. Provide constructive feedback and suggestions
3. Guide users toward completing all considerations
4. Maintain focus on practical, actionable advice
5. Encourage ethical business practices and community collaboration
6. Suggest when considerations need more detail (minimum %d words each)
7. AUTO-FILL consideration content based on the conversation
8. Ask about remaining incomplete considerations

RESPONSE LENGTH: Keep responses concise and focused. Aim for 2-3 sentences per point. Avoid lengthy explanations unless specifically requested.

MANDATORY: After your conversational response, you MUST include consideration updates in this exact format:

%s
[consideration_id]: [content]
%s

Current session context:
%s

Be conversational, supportive, and focus on helping the user develop a strong startup concept. Use plain text without any formatting. Always ask about remaining incomplete considerations. ALWAYS include the consideration updates section at the end of your response.`

// contextSummaryLen caps the per-field preview embedded in the prompt.
const contextSummaryLen = 150

func (a *Assistant) systemPrompt(sess *models.Session) string {
	return fmt.Sprintf(systemPromptTemplate,
		len(a.cfg.Considerations),
		a.cfg.Requirements.MinWordsPerConsideration,
		forge.UpdatesStartMarker,
		forge.UpdatesEndMarker,
		a.buildContext(sess),
	)
}

// buildContext renders the session's consideration state so the model
// knows what is complete, incomplete, or untouched.
func (a *Assistant) buildContext(sess *models.Session) string {
	if sess == nil || len(sess.Considerations) == 0 {
		return "New session - no previous considerations completed."
	}

	minWords := a.cfg.Requirements.MinWordsPerConsideration
	var parts []string

	completed := 0
	for _, c := range sess.Considerations {
		if forge.WordCount(strings.TrimSpace(c.Content)) >= minWords {
			completed++
		}
	}
	parts = append(parts, fmt.Sprintf("Completed considerations: %d/%d", completed, len(a.cfg.Considerations)))

	for _, def := range a.cfg.Considerations {
		c := sess.Considerations[def.ID]
		content := strings.TrimSpace(c.Content)
		if content == "" {
			parts = append(parts, fmt.Sprintf("%s: NOT STARTED", def.Title))
			continue
		}

		summary := content
		if runes := []rune(summary); len(runes) > contextSummaryLen {
			summary = string(runes[:contextSummaryLen]) + "..."
		}
		status := "INCOMPLETE"
		if forge.WordCount(content) >= minWords {
			status = "COMPLETE"
		}
		parts = append(parts, fmt.Sprintf("%s: %s - %s", def.Title, status, summary))
	}

	return strings.Join(parts, "\n")
}
