// Package notify lets the operator hear about marketplace submissions.
// Delivery is best effort: failures are logged and never surfaced to the
// submitting user.
package notify

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"

	"github.com/apocrypha/forge/internal/models"
)

type Notifier interface {
	IdeaSubmitted(idea *models.Idea)
}

type SlackNotifier struct {
	api     *slack.Client
	channel string
}

// NewSlack returns nil when token or channel is empty, disabling
// notifications.
func NewSlack(token, channel string) *SlackNotifier {
	if token == "" || channel == "" {
		return nil
	}
	return &SlackNotifier{
		api:     slack.New(token),
		channel: channel,
	}
}

func (n *SlackNotifier) IdeaSubmitted(idea *models.Idea) {
	text := fmt.Sprintf("New idea submitted to the marketplace: %q (review until %s)",
		idea.Title, idea.ReviewUntil.Format("2006-01-02"))
	_, _, err := n.api.PostMessage(
		n.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		log.Printf("posting submission notification: %v", err)
	}
}
