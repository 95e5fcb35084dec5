package integrations

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
)

// Ensure SlackDeliverer implements the Deliverer interface.
var _ Deliverer = (*SlackDeliverer)(nil)

// SlackDeliverer posts generated RFPs into a configured Slack channel so the
// planning team gets notified the moment a draft is ready.
type SlackDeliverer struct {
	client    *slack.Client
	channelID string
}

// NewSlackDeliverer creates a Slack delivery target.
func NewSlackDeliverer(botToken, channelID string) *SlackDeliverer {
	return &SlackDeliverer{
		client:    slack.New(botToken),
		channelID: channelID,
	}
}

func (s *SlackDeliverer) Name() string { return "slack" }

// Deliver posts the document as a channel message. Slack trims very long
// messages, so the text is capped and the full version lives in the database.
func (s *SlackDeliverer) Deliver(ctx context.Context, doc *models.RFPDocument) error {
	text := doc.Text
	const slackMessageLimit = 12000
	if len(text) > slackMessageLimit {
		text = text[:slackMessageLimit] + "\n… (truncated)"
	}

	header := fmt.Sprintf(":page_facing_up: *RFP draft ready* (conversation `%s`)\n\n", doc.ConversationID)
	_, _, err := s.client.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(header+text, false),
	)
	if err != nil {
		return fmt.Errorf("posting RFP to slack channel %s: %w", s.channelID, err)
	}
	return nil
}
