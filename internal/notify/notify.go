// Package notify posts run summaries to Slack. Notifications are
// best-effort: a failed post is logged and never fails the run.
package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Notifier sends a message to a configured destination.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// slackPoster is the subset of the Slack client we use.
type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts messages to a Slack channel via the Web API.
type SlackNotifier struct {
	client    slackPoster
	channelID string
}

// NewSlackNotifier creates a notifier for the given bot token and channel.
func NewSlackNotifier(botToken, channelID string) *SlackNotifier {
	return &SlackNotifier{
		client:    slack.New(botToken),
		channelID: channelID,
	}
}

// Notify posts the message to the configured channel.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	if s.channelID == "" {
		return fmt.Errorf("slack channel is not configured")
	}
	_, _, err := s.client.PostMessageContext(ctx, s.channelID, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}

// NopNotifier discards all messages. Used when notifications are disabled.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(ctx context.Context, message string) error {
	return nil
}
