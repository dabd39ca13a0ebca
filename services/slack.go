package services

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// SlackName translates a Bitbucket username to a Slack mention. Names missing
// from the map fall back to the Bitbucket name, so every participant stays
// addressable.
func SlackName(cfg *Config, bitbucketName string) string {
	if slackName, ok := cfg.UserMap[bitbucketName]; ok {
		return "@" + slackName
	}
	return "@" + bitbucketName
}

// SendReminders posts the whole digest as one webhook message.
func SendReminders(webhookURL string, slackMsgs []string) error {
	err := slack.PostWebhook(webhookURL, &slack.WebhookMessage{
		Text: strings.Join(slackMsgs, "\n"),
	})
	if err != nil {
		return fmt.Errorf("slack webhook post error: %w", err)
	}
	return nil
}
