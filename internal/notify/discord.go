// Package notify delivers run reports to the operator.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// EnvWebhookURL names the environment variable holding the Discord
// webhook endpoint.
const EnvWebhookURL = "DISCORD_WEBHOOK_URL"

// Notifier accepts one composed text message per run.
type Notifier interface {
	Send(ctx context.Context, content string) error
}

// Discord posts messages to a Discord webhook.
type Discord struct {
	client  *resty.Client
	webhook string
}

// NewDiscord creates the webhook notifier. An empty webhook URL is valid:
// messages are then logged instead of delivered, so a run without the
// secret still produces visible output.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		client:  resty.New().SetTimeout(30 * time.Second),
		webhook: webhookURL,
	}
}

// Send posts content as one Discord message. Delivery gets exactly one
// attempt; the caller logs failures and moves on.
func (d *Discord) Send(ctx context.Context, content string) error {
	if d.webhook == "" {
		log.Warn().Str("content", content).Msg(EnvWebhookURL + " not set, message not delivered")
		return nil
	}
	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"content": content}).
		Post(d.webhook)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode())
	}
	return nil
}
