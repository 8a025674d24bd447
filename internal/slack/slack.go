// Package slack delivers weak-key alerts to a Slack incoming webhook. It
// carries only the Block Kit subset those alerts need; message composition
// lives with the check handlers that know the report fields.
package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/theopenlane/httpsling"
)

// defaultRequestTimeout bounds a webhook delivery when no HTTP client is injected
const defaultRequestTimeout = 10 * time.Second

// Message is the webhook payload: fallback text plus optional Block Kit blocks
type Message struct {
	// Text is the plain fallback shown where blocks are not rendered
	Text string `json:"text"`
	// Blocks is the rich layout for the alert
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is a single Block Kit block (header or section for alert purposes)
type Block struct {
	// Type is the block type
	Type string `json:"type"`
	// Text is the block's text object, for header and plain section blocks
	Text *TextObject `json:"text,omitempty"`
	// Fields lays out key/value pairs in a section block
	Fields []TextObject `json:"fields,omitempty"`
}

// TextObject is a Block Kit text element
type TextObject struct {
	// Type is plain_text or mrkdwn
	Type string `json:"type"`
	// Text is the content
	Text string `json:"text"`
}

// Client posts alert messages to one configured incoming webhook
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient injects the HTTP client used for webhook deliveries
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a webhook client; the webhook URL is required
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	client := &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Send posts one message to the webhook. Slack answers anything other than
// 200 for rejected payloads, which is surfaced as ErrUnexpectedStatus.
func (c *Client) Send(ctx context.Context, msg Message) error {
	requester := httpsling.MustNew(
		httpsling.URL(c.webhookURL),
		httpsling.Post(),
		httpsling.JSONBody(msg),
		httpsling.WithHTTPClient(c.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // close failure does not affect the delivery

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}
