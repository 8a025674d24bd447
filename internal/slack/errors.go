package slack

import "errors"

var (
	// ErrMissingWebhookURL is returned when the Slack webhook URL is not configured
	ErrMissingWebhookURL = errors.New("slack webhook URL is required")
	// ErrNotificationFailed is returned when a weak-key alert cannot be delivered
	ErrNotificationFailed = errors.New("slack notification failed")
	// ErrUnexpectedStatus is returned when Slack answers a webhook post with a non-OK status
	ErrUnexpectedStatus = errors.New("unexpected slack webhook response status")
)
