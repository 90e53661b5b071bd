// Package notifier delivers outbound push notifications. Delivery is
// fire-and-forget: failures are logged and never surfaced to callers.
package notifier

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"
)

// Notifier sends a payload to a destination described by contact info
// (for FCM, the "fcm_token" entry).
type Notifier interface {
	Notify(ctx context.Context, destination map[string]string, payload string)
}

// FCMNotifier implements Notifier over Firebase Cloud Messaging.
type FCMNotifier struct {
	client *messaging.Client
}

// NewFCMNotifier creates a new FCMNotifier
func NewFCMNotifier(client *messaging.Client) *FCMNotifier {
	return &FCMNotifier{client: client}
}

// Notify pushes the payload to the destination's FCM token. Missing
// tokens and send failures are logged only; there are no retries.
func (n *FCMNotifier) Notify(ctx context.Context, destination map[string]string, payload string) {
	token := destination["fcm_token"]
	if token == "" {
		return
	}

	_, err := n.client.Send(ctx, &messaging.Message{
		Token: token,
		Data:  map[string]string{"payload": payload},
	})
	if err != nil {
		log.Printf("notifier: push delivery failed: %v", err)
	}
}

// NoopNotifier is used when no messaging backend is configured.
type NoopNotifier struct{}

// Notify discards the notification.
func (NoopNotifier) Notify(context.Context, map[string]string, string) {}
