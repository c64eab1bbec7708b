package services

import "context"

// NotificationSender delivers a push notification to one device token.
// Delivery is best-effort: implementations return errors for logging only and
// callers must never fail the triggering operation on a send error.
type NotificationSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}
