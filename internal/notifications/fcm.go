package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

// FCMSender delivers push notifications through the FCM legacy HTTP API.
// Delivery is best-effort; callers are expected to log and swallow errors.
type FCMSender struct {
	serverKey string
	client    *http.Client
	endpoint  string
}

// NewFCMSender creates a sender authenticated with the given server key.
func NewFCMSender(serverKey string) *FCMSender {
	return &FCMSender{
		serverKey: serverKey,
		client:    &http.Client{Timeout: 5 * time.Second},
		endpoint:  fcmSendURL,
	}
}

var _ portssvc.NotificationSender = (*FCMSender)(nil)

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send posts one notification to the device token.
func (s *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification delivery failed: status %d", resp.StatusCode)
	}
	return nil
}

// NoopSender discards notifications. Used when no FCM server key is
// configured.
type NoopSender struct{}

var _ portssvc.NotificationSender = (*NoopSender)(nil)

// Send does nothing and always succeeds.
func (NoopSender) Send(context.Context, string, string, string, map[string]string) error {
	return nil
}
