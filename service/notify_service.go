package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"strings"
	"time"
)

// Notifier delivers reminders and payoff messages. Both channels are
// fire-and-forget from the engine's perspective: callers log failures and
// move on.
type Notifier interface {
	SendPush(ctx context.Context, token, title, body string) error
	SendEmail(ctx context.Context, address, subject, body string) error
}

// NotifyService sends push notifications through the FCM HTTP API and email
// through a plain SMTP relay. Either channel is disabled when its
// configuration is absent; sends on a disabled channel return an error for
// the caller to log.
type NotifyService struct {
	serverKey  string
	apiURL     string
	smtpAddr   string
	smtpFrom   string
	httpClient *http.Client
}

type fcmRequest struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func NewNotifyService(fcmServerKey, smtpAddr, smtpFrom string) *NotifyService {
	return &NotifyService{
		serverKey: fcmServerKey,
		apiURL:    "https://fcm.googleapis.com/fcm/send",
		smtpAddr:  smtpAddr,
		smtpFrom:  smtpFrom,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *NotifyService) SendPush(ctx context.Context, token, title, body string) error {
	if s.serverKey == "" {
		return fmt.Errorf("push delivery disabled: no FCM server key configured")
	}

	jsonData, err := json.Marshal(fcmRequest{
		To: token,
		Notification: fcmNotification{
			Title: title,
			Body:  body,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("key=%s", s.serverKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("FCM error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func (s *NotifyService) SendEmail(ctx context.Context, address, subject, body string) error {
	if s.smtpAddr == "" {
		return fmt.Errorf("email delivery disabled: no SMTP address configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.smtpFrom)
	fmt.Fprintf(&msg, "To: %s\r\n", address)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	return smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{address}, []byte(msg.String()))
}
