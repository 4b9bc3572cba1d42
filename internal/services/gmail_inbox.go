package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

// GmailInbox lists job-alert emails from the authorized Gmail account.
type GmailInbox struct {
	Client *gmail.Service
	Query  string
	Logger *zap.Logger
}

func NewGmailInbox(client *gmail.Service, query string, logger *zap.Logger) *GmailInbox {
	return &GmailInbox{Client: client, Query: query, Logger: logger}
}

func (g *GmailInbox) Fetch(ctx context.Context) ([]InboxMessage, error) {
	var resp *gmail.ListMessagesResponse
	err := retry(ctx, g.Logger, 3, time.Second, func() error {
		var e error
		resp, e = g.Client.Users.Messages.List("me").Q(g.Query).MaxResults(25).Context(ctx).Do()
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	var out []InboxMessage
	for _, h := range resp.Messages {
		var msg *gmail.Message
		// Retry individual message fetches; a message that keeps failing is skipped.
		err := retry(ctx, g.Logger, 2, 500*time.Millisecond, func() error {
			var e error
			msg, e = g.Client.Users.Messages.Get("me", h.Id).Context(ctx).Do()
			return e
		})
		if err != nil {
			g.Logger.Warn("Skipping message", zap.String("message_id", h.Id), zap.Error(err))
			continue
		}
		headers := parseHeaders(msg)
		out = append(out, InboxMessage{
			ID:      msg.Id,
			Subject: headers["Subject"],
			From:    headers["From"],
			Body:    getEmailBody(msg),
		})
	}
	return out, nil
}

// retry executes f with exponential backoff. Client errors other than 429 fail fast.
func retry(ctx context.Context, logger *zap.Logger, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		logger.Warn("API error, retrying", zap.Error(err), zap.Duration("backoff", sleep))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func retryable(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusTooManyRequests || gErr.Code >= 500
	}
	return true
}

func parseHeaders(msg *gmail.Message) map[string]string {
	res := make(map[string]string)
	if msg.Payload == nil {
		return res
	}
	for _, h := range msg.Payload.Headers {
		res[h.Name] = h.Value
	}
	return res
}

// getEmailBody prefers the plain-text part over HTML.
func getEmailBody(msg *gmail.Message) string {
	if msg.Payload == nil {
		return msg.Snippet
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		return decodeBody(msg.Payload.Body.Data)
	}
	for _, mime := range []string{"text/plain", "text/html"} {
		for _, part := range msg.Payload.Parts {
			if part.MimeType == mime && part.Body != nil && part.Body.Data != "" {
				return decodeBody(part.Body.Data)
			}
		}
	}
	return msg.Snippet
}

func decodeBody(data string) string {
	d, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		// Gmail sometimes omits padding.
		d, _ = base64.RawURLEncoding.DecodeString(data)
	}
	return string(d)
}
