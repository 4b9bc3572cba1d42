package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

func TestRetry(t *testing.T) {
	notFound := &googleapi.Error{Code: http.StatusNotFound}
	throttled := &googleapi.Error{Code: http.StatusTooManyRequests}
	unavailable := &googleapi.Error{Code: http.StatusServiceUnavailable}

	tests := []struct {
		name      string
		results   []error
		wantCalls int
		wantErr   error
	}{
		{"success first try", []error{nil}, 1, nil},
		{"client error fails fast", []error{notFound, nil}, 1, notFound},
		{"429 is retried", []error{throttled, nil}, 2, nil},
		{"5xx is retried", []error{unavailable, unavailable, nil}, 3, nil},
		{"non-api errors are retried", []error{errors.New("connection reset"), nil}, 2, nil},
		{"gives up after all attempts", []error{unavailable, unavailable, unavailable}, 3, unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry(context.Background(), zap.NewNop(), 3, time.Millisecond, func() error {
				e := tt.results[calls]
				calls++
				return e
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	start := time.Now()

	err := retry(ctx, zap.NewNop(), 3, time.Hour, func() error {
		calls++
		cancel()
		return &googleapi.Error{Code: http.StatusBadGateway}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestRetry_NoSleepAfterLastAttempt(t *testing.T) {
	start := time.Now()
	err := retry(context.Background(), zap.NewNop(), 1, time.Hour, func() error {
		return &googleapi.Error{Code: http.StatusInternalServerError}
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Minute)
}

func part(mime, text string) *gmail.MessagePart {
	return &gmail.MessagePart{
		MimeType: mime,
		Body:     &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte(text))},
	}
}

func TestGetEmailBody(t *testing.T) {
	tests := []struct {
		name string
		msg  *gmail.Message
		want string
	}{
		{"no payload uses snippet", &gmail.Message{Snippet: "snip"}, "snip"},
		{
			"single-part body",
			&gmail.Message{Payload: &gmail.MessagePart{Body: part("", "whole body").Body}},
			"whole body",
		},
		{
			"plain text preferred over html",
			&gmail.Message{Payload: &gmail.MessagePart{Parts: []*gmail.MessagePart{
				part("text/html", "<p>html</p>"),
				part("text/plain", "plain"),
			}}},
			"plain",
		},
		{
			"html when there is no plain text",
			&gmail.Message{Payload: &gmail.MessagePart{Parts: []*gmail.MessagePart{
				part("image/png", "png"),
				part("text/html", "<p>html</p>"),
			}}},
			"<p>html</p>",
		},
		{
			"empty parts fall back to snippet",
			&gmail.Message{Snippet: "snip", Payload: &gmail.MessagePart{Parts: []*gmail.MessagePart{
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{}},
			}}},
			"snip",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getEmailBody(tt.msg))
		})
	}
}

func TestDecodeBody(t *testing.T) {
	text := "hello"
	assert.Equal(t, text, decodeBody(base64.URLEncoding.EncodeToString([]byte(text))))
	assert.Equal(t, text, decodeBody(base64.RawURLEncoding.EncodeToString([]byte(text))))
	assert.Equal(t, "a?b>", decodeBody(base64.RawURLEncoding.EncodeToString([]byte("a?b>"))))
}

func TestParseHeaders(t *testing.T) {
	msg := &gmail.Message{Payload: &gmail.MessagePart{Headers: []*gmail.MessagePartHeader{
		{Name: "Subject", Value: "Job alert"},
		{Name: "From", Value: "Stripe <jobs@stripe.com>"},
	}}}
	h := parseHeaders(msg)
	assert.Equal(t, "Job alert", h["Subject"])
	assert.Equal(t, "Stripe <jobs@stripe.com>", h["From"])
	assert.Empty(t, parseHeaders(&gmail.Message{}))
}
