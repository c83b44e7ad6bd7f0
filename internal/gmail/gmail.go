// Package gmail fetches candidate emails from the Gmail API using
// google.golang.org/api/gmail/v1.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	gm "google.golang.org/api/gmail/v1"

	"github.com/jobtrail/jobtrail/internal/types"
)

// Client wraps an authenticated Gmail service.
type Client struct {
	svc *gm.Service
}

// NewClient wraps svc. The service must already be authorized for readonly
// mailbox access.
func NewClient(svc *gm.Service) *Client {
	return &Client{svc: svc}
}

// FetchCandidateEmails finds messages matching a Gmail query and fetches each
// one in full. Individual message failures are skipped so one bad message
// does not sink the batch.
func (c *Client) FetchCandidateEmails(ctx context.Context, query string, maxResults int64) ([]types.RawEmail, error) {
	resp, err := c.svc.Users.Messages.List("me").
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if len(resp.Messages) == 0 {
		return nil, nil
	}

	emails := make([]types.RawEmail, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		email, err := c.readFull(ctx, msg.Id)
		if err != nil {
			// Skip individual message failures.
			continue
		}
		emails = append(emails, *email)
	}

	return emails, nil
}

// readFull fetches a complete message by ID, decoding the body.
func (c *Client) readFull(ctx context.Context, messageID string) (*types.RawEmail, error) {
	msg, err := c.svc.Users.Messages.Get("me", messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}

	headers := headerMap(msg.Payload.Headers)

	email := &types.RawEmail{
		MessageID: msg.Id,
		Subject:   defaultStr(headers["Subject"], "(no subject)"),
		From:      headers["From"],
		Body:      extractBody(msg.Payload),
		Snippet:   msg.Snippet,
	}
	if received, err := mail.ParseDate(headers["Date"]); err == nil {
		email.ReceivedAt = received
	} else if msg.InternalDate > 0 {
		email.ReceivedAt = time.UnixMilli(msg.InternalDate)
	}

	return email, nil
}

// extractBody gets the plain text body from a message payload.
// Handles multipart messages recursively, preferring text/plain over text/html.
func extractBody(payload *gm.MessagePart) string {
	// Direct body on the payload itself.
	if payload.Body != nil && payload.Body.Data != "" {
		if decoded, err := decodeBase64URL(payload.Body.Data); err == nil {
			return decoded
		}
	}

	// Recurse into parts, preferring text/plain first pass.
	for _, part := range payload.Parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			if decoded, err := decodeBase64URL(part.Body.Data); err == nil {
				return decoded
			}
		}
		if len(part.Parts) > 0 {
			if body := extractBody(part); body != "" {
				return body
			}
		}
	}

	// Second pass: fall back to HTML.
	for _, part := range payload.Parts {
		if part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "" {
			if decoded, err := decodeBase64URL(part.Body.Data); err == nil {
				return decoded
			}
		}
	}

	return ""
}

// headerMap converts Gmail API headers into a simple key-value map.
func headerMap(headers []*gm.MessagePartHeader) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Name] = h.Value
	}
	return m
}

// decodeBase64URL decodes Gmail's base64url-encoded content.
func decodeBase64URL(data string) (string, error) {
	// Gmail uses URL-safe base64 without padding.
	data = strings.ReplaceAll(data, "-", "+")
	data = strings.ReplaceAll(data, "_", "/")
	switch len(data) % 4 {
	case 2:
		data += "=="
	case 3:
		data += "="
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
