// Package email sends transactional mail through the Brevo API. A daily
// quota guard keeps the account inside the free-tier send limit.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"gamepress/internal/logger"
)

// ErrQuotaExceeded indicates the daily send budget is spent.
var ErrQuotaExceeded = errors.New("email: daily send quota exceeded")

// Options configures the Brevo client.
type Options struct {
	APIKey      string
	FromAddress string
	FromName    string
	DailyQuota  int
	Timeout     time.Duration
}

// Client is a Brevo transactional email client.
type Client struct {
	client  *http.Client
	apiKey  string
	from    contact
	baseURL string

	mu        sync.Mutex
	quota     int
	sentToday int
	quotaDay  string
	now       func() time.Time
}

type contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func New(opts Options) *Client {
	if opts.DailyQuota <= 0 {
		opts.DailyQuota = 300
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: opts.Timeout},
		apiKey:  opts.APIKey,
		from:    contact{Email: opts.FromAddress, Name: opts.FromName},
		baseURL: "https://api.brevo.com/v3",
		quota:   opts.DailyQuota,
		now:     time.Now,
	}
}

// Quota reports today's usage.
func (c *Client) Quota() (sent, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollDayLocked()
	return c.sentToday, c.quota
}

// CanSend reports whether another message fits in today's budget.
func (c *Client) CanSend() bool {
	sent, limit := c.Quota()
	return sent < limit
}

func (c *Client) rollDayLocked() {
	day := c.now().Format("2006-01-02")
	if day != c.quotaDay {
		c.quotaDay = day
		c.sentToday = 0
	}
}

type sendRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

// Send delivers one HTML email. It consumes quota only on success.
func (c *Client) Send(ctx context.Context, toEmail, toName, subject, htmlBody string) error {
	c.mu.Lock()
	c.rollDayLocked()
	if c.sentToday >= c.quota {
		c.mu.Unlock()
		return ErrQuotaExceeded
	}
	c.mu.Unlock()

	payload, err := json.Marshal(sendRequest{
		Sender:      c.from,
		To:          []contact{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email send failed with status %d: %s", resp.StatusCode, string(body))
	}

	c.mu.Lock()
	c.sentToday++
	c.mu.Unlock()

	logger.Info("email sent", "to", toEmail, "subject", subject)
	return nil
}

// SendWelcome renders and sends the welcome email for a new subscriber.
func (c *Client) SendWelcome(ctx context.Context, toEmail, toName string) error {
	html, err := RenderWelcome(toName)
	if err != nil {
		return err
	}
	return c.Send(ctx, toEmail, toName, "¡Bienvenido a la newsletter de gaming móvil! 🎮", html)
}
