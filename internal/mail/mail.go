// Package mail delivers contact-form submissions through the Resend
// HTTP API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/models"
)

const defaultBaseURL = "https://api.resend.com"

type Client struct {
	baseURL string
	apiKey  string
	from    string
	to      string
	httpc   *http.Client
}

func New(cfg *config.MailConfig) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		to:      cfg.To,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// SendContact forwards a contact-form submission as an email. A non-2xx
// answer from the API is a delivery failure.
func (c *Client) SendContact(ctx context.Context, form models.ContactForm) error {
	body := map[string]any{
		"from":     c.from,
		"to":       []string{c.to},
		"subject":  fmt.Sprintf("New Mission Report: %s from %s", form.Subject, form.Name),
		"reply_to": form.Email,
		"html":     renderContactHTML(form),
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}

func renderContactHTML(form models.ContactForm) string {
	message := strings.ReplaceAll(form.Message, "\n", "<br>")
	return fmt.Sprintf(`<div style="font-family: sans-serif; line-height: 1.6; max-width: 600px; margin: 0 auto;">
  <h2>🥷 New Message from Your Portfolio!</h2>
  <p><strong>🥷 Ninja Name:</strong> %s</p>
  <p><strong>📧 Messenger Bird Address:</strong> %s</p>
  <p><strong>📋 Mission Type:</strong> %s</p>
  <p><strong>📜 Mission Details:</strong></p>
  <div style="border: 1px solid #ddd; padding: 15px; border-radius: 5px;">%s</div>
</div>`, form.Name, form.Email, form.Subject, message)
}
