package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

const defaultMailBaseURL = "https://api.resend.com"

// HTTPMailer posts messages to a JSON mail API authenticated with a bearer
// key.
type HTTPMailer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewHTTPMailer creates a mail API client.
func NewHTTPMailer(baseURL, apiKey string, timeout time.Duration) *HTTPMailer {
	if baseURL == "" {
		baseURL = defaultMailBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPMailer{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

func (m *HTTPMailer) Send(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

// LogMailer only logs messages. Used when no mail provider is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg *Message) error {
	l := log.Ctx(ctx)
	l.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Msg("email not sent, no mail provider configured")
	return nil
}

// NewMailer creates the mailer selected by cfg.Provider.
func NewMailer(cfg Config) (Mailer, error) {
	switch cfg.Provider {
	case "", "log":
		return LogMailer{}, nil
	case "http":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("notify: http mailer requires an api key")
		}
		return NewHTTPMailer(cfg.BaseURL, cfg.APIKey, 0), nil
	default:
		return nil, fmt.Errorf("notify: unsupported mail provider %q", cfg.Provider)
	}
}
