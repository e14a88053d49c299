package notify

import (
	"context"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

// Message is an HTML email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Notifier sends best-effort notifications. Delivery failures are logged
// and never returned to the caller.
type Notifier interface {
	CustomerRegistered(ctx context.Context, customer *domain.Customer)
}

// Config configures admin notifications.
type Config struct {
	// Provider is "http" for the mail API or "log" to only log messages.
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	From       string `mapstructure:"from"`
	AdminEmail string `mapstructure:"admin_email"`
}
