package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []*Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:          "cust_1",
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Doe",
		Role:        domain.RoleRetailer,
		CompanyName: "Doe & Sons <Retail>",
	}
}

func TestAdminNotifier_SendsRenderedEmail(t *testing.T) {
	m := &recordingMailer{}
	n := NewAdminNotifier(m, "shop@example.com", "admin@example.com")

	n.CustomerRegistered(context.Background(), testCustomer())

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, "shop@example.com", msg.From)
	assert.Equal(t, []string{"admin@example.com"}, msg.To)
	assert.Equal(t, "New customer registration: Jane Doe", msg.Subject)
	assert.Contains(t, msg.HTML, "jane@example.com")
	assert.Contains(t, msg.HTML, "Doe &amp; Sons &lt;Retail&gt;")
	assert.NotContains(t, msg.HTML, "Phone")
}

func TestAdminNotifier_SwallowsFailures(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp down")}
	n := NewAdminNotifier(m, "shop@example.com", "admin@example.com")

	assert.NotPanics(t, func() {
		n.CustomerRegistered(context.Background(), testCustomer())
	})
	assert.Len(t, m.sent, 1)
}

func TestAdminNotifier_SkipsWithoutAdminEmail(t *testing.T) {
	m := &recordingMailer{}
	n := NewAdminNotifier(m, "shop@example.com", "")

	n.CustomerRegistered(context.Background(), testCustomer())
	assert.Empty(t, m.sent)
}

func TestAdminNotifier_IgnoresRequestCancellation(t *testing.T) {
	var got context.Context
	m := mailerFunc(func(ctx context.Context, _ *Message) error {
		got = ctx
		return ctx.Err()
	})
	n := NewAdminNotifier(m, "shop@example.com", "admin@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.CustomerRegistered(ctx, testCustomer())

	require.NotNil(t, got)
	_, hasDeadline := got.Deadline()
	assert.True(t, hasDeadline)
}

type mailerFunc func(ctx context.Context, msg *Message) error

func (f mailerFunc) Send(ctx context.Context, msg *Message) error { return f(ctx, msg) }

func TestHTTPMailer_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		var msg Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		if msg.Subject == "fail" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid from"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	m := NewHTTPMailer(srv.URL, "re_test", 0)

	err := m.Send(context.Background(), &Message{From: "a@x.io", To: []string{"b@x.io"}, Subject: "hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	err = m.Send(context.Background(), &Message{Subject: "fail"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from")
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(Config{})
	require.NoError(t, err)
	assert.IsType(t, LogMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), &Message{To: []string{"a@x.io"}}))

	_, err = NewMailer(Config{Provider: "http"})
	assert.Error(t, err)

	m, err = NewMailer(Config{Provider: "http", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPMailer{}, m)

	_, err = NewMailer(Config{Provider: "pigeon"})
	assert.Error(t, err)
}
