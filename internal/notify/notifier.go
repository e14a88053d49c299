package notify

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

const sendTimeout = 10 * time.Second

var registeredTemplate = template.Must(template.New("customer_registered").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>New customer registration</h2>
<table>
<tr><td>Name</td><td>{{.FullName}}</td></tr>
<tr><td>Email</td><td>{{.Email}}</td></tr>
<tr><td>Customer ID</td><td>{{.ID}}</td></tr>
<tr><td>Role</td><td>{{.Role}}</td></tr>
{{- if .CompanyName}}
<tr><td>Company</td><td>{{.CompanyName}}</td></tr>
{{- end}}
{{- if .Phone}}
<tr><td>Phone</td><td>{{.Phone}}</td></tr>
{{- end}}
{{- if .Website}}
<tr><td>Website</td><td>{{.Website}}</td></tr>
{{- end}}
{{- if .EmployeeCount}}
<tr><td>Employees</td><td>{{.EmployeeCount}}</td></tr>
{{- end}}
{{- if .Country}}
<tr><td>Country</td><td>{{.Country}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

type adminNotifier struct {
	mailer Mailer
	from   string
	to     string
}

// NewAdminNotifier emails the shop admin about customer events. With no
// admin address configured notifications are skipped.
func NewAdminNotifier(mailer Mailer, from, adminEmail string) Notifier {
	return &adminNotifier{mailer: mailer, from: from, to: adminEmail}
}

func (n *adminNotifier) CustomerRegistered(ctx context.Context, customer *domain.Customer) {
	l := log.Ctx(ctx)
	if n.to == "" {
		l.Debug().Str(log.FieldCustomerID, customer.ID).Msg("admin email not configured, skipping notification")
		return
	}

	var buf bytes.Buffer
	if err := registeredTemplate.Execute(&buf, customer); err != nil {
		l.Error().Err(err).Str(log.FieldCustomerID, customer.ID).Msg("failed to render registration email")
		return
	}

	// Detached from request cancellation, bounded by its own timeout.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	msg := &Message{
		From:    n.from,
		To:      []string{n.to},
		Subject: "New customer registration: " + customer.FullName(),
		HTML:    buf.String(),
	}
	if err := n.mailer.Send(sendCtx, msg); err != nil {
		l.Error().Err(err).Str(log.FieldCustomerID, customer.ID).Msg("failed to send registration email")
		return
	}

	l.Info().Str(log.FieldCustomerID, customer.ID).Msg("registration email sent")
}
