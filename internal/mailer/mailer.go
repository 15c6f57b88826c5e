// Package mailer renders queued mail messages into SMTP messages.
package mailer

import (
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnsupportedType = errors.New("unsupported mail type")

type layout struct {
	template string
	subject  string
}

var layouts = map[string]layout{
	domain.MailTypeCreateUser:  {template: "new_account_email.html", subject: "CMCS - Your account"},
	domain.MailTypeClaimStatus: {template: "claim_status_email.html", subject: "CMCS - Claim status update"},
}

type Composer struct {
	from      string
	templates *template.Template
}

func NewComposer(from string) (*Composer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Composer{from: from, templates: tmpl}, nil
}

// Compose builds the message for m. Data is expected in its decoded JSON
// form, so templates address fields by their JSON names.
func (c *Composer) Compose(m *domain.MailMessage) (*mail.Msg, error) {
	l, ok := layouts[m.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, m.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}

	tmpl := c.templates.Lookup(l.template)
	if tmpl == nil {
		return nil, fmt.Errorf("template %s not found", l.template)
	}
	if err := msg.SetBodyHTMLTemplate(tmpl, m.Data); err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	msg.Subject(l.subject)

	return msg, nil
}
