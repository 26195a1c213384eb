// Package mail sends transactional email for account verification.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
)

// Mailer delivers the signup verification email.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, verifyURL string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer creates a mailer for the given relay. Credentials are
// required by most relays (the original deployment used Gmail).
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &SMTPMailer{client: client, from: from}, nil
}

// SendVerification sends the welcome/verification email to a new account.
func (m *SMTPMailer) SendVerification(ctx context.Context, to, name, verifyURL string) error {
	html, err := RenderVerification(name, verifyURL)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Verify your account")
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("Hello %s,\n\nThank you for signing up! Please verify your account: %s", name, verifyURL))
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	return m.client.DialAndSendWithContext(ctx, msg)
}

// NopMailer discards all mail. Used in tests and when SMTP is not configured.
type NopMailer struct{}

func (NopMailer) SendVerification(ctx context.Context, to, name, verifyURL string) error {
	return nil
}

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);padding:40px 0;min-height:100vh;font-family:'Segoe UI',Arial,sans-serif;">
	<div style="max-width:420px;margin:40px auto;background:rgba(255,255,255,0.95);border-radius:18px;box-shadow:0 8px 32px rgba(99,102,241,0.12);padding:40px 32px;text-align:center;">
		<h2 style="color:#6366f1;font-size:2rem;margin-bottom:8px;">Welcome, {{.Name}}!</h2>
		<p style="color:#444;font-size:1.1rem;margin-bottom:32px;">Thank you for signing up to <b>Glassmorphism Auth App</b>.<br>To complete your registration, please verify your email address.</p>
		<a href="{{.VerifyURL}}" style="display:inline-block;padding:14px 36px;background:linear-gradient(135deg,#6366f1 0%,#06b6d4 100%);color:#fff;font-weight:600;border-radius:8px;text-decoration:none;font-size:1.1rem;box-shadow:0 4px 15px rgba(99,102,241,0.18);margin-bottom:24px;">Verify Email</a>
		<p style="color:#888;font-size:0.95rem;margin-top:32px;">If you did not create this account, you can safely ignore this email.</p>
	</div>
</div>
`))

// RenderVerification renders the HTML body of the verification email.
func RenderVerification(name, verifyURL string) (string, error) {
	var buf bytes.Buffer
	err := verificationTmpl.Execute(&buf, struct {
		Name      string
		VerifyURL string
	}{Name: name, VerifyURL: verifyURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
