// Package mailer delivers the rendered report emails over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("refassist.lib.mailer")

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Client struct {
	config     SmtpConfig
	senderName string
}

func NewClient(config SmtpConfig, senderName string) Client {
	return Client{
		config:     config,
		senderName: senderName,
	}
}

// ParseRecipient converts the roster's "<Display Name>addr" contact
// format into a standard address.
func ParseRecipient(raw string) (string, error) {
	start := strings.Index(raw, "<")
	end := strings.Index(raw, ">")
	if start != 0 || end == -1 {
		return "", fmt.Errorf("could not determine name for %q", raw)
	}
	name := raw[start+1 : end]
	address := raw[end+1:]
	if !strings.Contains(address, "@") || !strings.Contains(address, ".") {
		return "", fmt.Errorf("invalid email address %q", raw)
	}
	return fmt.Sprintf("%s <%s>", name, address), nil
}

// ParseRecipients splits a comma separated recipient list, dropping
// the entries that cannot be parsed.
func ParseRecipients(ctx context.Context, raw string) []string {
	var recipients []string
	for _, entry := range strings.Split(raw, ",") {
		recipient, err := ParseRecipient(strings.TrimSpace(entry))
		if err != nil {
			slog.WarnContext(ctx, "skipping unparseable recipient", "err", err)
			continue
		}
		recipients = append(recipients, recipient)
	}
	return recipients
}

func (c Client) smtpAddr() string {
	return fmt.Sprintf("%s:%d", c.config.Server, c.config.Port)
}

// SendHTML sends one html email to the given recipients. Subject, body
// and at least one recipient are required.
func (c Client) SendHTML(ctx context.Context, subject, body string, to []string) error {
	ctx, span := tracer.Start(ctx, "client:SendHTML")
	defer span.End()

	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	if body == "" {
		return fmt.Errorf("message is required")
	}
	if len(to) == 0 {
		return fmt.Errorf("addressee is required")
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("%s <%s>", c.senderName, c.config.EmailAddress)
	mail.To = to
	mail.Subject = subject
	mail.HTML = []byte(body)

	auth := smtp.PlainAuth("", c.config.EmailAddress, c.config.Password, c.config.Server)

	var err error
	if c.config.Port == 465 {
		err = mail.SendWithTLS(c.smtpAddr(), auth, &tls.Config{ServerName: c.config.Server})
	} else {
		err = mail.Send(c.smtpAddr(), auth)
		if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
			err = mail.Send(c.smtpAddr(), nil)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
