package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/clientwatch-team/clientwatch/pkg/config"
)

// EmailSender delivers alert emails over SMTP
type EmailSender struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewEmailSender creates an SMTP sender from config
func NewEmailSender(cfg *config.NotifyConfig) *EmailSender {
	return &EmailSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.From,
	}
}

// IsConfigured reports whether an SMTP host is set
func (e *EmailSender) IsConfigured() bool {
	return e != nil && e.host != ""
}

// Send delivers a plain text email to a single recipient
func (e *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	if !e.IsConfigured() {
		return fmt.Errorf("smtp not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := e.host + ":" + e.port
	var auth smtp.Auth
	if e.user != "" {
		auth = smtp.PlainAuth("", e.user, e.pass, e.host)
	}
	return smtp.SendMail(addr, auth, e.from, []string{to}, []byte(msg.String()))
}

// AlertBody renders the email body for an analysis alert
func AlertBody(alert AnalysisAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new sentiment analysis is ready for %s.\n\n", alert.ClientName)
	fmt.Fprintf(&b, "Trajectory: %s\n", alert.Trajectory)
	fmt.Fprintf(&b, "Churn Risk: %s\n", alert.ChurnRisk)
	if alert.DashboardURL != "" {
		fmt.Fprintf(&b, "\nView the full analysis: %s\n", alert.DashboardURL)
	}
	return b.String()
}
