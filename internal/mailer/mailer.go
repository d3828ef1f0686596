package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"lrtdigest/internal/logger"
	"lrtdigest/internal/metrics"
)

// Config holds everything needed to deliver one digest run.
type Config struct {
	Recipients []string
	From       string
	Host       string
	Port       int
	User       string
	Password   string
}

// Validate checks the delivery configuration. These are the fatal,
// before-any-send errors: an invalid setup must fail the run before a
// single message goes out.
func (c Config) Validate() error {
	if len(c.Recipients) == 0 {
		return errors.New("NEWS_TO_EMAIL is empty, provide comma-separated recipients")
	}
	if c.From == "" || c.User == "" || c.Password == "" {
		return errors.New("missing NEWS_FROM_EMAIL / NEWS_SMTP_USER / NEWS_SMTP_PASS")
	}
	if c.From != c.User {
		return errors.New("for Gmail SMTP, NEWS_FROM_EMAIL must equal NEWS_SMTP_USER")
	}
	if c.Host == "" || c.Port <= 0 {
		return errors.New("NEWS_SMTP_HOST / NEWS_SMTP_PORT must be set")
	}
	return nil
}

// Mailer sends the rendered digest as individual emails, one message per
// recipient.
type Mailer struct {
	cfg Config
}

func New(cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Mailer{cfg: cfg}, nil
}

// Send authenticates once and delivers one message per recipient over
// the same connection. A failure for one recipient does not stop the
// remaining sends; all failures are reported together at the end.
func (m *Mailer) Send(subject, plainBody, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return fmt.Errorf("smtp hello: %w", err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	var failed []string
	for _, recipient := range m.cfg.Recipients {
		msg := m.buildMessage(recipient, subject, plainBody, htmlBody)
		if err := sendOne(client, m.cfg.From, recipient, msg); err != nil {
			logger.Error("send failed", "recipient", recipient, "error", err)
			metrics.Global.IncrementEmailFailures()
			failed = append(failed, recipient)
			// Abort the broken transaction so the next recipient
			// starts clean.
			if rerr := client.Reset(); rerr != nil {
				logger.Warn("smtp reset failed", "error", rerr)
			}
			continue
		}
		logger.Info("digest sent", "recipient", recipient)
		metrics.Global.IncrementEmailsSent()
	}

	if err := client.Quit(); err != nil {
		logger.Warn("smtp quit failed", "error", err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("delivery failed for %d/%d recipients: %s",
			len(failed), len(m.cfg.Recipients), strings.Join(failed, ", "))
	}
	return nil
}

func sendOne(client *smtp.Client, from, to string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	return w.Close()
}

// buildMessage assembles a multipart/alternative message with a
// plain-text fallback and the HTML report.
func (m *Mailer) buildMessage(to, subject, plainBody, htmlBody string) []byte {
	const boundary = "lrtdigest-alt"

	var b strings.Builder
	b.WriteString("From: " + m.cfg.From + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + boundary + "\"\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(plainBody + "\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody + "\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}
