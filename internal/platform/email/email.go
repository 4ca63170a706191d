package email

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// SMTPConfig comes from the company profile record, not from process env, so
// the operator can change mail settings without restarting the app.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	UseTLS   bool
}

type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type noopMailer struct{}

func (noopMailer) Send(ctx context.Context, msg Message) error {
	return ErrNotConfigured
}

type smtpMailer struct {
	cfg SMTPConfig
}

func New(cfg SMTPConfig) Mailer {
	if strings.TrimSpace(cfg.Host) == "" {
		return noopMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

func (s *smtpMailer) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient address is empty")
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	payload := buildMessage(s.cfg.From, msg)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.UseTLS {
		tlsConfig := &tls.Config{ServerName: s.cfg.Host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return err
		}
	}

	if s.cfg.User != "" {
		auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(msg.To); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const boundary = "payday-mime-boundary"

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder

	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", msg.To),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
	}

	if len(msg.Attachment) == 0 {
		headers = append(headers, "Content-Type: text/plain; charset=\"UTF-8\"", "")
		b.WriteString(strings.Join(headers, "\r\n") + "\r\n" + msg.Body)
		return []byte(b.String())
	}

	headers = append(headers, fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q", boundary), "")
	b.WriteString(strings.Join(headers, "\r\n") + "\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Body + "\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: application/pdf\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n\r\n", msg.AttachmentName))
	b.WriteString(wrap76(base64.StdEncoding.EncodeToString(msg.Attachment)) + "\r\n")
	b.WriteString("--" + boundary + "--\r\n")

	return []byte(b.String())
}

func wrap76(s string) string {
	var b strings.Builder
	for len(s) > 76 {
		b.WriteString(s[:76] + "\r\n")
		s = s[76:]
	}
	b.WriteString(s)
	return b.String()
}
