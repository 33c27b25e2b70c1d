package utils

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"blog/config"
)

// ContactMailer delivers contact-form messages over SMTP with the
// operator credentials from configuration. Sending is synchronous and
// never retried; a transport failure is returned to the caller.
type ContactMailer struct {
	cfg config.AppConfig
}

// NewContactMailer creates a mailer bound to the loaded configuration.
func NewContactMailer(cfg config.AppConfig) *ContactMailer {
	return &ContactMailer{cfg: cfg}
}

// Send formats one message from the contact form and delivers it to the
// fixed operator destination.
func (m *ContactMailer) Send(name, email, phone, message string) error {
	cfg := m.cfg
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" {
		return fmt.Errorf("smtp not configured")
	}
	to := cfg.ContactTo
	if to == "" {
		to = cfg.SMTPUsername
	}

	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s", name, email, phone, message)
	headers := map[string]string{
		"From":         cfg.SMTPUsername,
		"To":           to,
		"Subject":      "Blog Message",
		"MIME-Version": "1.0",
		"Content-Type": "text/plain; charset=UTF-8",
	}
	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort))
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	if !cfg.SMTPTLS {
		return smtp.SendMail(addr, auth, cfg.SMTPUsername, []string{to}, []byte(msg.String()))
	}

	// STARTTLS with timeouts so a slow server only blocks this request.
	d := net.Dialer{Timeout: 5 * time.Second}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))
	host, _, _ := net.SplitHostPort(addr)
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(cfg.SMTPUsername); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write([]byte(msg.String())); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return c.Quit()
}
