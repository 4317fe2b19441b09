package email

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"samplemarine-backend/internal/config"
)

// SMTPSender delivers plain-text notification mail through a single relay.
type SMTPSender struct {
	addr string
	from string
	to   []string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	var to []string
	for _, addr := range strings.Split(cfg.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	return &SMTPSender{
		addr: net.JoinHostPort(cfg.Host, cfg.Port),
		from: cfg.From,
		to:   to,
	}
}

// Send builds an RFC 822 message and hands it to the relay. No auth: the
// relay is expected to be an internal submission host.
func (s *SMTPSender) Send(subject, body string) error {
	if len(s.to) == 0 {
		return fmt.Errorf("smtp sender has no recipients configured")
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + strings.Join(s.to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(s.addr, nil, s.from, s.to, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail via %s: %w", s.addr, err)
	}
	return nil
}
