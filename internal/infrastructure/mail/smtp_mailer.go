// Package mail envío de correos por SMTP (facturas y cotizaciones en PDF).
package mail

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/pkg/config"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// Sender abstrae el dialer SMTP (gomail.Dialer lo implementa).
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implementa ports.Mailer.
type SMTPMailer struct {
	sender Sender
	from   string
	log    *logger.Logger
}

var _ ports.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer crea el mailer. Sin SMTP configurado, Send devuelve domain.ErrMailDisabled.
func NewSMTPMailer(cfg config.MailConfig, log *logger.Logger) *SMTPMailer {
	m := &SMTPMailer{from: cfg.From, log: log}
	if cfg.Enabled() {
		m.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

// NewWithSender permite inyectar el transporte (tests).
func NewWithSender(sender Sender, from string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{sender: sender, from: from, log: log}
}

// Build arma el mensaje MIME.
func (s *SMTPMailer) Build(msg ports.Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}
	return m
}

// Send envía el mensaje. El dialer de gomail no acepta contexto; se respeta una cancelación previa.
func (s *SMTPMailer) Send(ctx context.Context, msg ports.Email) error {
	if s.sender == nil {
		return domain.ErrMailDisabled
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: destinatario vacío", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sender.DialAndSend(s.Build(msg)); err != nil {
		s.log.Error().Err(err).Strs("to", msg.To).Str("subject", msg.Subject).Msg("envío de correo falló")
		return fmt.Errorf("mail: enviar: %w", err)
	}
	s.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Int("attachments", len(msg.Attachments)).Msg("correo enviado")
	return nil
}
