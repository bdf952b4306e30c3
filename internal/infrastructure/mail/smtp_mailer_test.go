package mail_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/mail"
	"github.com/jhoicas/Obrix-api/pkg/config"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestSMTPMailer_SinConfiguracion(t *testing.T) {
	m := mail.NewSMTPMailer(config.MailConfig{}, logger.Nop())
	err := m.Send(context.Background(), ports.Email{To: []string{"a@b.co"}})
	assert.ErrorIs(t, err, domain.ErrMailDisabled)
}

func TestSMTPMailer_EnviaConAdjunto(t *testing.T) {
	sender := &captureSender{}
	m := mail.NewWithSender(sender, "facturas@obrix.app", logger.Nop())

	err := m.Send(context.Background(), ports.Email{
		To:          []string{"cliente@example.com"},
		Subject:     "Invoice INV-000001",
		HTMLBody:    "<p>Adjuntamos su factura</p>",
		Attachments: []ports.Attachment{{Filename: "INV-000001.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"facturas@obrix.app"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"cliente@example.com"}, msg.GetHeader("To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `filename="INV-000001.pdf"`)
}

func TestSMTPMailer_ErroresDelTransporte(t *testing.T) {
	sender := &captureSender{err: errors.New("connection refused")}
	m := mail.NewWithSender(sender, "x@obrix.app", logger.Nop())

	err := m.Send(context.Background(), ports.Email{To: []string{"a@b.co"}, Subject: "s"})
	assert.Error(t, err)

	err = m.Send(context.Background(), ports.Email{Subject: "sin destinatario"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
