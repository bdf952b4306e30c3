package payments_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/payments"
	"github.com/jhoicas/Obrix-api/pkg/config"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

func TestNewMercadoPagoGateway_SinTokenFalla(t *testing.T) {
	_, err := payments.NewMercadoPagoGateway(config.PaymentsConfig{}, "http://localhost:3000", logger.Nop())
	assert.ErrorIs(t, err, payments.ErrMissingAccessToken)
}

func TestMercadoPagoGateway_ModoMock(t *testing.T) {
	g, err := payments.NewMercadoPagoGateway(config.PaymentsConfig{Mock: true}, "http://localhost:3000/", logger.Nop())
	require.NoError(t, err)

	sess, err := g.CreateCheckout(context.Background(), ports.CheckoutRequest{
		ExternalReference: "pay-1",
		Item:              ports.CheckoutItem{ID: "pro", Title: "Pro", UnitPrice: decimal.NewFromInt(29), Currency: "USD"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sess.PreferenceID, "mock-"))
	assert.True(t, strings.HasPrefix(sess.RedirectURL, "http://localhost:3000/checkout/mock?"))
	assert.Contains(t, sess.RedirectURL, "ref=pay-1")

	info, err := g.GetPayment(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "approved", info.Status)
	assert.Equal(t, "pay-1", info.ExternalReference)

	info, err = g.GetPayment(context.Background(), "pay-2:rejected")
	require.NoError(t, err)
	assert.Equal(t, "rejected", info.Status)
	assert.Equal(t, "pay-2", info.ExternalReference)
}
