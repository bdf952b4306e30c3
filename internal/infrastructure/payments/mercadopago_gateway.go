// Package payments adaptador de checkout por redirección con Mercado Pago.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/application/ports"
	appconfig "github.com/jhoicas/Obrix-api/pkg/config"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// ErrMissingAccessToken falta MERCADOPAGO_ACCESS_TOKEN fuera de modo mock.
var ErrMissingAccessToken = errors.New("payments: falta MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoGateway implementa ports.PaymentGateway.
// En modo mock no llama al proveedor: devuelve una URL local y pagos aprobados.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	cfg         appconfig.PaymentsConfig
	baseURL     string
	log         *logger.Logger
	mockMode    bool
}

var _ ports.PaymentGateway = (*MercadoPagoGateway)(nil)

// NewMercadoPagoGateway crea el gateway. baseURL es la URL pública del frontend (URLs mock).
func NewMercadoPagoGateway(cfg appconfig.PaymentsConfig, baseURL string, log *logger.Logger) (*MercadoPagoGateway, error) {
	g := &MercadoPagoGateway{cfg: cfg, baseURL: strings.TrimRight(baseURL, "/"), log: log}
	if cfg.Mock {
		log.Info().Msg("pasarela de pagos en modo mock")
		g.mockMode = true
		return g, nil
	}
	if cfg.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	mpCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("payments: configurar sdk: %w", err)
	}
	g.preferences = preference.NewClient(mpCfg)
	g.payments = payment.NewClient(mpCfg)
	log.Info().Msg("cliente Mercado Pago inicializado")
	return g, nil
}

// CreateCheckout crea la preferencia y devuelve la URL de redirección (init_point).
func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (*ports.CheckoutSession, error) {
	if g.mockMode {
		id := "mock-" + uuid.New().String()
		g.log.Info().Str("preference_id", id).Str("reference", req.ExternalReference).Msg("checkout mock creado")
		return &ports.CheckoutSession{
			PreferenceID: id,
			RedirectURL:  fmt.Sprintf("%s/checkout/mock?preference_id=%s&ref=%s", g.baseURL, id, req.ExternalReference),
		}, nil
	}

	price, _ := req.Item.UnitPrice.Float64()
	request := preference.Request{
		Items: []preference.ItemRequest{{
			ID:         req.Item.ID,
			Title:      req.Item.Title,
			Quantity:   1,
			UnitPrice:  price,
			CurrencyID: req.Item.Currency,
		}},
		ExternalReference: req.ExternalReference,
		NotificationURL:   g.cfg.NotificationURL,
	}
	if g.cfg.SuccessURL != "" {
		request.BackURLs = &preference.BackURLsRequest{
			Success: g.cfg.SuccessURL,
			Failure: g.cfg.FailureURL,
			Pending: g.cfg.PendingURL,
		}
		request.AutoReturn = "approved"
	}
	if req.PayerEmail != "" {
		request.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	resp, err := g.preferences.Create(ctx, request)
	if err != nil {
		g.log.Error().Err(err).Str("reference", req.ExternalReference).Msg("crear preferencia falló")
		return nil, fmt.Errorf("payments: crear preferencia: %w", err)
	}
	g.log.Info().Str("preference_id", resp.ID).Str("reference", req.ExternalReference).Msg("preferencia creada")
	return &ports.CheckoutSession{PreferenceID: resp.ID, RedirectURL: resp.InitPoint}, nil
}

// GetPayment consulta el pago notificado por el webhook.
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (*ports.PaymentInfo, error) {
	if g.mockMode {
		// En mock el id del pago lleva la referencia externa: "<ref>" o "<ref>:<status>".
		ref, status := paymentID, "approved"
		if i := strings.LastIndexByte(paymentID, ':'); i > 0 {
			ref, status = paymentID[:i], paymentID[i+1:]
		}
		now := time.Now().UTC()
		return &ports.PaymentInfo{ID: paymentID, Status: status, ExternalReference: ref, ApprovedAt: &now}, nil
	}

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, fmt.Errorf("payments: id de pago inválido %q", paymentID)
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.log.Error().Err(err).Str("payment_id", paymentID).Msg("consultar pago falló")
		return nil, fmt.Errorf("payments: consultar pago: %w", err)
	}
	return &ports.PaymentInfo{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		Amount:            decimal.NewFromFloat(resp.TransactionAmount),
	}, nil
}
