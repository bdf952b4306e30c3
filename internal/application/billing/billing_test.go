package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/billing"
	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	portmocks "github.com/jhoicas/Obrix-api/internal/application/ports/mocks"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// fakeTx ejecuta el callback con los mismos repos, sin transacción real.
type fakeTx struct {
	invoices repository.InvoiceRepository
	receipts repository.ReceiptRepository
}

func (f *fakeTx) RunBilling(_ context.Context, fn func(repository.InvoiceRepository, repository.ReceiptRepository) error) error {
	return fn(f.invoices, f.receipts)
}

type fakePDF struct {
	link  string
	calls int
}

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, _ *entity.Invoice, _ *entity.Company, _ *entity.Customer, _ []*entity.InvoiceItem, link string) ([]byte, error) {
	f.calls++
	f.link = link
	return []byte("%PDF-1.4"), nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type billingFixture struct {
	invoices  *mocks.MockInvoiceRepository
	receipts  *mocks.MockReceiptRepository
	customers *mocks.MockCustomerRepository
	companies *mocks.MockCompanyRepository
	tx        *fakeTx
}

func newFixture(t *testing.T) *billingFixture {
	ctrl := gomock.NewController(t)
	f := &billingFixture{
		invoices:  mocks.NewMockInvoiceRepository(ctrl),
		receipts:  mocks.NewMockReceiptRepository(ctrl),
		customers: mocks.NewMockCustomerRepository(ctrl),
		companies: mocks.NewMockCompanyRepository(ctrl),
	}
	f.tx = &fakeTx{invoices: f.invoices, receipts: f.receipts}
	return f
}

// ── Totales ───────────────────────────────────────────────────────────────────

func TestComputeTotals_NetoImpuestoYTotal(t *testing.T) {
	items := []*entity.InvoiceItem{
		{Quantity: d("2"), UnitPrice: d("100"), TaxRate: d("0.08")},
		{Quantity: d("1.5"), UnitPrice: d("33.33"), TaxRate: d("0")},
	}
	tot := billing.ComputeTotals(items)

	assert.Equal(t, "200.00", items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "50.00", items[1].Subtotal.StringFixed(2)) // 49.995 → 50.00
	assert.Equal(t, "250.00", tot.Net.StringFixed(2))
	assert.Equal(t, "16.00", tot.Tax.StringFixed(2))
	assert.Equal(t, "266.00", tot.Grand.StringFixed(2))
}

// ── Facturas ──────────────────────────────────────────────────────────────────

func TestInvoiceUseCase_CreaBorradorConConsecutivo(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	uc := billing.NewInvoiceUseCase(f.invoices, f.receipts, f.customers, f.tx, sanitize.New()).
		WithClock(func() time.Time { return now })

	f.customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(&entity.Customer{ID: "cus-1", CompanyID: "co-1", Name: "Ana"}, nil)
	f.invoices.EXPECT().NextNumber(gomock.Any(), "co-1").Return("INV-000007", nil)
	f.invoices.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv *entity.Invoice) error {
		assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
		assert.Equal(t, "INV-000007", inv.Number)
		return nil
	})
	f.invoices.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := uc.Create(context.Background(), "co-1", dto.CreateInvoiceRequest{
		CustomerID: "cus-1",
		Notes:      "<script>x</script>Gracias",
		Items: []dto.InvoiceItemRequest{
			{Description: "Tile install", Quantity: d("10"), UnitPrice: d("5.5"), TaxRate: d("0.1")},
			{Description: "<b>Grout</b>", Quantity: d("1"), UnitPrice: d("20")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-000007", res.Number)
	assert.Equal(t, "Ana", res.CustomerName)
	assert.Equal(t, "2026-03-10", res.IssueDate)
	assert.Equal(t, "2026-04-09", res.DueDate)
	assert.Equal(t, "80.50", res.GrandTotal.StringFixed(2))
	assert.Equal(t, "Grout", res.Items[1].Description)
	assert.Equal(t, "Gracias", res.Notes)
}

func TestInvoiceUseCase_CreaRechazaClienteAjenoYLineasInvalidas(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.invoices, f.receipts, f.customers, f.tx, sanitize.New())

	f.customers.EXPECT().GetByID(gomock.Any(), "ajeno").Return(&entity.Customer{ID: "ajeno", CompanyID: "otra"}, nil)
	_, err := uc.Create(context.Background(), "co-1", dto.CreateInvoiceRequest{
		CustomerID: "ajeno",
		Items:      []dto.InvoiceItemRequest{{Description: "x", Quantity: d("1"), UnitPrice: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(&entity.Customer{ID: "cus-1", CompanyID: "co-1"}, nil).Times(2)
	_, err = uc.Create(context.Background(), "co-1", dto.CreateInvoiceRequest{
		CustomerID: "cus-1",
		Items:      []dto.InvoiceItemRequest{{Description: "x", Quantity: d("0"), UnitPrice: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), "co-1", dto.CreateInvoiceRequest{
		CustomerID: "cus-1",
		Items:      []dto.InvoiceItemRequest{{Description: "x", Quantity: d("1"), UnitPrice: d("1"), TaxRate: d("8")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la tasa es una fracción")

	_, err = uc.Create(context.Background(), "co-1", dto.CreateInvoiceRequest{CustomerID: "cus-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUseCase_TransicionesDeEstado(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.invoices, f.receipts, f.customers, f.tx, sanitize.New())

	f.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(&entity.Invoice{ID: "inv-1", CompanyID: "co-1", Status: entity.InvoiceStatusDraft}, nil)
	f.invoices.EXPECT().UpdateStatus(gomock.Any(), "inv-1", entity.InvoiceStatusSent).Return(nil)
	res, err := uc.UpdateStatus(context.Background(), "co-1", "inv-1", entity.InvoiceStatusSent)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, res.Status)

	f.invoices.EXPECT().GetByID(gomock.Any(), "inv-2").Return(&entity.Invoice{ID: "inv-2", CompanyID: "co-1", Status: entity.InvoiceStatusPaid}, nil)
	_, err = uc.UpdateStatus(context.Background(), "co-1", "inv-2", entity.InvoiceStatusDraft)
	assert.ErrorIs(t, err, domain.ErrConflict)

	f.invoices.EXPECT().GetByID(gomock.Any(), "nada").Return(nil, nil)
	_, err = uc.UpdateStatus(context.Background(), "co-1", "nada", entity.InvoiceStatusSent)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUseCase_SoloBorradoresSeEliminan(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.invoices, f.receipts, f.customers, f.tx, sanitize.New())

	f.invoices.EXPECT().GetByID(gomock.Any(), "sent").Return(&entity.Invoice{ID: "sent", CompanyID: "co-1", Status: entity.InvoiceStatusSent}, nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), "co-1", "sent"), domain.ErrConflict)

	f.invoices.EXPECT().GetByID(gomock.Any(), "draft").Return(&entity.Invoice{ID: "draft", CompanyID: "co-1", Status: entity.InvoiceStatusDraft}, nil)
	f.invoices.EXPECT().Delete(gomock.Any(), "draft").Return(nil)
	assert.NoError(t, uc.Delete(context.Background(), "co-1", "draft"))
}

func TestInvoiceUseCase_DetalleIncluyeMontoPagado(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.invoices, f.receipts, f.customers, f.tx, sanitize.New())

	f.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(&entity.Invoice{ID: "inv-1", CompanyID: "co-1", CustomerID: "cus-1", GrandTotal: d("100")}, nil)
	f.invoices.EXPECT().GetItems(gomock.Any(), "inv-1").Return([]*entity.InvoiceItem{{ID: "it-1", Description: "x"}}, nil)
	f.receipts.EXPECT().SumByInvoice(gomock.Any(), "inv-1").Return(d("40"), nil)
	f.customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(&entity.Customer{ID: "cus-1", Name: "Ana"}, nil)

	res, err := uc.GetByID(context.Background(), "co-1", "inv-1")
	require.NoError(t, err)
	assert.True(t, d("40").Equal(res.AmountPaid))
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "Ana", res.CustomerName)
}

// ── Recibos ───────────────────────────────────────────────────────────────────

func TestReceiptUseCase_PagoTotalMarcaFacturaPagada(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewReceiptUseCase(f.receipts, f.invoices, f.tx, sanitize.New())

	f.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(&entity.Invoice{ID: "inv-1", CompanyID: "co-1", Status: entity.InvoiceStatusSent, GrandTotal: d("100")}, nil)
	f.receipts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.receipts.EXPECT().SumByInvoice(gomock.Any(), "inv-1").Return(d("100"), nil)
	f.invoices.EXPECT().UpdateStatus(gomock.Any(), "inv-1", entity.InvoiceStatusPaid).Return(nil)

	res, err := uc.Create(context.Background(), "co-1", dto.CreateReceiptRequest{InvoiceID: "inv-1", Amount: d("60"), Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, res.InvoiceStatus)
}

func TestReceiptUseCase_PagoParcialNoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewReceiptUseCase(f.receipts, f.invoices, f.tx, sanitize.New())

	f.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(&entity.Invoice{ID: "inv-1", CompanyID: "co-1", Status: entity.InvoiceStatusOverdue, GrandTotal: d("100")}, nil)
	f.receipts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.receipts.EXPECT().SumByInvoice(gomock.Any(), "inv-1").Return(d("99.99"), nil)

	res, err := uc.Create(context.Background(), "co-1", dto.CreateReceiptRequest{InvoiceID: "inv-1", Amount: d("10"), Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, res.InvoiceStatus)
}

func TestReceiptUseCase_Validaciones(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewReceiptUseCase(f.receipts, f.invoices, f.tx, sanitize.New())

	_, err := uc.Create(context.Background(), "co-1", dto.CreateReceiptRequest{Amount: d("0"), Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.invoices.EXPECT().GetByID(gomock.Any(), "void").Return(&entity.Invoice{ID: "void", CompanyID: "co-1", Status: entity.InvoiceStatusVoid}, nil)
	_, err = uc.Create(context.Background(), "co-1", dto.CreateReceiptRequest{InvoiceID: "void", Amount: d("5"), Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Sin factura: ingreso suelto.
	f.receipts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	res, err := uc.Create(context.Background(), "co-1", dto.CreateReceiptRequest{Amount: d("5"), Method: "check", ReceivedAt: "2026-01-02"})
	require.NoError(t, err)
	assert.Empty(t, res.InvoiceStatus)
	assert.Equal(t, 2026, res.ReceivedAt.Year())
}

func TestReceiptUseCase_NoSeEliminaReciboDeFacturaPagada(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewReceiptUseCase(f.receipts, f.invoices, f.tx, sanitize.New())

	f.receipts.EXPECT().GetByID(gomock.Any(), "r-1").Return(&entity.Receipt{ID: "r-1", CompanyID: "co-1", InvoiceID: "inv-1"}, nil)
	f.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(&entity.Invoice{ID: "inv-1", Status: entity.InvoiceStatusPaid}, nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), "co-1", "r-1"), domain.ErrConflict)

	f.receipts.EXPECT().GetByID(gomock.Any(), "r-2").Return(&entity.Receipt{ID: "r-2", CompanyID: "otra"}, nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), "co-1", "r-2"), domain.ErrForbidden)
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func TestCustomerUseCase_CreaLeadYRechazaTaxIDDuplicado(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewCustomerUseCase(f.customers, sanitize.New())

	f.customers.EXPECT().GetByCompanyAndTaxID(gomock.Any(), "co-1", "900").Return(nil, nil)
	f.customers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	res, err := uc.Create(context.Background(), "co-1", dto.CreateCustomerRequest{Name: "  <i>Ana</i> ", TaxID: "900"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", res.Name)
	assert.Equal(t, entity.CustomerStatusLead, res.Status)

	f.customers.EXPECT().GetByCompanyAndTaxID(gomock.Any(), "co-1", "900").Return(&entity.Customer{ID: "x"}, nil)
	_, err = uc.Create(context.Background(), "co-1", dto.CreateCustomerRequest{Name: "Otra", TaxID: "900"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), "co-1", dto.CreateCustomerRequest{Name: "<script></script>"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerUseCase_EstadoInvalido(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewCustomerUseCase(f.customers, sanitize.New())
	_, err := uc.UpdateStatus(context.Background(), "co-1", "c-1", "vip")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.customers.EXPECT().GetByID(gomock.Any(), "c-1").Return(&entity.Customer{ID: "c-1", CompanyID: "co-1", Name: "Ana", Status: entity.CustomerStatusLead}, nil)
	f.customers.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	res, err := uc.UpdateStatus(context.Background(), "co-1", "c-1", entity.CustomerStatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerStatusActive, res.Status)
}

// ── PDF y correo ──────────────────────────────────────────────────────────────

func TestPDFUseCase_LinkDePagoSoloParaFacturasPendientes(t *testing.T) {
	f := newFixture(t)
	gen := &fakePDF{}
	ctrl := gomock.NewController(t)
	uc := billing.NewPDFUseCase(f.invoices, f.companies, f.customers, gen, portmocks.NewMockMailer(ctrl), sanitize.New(), "https://app.obrix.test/", logger.Nop())

	assert.Equal(t, "https://app.obrix.test/pay/i1", uc.PaymentLink(&entity.Invoice{ID: "i1", Status: entity.InvoiceStatusSent}))
	assert.Empty(t, uc.PaymentLink(&entity.Invoice{ID: "i1", Status: entity.InvoiceStatusPaid}))
	assert.Empty(t, uc.PaymentLink(&entity.Invoice{ID: "i1", Status: entity.InvoiceStatusDraft}))

	inv := &entity.Invoice{ID: "i1", CompanyID: "co-1", CustomerID: "cus-1", Number: "INV-000001", Status: entity.InvoiceStatusOverdue}
	f.invoices.EXPECT().GetByID(gomock.Any(), "i1").Return(inv, nil)
	f.companies.EXPECT().GetByID(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1"}, nil)
	f.customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(&entity.Customer{ID: "cus-1"}, nil)
	f.invoices.EXPECT().GetItems(gomock.Any(), "i1").Return(nil, nil)

	data, name, err := uc.DownloadInvoicePDF(context.Background(), "co-1", "i1")
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-000001.pdf", name)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, "https://app.obrix.test/pay/i1", gen.link)
}

func TestPDFUseCase_EmailAdjuntaPDFYMarcaEnviada(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	mailer := portmocks.NewMockMailer(ctrl)
	uc := billing.NewPDFUseCase(f.invoices, f.companies, f.customers, &fakePDF{}, mailer, sanitize.New(), "", logger.Nop())

	inv := &entity.Invoice{ID: "i1", CompanyID: "co-1", CustomerID: "cus-1", Number: "INV-000002", Status: entity.InvoiceStatusDraft}
	f.invoices.EXPECT().GetByID(gomock.Any(), "i1").Return(inv, nil)
	f.companies.EXPECT().GetByID(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1"}, nil)
	f.customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(&entity.Customer{ID: "cus-1", Email: "ana@example.com"}, nil)
	f.invoices.EXPECT().GetItems(gomock.Any(), "i1").Return(nil, nil)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg ports.Email) error {
		assert.Equal(t, []string{"ana@example.com"}, msg.To)
		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
		assert.NotContains(t, msg.HTMLBody, "<script>")
		return nil
	})
	f.invoices.EXPECT().UpdateStatus(gomock.Any(), "i1", entity.InvoiceStatusSent).Return(nil)

	err := uc.EmailInvoice(context.Background(), "co-1", "i1", dto.EmailInvoiceRequest{Message: "Hola<script>alert(1)</script>"})
	require.NoError(t, err)
}

func TestPDFUseCase_EmailSinSMTPPropagaError(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	mailer := portmocks.NewMockMailer(ctrl)
	uc := billing.NewPDFUseCase(f.invoices, f.companies, f.customers, &fakePDF{}, mailer, sanitize.New(), "", logger.Nop())

	inv := &entity.Invoice{ID: "i1", CompanyID: "co-1", CustomerID: "cus-1", Status: entity.InvoiceStatusSent}
	f.invoices.EXPECT().GetByID(gomock.Any(), "i1").Return(inv, nil)
	f.companies.EXPECT().GetByID(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1"}, nil)
	f.customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(&entity.Customer{ID: "cus-1"}, nil)
	f.invoices.EXPECT().GetItems(gomock.Any(), "i1").Return(nil, nil)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.ErrMailDisabled)

	err := uc.EmailInvoice(context.Background(), "co-1", "i1", dto.EmailInvoiceRequest{To: "x@example.com"})
	assert.True(t, errors.Is(err, domain.ErrMailDisabled))
}
