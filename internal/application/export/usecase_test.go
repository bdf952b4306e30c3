package export_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/export"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
)

type fakeTablePDF struct {
	title, subtitle string
	rows            int
}

func (f *fakeTablePDF) GenerateTablePDF(title, subtitle string, _ []string, rows [][]string) ([]byte, error) {
	f.title, f.subtitle, f.rows = title, subtitle, len(rows)
	return []byte("%PDF"), nil
}

var now = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *export.UseCase
	repos export.Repos
	pdf   *fakeTablePDF

	customers *mocks.MockCustomerRepository
	invoices  *mocks.MockInvoiceRepository
	employees *mocks.MockEmployeeRepository
	entries   *mocks.MockTimeEntryRepository
	materials *mocks.MockMaterialRepository
	budget    *mocks.MockBudgetRepository
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		pdf:       &fakeTablePDF{},
		customers: mocks.NewMockCustomerRepository(ctrl),
		invoices:  mocks.NewMockInvoiceRepository(ctrl),
		employees: mocks.NewMockEmployeeRepository(ctrl),
		entries:   mocks.NewMockTimeEntryRepository(ctrl),
		materials: mocks.NewMockMaterialRepository(ctrl),
		budget:    mocks.NewMockBudgetRepository(ctrl),
	}
	f.repos = export.Repos{
		Invoices: f.invoices, Customers: f.customers, Employees: f.employees,
		TimeEntries: f.entries, Materials: f.materials, Budget: f.budget,
	}
	f.uc = export.NewUseCase(f.repos, f.pdf).WithClock(func() time.Time { return now })
	return f
}

func TestExport_ClientesCSVConComillas(t *testing.T) {
	f := newFixture(t)
	f.customers.EXPECT().List(gomock.Any(), "co-1", repository.CustomerFilter{Limit: 500}).Return([]*entity.Customer{
		{Name: `Casa "Azul"`, Email: "a@b.co", Status: "lead"},
	}, nil)

	file, err := f.uc.Export(context.Background(), "co-1", export.DatasetCustomers, dto.ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "customers_2026-10-16.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	lines := strings.Split(strings.TrimSuffix(string(file.Data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Casa ""Azul""","","a@b.co","","","lead"`, lines[1])
}

func TestExport_FacturasPaginaHastaAgotar(t *testing.T) {
	f := newFixture(t)
	f.customers.EXPECT().List(gomock.Any(), "co-1", gomock.Any()).Return([]*entity.Customer{{ID: "c1", Name: "Ana"}}, nil)

	full := make([]*entity.Invoice, 500)
	for i := range full {
		full[i] = &entity.Invoice{Number: "INV", CustomerID: "c1", GrandTotal: decimal.NewFromInt(1)}
	}
	gomock.InOrder(
		f.invoices.EXPECT().List(gomock.Any(), "co-1", repository.InvoiceFilter{Limit: 500, Offset: 0}).Return(full, nil),
		f.invoices.EXPECT().List(gomock.Any(), "co-1", repository.InvoiceFilter{Limit: 500, Offset: 500}).Return(full[:3], nil),
	)

	file, err := f.uc.Export(context.Background(), "co-1", export.DatasetInvoices, dto.ExportRequest{Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "invoices_1792137600.pdf", file.Filename)
	assert.Equal(t, 503, f.pdf.rows)
	assert.Equal(t, "Invoices", f.pdf.title)
}

func TestExport_HorasDelMesEnCurso(t *testing.T) {
	f := newFixture(t)
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	f.employees.EXPECT().ListByCompany(gomock.Any(), "co-1", "").Return([]*entity.Employee{{ID: "e1", Name: "Luis"}}, nil)
	f.entries.EXPECT().ListByPeriod(gomock.Any(), "co-1", from, from.AddDate(0, 1, 0), "").Return([]*entity.TimeEntry{
		{EmployeeID: "e1", WorkDate: from, Hours: decimal.RequireFromString("7.5")},
	}, nil)

	file, err := f.uc.Export(context.Background(), "co-1", export.DatasetTimeEntries, dto.ExportRequest{Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01 - 2026-10-31", f.pdf.subtitle)
	assert.Equal(t, 1, f.pdf.rows)
	assert.NotEmpty(t, file.Data)
}

func TestExport_MaterialesXLSX(t *testing.T) {
	f := newFixture(t)
	f.materials.EXPECT().ListByCompany(gomock.Any(), "co-1", false).Return([]*entity.MaterialItem{
		{SKU: "TL-1", Name: "Tile", Quantity: decimal.NewFromInt(2), ReorderLevel: decimal.NewFromInt(5)},
	}, nil)

	file, err := f.uc.Export(context.Background(), "co-1", export.DatasetMaterials, dto.ExportRequest{Format: "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "materials_2026-10-16.xlsx", file.Filename)
	assert.Equal(t, "PK", string(file.Data[:2]))
}

func TestExport_FormatoYDatasetInvalidos(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Export(context.Background(), "co-1", export.DatasetMaterials, dto.ExportRequest{Format: "docx"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Export(context.Background(), "co-1", "payments", dto.ExportRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Export(context.Background(), "co-1", export.DatasetBudget, dto.ExportRequest{Period: "2026/10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDatasetFeature_CubreTodosLosDatasets(t *testing.T) {
	for _, ds := range []string{
		export.DatasetInvoices, export.DatasetCustomers, export.DatasetEmployees,
		export.DatasetTimeEntries, export.DatasetMaterials, export.DatasetBudget,
	} {
		assert.NotEmpty(t, export.DatasetFeature[ds], ds)
	}
}
