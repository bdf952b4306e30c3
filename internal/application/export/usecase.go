// Package export arma los datasets descargables (CSV, XLSX, PDF) de cada módulo.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	tabular "github.com/jhoicas/Obrix-api/internal/infrastructure/export"
)

// Datasets exportables.
const (
	DatasetInvoices    = "invoices"
	DatasetCustomers   = "customers"
	DatasetEmployees   = "employees"
	DatasetTimeEntries = "time_entries"
	DatasetMaterials   = "materials"
	DatasetBudget      = "budget"
)

// DatasetFeature funcionalidad del plan que habilita cada dataset.
var DatasetFeature = map[string]string{
	DatasetInvoices:    entity.FeatureInvoicing,
	DatasetCustomers:   entity.FeatureCRM,
	DatasetEmployees:   entity.FeatureCrew,
	DatasetTimeEntries: entity.FeatureCrew,
	DatasetMaterials:   entity.FeatureMatTrack,
	DatasetBudget:      entity.FeatureBudget,
}

const (
	pageSize = 500
	// MaxRows tope de filas por archivo.
	MaxRows = 10000
)

// TablePDFGenerator genera un reporte tabular en PDF.
type TablePDFGenerator interface {
	GenerateTablePDF(title, subtitle string, headers []string, rows [][]string) ([]byte, error)
}

// Repos repositorios que alimentan los datasets.
type Repos struct {
	Invoices    repository.InvoiceRepository
	Customers   repository.CustomerRepository
	Employees   repository.EmployeeRepository
	TimeEntries repository.TimeEntryRepository
	Materials   repository.MaterialRepository
	Budget      repository.BudgetRepository
}

// UseCase exportación de datasets.
type UseCase struct {
	repos Repos
	pdf   TablePDFGenerator
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos Repos, pdf TablePDFGenerator) *UseCase {
	return &UseCase{repos: repos, pdf: pdf, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Export genera el archivo del dataset en el formato pedido (csv por defecto).
func (uc *UseCase) Export(ctx context.Context, companyID, dataset string, in dto.ExportRequest) (*dto.ExportFile, error) {
	format := in.Format
	if format == "" {
		format = tabular.FormatCSV
	}
	switch format {
	case tabular.FormatCSV, tabular.FormatXLSX, tabular.FormatPDF:
	default:
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}

	table, subtitle, err := uc.table(ctx, companyID, dataset, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	file := &dto.ExportFile{
		Filename:    tabular.Filename(table.Name, format, now),
		ContentType: tabular.ContentType(format),
	}
	switch format {
	case tabular.FormatCSV:
		file.Data = tabular.CSV(table)
	case tabular.FormatXLSX:
		if file.Data, err = tabular.XLSX(table); err != nil {
			return nil, err
		}
	case tabular.FormatPDF:
		if file.Data, err = uc.pdf.GenerateTablePDF(table.Title, subtitle, table.Headers, table.Rows); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func (uc *UseCase) table(ctx context.Context, companyID, dataset string, in dto.ExportRequest) (tabular.Table, string, error) {
	switch dataset {
	case DatasetInvoices:
		return uc.invoices(ctx, companyID)
	case DatasetCustomers:
		return uc.customers(ctx, companyID)
	case DatasetEmployees:
		return uc.employees(ctx, companyID)
	case DatasetTimeEntries:
		return uc.timeEntries(ctx, companyID, in)
	case DatasetMaterials:
		return uc.materials(ctx, companyID)
	case DatasetBudget:
		return uc.budget(ctx, companyID, in.Period)
	}
	return tabular.Table{}, "", fmt.Errorf("%w: dataset %q", domain.ErrNotFound, dataset)
}

func (uc *UseCase) invoices(ctx context.Context, companyID string) (tabular.Table, string, error) {
	t := tabular.Table{
		Name:    "invoices",
		Title:   "Invoices",
		Headers: []string{"Number", "Customer", "Issue date", "Due date", "Status", "Net", "Tax", "Total"},
	}
	names, err := uc.customerNames(ctx, companyID)
	if err != nil {
		return t, "", err
	}
	for offset := 0; offset < MaxRows; offset += pageSize {
		page, err := uc.repos.Invoices.List(ctx, companyID, repository.InvoiceFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return t, "", err
		}
		for _, inv := range page {
			t.Rows = append(t.Rows, []string{
				inv.Number, names[inv.CustomerID],
				inv.IssueDate.Format(dto.DateLayout), inv.DueDate.Format(dto.DateLayout), inv.Status,
				inv.NetTotal.StringFixed(2), inv.TaxTotal.StringFixed(2), inv.GrandTotal.StringFixed(2),
			})
		}
		if len(page) < pageSize {
			break
		}
	}
	return t, "", nil
}

func (uc *UseCase) customers(ctx context.Context, companyID string) (tabular.Table, string, error) {
	t := tabular.Table{
		Name:    "customers",
		Title:   "Customers",
		Headers: []string{"Name", "Tax ID", "Email", "Phone", "Address", "Status"},
	}
	list, err := uc.allCustomers(ctx, companyID)
	if err != nil {
		return t, "", err
	}
	for _, c := range list {
		t.Rows = append(t.Rows, []string{c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.Status})
	}
	return t, "", nil
}

func (uc *UseCase) employees(ctx context.Context, companyID string) (tabular.Table, string, error) {
	t := tabular.Table{
		Name:    "employees",
		Title:   "Crew",
		Headers: []string{"Name", "Role", "Email", "Phone", "Hourly rate", "Status"},
	}
	list, err := uc.repos.Employees.ListByCompany(ctx, companyID, "")
	if err != nil {
		return t, "", err
	}
	for _, e := range list {
		t.Rows = append(t.Rows, []string{e.Name, e.Role, e.Email, e.Phone, e.HourlyRate.StringFixed(2), e.Status})
	}
	return t, "", nil
}

func (uc *UseCase) timeEntries(ctx context.Context, companyID string, in dto.ExportRequest) (tabular.Table, string, error) {
	t := tabular.Table{
		Name:    "time_entries",
		Title:   "Time entries",
		Headers: []string{"Date", "Employee", "Hours", "Job", "Notes"},
	}
	from, to, err := uc.period(in.From, in.To)
	if err != nil {
		return t, "", err
	}
	employees, err := uc.repos.Employees.ListByCompany(ctx, companyID, "")
	if err != nil {
		return t, "", err
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	list, err := uc.repos.TimeEntries.ListByPeriod(ctx, companyID, from, to.AddDate(0, 0, 1), "")
	if err != nil {
		return t, "", err
	}
	for _, e := range list {
		t.Rows = append(t.Rows, []string{e.WorkDate.Format(dto.DateLayout), names[e.EmployeeID], e.Hours.String(), e.JobRef, e.Notes})
	}
	return t, from.Format(dto.DateLayout) + " - " + to.Format(dto.DateLayout), nil
}

func (uc *UseCase) materials(ctx context.Context, companyID string) (tabular.Table, string, error) {
	t := tabular.Table{
		Name:    "materials",
		Title:   "Materials",
		Headers: []string{"SKU", "Name", "Unit", "Quantity", "Unit cost", "Reorder level", "Value", "Low stock"},
	}
	list, err := uc.repos.Materials.ListByCompany(ctx, companyID, false)
	if err != nil {
		return t, "", err
	}
	for _, m := range list {
		low := "no"
		if m.LowStock() {
			low = "yes"
		}
		t.Rows = append(t.Rows, []string{
			m.SKU, m.Name, m.Unit, m.Quantity.String(), m.UnitCost.StringFixed(2),
			m.ReorderLevel.String(), m.Value().StringFixed(2), low,
		})
	}
	return t, "", nil
}

func (uc *UseCase) budget(ctx context.Context, companyID, period string) (tabular.Table, string, error) {
	t := tabular.Table{
		Name:    "budget",
		Title:   "Budget",
		Headers: []string{"Category", "Period", "Planned", "Spent", "Remaining"},
	}
	if period == "" {
		period = uc.now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return t, "", fmt.Errorf("%w: period debe ser YYYY-MM", domain.ErrInvalidInput)
	}
	list, err := uc.repos.Budget.ListByPeriod(ctx, companyID, period)
	if err != nil {
		return t, "", err
	}
	for _, b := range list {
		t.Rows = append(t.Rows, []string{
			b.Name, b.Period, b.Planned.StringFixed(2), b.Spent.StringFixed(2), b.Planned.Sub(b.Spent).StringFixed(2),
		})
	}
	return t, period, nil
}

func (uc *UseCase) allCustomers(ctx context.Context, companyID string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for offset := 0; offset < MaxRows; offset += pageSize {
		page, err := uc.repos.Customers.List(ctx, companyID, repository.CustomerFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < pageSize {
			break
		}
	}
	return out, nil
}

func (uc *UseCase) customerNames(ctx context.Context, companyID string) (map[string]string, error) {
	list, err := uc.allCustomers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, c := range list {
		names[c.ID] = c.Name
	}
	return names, nil
}

// period rango inclusivo; por defecto el mes en curso.
func (uc *UseCase) period(fromStr, toStr string) (time.Time, time.Time, error) {
	now := uc.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	var err error
	if fromStr != "" {
		if from, err = time.Parse(dto.DateLayout, fromStr); err != nil {
			return from, to, fmt.Errorf("%w: from inválida", domain.ErrInvalidInput)
		}
	}
	if toStr != "" {
		if to, err = time.Parse(dto.DateLayout, toStr); err != nil {
			return from, to, fmt.Errorf("%w: to inválida", domain.ErrInvalidInput)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("%w: to anterior a from", domain.ErrInvalidInput)
	}
	return from, to, nil
}
