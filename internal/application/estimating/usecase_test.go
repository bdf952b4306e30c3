package estimating_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/estimating"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
)

type fakeQuotePDF struct{ est *entity.Estimate }

func (f *fakeQuotePDF) GenerateEstimatePDF(_ context.Context, _ *entity.Company, est *entity.Estimate, _ estimate.Input) ([]byte, error) {
	f.est = est
	return []byte("%PDF"), nil
}

type fixture struct {
	uc        *estimating.UseCase
	estimates *mocks.MockEstimateRepository
	drafts    *mocks.MockDraftStore
	companies *mocks.MockCompanyRepository
	customers *mocks.MockCustomerRepository
	pdf       *fakeQuotePDF
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		estimates: mocks.NewMockEstimateRepository(ctrl),
		drafts:    mocks.NewMockDraftStore(ctrl),
		companies: mocks.NewMockCompanyRepository(ctrl),
		customers: mocks.NewMockCustomerRepository(ctrl),
		pdf:       &fakeQuotePDF{},
	}
	f.uc = estimating.NewUseCase(f.estimates, f.drafts, f.companies, f.customers, f.pdf, sanitize.New()).
		WithClock(func() time.Time { return fixedNow })
	return f
}

func tileFloor() estimate.Input {
	return estimate.Input{Unit: estimate.UnitSquareFeet, Width: "10", Length: "10", SurfaceType: "Floor", Material: "Tile", Industry: "Tile"}
}

func TestCalculate_RechazaMasDeDiezAreas(t *testing.T) {
	f := newFixture(t)
	in := tileFloor()
	for i := 0; i < estimate.MaxAdditionalAreas; i++ {
		in.AdditionalAreas = append(in.AdditionalAreas, estimate.Dimension{Width: "1", Length: "1"})
	}
	_, err := f.uc.Calculate(in)
	require.NoError(t, err)

	in.AdditionalAreas = append(in.AdditionalAreas, estimate.Dimension{Width: "1", Length: "1"})
	_, err = f.uc.Calculate(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := tileFloor()
	bad.Unit = "acres"
	_, err = f.uc.Calculate(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSave_GuardaSnapshotYResultado(t *testing.T) {
	f := newFixture(t)
	f.customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(&entity.Customer{ID: "cus-1", CompanyID: "co-1"}, nil)
	f.estimates.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *entity.Estimate) error {
		var in estimate.Input
		require.NoError(t, json.Unmarshal(e.Input, &in))
		assert.Equal(t, "Tile", in.Material)
		assert.Equal(t, "550.00", e.Total.StringFixed(2))
		assert.Equal(t, "u-1", e.CreatedBy)
		return nil
	})

	res, err := f.uc.Save(context.Background(), "co-1", "u-1", dto.SaveEstimateRequest{Name: "Baño", CustomerID: "cus-1", Input: tileFloor()})
	require.NoError(t, err)
	assert.Equal(t, "110 sq ft of tile", res.Result.QuantityText)
}

func TestSave_ClienteDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	f.customers.EXPECT().GetByID(gomock.Any(), "cus-x").Return(&entity.Customer{ID: "cus-x", CompanyID: "otra"}, nil)
	_, err := f.uc.Save(context.Background(), "co-1", "u-1", dto.SaveEstimateRequest{Name: "X", CustomerID: "cus-x", Input: tileFloor()})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDraft_GuardarCargarYSinBorrador(t *testing.T) {
	f := newFixture(t)
	f.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d *entity.EstimateDraft) error {
		assert.Equal(t, "u-1", d.UserID)
		assert.Equal(t, "co-1", d.CompanyID)
		assert.JSONEq(t, `{}`, string(d.Input))
		return nil
	})
	_, err := f.uc.SaveDraft(context.Background(), "co-1", "u-1", dto.DraftRequest{Name: "cocina"})
	require.NoError(t, err)

	_, err = f.uc.SaveDraft(context.Background(), "co-1", "u-1", dto.DraftRequest{Input: json.RawMessage(`{"width":`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.drafts.EXPECT().Get(gomock.Any(), "u-2").Return(nil, nil)
	_, err = f.uc.LoadDraft(context.Background(), "u-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProyecto_ExportarEImportar(t *testing.T) {
	f := newFixture(t)
	raw, _ := json.Marshal(tileFloor())
	saved := &entity.Estimate{ID: "e-1", CompanyID: "co-1", Name: "Baño principal", Input: raw}
	f.estimates.EXPECT().GetByID(gomock.Any(), "e-1").Return(saved, nil)

	file, err := f.uc.ExportProject(context.Background(), "co-1", "e-1")
	require.NoError(t, err)
	assert.Equal(t, "Ba_o_principal_2026-10-16.json", file.Filename)
	assert.Equal(t, "application/json", file.ContentType)

	pf, err := f.uc.ImportProject(file.Data)
	require.NoError(t, err)
	assert.Equal(t, "Baño principal", pf.Name)
	assert.Equal(t, "550.00", pf.Result.Total.StringFixed(2), "el resultado se recalcula al importar")

	_, err = f.uc.ImportProject([]byte("no es json"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ImportProject([]byte(`{"version":99,"input":{}}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuotePDF_NombreConTimestamp(t *testing.T) {
	f := newFixture(t)
	raw, _ := json.Marshal(tileFloor())
	f.estimates.EXPECT().GetByID(gomock.Any(), "e-1").Return(&entity.Estimate{ID: "e-1", CompanyID: "co-1", Input: raw}, nil)
	f.companies.EXPECT().GetByID(gomock.Any(), "co-1").Return(&entity.Company{ID: "co-1", Name: "Obrix"}, nil)

	file, err := f.uc.QuotePDF(context.Background(), "co-1", "e-1")
	require.NoError(t, err)
	assert.Equal(t, "estimate_1792143000.pdf", file.Filename)
	assert.Equal(t, "e-1", f.pdf.est.ID)
}
