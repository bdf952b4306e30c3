package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/inventory"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

type fakeTx struct {
	repo repository.MaterialRepository
	runs int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.MaterialRepository) error) error {
	f.runs++
	return fn(f.repo)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(t *testing.T) (*inventory.MaterialUseCase, *mocks.MockMaterialRepository, *fakeTx) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMaterialRepository(ctrl)
	tx := &fakeTx{repo: repo}
	return inventory.NewMaterialUseCase(repo, tx, sanitize.New(), logger.Nop()), repo, tx
}

func TestMaterialUseCase_CrearValidaYRechazaSKUDuplicado(t *testing.T) {
	uc, repo, _ := newUseCase(t)

	repo.EXPECT().GetBySKU(gomock.Any(), "co-1", "TL-1").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	res, err := uc.Create(context.Background(), "co-1", dto.CreateMaterialRequest{
		SKU: " TL-1 ", Name: "Porcelain tile", Unit: "sq ft", Quantity: d("40"), UnitCost: d("2.5"), ReorderLevel: d("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "TL-1", res.SKU)
	assert.True(t, res.LowStock)
	assert.Equal(t, "100.00", res.Value.StringFixed(2))

	repo.EXPECT().GetBySKU(gomock.Any(), "co-1", "TL-1").Return(&entity.MaterialItem{ID: "m-1"}, nil)
	_, err = uc.Create(context.Background(), "co-1", dto.CreateMaterialRequest{SKU: "TL-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), "co-1", dto.CreateMaterialRequest{SKU: "X", Name: "Y", UnitCost: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaterialUseCase_AjusteDeExistencia(t *testing.T) {
	uc, repo, _ := newUseCase(t)

	_, err := uc.Adjust(context.Background(), "co-1", "m-1", dto.AdjustStockRequest{Delta: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.EXPECT().GetByID(gomock.Any(), "m-1").Return(&entity.MaterialItem{ID: "m-1", CompanyID: "co-1"}, nil).Times(2)
	repo.EXPECT().AdjustQuantity(gomock.Any(), "m-1", d("-5")).Return(&entity.MaterialItem{ID: "m-1", Quantity: d("15"), ReorderLevel: d("10")}, nil)
	res, err := uc.Adjust(context.Background(), "co-1", "m-1", dto.AdjustStockRequest{Delta: d("-5"), Reason: "used on job"})
	require.NoError(t, err)
	assert.True(t, d("15").Equal(res.Quantity))
	assert.False(t, res.LowStock)

	repo.EXPECT().AdjustQuantity(gomock.Any(), "m-1", d("-500")).Return(nil, domain.ErrConflict)
	_, err = uc.Adjust(context.Background(), "co-1", "m-1", dto.AdjustStockRequest{Delta: d("-500")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	repo.EXPECT().GetByID(gomock.Any(), "ajeno").Return(&entity.MaterialItem{ID: "ajeno", CompanyID: "otra"}, nil)
	_, err = uc.Adjust(context.Background(), "co-1", "ajeno", dto.AdjustStockRequest{Delta: d("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMaterialUseCase_ValorDelInventario(t *testing.T) {
	uc, repo, _ := newUseCase(t)
	repo.EXPECT().ListByCompany(gomock.Any(), "co-1", false).Return([]*entity.MaterialItem{
		{Quantity: d("10"), UnitCost: d("3.333"), ReorderLevel: d("2")},
		{Quantity: d("1"), UnitCost: d("100"), ReorderLevel: d("1")},
	}, nil)

	res, err := uc.Value(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Items)
	assert.Equal(t, "133.33", res.TotalValue.StringFixed(2))
	assert.Equal(t, 1, res.LowStockCount)
}

func TestMaterialUseCase_ImportarCreaYActualizaPorSKU(t *testing.T) {
	uc, repo, tx := newUseCase(t)
	csv := "SKU;Name;Quantity;Unit Cost\n" +
		"TL-1;Tile;100;2.50\n" +
		"GR-1;Grout;abc;1\n" +
		"NEW-1;Nuevo;5;$1,200.00\n"

	repo.EXPECT().GetBySKU(gomock.Any(), "co-1", "TL-1").Return(&entity.MaterialItem{ID: "m-1", CompanyID: "co-1", SKU: "TL-1", Unit: "sq ft"}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *entity.MaterialItem) error {
		assert.True(t, d("100").Equal(m.Quantity))
		assert.Equal(t, "sq ft", m.Unit, "unidad vacía en el archivo conserva la actual")
		return nil
	})
	repo.EXPECT().GetBySKU(gomock.Any(), "co-1", "NEW-1").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *entity.MaterialItem) error {
		assert.Equal(t, "co-1", m.CompanyID)
		assert.True(t, d("1200").Equal(m.UnitCost))
		return nil
	})

	res, err := uc.Import(context.Background(), "co-1", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, tx.runs)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "línea 3")
}

func TestMaterialUseCase_ImportarSinColumnasObligatorias(t *testing.T) {
	uc, _, tx := newUseCase(t)
	_, err := uc.Import(context.Background(), "co-1", strings.NewReader("foo,bar\n1,2\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, tx.runs)
}
