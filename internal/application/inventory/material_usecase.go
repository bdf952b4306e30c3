package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/importer"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// MaterialUseCase inventario de materiales (MatTrack).
type MaterialUseCase struct {
	repo      repository.MaterialRepository
	txRunner  TxRunner
	sanitizer ports.Sanitizer
	log       *logger.Logger
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, txRunner TxRunner, sanitizer ports.Sanitizer, log *logger.Logger) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, txRunner: txRunner, sanitizer: sanitizer, log: log.Component("materials")}
}

// Create da de alta un material. El SKU es único por empresa.
func (uc *MaterialUseCase) Create(ctx context.Context, companyID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	item := &entity.MaterialItem{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          strings.TrimSpace(in.SKU),
		Name:         uc.sanitizer.Text(in.Name),
		Unit:         uc.sanitizer.Text(in.Unit),
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		ReorderLevel: in.ReorderLevel,
		Location:     uc.sanitizer.Text(in.Location),
	}
	if err := validateMaterial(item); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, companyID, item.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToMaterialResponse(item), nil
}

// GetByID obtiene un material de la empresa.
func (uc *MaterialUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.MaterialResponse, error) {
	item, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToMaterialResponse(item), nil
}

// List lista materiales; lowStockOnly filtra los que están en o bajo el punto de reorden.
func (uc *MaterialUseCase) List(ctx context.Context, companyID string, lowStockOnly bool) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, lowStockOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMaterialResponse(m))
	}
	return out, nil
}

// Update modifica los datos del material. La existencia solo cambia con Adjust.
func (uc *MaterialUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	item, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != item.SKU {
			other, err := uc.repo.GetBySKU(ctx, companyID, sku)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		item.SKU = sku
	}
	if in.Name != nil {
		item.Name = uc.sanitizer.Text(*in.Name)
	}
	if in.Unit != nil {
		item.Unit = uc.sanitizer.Text(*in.Unit)
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.Location != nil {
		item.Location = uc.sanitizer.Text(*in.Location)
	}
	if err := validateMaterial(item); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToMaterialResponse(item), nil
}

// Adjust registra una entrada (delta positivo) o salida (negativo) de existencia.
// Una salida mayor a la existencia devuelve domain.ErrConflict.
func (uc *MaterialUseCase) Adjust(ctx context.Context, companyID, id string, in dto.AdjustStockRequest) (*dto.MaterialResponse, error) {
	if in.Delta.IsZero() {
		return nil, fmt.Errorf("%w: delta no puede ser cero", domain.ErrInvalidInput)
	}
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return nil, err
	}
	item, err := uc.repo.AdjustQuantity(ctx, id, in.Delta)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("material_id", id).
		Str("delta", in.Delta.String()).
		Str("reason", uc.sanitizer.Text(in.Reason)).
		Msg("ajuste de existencia")
	return ToMaterialResponse(item), nil
}

// Delete elimina un material.
func (uc *MaterialUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Value resume el valor del inventario y cuántos artículos están bajos de existencia.
func (uc *MaterialUseCase) Value(ctx context.Context, companyID string) (*dto.InventoryValueDTO, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, false)
	if err != nil {
		return nil, err
	}
	res := &dto.InventoryValueDTO{Items: len(list), TotalValue: decimal.Zero}
	for _, m := range list {
		res.TotalValue = res.TotalValue.Add(m.Value())
		if m.LowStock() {
			res.LowStockCount++
		}
	}
	res.TotalValue = res.TotalValue.Round(2)
	return res, nil
}

// Import carga un CSV de materiales. Las filas con SKU existente actualizan el artículo
// (incluida la existencia contada); las nuevas se crean. Las filas inválidas se reportan
// y el resto se aplica en una sola transacción.
func (uc *MaterialUseCase) Import(ctx context.Context, companyID string, r io.Reader) (*dto.ImportResultDTO, error) {
	parsed, err := importer.ParseMaterials(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	res := &dto.ImportResultDTO{Encoding: parsed.Encoding}
	for _, e := range parsed.Errors {
		res.Errors = append(res.Errors, e.Error())
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(materialRepo repository.MaterialRepository) error {
		for _, row := range parsed.Rows {
			item := row.Item
			item.Name = uc.sanitizer.Text(item.Name)
			item.Unit = uc.sanitizer.Text(item.Unit)
			if err := validateMaterial(&item); err != nil {
				res.Errors = append(res.Errors, importer.RowError{Line: row.Line, Reason: err.Error()}.Error())
				continue
			}
			existing, err := materialRepo.GetBySKU(ctx, companyID, item.SKU)
			if err != nil {
				return err
			}
			if existing != nil {
				existing.Name = item.Name
				if item.Unit != "" {
					existing.Unit = item.Unit
				}
				existing.Quantity = item.Quantity
				existing.UnitCost = item.UnitCost
				existing.ReorderLevel = item.ReorderLevel
				existing.UpdatedAt = now
				if err := materialRepo.Update(ctx, existing); err != nil {
					return err
				}
				res.Updated++
				continue
			}
			item.ID = uuid.New().String()
			item.CompanyID = companyID
			item.CreatedAt = now
			item.UpdatedAt = now
			if err := materialRepo.Create(ctx, &item); err != nil {
				return err
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("encoding", res.Encoding).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("errors", len(res.Errors)).
		Msg("importación de materiales")
	return res, nil
}

func (uc *MaterialUseCase) owned(ctx context.Context, companyID, id string) (*entity.MaterialItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func validateMaterial(m *entity.MaterialItem) error {
	switch {
	case m.SKU == "" || m.Name == "":
		return fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	case m.Quantity.IsNegative():
		return fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	case m.UnitCost.IsNegative():
		return fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
	case m.ReorderLevel.IsNegative():
		return fmt.Errorf("%w: reorder_level no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// ToMaterialResponse convierte el material a DTO.
func ToMaterialResponse(m *entity.MaterialItem) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		SKU:          m.SKU,
		Name:         m.Name,
		Unit:         m.Unit,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		ReorderLevel: m.ReorderLevel,
		Location:     m.Location,
		Value:        m.Value().Round(2),
		LowStock:     m.LowStock(),
		UpdatedAt:    m.UpdatedAt,
	}
}
