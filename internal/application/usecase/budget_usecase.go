package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/payroll"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// PeriodLayout formato de los períodos presupuestales.
const PeriodLayout = "2006-01"

// BudgetUseCase partidas presupuestales por mes.
type BudgetUseCase struct {
	repo      repository.BudgetRepository
	sanitizer ports.Sanitizer
	now       func() time.Time
}

// NewBudgetUseCase construye el caso de uso.
func NewBudgetUseCase(repo repository.BudgetRepository, sanitizer ports.Sanitizer) *BudgetUseCase {
	return &BudgetUseCase{repo: repo, sanitizer: sanitizer, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *BudgetUseCase) WithClock(now func() time.Time) *BudgetUseCase {
	uc.now = now
	return uc
}

// Create crea una partida del período.
func (uc *BudgetUseCase) Create(ctx context.Context, companyID string, in dto.CreateBudgetCategoryRequest) (*dto.BudgetCategoryResponse, error) {
	name := uc.sanitizer.Text(in.Name)
	if name == "" || in.Planned.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse(PeriodLayout, in.Period); err != nil {
		return nil, fmt.Errorf("%w: period debe ser YYYY-MM", domain.ErrInvalidInput)
	}
	now := uc.now()
	b := &entity.BudgetCategory{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Period:    in.Period,
		Planned:   in.Planned,
		Spent:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBudgetResponse(b), nil
}

// Update cambia nombre o monto planeado.
func (uc *BudgetUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateBudgetCategoryRequest) (*dto.BudgetCategoryResponse, error) {
	b, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = uc.sanitizer.Text(*in.Name)
	}
	if in.Planned != nil {
		b.Planned = *in.Planned
	}
	if b.Name == "" || b.Planned.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBudgetResponse(b), nil
}

// RecordSpend suma un gasto a la partida.
func (uc *BudgetUseCase) RecordSpend(ctx context.Context, companyID, id string, in dto.RecordSpendRequest) (*dto.BudgetCategoryResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return nil, err
	}
	b, err := uc.repo.AddSpent(ctx, id, in.Amount)
	if err != nil {
		return nil, err
	}
	return toBudgetResponse(b), nil
}

// Delete elimina una partida.
func (uc *BudgetUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Summary partidas del período (por defecto el mes en curso) con su avance y la utilización total.
func (uc *BudgetUseCase) Summary(ctx context.Context, companyID, period string) (*dto.BudgetSummaryDTO, error) {
	if period == "" {
		period = uc.now().Format(PeriodLayout)
	}
	if _, err := time.Parse(PeriodLayout, period); err != nil {
		return nil, fmt.Errorf("%w: period debe ser YYYY-MM", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListByPeriod(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	res := &dto.BudgetSummaryDTO{
		Period:     period,
		Categories: make([]dto.BudgetCategoryResponse, 0, len(list)),
		Planned:    decimal.Zero,
		Spent:      decimal.Zero,
	}
	for _, b := range list {
		res.Categories = append(res.Categories, *toBudgetResponse(b))
		res.Planned = res.Planned.Add(b.Planned)
		res.Spent = res.Spent.Add(b.Spent)
	}
	res.Utilization = payroll.Progress(res.Spent, res.Planned)
	return res, nil
}

func (uc *BudgetUseCase) owned(ctx context.Context, companyID, id string) (*entity.BudgetCategory, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

func toBudgetResponse(b *entity.BudgetCategory) *dto.BudgetCategoryResponse {
	return &dto.BudgetCategoryResponse{
		ID:        b.ID,
		Name:      b.Name,
		Period:    b.Period,
		Planned:   b.Planned,
		Spent:     b.Spent,
		Remaining: b.Planned.Sub(b.Spent),
		Progress:  payroll.Progress(b.Spent, b.Planned),
		OverSpent: b.Spent.GreaterThan(b.Planned),
	}
}
