package estimating

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/export"
)

// ProjectFileVersion versión del archivo de proyecto exportado.
const ProjectFileVersion = 1

// UseCase EasyCalc.
type UseCase struct {
	estimates repository.EstimateRepository
	drafts    repository.DraftStore
	companies repository.CompanyRepository
	customers repository.CustomerRepository
	pdf       QuotePDFGenerator
	sanitizer ports.Sanitizer
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	estimates repository.EstimateRepository,
	drafts repository.DraftStore,
	companies repository.CompanyRepository,
	customers repository.CustomerRepository,
	pdf QuotePDFGenerator,
	sanitizer ports.Sanitizer,
) *UseCase {
	return &UseCase{
		estimates: estimates,
		drafts:    drafts,
		companies: companies,
		customers: customers,
		pdf:       pdf,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Calculate ejecuta el motor. Más de estimate.MaxAdditionalAreas áreas adicionales es inválido.
func (uc *UseCase) Calculate(in estimate.Input) (estimate.Result, error) {
	if err := validateInput(in); err != nil {
		return estimate.Result{}, err
	}
	return estimate.Calculate(in).Rounded(), nil
}

// Save calcula y guarda la cotización con el snapshot de entradas.
func (uc *UseCase) Save(ctx context.Context, companyID, userID string, in dto.SaveEstimateRequest) (*dto.EstimateResponse, error) {
	name := uc.sanitizer.Text(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	result, err := uc.Calculate(in.Input)
	if err != nil {
		return nil, err
	}
	if in.CustomerID != "" {
		c, err := uc.customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		if c.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}
	in.Input.SurfaceType = uc.sanitizer.Text(in.Input.SurfaceType)
	in.Input.Material = uc.sanitizer.Text(in.Input.Material)
	in.Input.Industry = uc.sanitizer.Text(in.Input.Industry)
	raw, err := json.Marshal(in.Input)
	if err != nil {
		return nil, fmt.Errorf("estimating: serializar entradas: %w", err)
	}

	now := uc.now()
	e := &entity.Estimate{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   in.CustomerID,
		Name:         name,
		Input:        raw,
		Area:         result.Area,
		MaterialCost: result.MaterialCost,
		LaborCost:    result.LaborCost,
		Markup:       result.Markup,
		Total:        result.Total,
		QuantityText: result.QuantityText,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.estimates.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEstimateResponse(e), nil
}

// Get cotización guardada.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.EstimateResponse, error) {
	e, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toEstimateResponse(e), nil
}

// List cotizaciones de la empresa, más recientes primero.
func (uc *UseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.EstimateResponse, error) {
	page.DefaultPage()
	list, err := uc.estimates.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEstimateResponse(e))
	}
	return out, nil
}

// Delete elimina una cotización.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.owned(ctx, companyID, id); err != nil {
		return err
	}
	return uc.estimates.Delete(ctx, id)
}

// SaveDraft guarda (reemplaza) el proyecto en curso del usuario.
func (uc *UseCase) SaveDraft(ctx context.Context, companyID, userID string, in dto.DraftRequest) (*dto.DraftResponse, error) {
	input := in.Input
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	var parsed estimate.Input
	if err := json.Unmarshal(input, &parsed); err != nil {
		return nil, fmt.Errorf("%w: input no es un proyecto válido", domain.ErrInvalidInput)
	}
	if err := validateInput(parsed); err != nil {
		return nil, err
	}
	d := &entity.EstimateDraft{
		UserID:    userID,
		CompanyID: companyID,
		Name:      uc.sanitizer.Text(in.Name),
		Input:     input,
		UpdatedAt: uc.now(),
	}
	if err := uc.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// LoadDraft proyecto en curso; domain.ErrNotFound si el usuario no tiene.
func (uc *UseCase) LoadDraft(ctx context.Context, userID string) (*dto.DraftResponse, error) {
	d, err := uc.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDraftResponse(d), nil
}

// DeleteDraft descarta el proyecto en curso.
func (uc *UseCase) DeleteDraft(ctx context.Context, userID string) error {
	return uc.drafts.Delete(ctx, userID)
}

// ExportProject archivo JSON del proyecto (<name>_<YYYY-MM-DD>.json).
func (uc *UseCase) ExportProject(ctx context.Context, companyID, id string) (*dto.ExportFile, error) {
	e, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	var in estimate.Input
	if err := json.Unmarshal(e.Input, &in); err != nil {
		return nil, fmt.Errorf("estimating: leer entradas guardadas: %w", err)
	}
	now := uc.now()
	data, err := json.MarshalIndent(dto.ProjectFile{
		Version:    ProjectFileVersion,
		Name:       e.Name,
		ExportedAt: now.UTC(),
		Input:      in,
		Result:     resultOf(e),
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return &dto.ExportFile{
		Filename:    export.DatedFilename(e.Name, export.FormatJSON, now),
		ContentType: export.ContentType(export.FormatJSON),
		Data:        data,
	}, nil
}

// ImportProject lee un archivo de proyecto exportado. El resultado se recalcula con el
// motor actual; el del archivo solo es informativo.
func (uc *UseCase) ImportProject(data []byte) (*dto.ProjectFile, error) {
	var pf dto.ProjectFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: el archivo no es un proyecto válido", domain.ErrInvalidInput)
	}
	if pf.Version > ProjectFileVersion {
		return nil, fmt.Errorf("%w: versión de proyecto %d no soportada", domain.ErrInvalidInput, pf.Version)
	}
	result, err := uc.Calculate(pf.Input)
	if err != nil {
		return nil, err
	}
	pf.Name = uc.sanitizer.Text(pf.Name)
	pf.Result = result
	return &pf, nil
}

// QuotePDF PDF de la cotización (estimate_<unix>.pdf).
func (uc *UseCase) QuotePDF(ctx context.Context, companyID, id string) (*dto.ExportFile, error) {
	e, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	var in estimate.Input
	if err := json.Unmarshal(e.Input, &in); err != nil {
		return nil, fmt.Errorf("estimating: leer entradas guardadas: %w", err)
	}
	data, err := uc.pdf.GenerateEstimatePDF(ctx, company, e, in)
	if err != nil {
		return nil, fmt.Errorf("estimating: generar pdf: %w", err)
	}
	return &dto.ExportFile{
		Filename:    export.TimestampFilename("estimate", export.FormatPDF, uc.now()),
		ContentType: export.ContentType(export.FormatPDF),
		Data:        data,
	}, nil
}

func (uc *UseCase) owned(ctx context.Context, companyID, id string) (*entity.Estimate, error) {
	e, err := uc.estimates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func validateInput(in estimate.Input) error {
	if len(in.AdditionalAreas) > estimate.MaxAdditionalAreas {
		return fmt.Errorf("%w: máximo %d áreas adicionales", domain.ErrInvalidInput, estimate.MaxAdditionalAreas)
	}
	switch in.Unit {
	case "", estimate.UnitSquareFeet, estimate.UnitSquareMeters, estimate.UnitLinearFeet:
		return nil
	}
	return fmt.Errorf("%w: unidad %q no soportada", domain.ErrInvalidInput, in.Unit)
}

func resultOf(e *entity.Estimate) estimate.Result {
	return estimate.Result{
		Area:         e.Area,
		MaterialCost: e.MaterialCost,
		LaborCost:    e.LaborCost,
		Markup:       e.Markup,
		Total:        e.Total,
		QuantityText: e.QuantityText,
	}
}

func toEstimateResponse(e *entity.Estimate) *dto.EstimateResponse {
	return &dto.EstimateResponse{
		ID:         e.ID,
		Name:       e.Name,
		CustomerID: e.CustomerID,
		Input:      e.Input,
		Result:     resultOf(e),
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
	}
}

func toDraftResponse(d *entity.EstimateDraft) *dto.DraftResponse {
	return &dto.DraftResponse{Name: d.Name, Input: d.Input, UpdatedAt: d.UpdatedAt}
}
