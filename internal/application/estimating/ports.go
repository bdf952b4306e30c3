// Package estimating casos de uso de EasyCalc: cálculo, cotizaciones guardadas,
// proyecto en curso por usuario, archivos de proyecto y PDF de cotización.
package estimating

import (
	"context"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
)

// QuotePDFGenerator genera el PDF de una cotización guardada.
type QuotePDFGenerator interface {
	GenerateEstimatePDF(ctx context.Context, company *entity.Company, est *entity.Estimate, in estimate.Input) ([]byte, error)
}
