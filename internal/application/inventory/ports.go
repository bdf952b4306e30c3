package inventory

import (
	"context"

	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repositorio de materiales
// atado a esa tx. La importación CSV la usa para aplicar el archivo completo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(materialRepo repository.MaterialRepository) error) error
}
