// Package cli comandos de consola de Obrix: cotizaciones rápidas y verificación del catálogo de planes.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
	"github.com/jhoicas/Obrix-api/internal/domain/pricing"
	"github.com/jhoicas/Obrix-api/pkg/config"
)

// Estimator calcula cotizaciones (estimating.UseCase lo implementa).
type Estimator interface {
	Calculate(in estimate.Input) (estimate.Result, error)
}

// App dependencias de los comandos.
type App struct {
	Estimator   Estimator
	LoadCatalog func(cfg config.CatalogConfig) (*pricing.Catalog, error)
	Catalog     config.CatalogConfig // rutas por defecto de los archivos del catálogo
	Now         func() time.Time
}

// NewRootCmd crea el comando "obrix" con todos los subcomandos.
func NewRootCmd(app *App) *cobra.Command {
	if app.Now == nil {
		app.Now = time.Now
	}
	root := &cobra.Command{
		Use:           "obrix",
		Short:         "Herramientas de consola para Obrix",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEstimateCmd(app),
		newMaterialsCmd(),
		newPricingCmd(app),
	)

	return root
}
