package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Obrix-api/internal/application/checkout"
)

// ErrPricingDrift el catálogo y el mapa de precios del proveedor no coinciden.
var ErrPricingDrift = errors.New("pricing: el catálogo no coincide con el mapa de precios")

func newPricingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Catálogo de planes",
	}
	cmd.AddCommand(newPricingCheckCmd(app))
	return cmd
}

func newPricingCheckCmd(app *App) *cobra.Command {
	paths := app.Catalog
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compara pricing.json con el mapa de precios del proveedor",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.LoadCatalog(paths)
			if err != nil {
				return err
			}
			report := checkout.ReconcileReport(catalog, app.Now())
			out := cmd.OutOrStdout()
			if report.OK() {
				fmt.Fprintf(out, "%d planes sincronizados\n", report.Plans)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "PLAN\tTIPO\tESPERADO\tACTUAL")
			for _, is := range report.Issues {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", is.PlanID, is.Kind, dash(is.Expected), dash(is.Actual))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return fmt.Errorf("%w: %d diferencias", ErrPricingDrift, len(report.Issues))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&paths.PricingPath, "pricing", paths.PricingPath, "ruta de pricing.json")
	fl.StringVar(&paths.EntitlementsPath, "entitlements", paths.EntitlementsPath, "ruta de entitlements.json")
	fl.StringVar(&paths.PriceMapPath, "price-map", paths.PriceMapPath, "ruta del mapa de precios del proveedor")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
