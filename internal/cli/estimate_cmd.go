package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Obrix-api/internal/domain/estimate"
)

type estimateFlags struct {
	unit      string
	width     string
	length    string
	height    string
	surface   string
	material  string
	industry  string
	laborRate string
	markup    string
	extras    []string
	asJSON    bool
}

func newEstimateCmd(app *App) *cobra.Command {
	var f estimateFlags
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Calcula una cotización EasyCalc",
		Example: `  obrix estimate --width 10 --length 12 --material Tile --industry Tile --surface Floor
  obrix estimate --unit sqm --width 4 --length 5 --material Vinyl --extra 2x3 --extra 1.5x2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			res, err := app.Estimator.Calculate(in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if f.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
			fmt.Fprintf(tw, "Área (%s):\t%s\n", unitLabel(in.Unit), res.Area.StringFixed(2))
			fmt.Fprintf(tw, "Material:\t%s\n", res.QuantityText)
			fmt.Fprintf(tw, "Costo de material:\t$%s\n", res.MaterialCost.StringFixed(2))
			fmt.Fprintf(tw, "Mano de obra:\t$%s\n", res.LaborCost.StringFixed(2))
			fmt.Fprintf(tw, "Margen:\t$%s\n", res.Markup.StringFixed(2))
			fmt.Fprintf(tw, "Total:\t$%s\n", res.Total.StringFixed(2))
			return tw.Flush()
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.unit, "unit", string(estimate.UnitSquareFeet), "unidad: sqft, sqm o linear_ft")
	fl.StringVar(&f.width, "width", "", "ancho")
	fl.StringVar(&f.length, "length", "", "largo")
	fl.StringVar(&f.height, "height", "", "alto (paredes)")
	fl.StringVar(&f.surface, "surface", "Floor", "tipo de superficie")
	fl.StringVar(&f.material, "material", "", "material")
	fl.StringVar(&f.industry, "industry", "", "industria")
	fl.StringVar(&f.laborRate, "labor-rate", "", "tarifa de mano de obra")
	fl.StringVar(&f.markup, "markup", "", "margen en porcentaje")
	fl.StringArrayVar(&f.extras, "extra", nil, "área adicional ANCHOxLARGO (repetible)")
	fl.BoolVar(&f.asJSON, "json", false, "salida en JSON")
	return cmd
}

func (f estimateFlags) input() (estimate.Input, error) {
	in := estimate.Input{
		Unit:          estimate.UnitMode(strings.ToLower(strings.TrimSpace(f.unit))),
		Width:         estimate.Value(f.width),
		Length:        estimate.Value(f.length),
		Height:        estimate.Value(f.height),
		SurfaceType:   f.surface,
		Material:      f.material,
		Industry:      f.industry,
		LaborRate:     estimate.Value(f.laborRate),
		MarkupPercent: estimate.Value(f.markup),
	}
	for _, raw := range f.extras {
		d, err := parseDimension(raw)
		if err != nil {
			return estimate.Input{}, err
		}
		in.AdditionalAreas = append(in.AdditionalAreas, d)
	}
	return in, nil
}

// parseDimension interpreta "12x10" (también "12X10" o "12 x 10").
func parseDimension(raw string) (estimate.Dimension, error) {
	w, l, ok := strings.Cut(strings.ToLower(strings.ReplaceAll(raw, " ", "")), "x")
	if !ok || w == "" || l == "" {
		return estimate.Dimension{}, fmt.Errorf("área adicional %q: formato esperado ANCHOxLARGO", raw)
	}
	return estimate.Dimension{Width: estimate.Value(w), Length: estimate.Value(l)}, nil
}

func unitLabel(u estimate.UnitMode) string {
	switch u {
	case estimate.UnitSquareMeters:
		return "m²"
	case estimate.UnitLinearFeet:
		return "ft lineales"
	default:
		return "ft²"
	}
}

func newMaterialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "Lista el catálogo de materiales y su costo base",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "MATERIAL\tCOSTO/UNIDAD")
			for _, m := range estimate.Materials() {
				fmt.Fprintf(tw, "%s\t$%s\n", m.Name, m.UnitCost.StringFixed(2))
			}
			return tw.Flush()
		},
	}
}
