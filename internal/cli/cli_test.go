package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/application/estimating"
	"github.com/jhoicas/Obrix-api/internal/cli"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/pricing"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
	"github.com/jhoicas/Obrix-api/pkg/config"
)

func testApp(catalog *pricing.Catalog) *cli.App {
	return &cli.App{
		Estimator: estimating.NewUseCase(nil, nil, nil, nil, nil, sanitize.New()),
		LoadCatalog: func(config.CatalogConfig) (*pricing.Catalog, error) {
			if catalog == nil {
				return nil, errors.New("catalog: abrir pricing.json: no existe")
			}
			return catalog, nil
		},
		Now: func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) },
	}
}

// executeCmd corre el comando raíz y captura la salida.
func executeCmd(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// ── estimate ──

func TestEstimateCmd_SalidaTexto(t *testing.T) {
	out, err := executeCmd(t, testApp(nil), "estimate",
		"--width", "10", "--length", "10", "--material", "Tile", "--industry", "Tile", "--surface", "Floor")
	require.NoError(t, err)
	assert.Contains(t, out, "110 sq ft of tile")
	assert.Contains(t, out, "$550.00")
	assert.Contains(t, out, "ft²")
}

func TestEstimateCmd_AreasAdicionalesYJSON(t *testing.T) {
	out, err := executeCmd(t, testApp(nil), "estimate",
		"--width", "10", "--length", "10", "--material", "Tile", "--industry", "Tile",
		"--extra", "2x5", "--json")
	require.NoError(t, err)

	var res struct {
		Area  string `json:"area"`
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "110", res.Area)
	assert.Equal(t, "605", res.Total)
}

func TestEstimateCmd_AreaAdicionalMalFormada(t *testing.T) {
	_, err := executeCmd(t, testApp(nil), "estimate", "--width", "10", "--length", "10", "--extra", "12por10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANCHOxLARGO")
}

func TestEstimateCmd_UnidadNoSoportada(t *testing.T) {
	_, err := executeCmd(t, testApp(nil), "estimate", "--unit", "acres", "--width", "1", "--length", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaterialsCmd_ListaCatalogo(t *testing.T) {
	out, err := executeCmd(t, testApp(nil), "materials")
	require.NoError(t, err)
	assert.Contains(t, out, "Hardwood")
	assert.Contains(t, out, "$8.00")
}

// ── pricing check ──

func TestPricingCheck_Sincronizado(t *testing.T) {
	catalog := &pricing.Catalog{
		Plans: []pricing.Plan{
			{ID: "free", Amount: decimal.Zero, Currency: "USD", Interval: pricing.IntervalMonth},
			{ID: "pro", Amount: decimal.RequireFromString("29"), Currency: "USD", Interval: pricing.IntervalMonth},
		},
		PriceMap: map[string]pricing.PriceRef{
			"pro": {PriceID: "price_pro", Amount: decimal.RequireFromString("29.00"), Currency: "USD"},
		},
	}
	out, err := executeCmd(t, testApp(catalog), "pricing", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "2 planes sincronizados")
}

func TestPricingCheck_DiferenciasTerminanConError(t *testing.T) {
	catalog := &pricing.Catalog{
		Plans: []pricing.Plan{
			{ID: "pro", Amount: decimal.RequireFromString("29"), Currency: "USD", Interval: pricing.IntervalMonth},
		},
		PriceMap: map[string]pricing.PriceRef{
			"pro": {PriceID: "price_pro", Amount: decimal.RequireFromString("25"), Currency: "USD"},
		},
	}
	out, err := executeCmd(t, testApp(catalog), "pricing", "check")
	assert.ErrorIs(t, err, cli.ErrPricingDrift)
	assert.Contains(t, out, "pro")
	assert.Contains(t, out, "29.00")
	assert.Contains(t, out, "25.00")
}

func TestPricingCheck_ArchivoFaltante(t *testing.T) {
	_, err := executeCmd(t, testApp(nil), "pricing", "check", "--pricing", "/no/existe.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pricing.json")
}
