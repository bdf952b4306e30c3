// Package catalog carga los archivos JSON de planes, entitlements y precios del proveedor.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/Obrix-api/internal/domain/pricing"
	"github.com/jhoicas/Obrix-api/pkg/config"
)

type pricingFile struct {
	Plans []pricing.Plan `json:"plans"`
}

// Load lee los tres archivos del catálogo. Falta cualquiera → error.
func Load(cfg config.CatalogConfig) (*pricing.Catalog, error) {
	var pf pricingFile
	if err := readJSON(cfg.PricingPath, &pf); err != nil {
		return nil, err
	}
	ent := map[string]pricing.Entitlements{}
	if err := readJSON(cfg.EntitlementsPath, &ent); err != nil {
		return nil, err
	}
	priceMap := map[string]pricing.PriceRef{}
	if err := readJSON(cfg.PriceMapPath, &priceMap); err != nil {
		return nil, err
	}
	return &pricing.Catalog{Plans: pf.Plans, Entitlements: ent, PriceMap: priceMap}, nil
}

// Decode arma un catálogo desde readers (tests y CLI).
func Decode(plans, entitlements, priceMap io.Reader) (*pricing.Catalog, error) {
	var pf pricingFile
	if err := json.NewDecoder(plans).Decode(&pf); err != nil {
		return nil, fmt.Errorf("catalog: pricing: %w", err)
	}
	ent := map[string]pricing.Entitlements{}
	if err := json.NewDecoder(entitlements).Decode(&ent); err != nil {
		return nil, fmt.Errorf("catalog: entitlements: %w", err)
	}
	pm := map[string]pricing.PriceRef{}
	if err := json.NewDecoder(priceMap).Decode(&pm); err != nil {
		return nil, fmt.Errorf("catalog: price map: %w", err)
	}
	return &pricing.Catalog{Plans: pf.Plans, Entitlements: ent, PriceMap: pm}, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("catalog: abrir %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("catalog: parsear %s: %w", path, err)
	}
	return nil
}
