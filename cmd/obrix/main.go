package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Obrix-api/internal/application/estimating"
	"github.com/jhoicas/Obrix-api/internal/cli"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/sanitize"
	"github.com/jhoicas/Obrix-api/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// La CLI solo calcula: sin repositorios ni PDF.
	app := &cli.App{
		Estimator:   estimating.NewUseCase(nil, nil, nil, nil, nil, sanitize.New()),
		LoadCatalog: catalog.Load,
		Catalog:     cfg.Catalog,
	}
	return cli.NewRootCmd(app).Execute()
}
