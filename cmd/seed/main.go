// seed carga el catálogo inicial desde un CSV (columnas Name, Quantity, Price, Category, Description).
// Cada fila pasa por el mismo alta que el formulario simple; las filas inválidas se reportan y se omiten.
//
// Uso: go run ./cmd/seed [-encoding auto|utf-8|latin1] [ruta/dataset.csv]
// Por defecto busca dataset.csv en el directorio actual.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/csvimport"
	"github.com/jhoicas/inventory-tracker/internal/platform"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

func main() {
	encFlag := flag.String("encoding", "auto", "codificación del CSV: auto, utf-8 o latin1")
	actor := flag.String("user", "", "ID del usuario al que se atribuye la carga")
	flag.Parse()

	csvPath := "dataset.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	enc, err := csvimport.ParseEncoding(*encFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	parsed, err := csvimport.Parse(f, enc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := platform.OpenStore(ctx, cfg.Store, cfg.DB, log.Component("store"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := store.Catalog(
		ledger.NewProductLedger(store.LedgerDeps(log.Component("ledger"))),
		platform.CatalogDefaults(cfg.Catalog),
		log.Component("catalog"),
	)
	res := svc.ImportCSV(ctx, *actor, parsed.Items)

	// Numeración de filas del archivo, no del slice importado
	rowErrors := append([]dto.ImportRowError{}, parsed.Errors...)
	for _, e := range res.Errors {
		if e.Row >= 1 && e.Row <= len(parsed.Lines) {
			e.Row = parsed.Lines[e.Row-1]
		}
		rowErrors = append(rowErrors, e)
	}

	for _, e := range rowErrors {
		fmt.Fprintf(os.Stderr, "fila %d (%s): %s\n", e.Row, e.Name, e.Message)
	}
	fmt.Printf("Importados %d productos desde %s, %d filas con error\n", res.Created, csvPath, len(rowErrors))
	if res.Created == 0 && len(rowErrors) > 0 {
		os.Exit(1)
	}
}
