// import_items carga o repone inventario desde una planilla CSV exportada del sistema anterior.
//
// Uso: go run ./cmd/import_items archivo.csv [latin1|utf8]
// Columnas (con o sin encabezado): nombre;codigo;cantidad;precio;costo
// Cada fila pasa por el mismo ingreso de stock de POST /api/items: un código o nombre
// existente suma cantidad, uno nuevo crea el ítem.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/rasiva-api/internal/application/inventory"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/postgres"
	"github.com/jhoicas/rasiva-api/pkg/config"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// importUserID autor registrado en modificadoPor.
const importUserID = "import_items"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: import_items archivo.csv [latin1|utf8]")
		os.Exit(2)
	}
	encoding := "latin1"
	if len(os.Args) > 2 {
		encoding = strings.ToLower(os.Args[2])
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import_items")

	if cfg.DB.UsesMemory() {
		log.Fatal().Msg("import_items requiere STORAGE_DRIVER=postgres")
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	switch encoding {
	case "latin1", "iso-8859-1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case "utf8", "utf-8":
	default:
		log.Fatal().Str("encoding", encoding).Msg("codificación no soportada")
	}

	rows, err := parseRows(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := inventory.NewItemUseCase(postgres.NewTxRunner(pool), postgres.NewItemRepository(pool), nil, log)

	var created, updated, failed int
	for _, row := range rows {
		out, err := uc.FindOrCreate(ctx, importUserID, row.req)
		if err != nil {
			failed++
			log.Warn().Err(err).Int("linea", row.line).Str("nombre", row.req.Name).Msg("fila rechazada")
			continue
		}
		if out.Created {
			created++
		} else {
			updated++
		}
	}
	log.Info().
		Int("filas", len(rows)).
		Int("creados", created).
		Int("actualizados", updated).
		Int("rechazados", failed).
		Msg("importación terminada")
	if failed > 0 {
		os.Exit(1)
	}
}
