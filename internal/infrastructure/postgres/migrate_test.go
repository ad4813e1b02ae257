package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/rasiva?sslmode=disable", migrateURL("postgres://u:p@db:5432/rasiva?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/rasiva", migrateURL("postgresql://u:p@db/rasiva"))
	assert.Equal(t, "pgx5://x", migrateURL("pgx5://x"))
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, files)

	body, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "uq_cotizaciones_conversion")

	body, err = fs.ReadFile(migrationsFS, "migrations/000002_draft_zero_quantity.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "CHECK (quantity >= 0)", "los borradores aceptan cantidad cero")
}
