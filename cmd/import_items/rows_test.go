package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseRows_ConEncabezadoYLatin1(t *testing.T) {
	csv := "codigo;nombre;cantidad;precio;costo\nCEM-25;Cemento Polpaico 25kg;1.200;$ 5.990;4.100\n;Tornillo roscalatón 6x1\";50;120,50;\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(csv)
	require.NoError(t, err)

	rows, err := parseRows(transform.NewReader(strings.NewReader(latin1), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "CEM-25", rows[0].req.Code)
	assert.Equal(t, int64(1200), rows[0].req.Quantity)
	assert.True(t, decimal.NewFromInt(5990).Equal(rows[0].req.Price))
	assert.True(t, decimal.NewFromInt(4100).Equal(rows[0].req.Cost))

	assert.Equal(t, "Tornillo roscalatón 6x1\"", rows[1].req.Name, "los acentos sobreviven la decodificación")
	assert.True(t, decimal.RequireFromString("120.5").Equal(rows[1].req.Price))
	assert.True(t, rows[1].req.Cost.IsZero())
}

func TestParseRows_SinEncabezadoConComas(t *testing.T) {
	rows, err := parseRows(strings.NewReader("Arena gruesa,AR-1,10,15000,9000\n,,,,\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1, "las filas sin nombre se ignoran")
	assert.Equal(t, "Arena gruesa", rows[0].req.Name)
	assert.Equal(t, int64(10), rows[0].req.Quantity)
}

func TestParseRows_CantidadInvalida(t *testing.T) {
	_, err := parseRows(strings.NewReader("nombre;cantidad\nYeso;muchos\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}
