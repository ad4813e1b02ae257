package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
)

type row struct {
	line int
	req  dto.FindOrCreateItemRequest
}

var defaultColumns = []string{"nombre", "codigo", "cantidad", "precio", "costo"}

// parseRows lee el CSV (separador ; o ,). Si la primera fila trae los nombres de columna,
// se usa ese orden; si no, el orden por defecto.
func parseRows(r io.Reader) ([]row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectComma(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("archivo vacío")
	}

	cols := columnIndex(defaultColumns)
	start := 0
	if isHeader(records[0]) {
		header := make([]string, len(records[0]))
		for i, h := range records[0] {
			header[i] = strings.ToLower(strings.TrimSpace(h))
		}
		cols = columnIndex(header)
		start = 1
	}
	if _, ok := cols["nombre"]; !ok {
		return nil, errors.New("falta la columna nombre")
	}

	out := make([]row, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		rec := records[i]
		get := func(col string) string {
			if idx, ok := cols[col]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}
		if get("nombre") == "" {
			continue
		}
		req := dto.FindOrCreateItemRequest{Name: get("nombre"), Code: get("codigo")}
		if req.Quantity, err = parseQuantity(get("cantidad")); err != nil {
			return nil, fmt.Errorf("línea %d: cantidad: %w", i+1, err)
		}
		if req.Price, err = parseMoney(get("precio")); err != nil {
			return nil, fmt.Errorf("línea %d: precio: %w", i+1, err)
		}
		if req.Cost, err = parseMoney(get("costo")); err != nil {
			return nil, fmt.Errorf("línea %d: costo: %w", i+1, err)
		}
		out = append(out, row{line: i + 1, req: req})
	}
	return out, nil
}

func detectComma(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") >= strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func isHeader(rec []string) bool {
	for _, f := range rec {
		if strings.EqualFold(strings.TrimSpace(f), "nombre") {
			return true
		}
	}
	return false
}

func columnIndex(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func parseQuantity(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	return strconv.ParseInt(s, 10, 64)
}

// parseMoney acepta formato chileno: "$ 5.990", "5990,50" o "5990".
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
