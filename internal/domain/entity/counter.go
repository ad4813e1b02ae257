package entity

// Claves de los correlativos (tabla contadores).
const (
	CounterCotizacion = "cotizacion"
	CounterNota       = "nota"
	CounterGuia       = "guia"
)

// CounterKeyFor devuelve la clave del correlativo para un tipo de documento.
func CounterKeyFor(tipo string) string {
	if tipo == TipoNota {
		return CounterNota
	}
	return CounterCotizacion
}
