package quotation

import (
	"context"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye ítems, documentos, guías de
// despacho (para descontar lo ya entregado de las reservas) y correlativos.
type TxRunner interface {
	RunQuotation(ctx context.Context, fn func(
		items repository.ItemRepository,
		docs repository.CotizacionRepository,
		guides repository.DispatchGuideRepository,
		counters repository.CounterRepository,
	) error) error
}

// PDFRenderer genera el PDF de una cotización o nota de venta.
type PDFRenderer interface {
	RenderCotizacion(ctx context.Context, doc *entity.Cotizacion) ([]byte, error)
}

// FileStore guarda archivos servidos públicamente y devuelve su URL.
type FileStore interface {
	Save(ctx context.Context, dir, name string, data []byte) (string, error)
	Remove(ctx context.Context, url string) error
}

// Metrics registra eventos del ciclo de vida. Puede ser nil.
type Metrics interface {
	LifecycleEvent(op, result string)
}
