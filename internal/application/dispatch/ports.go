package dispatch

import (
	"context"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con ítems, notas, guías y correlativos.
type TxRunner interface {
	RunDispatch(ctx context.Context, fn func(
		items repository.ItemRepository,
		docs repository.CotizacionRepository,
		guides repository.DispatchGuideRepository,
		counters repository.CounterRepository,
	) error) error
}

// PDFRenderer genera el PDF de una guía de despacho.
type PDFRenderer interface {
	RenderDispatchGuide(ctx context.Context, guide *entity.DispatchGuide, note *entity.Cotizacion) ([]byte, error)
}

// FileStore guarda archivos servidos públicamente y devuelve su URL.
type FileStore interface {
	Save(ctx context.Context, dir, name string, data []byte) (string, error)
	Remove(ctx context.Context, url string) error
}
