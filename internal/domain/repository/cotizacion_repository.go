package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

// CotizacionFilter filtros del listado. Campos vacíos no filtran.
type CotizacionFilter struct {
	Tipo   string
	Estado string
}

// CotizacionRepository define el puerto de persistencia para cotizaciones, notas y borradores.
// GetByID y List completan Converted (existe una nota que apunta al documento).
type CotizacionRepository interface {
	// Create inserta documento y líneas. Devuelve domain.ErrAlreadyConverted si ya existe
	// una nota con el mismo cotizacionOriginalId y domain.ErrDuplicate si el número está tomado.
	Create(ctx context.Context, c *entity.Cotizacion) error
	GetByID(ctx context.Context, id string) (*entity.Cotizacion, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Cotizacion, error)
	// Update reemplaza cabecera y líneas.
	Update(ctx context.Context, c *entity.Cotizacion) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f CotizacionFilter) ([]*entity.Cotizacion, error)
	// ExistsByOriginalID indica si algún documento (del tipo dado, o de cualquiera si tipo es "")
	// referencia originalID.
	ExistsByOriginalID(ctx context.Context, originalID, tipo string) (bool, error)
	SetPDFURL(ctx context.Context, id, url string) error
	MarkCancelled(ctx context.Context, id string, at time.Time) error
}
