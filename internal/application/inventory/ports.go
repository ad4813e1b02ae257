package inventory

import (
	"context"

	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio de ítems
// atado a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(items repository.ItemRepository) error) error
}

// SearchCache caché versionada del buscador de ítems. Cualquier escritura de ítems llama Bump.
// Una implementación nil-safe sin backend ejecuta el loader directamente.
type SearchCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	Bump(ctx context.Context) error
}
