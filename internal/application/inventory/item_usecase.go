package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// SearchLimit máximo de resultados del buscador.
const SearchLimit = 5

const (
	msgCreated = "Creado"
	msgUpdated = "Actualizado"
)

// ItemUseCase casos de uso del inventario: ingreso de stock, buscador y CRUD.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	cache    SearchCache
	log      *logger.Logger
	now      func() time.Time
}

// NewItemUseCase construye el caso de uso. cache puede ser nil.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, cache SearchCache, log *logger.Logger) *ItemUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		cache:    cache,
		log:      log.Component("inventory"),
		now:      time.Now,
	}
}

// FindOrCreateInput datos de ingreso de stock, usados también por las facturas de compra.
type FindOrCreateInput struct {
	Name     string
	Code     string
	Quantity int64
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Date     time.Time
	UserID   string
}

// FindOrCreateInTx busca por código (si viene) y luego por nombre. Si existe suma la cantidad y
// sobrescribe precio y fecha (costo solo si es > 0, código solo si viene); si no, lo crea.
// Usa el repositorio recibido, así que corre dentro de la transacción del llamador.
func FindOrCreateInTx(ctx context.Context, items repository.ItemRepository, in FindOrCreateInput) (*entity.Item, bool, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)
	if name == "" {
		return nil, false, domain.Invalid("nombre requerido")
	}
	if in.Quantity < 0 {
		return nil, false, domain.Invalid("cantidad negativa para %q", name)
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, false, domain.Invalid("precio o costo negativo para %q", name)
	}

	var existing *entity.Item
	var err error
	if code != "" {
		if existing, err = items.GetByCode(ctx, code); err != nil {
			return nil, false, err
		}
	}
	if existing == nil {
		if existing, err = items.GetByName(ctx, name); err != nil {
			return nil, false, err
		}
	}

	if existing != nil {
		existing.Quantity += in.Quantity
		existing.Price = in.Price
		existing.ReceivedAt = in.Date
		if in.Cost.IsPositive() {
			existing.Cost = in.Cost
		}
		if code != "" {
			existing.Code = code
		}
		existing.SearchKey = SearchKey(existing.Name, existing.Code)
		existing.ModifiedBy = in.UserID
		existing.ModifiedAt = time.Now()
		if err := items.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	item := &entity.Item{
		ID:         uuid.New().String(),
		Name:       name,
		Code:       code,
		SearchKey:  SearchKey(name, code),
		Quantity:   in.Quantity,
		Price:      in.Price,
		Cost:       in.Cost,
		ReceivedAt: in.Date,
		ModifiedBy: in.UserID,
		ModifiedAt: time.Now(),
	}
	if err := items.Create(ctx, item); err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// FindOrCreate ingreso manual de stock en su propia transacción.
func (uc *ItemUseCase) FindOrCreate(ctx context.Context, userID string, in dto.FindOrCreateItemRequest) (*dto.FindOrCreateItemResponse, error) {
	date := uc.now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	var item *entity.Item
	var created bool
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository) error {
		var err error
		item, created, err = FindOrCreateInTx(ctx, items, FindOrCreateInput{
			Name:     in.Name,
			Code:     in.Code,
			Quantity: in.Quantity,
			Price:    in.Price,
			Cost:     in.Cost,
			Date:     date,
			UserID:   userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.bump(ctx)

	msg := msgUpdated
	if created {
		msg = msgCreated
	}
	uc.log.Info().Str("item_id", item.ID).Bool("created", created).Int64("quantity", in.Quantity).Msg("stock ingresado")
	return &dto.FindOrCreateItemResponse{ItemResponse: ToItemResponse(item), Created: created, Message: msg}, nil
}

// Search busca por subcadena sin distinguir mayúsculas ni tildes, máximo SearchLimit resultados.
func (uc *ItemUseCase) Search(ctx context.Context, query string) ([]dto.ItemSearchResult, error) {
	key := Normalize(query)
	if key == "" {
		return []dto.ItemSearchResult{}, nil
	}
	loader := func(ctx context.Context) (any, error) {
		list, err := uc.itemRepo.Search(ctx, key, SearchLimit)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ItemSearchResult, 0, len(list))
		for _, it := range list {
			out = append(out, dto.ItemSearchResult{ID: it.ID, Name: it.Name, Code: it.Code, Price: it.Price})
		}
		return out, nil
	}
	if uc.cache == nil {
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return v.([]dto.ItemSearchResult), nil
	}

	cacheKey, err := uc.cache.BuildKey(ctx, "items", "search", key)
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché de búsqueda no disponible")
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return v.([]dto.ItemSearchResult), nil
	}
	var out []dto.ItemSearchResult
	if err := uc.cache.FetchJSON(ctx, cacheKey, &out, loader); err != nil {
		return nil, err
	}
	if out == nil {
		out = []dto.ItemSearchResult{}
	}
	return out, nil
}

// List lista ítems paginados con comprometido y disponible calculados.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.itemRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetByID obtiene un ítem o ErrNotFound.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	it, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToItemResponse(it)
	return &resp, nil
}

// Update edita nombre, código, cantidad, precio o costo de un ítem.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var item *entity.Item
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository) error {
		it, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Invalid("nombre requerido")
			}
			it.Name = name
		}
		if in.Code != nil {
			it.Code = strings.TrimSpace(*in.Code)
		}
		if in.Quantity != nil {
			if *in.Quantity < 0 {
				return domain.Invalid("cantidad negativa")
			}
			it.Quantity = *in.Quantity
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return domain.Invalid("precio negativo")
			}
			it.Price = *in.Price
		}
		if in.Cost != nil {
			if in.Cost.IsNegative() {
				return domain.Invalid("costo negativo")
			}
			it.Cost = *in.Cost
		}
		it.SearchKey = SearchKey(it.Name, it.Code)
		it.ModifiedBy = userID
		it.ModifiedAt = uc.now()
		if err := items.Update(ctx, it); err != nil {
			return err
		}
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.bump(ctx)
	resp := ToItemResponse(item)
	return &resp, nil
}

// Delete elimina un ítem y sus reservas.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.bump(ctx)
	return nil
}

func (uc *ItemUseCase) bump(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de búsqueda")
	}
}

// ToItemResponse mapea la entidad a DTO con comprometido, disponible y la advertencia de sobrecompromiso.
func ToItemResponse(it *entity.Item) dto.ItemResponse {
	commitments := make([]dto.CommitmentResponse, 0, len(it.Commitments))
	for _, c := range it.Commitments {
		commitments = append(commitments, dto.CommitmentResponse{
			ID:           c.ID,
			Quantity:     c.Quantity,
			ValidUntil:   c.ValidUntil,
			CotizacionID: c.DocumentID,
		})
	}
	available := it.Available()
	return dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Code:          it.Code,
		Quantity:      it.Quantity,
		Price:         it.Price,
		Cost:          it.Cost,
		Date:          it.ReceivedAt,
		ModifiedBy:    it.ModifiedBy,
		ModifiedAt:    it.ModifiedAt,
		Commitments:   commitments,
		Committed:     it.Committed(),
		Available:     available,
		OverCommitted: available < 0,
	}
}
