package purchasing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/application/inventory"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

const (
	defaultPageSize = 10
	maxPageSize     = 200
)

// PurchaseUseCase registra facturas de compra e ingresa su mercadería al inventario.
type PurchaseUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.PurchaseInvoiceRepository
	search      SearchInvalidator
	log         *logger.Logger
	now         func() time.Time
}

// NewPurchaseUseCase construye el caso de uso. search puede ser nil.
func NewPurchaseUseCase(txRunner TxRunner, invoiceRepo repository.PurchaseInvoiceRepository, search SearchInvalidator, log *logger.Logger) *PurchaseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		search:      search,
		log:         log.Component("purchasing"),
		now:         time.Now,
	}
}

// Create guarda la factura y, en la misma transacción, busca o crea cada producto sumando su cantidad.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.PurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	inv := &entity.PurchaseInvoice{
		ID:             uuid.New().String(),
		Supplier:       strings.TrimSpace(in.Supplier),
		SupplierRUT:    strings.TrimSpace(in.SupplierRUT),
		Role:           in.Role,
		Address:        in.Address,
		DocumentType:   in.DocumentType,
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		CreatedBy:      userID,
		CreatedAt:      now,
		Total:          decimal.Zero,
	}

	err := uc.txRunner.RunPurchasing(ctx, func(items repository.ItemRepository, invoices repository.PurchaseInvoiceRepository) error {
		inv.Lines = inv.Lines[:0]
		inv.Total = decimal.Zero
		for _, l := range in.Lines {
			it, _, err := inventory.FindOrCreateInTx(ctx, items, inventory.FindOrCreateInput{
				Name:     l.Name,
				Code:     l.Code,
				Quantity: l.Quantity,
				Price:    l.UnitPrice,
				Cost:     l.Cost,
				Date:     now,
				UserID:   userID,
			})
			if err != nil {
				return err
			}
			line := entity.PurchaseInvoiceLine{
				ItemID:    it.ID,
				Name:      strings.TrimSpace(l.Name),
				Code:      strings.TrimSpace(l.Code),
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Cost:      l.Cost,
			}
			inv.Lines = append(inv.Lines, line)
			inv.Total = inv.Total.Add(line.LineTotal())
		}
		return invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	if uc.search != nil {
		if err := uc.search.Bump(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de búsqueda")
		}
	}

	uc.log.Info().
		Str("factura_id", inv.ID).
		Str("rut", inv.SupplierRUT).
		Str("numero_documento", inv.DocumentNumber).
		Int("productos", len(inv.Lines)).
		Msg("factura de compra registrada")
	resp := toResponse(inv)
	return &resp, nil
}

// List lista facturas del mes "YYYY-MM" (o todas), de la más nueva a la más antigua. page parte en 1.
func (uc *PurchaseUseCase) List(ctx context.Context, in dto.PurchaseInvoiceListRequest) (*dto.PurchaseInvoiceListResponse, error) {
	filter := repository.PurchaseInvoiceFilter{Limit: in.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	page := max(in.Page, 1)
	filter.Offset = (page - 1) * filter.Limit

	if in.Month != "" {
		from, err := time.Parse("2006-01", in.Month)
		if err != nil {
			return nil, domain.Invalid("mes inválido %q, se espera YYYY-MM", in.Month)
		}
		filter.From = from
		filter.To = from.AddDate(0, 1, 0)
	}

	list, total, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseInvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toResponse(inv))
	}
	return &dto.PurchaseInvoiceListResponse{Invoices: out, Total: total}, nil
}

// GetByID obtiene una factura de compra.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseInvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(inv)
	return &resp, nil
}

func validate(in dto.PurchaseInvoiceRequest) error {
	switch {
	case strings.TrimSpace(in.Supplier) == "":
		return domain.Invalid("empresa requerida")
	case strings.TrimSpace(in.SupplierRUT) == "":
		return domain.Invalid("rut requerido")
	case !entity.ValidPurchaseDocType(in.DocumentType):
		return domain.Invalid("tipoDocumento inválido (factura, boleta o guia)")
	case strings.TrimSpace(in.DocumentNumber) == "":
		return domain.Invalid("numeroDocumento requerido")
	case len(in.Lines) == 0:
		return domain.Invalid("debe incluir al menos un producto")
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.Name) == "" {
			return domain.Invalid("producto %d: nombre requerido", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Invalid("producto %d: la cantidad debe ser mayor que cero", i+1)
		}
		if l.UnitPrice.IsNegative() || l.Cost.IsNegative() {
			return domain.Invalid("producto %d: precio y costo no pueden ser negativos", i+1)
		}
	}
	return nil
}

func toResponse(inv *entity.PurchaseInvoice) dto.PurchaseInvoiceResponse {
	lines := make([]dto.PurchaseInvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, dto.PurchaseInvoiceLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Code:      l.Code,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Cost:      l.Cost,
		})
	}
	return dto.PurchaseInvoiceResponse{
		ID:             inv.ID,
		Supplier:       inv.Supplier,
		SupplierRUT:    inv.SupplierRUT,
		Role:           inv.Role,
		Address:        inv.Address,
		DocumentType:   inv.DocumentType,
		DocumentNumber: inv.DocumentNumber,
		Lines:          lines,
		Total:          inv.Total,
		CreatedAt:      inv.CreatedAt,
	}
}
