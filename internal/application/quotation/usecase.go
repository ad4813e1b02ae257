package quotation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/quote"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// PlaceholderName nombre de la línea cuando el producto de una cotización ya no existe.
const PlaceholderName = "Producto no disponible"

const pdfDir = "pdfs"

// CotizacionUseCase ciclo de vida de cotizaciones, notas de venta y borradores.
// Toda operación de varios pasos corre en una sola transacción.
type CotizacionUseCase struct {
	txRunner TxRunner
	docRepo  repository.CotizacionRepository
	itemRepo repository.ItemRepository
	pdf      PDFRenderer
	files    FileStore
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// Deps dependencias del caso de uso. Metrics y Log son opcionales.
type Deps struct {
	TxRunner TxRunner
	Docs     repository.CotizacionRepository
	Items    repository.ItemRepository
	PDF      PDFRenderer
	Files    FileStore
	Metrics  Metrics
	Log      *logger.Logger
}

// NewCotizacionUseCase construye el caso de uso.
func NewCotizacionUseCase(d Deps) *CotizacionUseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &CotizacionUseCase{
		txRunner: d.TxRunner,
		docRepo:  d.Docs,
		itemRepo: d.Items,
		pdf:      d.PDF,
		files:    d.Files,
		metrics:  d.Metrics,
		log:      log.Component("quotation"),
		now:      time.Now,
	}
}

// CreateOrUpdate crea un documento nuevo o, si viene _id, edita el existente.
// Devuelve created=true cuando se insertó un documento nuevo.
func (uc *CotizacionUseCase) CreateOrUpdate(ctx context.Context, userID string, in dto.CotizacionRequest) (resp *dto.CotizacionResponse, created bool, err error) {
	defer func() { uc.observe("create_or_update", err) }()

	if err := validateRequest(in); err != nil {
		return nil, false, err
	}
	delivery, err := parseDeliveryDate(in.DeliveryDate, uc.now())
	if err != nil {
		return nil, false, err
	}

	var doc *entity.Cotizacion
	err = uc.txRunner.RunQuotation(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, guides repository.DispatchGuideRepository, counters repository.CounterRepository) error {
		lines, err := resolveLines(ctx, items, in.Tipo, in.Lines)
		if err != nil {
			return err
		}
		if in.ID == "" {
			doc, err = uc.create(ctx, items, docs, counters, userID, in, lines, delivery)
			return err
		}
		doc, err = uc.update(ctx, items, docs, guides, counters, in, lines, delivery)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	uc.log.Info().
		Str("cotizacion_id", doc.ID).
		Str("tipo", doc.Tipo).
		Str("estado", doc.Estado).
		Interface("numero", doc.Numero).
		Bool("created", in.ID == "").
		Msg("documento guardado")
	r := toCotizacionResponse(doc)
	return &r, in.ID == "", nil
}

// Update edita el documento id (PUT /:id).
func (uc *CotizacionUseCase) Update(ctx context.Context, userID, id string, in dto.CotizacionRequest) (*dto.CotizacionResponse, error) {
	in.ID = id
	resp, _, err := uc.CreateOrUpdate(ctx, userID, in)
	return resp, err
}

func (uc *CotizacionUseCase) create(
	ctx context.Context,
	items repository.ItemRepository,
	docs repository.CotizacionRepository,
	counters repository.CounterRepository,
	userID string,
	in dto.CotizacionRequest,
	lines []entity.CotizacionLine,
	delivery time.Time,
) (*entity.Cotizacion, error) {
	now := uc.now()
	doc := newDocument(in, delivery)
	doc.ID = uuid.New().String()
	doc.Lines = lines
	doc.CreatedBy = userID
	doc.CreatedAt = now
	doc.UpdatedAt = now
	quote.ApplyTotals(doc)

	if !doc.IsDraft() {
		if err := assignNumber(ctx, counters, doc); err != nil {
			return nil, err
		}
	}
	if err := docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	if err := syncCommitments(ctx, items, nil, doc, commitUntil(doc, now)); err != nil {
		return nil, err
	}
	return doc, nil
}

func (uc *CotizacionUseCase) update(
	ctx context.Context,
	items repository.ItemRepository,
	docs repository.CotizacionRepository,
	guides repository.DispatchGuideRepository,
	counters repository.CounterRepository,
	in dto.CotizacionRequest,
	lines []entity.CotizacionLine,
	delivery time.Time,
) (*entity.Cotizacion, error) {
	cur, err := docs.GetForUpdate(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, domain.ErrNotFound
	}
	if cur.Tipo == entity.TipoCotizacion {
		converted, err := docs.ExistsByOriginalID(ctx, cur.ID, entity.TipoNota)
		if err != nil {
			return nil, err
		}
		cur.Converted = converted
	}
	switch quote.StateOf(cur) {
	case quote.StateConvertedQuote:
		return nil, domain.ErrAlreadyConverted
	case quote.StateCancelledNote:
		return nil, domain.ErrAlreadyCancelled
	}

	doc := newDocument(in, delivery)
	if !cur.IsDraft() {
		if doc.Tipo != cur.Tipo {
			return nil, domain.Invalid("no se puede cambiar el tipo de un documento finalizado")
		}
		if doc.IsDraft() {
			return nil, domain.Invalid("un documento finalizado no puede volver a borrador")
		}
	}
	doc.ID = cur.ID
	doc.Numero = cur.Numero
	doc.OriginalID = cur.OriginalID
	doc.PDFURL = cur.PDFURL
	doc.CreatedBy = cur.CreatedBy
	doc.CreatedAt = cur.CreatedAt
	doc.UpdatedAt = uc.now()
	doc.Lines = lines
	quote.ApplyTotals(doc)

	if cur.IsDraft() && !doc.IsDraft() {
		if err := assignNumber(ctx, counters, doc); err != nil {
			return nil, err
		}
	}
	if err := docs.Update(ctx, doc); err != nil {
		return nil, err
	}
	if err := syncCommitments(ctx, items, guides, doc, commitUntil(doc, doc.UpdatedAt)); err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveDraft guarda siempre un borrador nuevo: sin número, sin reservas y con los precios del formulario.
func (uc *CotizacionUseCase) SaveDraft(ctx context.Context, userID string, in dto.CotizacionRequest) (resp *dto.CotizacionResponse, err error) {
	defer func() { uc.observe("save_draft", err) }()

	if in.Tipo == "" {
		in.Tipo = entity.TipoCotizacion
	}
	if in.Tipo != entity.TipoCotizacion && in.Tipo != entity.TipoNota {
		return nil, domain.Invalid("tipo inválido (cotizacion o nota)")
	}
	delivery, err := parseDeliveryDate(in.DeliveryDate, uc.now())
	if err != nil {
		return nil, err
	}
	lines := make([]entity.CotizacionLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if l.Quantity < 0 || l.Price.IsNegative() {
			return nil, domain.Invalid("línea %d: cantidad y precio no pueden ser negativos", i+1)
		}
		lines = append(lines, entity.CotizacionLine{
			ItemID:   l.ItemID,
			Name:     strings.TrimSpace(l.Name),
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}

	now := uc.now()
	in.Estado = entity.EstadoBorrador
	doc := newDocument(in, delivery)
	doc.ID = uuid.New().String()
	doc.Lines = lines
	doc.CreatedBy = userID
	doc.CreatedAt = now
	doc.UpdatedAt = now
	quote.ApplyTotals(doc)

	if err := uc.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	uc.log.Info().Str("cotizacion_id", doc.ID).Str("tipo", doc.Tipo).Msg("borrador guardado")
	r := toCotizacionResponse(doc)
	return &r, nil
}

// PromoteDraft finaliza un borrador de cotización: crea la cotización con número nuevo y
// cotizacionOriginalId = draftID, y elimina el borrador en la misma transacción.
func (uc *CotizacionUseCase) PromoteDraft(ctx context.Context, userID, draftID string) (resp *dto.CotizacionResponse, err error) {
	defer func() { uc.observe("promote_draft", err) }()

	var doc *entity.Cotizacion
	err = uc.txRunner.RunQuotation(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, _ repository.DispatchGuideRepository, counters repository.CounterRepository) error {
		draft, err := docs.GetForUpdate(ctx, draftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return domain.ErrNotFound
		}
		if draft.Tipo != entity.TipoCotizacion {
			return domain.Invalid("solo los borradores de cotización se pueden finalizar así")
		}
		if !draft.IsDraft() {
			return domain.ErrDraftPromoted
		}
		promoted, err := docs.ExistsByOriginalID(ctx, draftID, "")
		if err != nil {
			return err
		}
		if promoted {
			return domain.ErrDraftPromoted
		}
		if len(draft.Lines) == 0 {
			return domain.Invalid("el borrador no tiene productos")
		}

		req := make([]dto.CotizacionLineRequest, 0, len(draft.Lines))
		for i, l := range draft.Lines {
			if l.Quantity <= 0 {
				return domain.Invalid("línea %d: la cantidad debe ser mayor que cero", i+1)
			}
			req = append(req, dto.CotizacionLineRequest{ItemID: l.ItemID, Name: l.Name, Quantity: l.Quantity, Price: l.Price})
		}
		lines, err := resolveLines(ctx, items, entity.TipoCotizacion, req)
		if err != nil {
			return err
		}

		now := uc.now()
		doc = copyDocument(draft)
		doc.ID = uuid.New().String()
		doc.Estado = entity.EstadoFinalizada
		doc.OriginalID = draft.ID
		doc.Lines = lines
		doc.PDFURL = ""
		doc.CreatedBy = userID
		doc.CreatedAt = now
		doc.UpdatedAt = now
		quote.ApplyTotals(doc)
		if err := assignNumber(ctx, counters, doc); err != nil {
			return err
		}
		if err := docs.Create(ctx, doc); err != nil {
			return err
		}
		return docs.Delete(ctx, draft.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("borrador_id", draftID).Str("cotizacion_id", doc.ID).Int64("numero", *doc.Numero).Msg("borrador finalizado")
	r := toCotizacionResponse(doc)
	return &r, nil
}

// validateRequest reglas de entrada de createOrUpdate.
func validateRequest(in dto.CotizacionRequest) error {
	if in.Tipo != entity.TipoCotizacion && in.Tipo != entity.TipoNota {
		return domain.Invalid("tipo inválido (cotizacion o nota)")
	}
	if in.Estado != "" && in.Estado != entity.EstadoBorrador && in.Estado != entity.EstadoFinalizada {
		return domain.Invalid("estado inválido (borrador o finalizada)")
	}
	if len(in.Lines) == 0 {
		return domain.Invalid("debe incluir al menos un producto")
	}
	for i, l := range in.Lines {
		if l.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser mayor que cero", i+1)
		}
		if l.Price.IsNegative() {
			return domain.Invalid("línea %d: el precio no puede ser negativo", i+1)
		}
		if l.ItemID == "" {
			if in.Tipo == entity.TipoNota {
				return domain.Invalid("línea %d: una nota de venta requiere itemId", i+1)
			}
			if strings.TrimSpace(l.Name) == "" {
				return domain.Invalid("línea %d: una línea libre requiere nombre", i+1)
			}
		}
	}
	return nil
}

// resolveLines congela nombre y precio desde el inventario. El precio del formulario manda si es > 0.
// Un producto inexistente deja una línea sin ítem y con precio cero en cotizaciones y falla en notas.
func resolveLines(ctx context.Context, items repository.ItemRepository, tipo string, in []dto.CotizacionLineRequest) ([]entity.CotizacionLine, error) {
	out := make([]entity.CotizacionLine, 0, len(in))
	for _, l := range in {
		line := entity.CotizacionLine{
			ItemID:   l.ItemID,
			Name:     strings.TrimSpace(l.Name),
			Quantity: l.Quantity,
			Price:    l.Price,
		}
		if l.ItemID == "" {
			out = append(out, line)
			continue
		}
		it, err := items.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if it == nil {
			if tipo == entity.TipoNota {
				return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ItemID)
			}
			line.ItemID = ""
			line.Price = decimal.Zero
			if line.Name == "" {
				line.Name = PlaceholderName
			}
			out = append(out, line)
			continue
		}
		line.Name = it.Name
		if !l.Price.IsPositive() {
			line.Price = it.Price
		}
		out = append(out, line)
	}
	return out, nil
}

func assignNumber(ctx context.Context, counters repository.CounterRepository, doc *entity.Cotizacion) error {
	n, err := counters.Next(ctx, entity.CounterKeyFor(doc.Tipo))
	if err != nil {
		return err
	}
	doc.Numero = &n
	return nil
}

// parseDeliveryDate acepta "YYYY-MM-DD" o RFC 3339; vacío significa hoy.
func parseDeliveryDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return truncateDay(now), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return truncateDay(t.In(now.Location())), nil
	}
	return time.Time{}, domain.Invalid("fechaEntrega inválida: %q", s)
}

func newDocument(in dto.CotizacionRequest, delivery time.Time) *entity.Cotizacion {
	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoFinalizada
	}
	return &entity.Cotizacion{
		Client: entity.Client{
			Name:      strings.TrimSpace(in.Client),
			TaxID:     in.ClientTaxID,
			Business:  in.ClientBusiness,
			Address:   in.ClientAddress,
			Commune:   in.ClientCommune,
			City:      in.ClientCity,
			Attention: in.Attention,
			Email:     in.ClientEmail,
			Phone:     in.ClientPhone,
		},
		DeliveryAddress: in.DeliveryAddress,
		IssueDate:       in.IssueDate,
		DeliveryDate:    delivery,
		PaymentMethod:   in.PaymentMethod,
		PaymentTerms:    in.PaymentTerms,
		Notes:           in.Notes,
		DocumentNumber:  in.DocumentNumber,
		DocumentType:    in.DocumentType,
		Tipo:            in.Tipo,
		Estado:          estado,
	}
}

func copyDocument(src *entity.Cotizacion) *entity.Cotizacion {
	c := *src
	c.Lines = append([]entity.CotizacionLine(nil), src.Lines...)
	c.Numero = nil
	c.CancelledAt = nil
	c.Converted = false
	return &c
}

func (uc *CotizacionUseCase) observe(op string, err error) {
	if uc.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidInput):
		result = "invalid"
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		result = "conflict"
	default:
		result = "error"
	}
	uc.metrics.LifecycleEvent(op, result)
}
