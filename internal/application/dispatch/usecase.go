package dispatch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/quote"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

const pdfDir = "guias"

// GuideUseCase registra entregas parciales o totales de notas de venta.
type GuideUseCase struct {
	txRunner  TxRunner
	guideRepo repository.DispatchGuideRepository
	pdf       PDFRenderer
	files     FileStore
	log       *logger.Logger
	now       func() time.Time
}

// NewGuideUseCase construye el caso de uso.
func NewGuideUseCase(txRunner TxRunner, guideRepo repository.DispatchGuideRepository, pdf PDFRenderer, files FileStore, log *logger.Logger) *GuideUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &GuideUseCase{
		txRunner:  txRunner,
		guideRepo: guideRepo,
		pdf:       pdf,
		files:     files,
		log:       log.Component("dispatch"),
		now:       time.Now,
	}
}

// Create despacha productos de una nota: descuenta stock, consume las reservas de la nota,
// numera la guía con el correlativo "guia" y guarda su PDF. Todo o nada.
func (uc *GuideUseCase) Create(ctx context.Context, userID string, in dto.DispatchGuideRequest) (*dto.DispatchGuideResponse, error) {
	if in.NoteID == "" {
		return nil, domain.Invalid("notaId requerido")
	}

	var guide *entity.DispatchGuide
	var storedURL string
	err := uc.txRunner.RunDispatch(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, guides repository.DispatchGuideRepository, counters repository.CounterRepository) error {
		// Bloquear la nota serializa guías concurrentes sobre ella.
		note, err := docs.GetForUpdate(ctx, in.NoteID)
		if err != nil {
			return err
		}
		if note == nil {
			return fmt.Errorf("%w: nota %s", domain.ErrNotFound, in.NoteID)
		}
		if !note.IsNote() || note.IsDraft() {
			return domain.Invalid("solo se despachan notas de venta finalizadas")
		}
		if note.IsCancelled() {
			return domain.ErrAlreadyCancelled
		}

		delivered, err := guides.DeliveredByItem(ctx, note.ID)
		if err != nil {
			return err
		}
		lines, err := buildLines(note, delivered, in.Lines)
		if err != nil {
			return err
		}

		numero, err := counters.Next(ctx, entity.CounterGuia)
		if err != nil {
			return fmt.Errorf("correlativo guia: %w", err)
		}
		now := uc.now()
		guide = &entity.DispatchGuide{
			ID:        uuid.New().String(),
			NoteID:    note.ID,
			Numero:    numero,
			Date:      now,
			Estado:    guideEstado(note, delivered, lines),
			Lines:     lines,
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := guides.Create(ctx, guide); err != nil {
			return err
		}

		for _, l := range sortedLines(lines) {
			it, err := items.GetForUpdate(ctx, l.ItemID)
			if err != nil {
				return err
			}
			if it == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ItemID)
			}
			if err := items.AdjustQuantity(ctx, l.ItemID, -l.Quantity); err != nil {
				return err
			}
			if err := items.ConsumeCommitment(ctx, l.ItemID, note.ID, l.Quantity); err != nil {
				return err
			}
		}

		data, err := uc.pdf.RenderDispatchGuide(ctx, guide, note)
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		url, err := uc.files.Save(ctx, pdfDir, fmt.Sprintf("guia_%d.pdf", numero), data)
		if err != nil {
			return err
		}
		storedURL = url
		if err := guides.SetPDFURL(ctx, guide.ID, url); err != nil {
			return err
		}
		guide.PDFURL = url
		return nil
	})
	if err != nil {
		if storedURL != "" {
			uc.removeFile(ctx, storedURL)
		}
		return nil, err
	}

	uc.log.Info().
		Str("guia_id", guide.ID).
		Str("nota_id", guide.NoteID).
		Int64("numero", guide.Numero).
		Str("estado", guide.Estado).
		Msg("guía de despacho creada")
	resp := toResponse(guide)
	return &resp, nil
}

// ListByNote lista las guías de una nota por número.
func (uc *GuideUseCase) ListByNote(ctx context.Context, noteID string) ([]dto.DispatchGuideResponse, error) {
	list, err := uc.guideRepo.ListByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DispatchGuideResponse, 0, len(list))
	for _, g := range list {
		out = append(out, toResponse(g))
	}
	return out, nil
}

// GetByID obtiene una guía.
func (uc *GuideUseCase) GetByID(ctx context.Context, id string) (*dto.DispatchGuideResponse, error) {
	g, err := uc.guideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(g)
	return &resp, nil
}

// Delete anula la entrega: devuelve el stock, vuelve a reservarlo para la nota (si sigue vigente)
// y borra el PDF.
func (uc *GuideUseCase) Delete(ctx context.Context, id string) error {
	var pdfURL string
	err := uc.txRunner.RunDispatch(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, guides repository.DispatchGuideRepository, _ repository.CounterRepository) error {
		g, err := guides.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrNotFound
		}
		note, err := docs.GetForUpdate(ctx, g.NoteID)
		if err != nil {
			return err
		}
		recommit := note != nil && note.HoldsStock()
		now := uc.now()
		until := now
		if note != nil {
			until = recommitUntil(note, now)
		}

		for _, l := range sortedLines(g.Lines) {
			it, err := items.GetForUpdate(ctx, l.ItemID)
			if err != nil {
				return err
			}
			if it == nil {
				continue
			}
			if err := items.AdjustQuantity(ctx, l.ItemID, l.Quantity); err != nil {
				return err
			}
			if !recommit {
				continue
			}
			if err := items.AddCommitment(ctx, &entity.Commitment{
				ItemID:     l.ItemID,
				DocumentID: note.ID,
				Quantity:   l.Quantity,
				ValidUntil: until,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		}
		pdfURL = g.PDFURL
		return guides.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if pdfURL != "" {
		uc.removeFile(ctx, pdfURL)
	}
	uc.log.Info().Str("guia_id", id).Msg("guía de despacho eliminada")
	return nil
}

// buildLines valida lo pedido contra lo vendido menos lo ya despachado. Las líneas con cantidad
// ≤ 0 se ignoran; el precio por defecto es el de la nota.
func buildLines(note *entity.Cotizacion, delivered map[string]int64, req []dto.DispatchGuideLineRequest) ([]entity.DispatchGuideLine, error) {
	sold := quote.Demand(note.Lines)
	noteLines := make(map[string]entity.CotizacionLine, len(note.Lines))
	for _, l := range note.Lines {
		if _, ok := noteLines[l.ItemID]; !ok && l.ItemID != "" {
			noteLines[l.ItemID] = l
		}
	}

	requested := map[string]int64{}
	var lines []entity.DispatchGuideLine
	for _, r := range req {
		if r.Quantity <= 0 {
			continue
		}
		nl, ok := noteLines[r.ItemID]
		if !ok {
			return nil, domain.Invalid("el producto %s no pertenece a la nota", r.ItemID)
		}
		requested[r.ItemID] += r.Quantity
		if pending := sold[r.ItemID] - delivered[r.ItemID]; requested[r.ItemID] > pending {
			return nil, domain.Invalid("%s: se piden %d y quedan %d por despachar", nl.Name, requested[r.ItemID], max(pending, 0))
		}
		price := nl.Price
		if r.Price != nil {
			if r.Price.IsNegative() {
				return nil, domain.Invalid("%s: precio negativo", nl.Name)
			}
			price = *r.Price
		}
		lines = append(lines, entity.DispatchGuideLine{
			ItemID:   r.ItemID,
			Name:     nl.Name,
			Quantity: r.Quantity,
			Price:    price,
		})
	}
	if len(lines) == 0 {
		return nil, domain.Invalid("no hay productos válidos para despachar")
	}
	return lines, nil
}

// guideEstado es completada si con esta guía la nota queda despachada por completo.
func guideEstado(note *entity.Cotizacion, delivered map[string]int64, lines []entity.DispatchGuideLine) string {
	total := make(map[string]int64, len(delivered))
	for id, q := range delivered {
		total[id] = q
	}
	for _, l := range lines {
		total[l.ItemID] += l.Quantity
	}
	for id, qty := range quote.Demand(note.Lines) {
		if total[id] < qty {
			return entity.GuideEstadoPendiente
		}
	}
	return entity.GuideEstadoCompletada
}

// recommitUntil vigencia de lo que vuelve a reservarse: la fecha de entrega de la nota o, si falta, hoy.
func recommitUntil(note *entity.Cotizacion, now time.Time) time.Time {
	if !note.DeliveryDate.IsZero() {
		return note.DeliveryDate
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// sortedLines agrupa por ítem en orden de ID, el mismo orden de bloqueo que las reservas.
func sortedLines(lines []entity.DispatchGuideLine) []entity.DispatchGuideLine {
	byItem := map[string]int64{}
	for _, l := range lines {
		byItem[l.ItemID] += l.Quantity
	}
	out := make([]entity.DispatchGuideLine, 0, len(byItem))
	for id, q := range byItem {
		out = append(out, entity.DispatchGuideLine{ItemID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (uc *GuideUseCase) removeFile(ctx context.Context, url string) {
	if err := uc.files.Remove(ctx, url); err != nil {
		uc.log.Warn().Err(err).Str("url", url).Msg("no se pudo eliminar el archivo")
	}
}

func toResponse(g *entity.DispatchGuide) dto.DispatchGuideResponse {
	lines := make([]dto.DispatchGuideLineResponse, 0, len(g.Lines))
	for _, l := range g.Lines {
		lines = append(lines, dto.DispatchGuideLineResponse{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}
	return dto.DispatchGuideResponse{
		ID:     g.ID,
		NoteID: g.NoteID,
		Numero: g.Numero,
		Date:   g.Date,
		Estado: g.Estado,
		Lines:  lines,
		PDFURL: g.PDFURL,
	}
}
