package quotation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

// ConvertToNote copia una cotización finalizada en una nota de venta nueva, reserva stock,
// genera el PDF y guarda su URL. Una segunda conversión falla con ErrAlreadyConverted.
func (uc *CotizacionUseCase) ConvertToNote(ctx context.Context, userID, quoteID string) (resp *dto.CotizacionResponse, err error) {
	defer func() { uc.observe("convert", err) }()

	var note *entity.Cotizacion
	var storedURL string
	err = uc.txRunner.RunQuotation(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, _ repository.DispatchGuideRepository, counters repository.CounterRepository) error {
		q, err := docs.GetForUpdate(ctx, quoteID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if q.Tipo != entity.TipoCotizacion {
			return domain.Invalid("solo una cotización se puede convertir a nota de venta")
		}
		if q.IsDraft() {
			return domain.Invalid("un borrador debe finalizarse antes de convertirlo")
		}
		converted, err := docs.ExistsByOriginalID(ctx, q.ID, entity.TipoNota)
		if err != nil {
			return err
		}
		if converted {
			return domain.ErrAlreadyConverted
		}

		now := uc.now()
		note = copyDocument(q)
		note.ID = uuid.New().String()
		note.Tipo = entity.TipoNota
		note.Estado = entity.EstadoFinalizada
		note.OriginalID = q.ID
		note.PDFURL = ""
		note.CreatedBy = userID
		note.CreatedAt = now
		note.UpdatedAt = now
		if err := assignNumber(ctx, counters, note); err != nil {
			return err
		}
		if err := docs.Create(ctx, note); err != nil {
			return err
		}
		if err := syncCommitments(ctx, items, nil, note, commitUntil(note, now)); err != nil {
			return err
		}

		url, err := uc.storePDF(ctx, note, fmt.Sprintf("nota_%d.pdf", *note.Numero))
		if err != nil {
			return err
		}
		storedURL = url
		if err := docs.SetPDFURL(ctx, note.ID, url); err != nil {
			return err
		}
		note.PDFURL = url
		return nil
	})
	if err != nil {
		if storedURL != "" {
			uc.removeFile(ctx, storedURL)
		}
		return nil, err
	}

	uc.log.Info().
		Str("cotizacion_id", quoteID).
		Str("nota_id", note.ID).
		Int64("numero", *note.Numero).
		Msg("cotización convertida a nota de venta")
	r := toCotizacionResponse(note)
	return &r, nil
}

// CancelNote anula una nota de venta y libera todas sus reservas. No tiene vuelta atrás.
func (uc *CotizacionUseCase) CancelNote(ctx context.Context, noteID string) (resp *dto.CotizacionResponse, err error) {
	defer func() { uc.observe("cancel", err) }()

	var note *entity.Cotizacion
	err = uc.txRunner.RunQuotation(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, _ repository.DispatchGuideRepository, _ repository.CounterRepository) error {
		n, err := docs.GetForUpdate(ctx, noteID)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if !n.IsNote() {
			return domain.Invalid("solo se pueden anular notas de venta")
		}
		if n.IsCancelled() {
			return domain.ErrAlreadyCancelled
		}
		at := uc.now()
		if err := docs.MarkCancelled(ctx, n.ID, at); err != nil {
			return err
		}
		n.CancelledAt = &at
		n.UpdatedAt = at
		if err := syncCommitments(ctx, items, nil, n, at); err != nil {
			return err
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("nota_id", noteID).Msg("nota de venta anulada")
	r := toCotizacionResponse(note)
	return &r, nil
}

// Delete elimina cualquier documento y libera sus reservas en la misma transacción.
func (uc *CotizacionUseCase) Delete(ctx context.Context, id string) (err error) {
	defer func() { uc.observe("delete", err) }()

	var pdfURL string
	err = uc.txRunner.RunQuotation(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, _ repository.DispatchGuideRepository, _ repository.CounterRepository) error {
		doc, err := docs.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		pdfURL = doc.PDFURL
		if err := releaseCommitments(ctx, items, doc.ID); err != nil {
			return err
		}
		return docs.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if pdfURL != "" {
		uc.removeFile(ctx, pdfURL)
	}
	uc.log.Info().Str("cotizacion_id", id).Msg("documento eliminado")
	return nil
}

func (uc *CotizacionUseCase) storePDF(ctx context.Context, doc *entity.Cotizacion, name string) (string, error) {
	data, err := uc.pdf.RenderCotizacion(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}
	return uc.files.Save(ctx, pdfDir, name, data)
}

func (uc *CotizacionUseCase) removeFile(ctx context.Context, url string) {
	if err := uc.files.Remove(ctx, url); err != nil {
		uc.log.Warn().Err(err).Str("url", url).Msg("no se pudo eliminar el archivo")
	}
}
