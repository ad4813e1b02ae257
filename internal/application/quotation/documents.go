package quotation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/quote"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var pdfMagic = []byte("%PDF-")

// Get obtiene un documento con la marca yaConvertida.
func (uc *CotizacionUseCase) Get(ctx context.Context, id string) (*dto.CotizacionResponse, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	r := toCotizacionResponse(doc)
	return &r, nil
}

// List lista documentos, del más nuevo al más antiguo, filtrando por tipo y estado.
// estado=cancelada devuelve las notas anuladas; estado=finalizada las excluye.
func (uc *CotizacionUseCase) List(ctx context.Context, in dto.CotizacionListRequest) ([]dto.CotizacionResponse, error) {
	filter := repository.CotizacionFilter{Tipo: in.Tipo, Estado: in.Estado}
	cancelled := in.Estado == entity.EstadoCancelada
	if cancelled {
		filter.Estado = ""
	}
	docs, err := uc.docRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CotizacionResponse, 0, len(docs))
	for _, d := range docs {
		if cancelled && !d.IsCancelled() && d.Estado != entity.EstadoCancelada {
			continue
		}
		if in.Estado == entity.EstadoFinalizada && d.IsCancelled() {
			continue
		}
		out = append(out, toCotizacionResponse(d))
	}
	return out, nil
}

// AttachPDF guarda un PDF subido por el cliente y lo asocia al documento.
func (uc *CotizacionUseCase) AttachPDF(ctx context.Context, id string, data []byte) (*dto.CotizacionResponse, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, domain.Invalid("el archivo no es un PDF")
	}
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%d-%s.pdf", uc.now().UnixMilli(), uuid.New().String()[:8])
	url, err := uc.files.Save(ctx, pdfDir, name, data)
	if err != nil {
		return nil, err
	}
	if err := uc.docRepo.SetPDFURL(ctx, id, url); err != nil {
		uc.removeFile(ctx, url)
		return nil, err
	}
	doc.PDFURL = url
	uc.log.Info().Str("cotizacion_id", id).Str("url", url).Int("bytes", len(data)).Msg("pdf adjuntado")
	r := toCotizacionResponse(doc)
	return &r, nil
}

// RenderPDF regenera el PDF del documento para descarga.
func (uc *CotizacionUseCase) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.RenderCotizacion(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}
	return data, pdfFilename(doc), nil
}

// Profit calcula la ganancia del documento con el costo vigente de cada ítem.
func (uc *CotizacionUseCase) Profit(ctx context.Context, id string) (*dto.ProfitResponse, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	costs := make(map[string]decimal.Decimal, len(doc.Lines))
	for _, l := range doc.Lines {
		if l.ItemID == "" {
			continue
		}
		if _, ok := costs[l.ItemID]; ok {
			continue
		}
		it, err := uc.itemRepo.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if it != nil {
			costs[l.ItemID] = it.Cost
		}
	}

	p := quote.ComputeProfit(doc.Lines, costs)
	lines := make([]dto.ProfitLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, dto.ProfitLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Cost:      l.Cost,
			Revenue:   l.Revenue,
			TotalCost: l.TotalCost,
			Profit:    l.Profit,
		})
	}
	return &dto.ProfitResponse{
		CotizacionID: doc.ID,
		Lines:        lines,
		Revenue:      p.Revenue,
		TotalCost:    p.TotalCost,
		Profit:       p.Profit,
		MarginPct:    p.MarginPct,
	}, nil
}

func (uc *CotizacionUseCase) load(ctx context.Context, id string) (*entity.Cotizacion, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func pdfFilename(doc *entity.Cotizacion) string {
	prefix := "cotizacion"
	switch {
	case doc.IsDraft():
		prefix = "borrador"
	case doc.IsNote():
		prefix = "nota"
	}
	if doc.Numero != nil {
		return fmt.Sprintf("%s_%d.pdf", prefix, *doc.Numero)
	}
	return fmt.Sprintf("%s_%s.pdf", prefix, doc.ID)
}

func toCotizacionResponse(d *entity.Cotizacion) dto.CotizacionResponse {
	lines := make([]dto.CotizacionLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.CotizacionLineResponse{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
			Total:    l.Total,
		})
	}
	var delivery string
	if !d.DeliveryDate.IsZero() {
		delivery = d.DeliveryDate.Format(time.DateOnly)
	}
	return dto.CotizacionResponse{
		ID:               d.ID,
		Client:           d.Client.Name,
		DeliveryAddress:  d.DeliveryAddress,
		IssueDate:        d.IssueDate,
		DeliveryDate:     delivery,
		PaymentMethod:    d.PaymentMethod,
		ClientTaxID:      d.Client.TaxID,
		ClientBusiness:   d.Client.Business,
		ClientAddress:    d.Client.Address,
		ClientCommune:    d.Client.Commune,
		ClientCity:       d.Client.City,
		Attention:        d.Client.Attention,
		ClientEmail:      d.Client.Email,
		ClientPhone:      d.Client.Phone,
		PaymentTerms:     d.PaymentTerms,
		Notes:            d.Notes,
		DocumentNumber:   d.DocumentNumber,
		DocumentType:     d.DocumentType,
		Tipo:             d.Tipo,
		Estado:           d.Estado,
		Cancelled:        d.CancelledAt,
		Lines:            lines,
		Total:            d.Total,
		Numero:           d.Numero,
		PDFURL:           d.PDFURL,
		OriginalID:       d.OriginalID,
		CreatedBy:        d.CreatedBy,
		AlreadyConverted: d.Converted,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
