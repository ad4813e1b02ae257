package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rasiva-api/internal/application/dispatch"
	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/application/quotation"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/memory"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakePDF struct {
	fail bool
}

func (f *fakePDF) RenderCotizacion(_ context.Context, doc *entity.Cotizacion) ([]byte, error) {
	return []byte("%PDF-1.4 " + doc.ID), nil
}

func (f *fakePDF) RenderDispatchGuide(_ context.Context, g *entity.DispatchGuide, _ *entity.Cotizacion) ([]byte, error) {
	if f.fail {
		return nil, errors.New("render roto")
	}
	return []byte("%PDF-1.4 " + g.ID), nil
}

type fakeFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (f *fakeFiles) Save(_ context.Context, dir, name string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "/uploads/" + dir + "/" + name
	f.files[url] = data
	return url, nil
}

func (f *fakeFiles) Remove(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, url)
	return nil
}

func (f *fakeFiles) has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[url]
	return ok
}

type fixture struct {
	store  *memory.Store
	pdf    *fakePDF
	files  *fakeFiles
	quotes *quotation.CotizacionUseCase
	guides *dispatch.GuideUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{store: store, pdf: &fakePDF{}, files: &fakeFiles{files: map[string][]byte{}}}
	f.quotes = quotation.NewCotizacionUseCase(quotation.Deps{
		TxRunner: store,
		Docs:     store.Cotizaciones(),
		Items:    store.Items(),
		PDF:      f.pdf,
		Files:    f.files,
	})
	f.guides = dispatch.NewGuideUseCase(store, store.DispatchGuides(), f.pdf, f.files, nil)
	return f
}

func (f *fixture) addItem(t *testing.T, name string, qty int64, price string) *entity.Item {
	t.Helper()
	it := &entity.Item{ID: uuid.New().String(), Name: name, Quantity: qty, Price: decimal.RequireFromString(price)}
	require.NoError(t, f.store.Items().Create(context.Background(), it))
	return it
}

func (f *fixture) item(t *testing.T, id string) *entity.Item {
	t.Helper()
	it, err := f.store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it
}

func (f *fixture) note(t *testing.T, lines ...dto.CotizacionLineRequest) *dto.CotizacionResponse {
	t.Helper()
	resp, _, err := f.quotes.CreateOrUpdate(context.Background(), testUserID, dto.CotizacionRequest{
		Client:       "Constructora Los Andes",
		Tipo:         entity.TipoNota,
		DeliveryDate: "2026-11-02",
		Lines:        lines,
	})
	require.NoError(t, err)
	return resp
}

func sale(itemID string, qty int64) dto.CotizacionLineRequest {
	return dto.CotizacionLineRequest{ItemID: itemID, Quantity: qty}
}

func ship(itemID string, qty int64) dto.DispatchGuideLineRequest {
	return dto.DispatchGuideLineRequest{ItemID: itemID, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DespachoParcialDescuentaStockYConsumeReserva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "Cemento", 100, "5990")
	arena := f.addItem(t, "Arena", 10, "18000")
	note := f.note(t, sale(cemento.ID, 30), sale(arena.ID, 2))

	g, err := f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{
		NoteID: note.ID,
		Lines:  []dto.DispatchGuideLineRequest{ship(cemento.ID, 12), ship(arena.ID, 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.Numero)
	assert.Equal(t, entity.GuideEstadoPendiente, g.Estado)
	require.Len(t, g.Lines, 1, "la línea con cantidad cero se ignora")
	assert.Equal(t, "Cemento", g.Lines[0].Name)
	assert.True(t, decimal.NewFromInt(5990).Equal(g.Lines[0].Price), "precio de la nota por defecto")
	assert.Equal(t, "/uploads/guias/guia_1.pdf", g.PDFURL)
	assert.True(t, f.files.has(g.PDFURL))

	c := f.item(t, cemento.ID)
	assert.Equal(t, int64(88), c.Quantity, "stock físico descontado")
	assert.Equal(t, int64(18), c.CommittedFor(note.ID), "reserva consumida")
	assert.Equal(t, int64(70), c.Available(), "el disponible no cambia al despachar lo reservado")

	// Editar la nota no vuelve a reservar lo ya despachado.
	_, err = f.quotes.Update(ctx, testUserID, note.ID, dto.CotizacionRequest{
		Client:       "Constructora Los Andes",
		Tipo:         entity.TipoNota,
		DeliveryDate: "2026-11-02",
		Lines:        []dto.CotizacionLineRequest{sale(cemento.ID, 30), sale(arena.ID, 2)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(18), f.item(t, cemento.ID).CommittedFor(note.ID))
}

func TestCreate_CompletaLaNotaYRespetaElPendiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "Cemento", 100, "5990")
	note := f.note(t, sale(cemento.ID, 30))

	first, err := f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 20)}})
	require.NoError(t, err)

	_, err = f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 11)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se despacha más de lo vendido")

	price := decimal.NewFromInt(5500)
	second, err := f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{
		{ItemID: cemento.ID, Quantity: 10, Price: &price},
	}})
	require.NoError(t, err)
	assert.Equal(t, first.Numero+1, second.Numero)
	assert.Equal(t, entity.GuideEstadoCompletada, second.Estado)
	assert.True(t, price.Equal(second.Lines[0].Price), "el precio informado reemplaza al de la nota")

	c := f.item(t, cemento.ID)
	assert.Equal(t, int64(70), c.Quantity)
	assert.Zero(t, c.CommittedFor(note.ID))

	list, err := f.guides.ListByNote(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestCreate_Rechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "Cemento", 100, "5990")
	yeso := f.addItem(t, "Yeso", 10, "4000")
	note := f.note(t, sale(cemento.ID, 5))

	quote, _, err := f.quotes.CreateOrUpdate(ctx, testUserID, dto.CotizacionRequest{
		Client: "Cliente", Tipo: entity.TipoCotizacion, Lines: []dto.CotizacionLineRequest{sale(cemento.ID, 1)},
	})
	require.NoError(t, err)

	cases := []struct {
		name string
		req  dto.DispatchGuideRequest
		want error
	}{
		{"sin nota", dto.DispatchGuideRequest{Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 1)}}, domain.ErrInvalidInput},
		{"nota inexistente", dto.DispatchGuideRequest{NoteID: uuid.New().String(), Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 1)}}, domain.ErrNotFound},
		{"cotización", dto.DispatchGuideRequest{NoteID: quote.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 1)}}, domain.ErrInvalidInput},
		{"ítem ajeno a la nota", dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(yeso.ID, 1)}}, domain.ErrInvalidInput},
		{"solo cantidades cero", dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 0)}}, domain.ErrInvalidInput},
		{"repetido supera lo vendido", dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 3), ship(cemento.ID, 3)}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.guides.Create(ctx, testUserID, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err = f.quotes.CancelNote(ctx, note.ID)
	require.NoError(t, err)
	_, err = f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 1)}})
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)

	assert.Equal(t, int64(100), f.item(t, cemento.ID).Quantity, "ningún rechazo mueve stock")
}

func TestCreate_FalloDelPDFRevierteTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "Cemento", 100, "5990")
	note := f.note(t, sale(cemento.ID, 30))
	f.pdf.fail = true

	_, err := f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 10)}})
	require.Error(t, err)

	c := f.item(t, cemento.ID)
	assert.Equal(t, int64(100), c.Quantity)
	assert.Equal(t, int64(30), c.CommittedFor(note.ID))
	list, err := f.guides.ListByNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	f.pdf.fail = false
	g, err := f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 10)}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.Numero, "el correlativo también se revierte")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminar
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_DevuelveStockYVuelveAReservar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "Cemento", 100, "5990")
	note := f.note(t, sale(cemento.ID, 30))

	g, err := f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 12)}})
	require.NoError(t, err)

	require.NoError(t, f.guides.Delete(ctx, g.ID))
	c := f.item(t, cemento.ID)
	assert.Equal(t, int64(100), c.Quantity)
	assert.Equal(t, int64(30), c.CommittedFor(note.ID))
	for _, cm := range c.Commitments {
		assert.Equal(t, "2026-11-02", cm.ValidUntil.Format(time.DateOnly), "la reserva devuelta vence con la entrega de la nota")
	}
	assert.False(t, f.files.has(g.PDFURL), "el PDF se borra")

	_, err = f.guides.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.guides.Delete(ctx, g.ID), domain.ErrNotFound)
}

func TestDelete_NotaAnuladaNoVuelveAReservar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "Cemento", 100, "5990")
	note := f.note(t, sale(cemento.ID, 30))

	g, err := f.guides.Create(ctx, testUserID, dto.DispatchGuideRequest{NoteID: note.ID, Lines: []dto.DispatchGuideLineRequest{ship(cemento.ID, 12)}})
	require.NoError(t, err)
	_, err = f.quotes.CancelNote(ctx, note.ID)
	require.NoError(t, err)

	require.NoError(t, f.guides.Delete(ctx, g.ID))
	c := f.item(t, cemento.ID)
	assert.Equal(t, int64(100), c.Quantity)
	assert.Zero(t, c.Committed())
}
