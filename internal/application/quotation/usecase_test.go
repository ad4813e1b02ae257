package quotation_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

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
	if f.fail {
		return nil, errors.New("render roto")
	}
	return []byte("%PDF-1.4 " + doc.ID), nil
}

type fakeFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFiles() *fakeFiles { return &fakeFiles{files: map[string][]byte{}} }

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

func (f *fakeFiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type fakeMetrics struct {
	mu     sync.Mutex
	events map[string]int
}

func (m *fakeMetrics) LifecycleEvent(op, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[op+":"+result]++
}

type fixture struct {
	uc      *quotation.CotizacionUseCase
	store   *memory.Store
	pdf     *fakePDF
	files   *fakeFiles
	metrics *fakeMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:   store,
		pdf:     &fakePDF{},
		files:   newFakeFiles(),
		metrics: &fakeMetrics{events: map[string]int{}},
	}
	f.uc = quotation.NewCotizacionUseCase(quotation.Deps{
		TxRunner: store,
		Docs:     store.Cotizaciones(),
		Items:    store.Items(),
		PDF:      f.pdf,
		Files:    f.files,
		Metrics:  f.metrics,
	})
	return f
}

func (f *fixture) addItem(t *testing.T, name string, qty int64, price, cost string) *entity.Item {
	t.Helper()
	it := &entity.Item{
		ID:       uuid.New().String(),
		Name:     name,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
		Cost:     decimal.RequireFromString(cost),
	}
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

func noteRequest(lines ...dto.CotizacionLineRequest) dto.CotizacionRequest {
	return dto.CotizacionRequest{
		Client:       "Constructora Los Andes",
		Tipo:         entity.TipoNota,
		DeliveryDate: "2026-11-02",
		Lines:        lines,
	}
}

func quoteRequest(lines ...dto.CotizacionLineRequest) dto.CotizacionRequest {
	req := noteRequest(lines...)
	req.Tipo = entity.TipoCotizacion
	return req
}

func line(itemID string, qty int64) dto.CotizacionLineRequest {
	return dto.CotizacionLineRequest{ItemID: itemID, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear / editar
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TotalesExactos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clavo := f.addItem(t, "Clavo 2\"", 500, "0.10", "0.04")

	resp, created, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(
		dto.CotizacionLineRequest{ItemID: clavo.ID, Quantity: 3},
		dto.CotizacionLineRequest{ItemID: clavo.ID, Quantity: 7, Price: decimal.RequireFromString("0.20")},
		dto.CotizacionLineRequest{Name: "Flete", Quantity: 1, Price: decimal.RequireFromString("15000")},
	))
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, resp.Lines, 3)

	assert.Equal(t, "0.3", resp.Lines[0].Total.String(), "precio del ítem cuando el formulario trae 0")
	assert.Equal(t, "1.4", resp.Lines[1].Total.String(), "precio del formulario cuando es > 0")
	assert.Equal(t, "Flete", resp.Lines[2].Name, "línea libre conserva nombre")
	assert.Equal(t, "15001.7", resp.Total.String())
	assert.Equal(t, clavo.Name, resp.Lines[0].Name, "nombre congelado desde el inventario")
	assert.Equal(t, entity.EstadoFinalizada, resp.Estado)
	require.NotNil(t, resp.Numero)
	assert.Equal(t, int64(1), *resp.Numero)
	assert.Equal(t, "2026-11-02", resp.DeliveryDate)
}

func TestCreate_NotaReservaStockSinDescontar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")

	resp, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(cemento.ID, 30)))
	require.NoError(t, err)

	it := f.item(t, cemento.ID)
	assert.Equal(t, int64(100), it.Quantity, "la cantidad física no cambia")
	assert.Equal(t, int64(30), it.CommittedFor(resp.ID))
	assert.Equal(t, int64(70), it.Available())
	require.Len(t, it.Commitments, 1)
	assert.Equal(t, "2026-11-02", it.Commitments[0].ValidUntil.Format(time.DateOnly))

	_, err = f.uc.CancelNote(ctx, resp.ID)
	require.NoError(t, err)
	it = f.item(t, cemento.ID)
	assert.Equal(t, int64(100), it.Available(), "anular libera la reserva")
	assert.Equal(t, int64(100), it.Quantity)
}

func TestCreate_ValidaEntrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")

	cases := map[string]dto.CotizacionRequest{
		"tipo inválido":         {Tipo: "factura", Lines: []dto.CotizacionLineRequest{line(arena.ID, 1)}},
		"sin productos":         {Tipo: entity.TipoCotizacion},
		"cantidad cero":         quoteRequest(line(arena.ID, 0)),
		"precio negativo":       quoteRequest(dto.CotizacionLineRequest{ItemID: arena.ID, Quantity: 1, Price: decimal.NewFromInt(-5)}),
		"nota sin itemId":       noteRequest(dto.CotizacionLineRequest{Name: "Flete", Quantity: 1}),
		"línea libre sin texto": quoteRequest(dto.CotizacionLineRequest{Quantity: 1}),
		"fecha inválida": func() dto.CotizacionRequest {
			r := quoteRequest(line(arena.ID, 1))
			r.DeliveryDate = "mañana"
			return r
		}(),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := f.uc.CreateOrUpdate(ctx, testUserID, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	list, err := f.uc.List(ctx, dto.CotizacionListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list, "nada se persiste ante errores de validación")
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	missing := "00000000-0000-0000-0000-00000000beef"

	resp, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(
		dto.CotizacionLineRequest{ItemID: missing, Quantity: 2, Price: decimal.NewFromInt(900)},
	))
	require.NoError(t, err, "en cotizaciones queda una línea de reemplazo")
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, quotation.PlaceholderName, resp.Lines[0].Name)
	assert.True(t, resp.Lines[0].Price.IsZero())
	assert.Empty(t, resp.Lines[0].ItemID)

	_, _, err = f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(missing, 2)))
	assert.ErrorIs(t, err, domain.ErrNotFound, "en notas es un error")
}

func TestEdit_ConciliaReservasDeNota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")
	fierro := f.addItem(t, "fierro", 50, "4500", "3000")
	yeso := f.addItem(t, "yeso", 40, "3000", "2000")

	note, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(cemento.ID, 30), line(fierro.ID, 5), line(cemento.ID, 5)))
	require.NoError(t, err)
	assert.Equal(t, int64(35), f.item(t, cemento.ID).CommittedFor(note.ID), "suma por ítem")

	edited, err := f.uc.Update(ctx, testUserID, note.ID, noteRequest(line(cemento.ID, 10), line(yeso.ID, 4)))
	require.NoError(t, err)
	assert.Equal(t, *note.Numero, *edited.Numero, "la edición conserva el número")

	assert.Equal(t, int64(10), f.item(t, cemento.ID).CommittedFor(note.ID), "redimensiona")
	assert.Equal(t, int64(0), f.item(t, fierro.ID).CommittedFor(note.ID), "libera lo que ya no está")
	assert.Equal(t, int64(4), f.item(t, yeso.ID).CommittedFor(note.ID), "agrega lo nuevo")

	_, err = f.uc.Update(ctx, testUserID, note.ID, quoteRequest(line(cemento.ID, 1)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un documento finalizado no cambia de tipo")
}

func TestEdit_NotaConDespachoReservaSoloLoPendiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")

	note, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(cemento.ID, 30)))
	require.NoError(t, err)
	require.NoError(t, f.store.DispatchGuides().Create(ctx, &entity.DispatchGuide{
		ID: "00000000-0000-0000-0000-0000000000a1", NoteID: note.ID, Numero: 1, Date: time.Now(),
		Estado: entity.GuideEstadoPendiente,
		Lines:  []entity.DispatchGuideLine{{ItemID: cemento.ID, Name: "cemento", Quantity: 12, Price: decimal.NewFromInt(5990)}},
	}))

	req := noteRequest(line(cemento.ID, 30))
	req.Client = "Otro cliente"
	_, err = f.uc.Update(ctx, testUserID, note.ID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(18), f.item(t, cemento.ID).CommittedFor(note.ID), "lo despachado ya no se reserva")
}

func TestEdit_CambioDeEntregaMueveLaVigenciaDeLasReservas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")
	fierro := f.addItem(t, "fierro", 50, "4500", "3000")

	note, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(cemento.ID, 30), line(fierro.ID, 5)))
	require.NoError(t, err)

	req := noteRequest(line(cemento.ID, 30), line(fierro.ID, 8))
	req.DeliveryDate = "2027-03-15"
	_, err = f.uc.Update(ctx, testUserID, note.ID, req)
	require.NoError(t, err)

	for _, id := range []string{cemento.ID, fierro.ID} {
		it := f.item(t, id)
		require.NotEmpty(t, it.Commitments)
		for _, c := range it.Commitments {
			assert.Equal(t, "2027-03-15", c.ValidUntil.Format(time.DateOnly), "reserva de %s", it.Name)
		}
	}
	assert.Equal(t, int64(30), f.item(t, cemento.ID).CommittedFor(note.ID), "la cantidad sin cambio se mantiene")
}

func TestEdit_CotizacionConvertidaEsInmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")

	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(arena.ID, 2)))
	require.NoError(t, err)
	_, err = f.uc.ConvertToNote(ctx, testUserID, q.ID)
	require.NoError(t, err)

	req := quoteRequest(line(arena.ID, 9))
	req.Client = "Cambiado"
	_, err = f.uc.Update(ctx, testUserID, q.ID, req)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.uc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Constructora Los Andes", got.Client, "nada se persiste")
	assert.Equal(t, int64(2), got.Lines[0].Quantity)
	assert.True(t, got.AlreadyConverted)
	assert.Equal(t, 1, f.metrics.events["create_or_update:conflict"])
}

func TestEdit_NotaAnuladaEsInmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")

	n, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(arena.ID, 2)))
	require.NoError(t, err)
	_, err = f.uc.CancelNote(ctx, n.ID)
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, testUserID, n.ID, noteRequest(line(arena.ID, 3)))
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, int64(0), f.item(t, arena.ID).Committed(), "no vuelve a reservar")

	_, err = f.uc.CancelNote(ctx, n.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled, "anular es una sola vez")
}

// ──────────────────────────────────────────────────────────────────────────────
// Correlativos
// ──────────────────────────────────────────────────────────────────────────────

func TestNumeracion_ConcurrenteDistintaYCreciente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 1000, "1000", "500")
	require.NoError(t, f.store.Counters().Seed(ctx, entity.CounterNota, 20000))

	const n = 20
	numbers := make([]int64, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			resp, _, err := f.uc.CreateOrUpdate(gctx, testUserID, noteRequest(line(arena.ID, 1)))
			if err != nil {
				return err
			}
			numbers[i] = *resp.Numero
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, got := range numbers {
		assert.Equal(t, int64(20001+i), got, "números distintos y consecutivos sobre el piso heredado")
	}
	assert.Equal(t, int64(n), f.item(t, arena.ID).Committed())
}

func TestNumeracion_BorradorSinNumeroHastaFinalizar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")

	req := noteRequest(line(arena.ID, 4))
	req.Estado = entity.EstadoBorrador
	draft, _, err := f.uc.CreateOrUpdate(ctx, testUserID, req)
	require.NoError(t, err)
	assert.Nil(t, draft.Numero)
	assert.Equal(t, int64(0), f.item(t, arena.ID).Committed(), "un borrador no reserva")

	req.Estado = entity.EstadoFinalizada
	final, err := f.uc.Update(ctx, testUserID, draft.ID, req)
	require.NoError(t, err)
	require.NotNil(t, final.Numero)
	assert.Equal(t, int64(1), *final.Numero)
	assert.Equal(t, int64(4), f.item(t, arena.ID).CommittedFor(draft.ID))

	req.Estado = entity.EstadoBorrador
	_, err = f.uc.Update(ctx, testUserID, draft.ID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no vuelve a borrador")
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión
// ──────────────────────────────────────────────────────────────────────────────

func TestConvert_CreaNotaReservaYGeneraPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")
	require.NoError(t, f.store.Counters().Seed(ctx, entity.CounterNota, 20000))

	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(cemento.ID, 30)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.item(t, cemento.ID).Committed(), "una cotización no reserva")

	note, err := f.uc.ConvertToNote(ctx, testUserID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TipoNota, note.Tipo)
	assert.Equal(t, entity.EstadoFinalizada, note.Estado)
	assert.Equal(t, q.ID, note.OriginalID)
	assert.Equal(t, int64(20001), *note.Numero, "la conversión usa el mismo correlativo que las notas directas")
	assert.Equal(t, q.Total.String(), note.Total.String())
	assert.Equal(t, q.Client, note.Client)
	assert.Equal(t, "/uploads/pdfs/nota_20001.pdf", note.PDFURL)
	assert.Equal(t, 1, f.files.count())

	it := f.item(t, cemento.ID)
	assert.Equal(t, int64(30), it.CommittedFor(note.ID))
	assert.Equal(t, int64(70), it.Available())

	stored, err := f.uc.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.PDFURL, stored.PDFURL)
}

func TestConvert_DosVecesFallaConConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")

	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(cemento.ID, 30)))
	require.NoError(t, err)
	_, err = f.uc.ConvertToNote(ctx, testUserID, q.ID)
	require.NoError(t, err)

	_, err = f.uc.ConvertToNote(ctx, testUserID, q.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)

	notes, err := f.uc.List(ctx, dto.CotizacionListRequest{Tipo: entity.TipoNota})
	require.NoError(t, err)
	assert.Len(t, notes, 1, "no se crea una segunda nota")
	assert.Equal(t, int64(30), f.item(t, cemento.ID).Committed(), "no hay un segundo juego de reservas")
}

func TestConvert_ConcurrenteSoloUnaGana(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")
	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(cemento.ID, 10)))
	require.NoError(t, err)

	const n = 8
	errs := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, errs[i] = f.uc.ConvertToNote(ctx, testUserID, q.ID)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(10), f.item(t, cemento.ID).Committed())
}

func TestConvert_FalloDePDFRevierteTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")
	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(cemento.ID, 30)))
	require.NoError(t, err)

	f.pdf.fail = true
	_, err = f.uc.ConvertToNote(ctx, testUserID, q.ID)
	require.Error(t, err)

	notes, err := f.uc.List(ctx, dto.CotizacionListRequest{Tipo: entity.TipoNota})
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, int64(0), f.item(t, cemento.ID).Committed())

	f.pdf.fail = false
	note, err := f.uc.ConvertToNote(ctx, testUserID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), *note.Numero, "el correlativo también se revirtió")
}

func TestConvert_RequiereCotizacionFinalizada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")

	n, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(arena.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.ConvertToNote(ctx, testUserID, n.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := f.uc.SaveDraft(ctx, testUserID, quoteRequest(line(arena.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.ConvertToNote(ctx, testUserID, d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ConvertToNote(ctx, testUserID, "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación / eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_SoloLiberaLasReservasDeEsaNota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")

	a, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(cemento.ID, 30)))
	require.NoError(t, err)
	b, _, err := f.uc.CreateOrUpdate(ctx, testUserID, noteRequest(line(cemento.ID, 25)))
	require.NoError(t, err)

	cancelled, err := f.uc.CancelNote(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, cancelled.Cancelled)

	it := f.item(t, cemento.ID)
	assert.Equal(t, int64(0), it.CommittedFor(a.ID))
	assert.Equal(t, int64(25), it.CommittedFor(b.ID), "la otra nota conserva su reserva")
	assert.Equal(t, int64(75), it.Available())

	list, err := f.uc.List(ctx, dto.CotizacionListRequest{Estado: entity.EstadoCancelada})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	list, err = f.uc.List(ctx, dto.CotizacionListRequest{Tipo: entity.TipoNota, Estado: entity.EstadoFinalizada})
	require.NoError(t, err)
	require.Len(t, list, 1, "las anuladas no figuran como finalizadas")
	assert.Equal(t, b.ID, list[0].ID)

	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(cemento.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.CancelNote(ctx, q.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "solo se anulan notas")
}

func TestDelete_LiberaReservasYArchivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")

	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(cemento.ID, 40)))
	require.NoError(t, err)
	note, err := f.uc.ConvertToNote(ctx, testUserID, q.ID)
	require.NoError(t, err)
	require.Equal(t, 1, f.files.count())

	require.NoError(t, f.uc.Delete(ctx, note.ID))
	assert.Equal(t, int64(0), f.item(t, cemento.ID).Committed())
	assert.Equal(t, 0, f.files.count())
	_, err = f.uc.Get(ctx, note.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.uc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.False(t, got.AlreadyConverted, "sin nota la cotización deja de estar convertida")

	assert.ErrorIs(t, f.uc.Delete(ctx, note.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borradores
// ──────────────────────────────────────────────────────────────────────────────

func TestDraft_GuardarYPromover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")

	req := quoteRequest(dto.CotizacionLineRequest{ItemID: arena.ID, Name: "arena fina", Quantity: 3, Price: decimal.NewFromInt(1200)})
	draft, err := f.uc.SaveDraft(ctx, testUserID, req)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoBorrador, draft.Estado)
	assert.Nil(t, draft.Numero)
	assert.Equal(t, "3600", draft.Total.String(), "totales con precios del formulario")
	assert.Equal(t, "arena fina", draft.Lines[0].Name, "sin consultar el inventario")

	promoted, err := f.uc.PromoteDraft(ctx, testUserID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoFinalizada, promoted.Estado)
	assert.Equal(t, draft.ID, promoted.OriginalID)
	require.NotNil(t, promoted.Numero)
	assert.Equal(t, int64(1), *promoted.Numero)
	assert.Equal(t, "arena", promoted.Lines[0].Name, "al finalizar se congela el nombre del ítem")

	_, err = f.uc.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el borrador se elimina")
	_, err = f.uc.PromoteDraft(ctx, testUserID, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraft_PromoverRechazaNoBorradores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")

	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(arena.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.PromoteDraft(ctx, testUserID, q.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	nd, err := f.uc.SaveDraft(ctx, testUserID, noteRequest(line(arena.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.PromoteDraft(ctx, testUserID, nd.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un documento que ya apunta al borrador impide promoverlo de nuevo.
	d, err := f.uc.SaveDraft(ctx, testUserID, quoteRequest(line(arena.ID, 1)))
	require.NoError(t, err)
	n := int64(99)
	require.NoError(t, f.store.Cotizaciones().Create(ctx, &entity.Cotizacion{
		ID: "00000000-0000-0000-0000-0000000000c1", Tipo: entity.TipoCotizacion, Estado: entity.EstadoFinalizada,
		Numero: &n, OriginalID: d.ID,
	}))
	_, err = f.uc.PromoteDraft(ctx, testUserID, d.ID)
	assert.ErrorIs(t, err, domain.ErrDraftPromoted)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF y ganancia
// ──────────────────────────────────────────────────────────────────────────────

func TestAttachPDFYRender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arena := f.addItem(t, "arena", 10, "1000", "500")
	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(line(arena.ID, 1)))
	require.NoError(t, err)

	_, err = f.uc.AttachPDF(ctx, q.ID, []byte("<html>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.AttachPDF(ctx, q.ID, []byte("%PDF-1.7 subido"))
	require.NoError(t, err)
	assert.Contains(t, got.PDFURL, "/uploads/pdfs/")

	data, name, err := f.uc.RenderPDF(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "cotizacion_1.pdf", name)
	assert.Contains(t, string(data), q.ID)
}

func TestProfit_UsaCostoVigente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cemento := f.addItem(t, "cemento", 100, "5990", "4200")
	q, _, err := f.uc.CreateOrUpdate(ctx, testUserID, quoteRequest(
		line(cemento.ID, 10),
		dto.CotizacionLineRequest{Name: "Flete", Quantity: 1, Price: decimal.NewFromInt(10000)},
	))
	require.NoError(t, err)

	p, err := f.uc.Profit(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "69900", p.Revenue.String())
	assert.Equal(t, "42000", p.TotalCost.String())
	assert.Equal(t, "27900", p.Profit.String())
	assert.Equal(t, "39.91", p.MarginPct.StringFixed(2))
	require.Len(t, p.Lines, 2)
	assert.Equal(t, "17900", p.Lines[0].Profit.String())
}
