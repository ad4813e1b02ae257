package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

func newItem(id, name string, qty int64) *entity.Item {
	return &entity.Item{ID: id, Name: name, SearchKey: name, Quantity: qty, ReceivedAt: time.Now()}
}

func TestRunQuotation_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Items().Create(ctx, newItem("i1", "cemento", 100)))

	boom := errors.New("boom")
	err := s.RunQuotation(ctx, func(items repository.ItemRepository, docs repository.CotizacionRepository, _ repository.DispatchGuideRepository, counters repository.CounterRepository) error {
		_, err := counters.Next(ctx, entity.CounterNota)
		require.NoError(t, err)
		require.NoError(t, items.AddCommitment(ctx, &entity.Commitment{ItemID: "i1", DocumentID: "d1", Quantity: 30}))
		require.NoError(t, docs.Create(ctx, &entity.Cotizacion{ID: "d1", Tipo: entity.TipoNota}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, err := s.Items().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Empty(t, it.Commitments)
	doc, err := s.Cotizaciones().GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, doc)

	n, err := s.Counters().Next(ctx, entity.CounterNota)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCounter_ConcurrentNext(t *testing.T) {
	ctx := context.Background()
	counters := NewStore().Counters()

	var wg sync.WaitGroup
	got := make([]int64, 3)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := counters.Next(ctx, entity.CounterNota)
			assert.NoError(t, err)
			got[i] = v
		}(i)
	}
	wg.Wait()

	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestCounter_SeedNeverLowers(t *testing.T) {
	ctx := context.Background()
	counters := NewStore().Counters()

	require.NoError(t, counters.Seed(ctx, entity.CounterNota, 20000))
	require.NoError(t, counters.Seed(ctx, entity.CounterNota, 10))
	v, err := counters.Next(ctx, entity.CounterNota)
	require.NoError(t, err)
	assert.Equal(t, int64(20001), v)

	require.NoError(t, counters.Seed(ctx, entity.CounterNota, 50000))
	v, err = counters.Next(ctx, entity.CounterNota)
	require.NoError(t, err)
	assert.Equal(t, int64(20002), v)
}

func TestItemCommitments(t *testing.T) {
	ctx := context.Background()
	items := NewStore().Items()
	require.NoError(t, items.Create(ctx, newItem("i1", "cemento", 100)))

	require.NoError(t, items.AddCommitment(ctx, &entity.Commitment{ItemID: "i1", DocumentID: "a", Quantity: 30}))
	require.NoError(t, items.AddCommitment(ctx, &entity.Commitment{ItemID: "i1", DocumentID: "b", Quantity: 20}))
	require.NoError(t, items.AddCommitment(ctx, &entity.Commitment{ItemID: "i1", DocumentID: "a", Quantity: 5}))

	it, _ := items.GetByID(ctx, "i1")
	assert.Equal(t, int64(45), it.Available())
	assert.Equal(t, int64(35), it.CommittedFor("a"))

	require.NoError(t, items.ConsumeCommitment(ctx, "i1", "a", 32))
	it, _ = items.GetByID(ctx, "i1")
	assert.Equal(t, int64(3), it.CommittedFor("a"))
	assert.Equal(t, int64(20), it.CommittedFor("b"))

	require.NoError(t, items.SetCommitment(ctx, "i1", "a", 12, time.Now()))
	byDoc, err := items.CommitmentsByDocument(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"i1": 12}, byDoc)

	n, err := items.ReleaseCommitments(ctx, "i1", "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	it, _ = items.GetByID(ctx, "i1")
	assert.Equal(t, int64(80), it.Available())
	assert.Equal(t, int64(100), it.Quantity)
}

func TestItems_UniqueCodeAndSearch(t *testing.T) {
	ctx := context.Background()
	items := NewStore().Items()
	a := newItem("i1", "cemento polpaico", 10)
	a.Code = "CEM-25"
	require.NoError(t, items.Create(ctx, a))

	b := newItem("i2", "cemento melon", 10)
	b.Code = "CEM-25"
	assert.ErrorIs(t, items.Create(ctx, b), domain.ErrDuplicate)

	b.Code = ""
	require.NoError(t, items.Create(ctx, b))

	found, err := items.Search(ctx, "cemento", 5)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "cemento melon", found[0].Name)

	require.NoError(t, items.AdjustQuantity(ctx, "i1", -50))
	it, _ := items.GetByID(ctx, "i1")
	assert.Equal(t, int64(0), it.Quantity)
}

func TestCotizaciones_ConversionUniqueness(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Cotizaciones()
	require.NoError(t, docs.Create(ctx, &entity.Cotizacion{ID: "q1", Tipo: entity.TipoCotizacion, Estado: entity.EstadoFinalizada}))
	require.NoError(t, docs.Create(ctx, &entity.Cotizacion{ID: "n1", Tipo: entity.TipoNota, Estado: entity.EstadoFinalizada, OriginalID: "q1"}))

	err := docs.Create(ctx, &entity.Cotizacion{ID: "n2", Tipo: entity.TipoNota, Estado: entity.EstadoFinalizada, OriginalID: "q1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	q, err := docs.GetByID(ctx, "q1")
	require.NoError(t, err)
	assert.True(t, q.Converted)

	exists, err := docs.ExistsByOriginalID(ctx, "q1", entity.TipoNota)
	require.NoError(t, err)
	assert.True(t, exists)
}
