package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems y reservas en memoria.
type ItemRepo struct {
	s      *Store
	locked bool
}

func codeTaken(st *state, code, exceptID string) bool {
	if code == "" {
		return false
	}
	for id, it := range st.items {
		if id != exceptID && it.Code == code {
			return true
		}
	}
	return false
}

func (r *ItemRepo) Create(_ context.Context, it *entity.Item) error {
	return r.s.access(r.locked, func(st *state) error {
		if codeTaken(st, it.Code, it.ID) {
			return fmt.Errorf("%w: código %q ya existe", domain.ErrDuplicate, it.Code)
		}
		c := cloneItem(it)
		c.Commitments = nil
		st.items[it.ID] = c
		return nil
	})
}

func (r *ItemRepo) find(match func(*entity.Item) bool) (*entity.Item, error) {
	var out *entity.Item
	err := r.s.access(r.locked, func(st *state) error {
		var candidates []*entity.Item
		for _, it := range st.items {
			if match(it) {
				candidates = append(candidates, it)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].ReceivedAt.Before(candidates[j].ReceivedAt)
		})
		out = cloneItem(candidates[0])
		return nil
	})
	return out, err
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return r.find(func(it *entity.Item) bool { return it.ID == id })
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	return r.find(func(it *entity.Item) bool { return code != "" && it.Code == code })
}

func (r *ItemRepo) GetByName(_ context.Context, name string) (*entity.Item, error) {
	return r.find(func(it *entity.Item) bool { return strings.EqualFold(it.Name, name) })
}

func (r *ItemRepo) Update(_ context.Context, it *entity.Item) error {
	return r.s.access(r.locked, func(st *state) error {
		cur, ok := st.items[it.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if codeTaken(st, it.Code, it.ID) {
			return fmt.Errorf("%w: código %q ya existe", domain.ErrDuplicate, it.Code)
		}
		c := cloneItem(it)
		c.Commitments = cur.Commitments
		st.items[it.ID] = c
		return nil
	})
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	return r.s.access(r.locked, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.items, id)
		return nil
	})
}

func (r *ItemRepo) sorted(st *state, match func(*entity.Item) bool) []*entity.Item {
	var list []*entity.Item
	for _, it := range st.items {
		if match(it) {
			list = append(list, cloneItem(it))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (r *ItemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, int, error) {
	var page []*entity.Item
	var total int
	err := r.s.access(r.locked, func(st *state) error {
		all := r.sorted(st, func(*entity.Item) bool { return true })
		total = len(all)
		page = paginate(all, limit, offset)
		return nil
	})
	return page, total, err
}

func (r *ItemRepo) Search(_ context.Context, key string, limit int) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.s.access(r.locked, func(st *state) error {
		out = paginate(r.sorted(st, func(it *entity.Item) bool {
			return strings.Contains(it.SearchKey, key)
		}), limit, 0)
		return nil
	})
	return out, err
}

func (r *ItemRepo) AdjustQuantity(_ context.Context, id string, delta int64) error {
	return r.s.access(r.locked, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.Quantity = max(it.Quantity+delta, 0)
		it.ModifiedAt = time.Now()
		return nil
	})
}

func (r *ItemRepo) AddCommitment(_ context.Context, c *entity.Commitment) error {
	return r.s.access(r.locked, func(st *state) error {
		it, ok := st.items[c.ItemID]
		if !ok {
			return domain.ErrNotFound
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		it.Commitments = append(it.Commitments, *c)
		return nil
	})
}

func releaseLocked(st *state, itemID, documentID string) int64 {
	it, ok := st.items[itemID]
	if !ok {
		return 0
	}
	kept := it.Commitments[:0]
	var removed int64
	for _, c := range it.Commitments {
		if c.DocumentID == documentID {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	it.Commitments = kept
	return removed
}

func (r *ItemRepo) ReleaseCommitments(_ context.Context, itemID, documentID string) (int64, error) {
	var n int64
	err := r.s.access(r.locked, func(st *state) error {
		n = releaseLocked(st, itemID, documentID)
		return nil
	})
	return n, err
}

func (r *ItemRepo) SetCommitment(_ context.Context, itemID, documentID string, qty int64, until time.Time) error {
	return r.s.access(r.locked, func(st *state) error {
		it, ok := st.items[itemID]
		if !ok {
			return domain.ErrNotFound
		}
		releaseLocked(st, itemID, documentID)
		if qty > 0 {
			it.Commitments = append(it.Commitments, entity.Commitment{
				ID: uuid.New().String(), ItemID: itemID, DocumentID: documentID,
				Quantity: qty, ValidUntil: until, CreatedAt: time.Now(),
			})
		}
		return nil
	})
}

func (r *ItemRepo) RescheduleCommitments(_ context.Context, documentID string, until time.Time) error {
	return r.s.access(r.locked, func(st *state) error {
		for _, it := range st.items {
			for i := range it.Commitments {
				if it.Commitments[i].DocumentID == documentID {
					it.Commitments[i].ValidUntil = until
				}
			}
		}
		return nil
	})
}

func (r *ItemRepo) ConsumeCommitment(_ context.Context, itemID, documentID string, qty int64) error {
	return r.s.access(r.locked, func(st *state) error {
		it, ok := st.items[itemID]
		if !ok {
			return nil
		}
		pending := qty
		kept := it.Commitments[:0]
		for _, c := range it.Commitments {
			if c.DocumentID == documentID && pending > 0 {
				take := min(c.Quantity, pending)
				pending -= take
				c.Quantity -= take
			}
			if c.Quantity > 0 {
				kept = append(kept, c)
			}
		}
		it.Commitments = kept
		return nil
	})
}

func (r *ItemRepo) CommitmentsByDocument(_ context.Context, documentID string) (map[string]int64, error) {
	out := make(map[string]int64)
	err := r.s.access(r.locked, func(st *state) error {
		for _, it := range st.items {
			for _, c := range it.Commitments {
				if c.DocumentID == documentID {
					out[it.ID] += c.Quantity
				}
			}
		}
		return nil
	})
	return out, err
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
