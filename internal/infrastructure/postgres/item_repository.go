package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, code, search_key, quantity, price, cost, received_at, modified_by, modified_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var code *string
	if err := row.Scan(&it.ID, &it.Name, &code, &it.SearchKey, &it.Quantity, &it.Price, &it.Cost,
		&it.ReceivedAt, &it.ModifiedBy, &it.ModifiedAt); err != nil {
		return nil, err
	}
	it.Code = derefString(code)
	return &it, nil
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.Name, nullString(it.Code), it.SearchKey, it.Quantity, it.Price, it.Cost,
		it.ReceivedAt, it.ModifiedBy, it.ModifiedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %q ya existe", domain.ErrDuplicate, it.Code)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) getOne(ctx context.Context, query string, arg any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := r.loadCommitments(ctx, []*entity.Item{it}); err != nil {
		return nil, err
	}
	return it, nil
}

// GetByID obtiene un ítem con sus reservas.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetByCode busca por código exacto.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE code = $1 FOR UPDATE`, code)
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE lower(name) = lower($1) ORDER BY received_at LIMIT 1 FOR UPDATE`, name)
}

// Update guarda todos los campos editables del ítem. No toca las reservas.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE items SET name = $2, code = $3, search_key = $4, quantity = $5, price = $6, cost = $7,
			received_at = $8, modified_by = $9, modified_at = $10
		WHERE id = $1`,
		it.ID, it.Name, nullString(it.Code), it.SearchKey, it.Quantity, it.Price, it.Cost,
		it.ReceivedAt, it.ModifiedBy, it.ModifiedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %q ya existe", domain.ErrDuplicate, it.Code)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el ítem (las reservas caen por cascada).
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ítems por nombre con paginación y total.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadCommitments(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search busca key como subcadena de search_key; los comodines de LIKE se escapan.
func (r *ItemRepo) Search(ctx context.Context, key string, limit int) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE search_key LIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY name LIMIT $2`, escapeLike(key), limit)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// AdjustQuantity suma delta al stock sin bajar de cero.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id string, delta int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET quantity = GREATEST(quantity + $2, 0), modified_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("adjust item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadCommitments completa Commitments de los ítems en una sola consulta.
func (r *ItemRepo) loadCommitments(ctx context.Context, items []*entity.Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	byID := make(map[string]*entity.Item, len(items))
	for i, it := range items {
		ids[i] = it.ID
		byID[it.ID] = it
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, item_id, document_id, quantity, valid_until, created_at
		FROM item_commitments WHERE item_id = ANY($1::uuid[]) ORDER BY created_at, id`, ids)
	if err != nil {
		return fmt.Errorf("list commitments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.Commitment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.DocumentID, &c.Quantity, &c.ValidUntil, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan commitment: %w", err)
		}
		if it := byID[c.ItemID]; it != nil {
			it.Commitments = append(it.Commitments, c)
		}
	}
	return rows.Err()
}

// AddCommitment agrega una reserva. No valida disponibilidad.
func (r *ItemRepo) AddCommitment(ctx context.Context, c *entity.Commitment) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO item_commitments (id, item_id, document_id, quantity, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.ItemID, c.DocumentID, c.Quantity, c.ValidUntil, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commitment: %w", err)
	}
	return nil
}

// ReleaseCommitments elimina las reservas del documento sobre el ítem y devuelve cuántas borró.
func (r *ItemRepo) ReleaseCommitments(ctx context.Context, itemID, documentID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM item_commitments WHERE item_id = $1 AND document_id = $2`, itemID, documentID)
	if err != nil {
		return 0, fmt.Errorf("release commitments: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// SetCommitment deja una única reserva de qty del documento sobre el ítem.
func (r *ItemRepo) SetCommitment(ctx context.Context, itemID, documentID string, qty int64, until time.Time) error {
	if _, err := r.ReleaseCommitments(ctx, itemID, documentID); err != nil {
		return err
	}
	if qty <= 0 {
		return nil
	}
	return r.AddCommitment(ctx, &entity.Commitment{ItemID: itemID, DocumentID: documentID, Quantity: qty, ValidUntil: until})
}

// RescheduleCommitments actualiza valid_until de las reservas del documento que tengan otra fecha.
func (r *ItemRepo) RescheduleCommitments(ctx context.Context, documentID string, until time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE item_commitments SET valid_until = $2
		WHERE document_id = $1 AND valid_until <> $2`, documentID, until)
	if err != nil {
		return fmt.Errorf("reschedule commitments: %w", err)
	}
	return nil
}

// ConsumeCommitment descuenta qty de las reservas del documento, de la más antigua a la más nueva.
func (r *ItemRepo) ConsumeCommitment(ctx context.Context, itemID, documentID string, qty int64) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, quantity FROM item_commitments
		WHERE item_id = $1 AND document_id = $2 ORDER BY created_at, id FOR UPDATE`, itemID, documentID)
	if err != nil {
		return fmt.Errorf("select commitments: %w", err)
	}
	type held struct {
		id  string
		qty int64
	}
	var list []held
	for rows.Next() {
		var h held
		if err := rows.Scan(&h.id, &h.qty); err != nil {
			rows.Close()
			return fmt.Errorf("scan commitment: %w", err)
		}
		list = append(list, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("select commitments: %w", err)
	}

	pending := qty
	for _, h := range list {
		if pending <= 0 {
			break
		}
		take := min(h.qty, pending)
		pending -= take
		if take == h.qty {
			_, err = r.q.Exec(ctx, `DELETE FROM item_commitments WHERE id = $1`, h.id)
		} else {
			_, err = r.q.Exec(ctx, `UPDATE item_commitments SET quantity = quantity - $2 WHERE id = $1`, h.id, take)
		}
		if err != nil {
			return fmt.Errorf("consume commitment: %w", err)
		}
	}
	return nil
}

// CommitmentsByDocument suma lo reservado por el documento en cada ítem.
func (r *ItemRepo) CommitmentsByDocument(ctx context.Context, documentID string) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT item_id, sum(quantity)::bigint FROM item_commitments WHERE document_id = $1 GROUP BY item_id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("commitments by document: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var itemID string
		var qty int64
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("scan commitments by document: %w", err)
		}
		out[itemID] = qty
	}
	return out, rows.Err()
}
