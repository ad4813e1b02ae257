package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.DispatchGuideRepository = (*DispatchGuideRepo)(nil)

// DispatchGuideRepo guías de despacho sobre PostgreSQL.
type DispatchGuideRepo struct {
	q Querier
}

// NewDispatchGuideRepository construye el repositorio de guías.
func NewDispatchGuideRepository(q Querier) *DispatchGuideRepo {
	return &DispatchGuideRepo{q: q}
}

// Create inserta la guía y sus líneas.
func (r *DispatchGuideRepo) Create(ctx context.Context, g *entity.DispatchGuide) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO guias_despacho (id, nota_id, numero, fecha, estado, pdf_url, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.NoteID, g.Numero, g.Date, g.Estado, g.PDFURL, g.CreatedBy, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de guía repetido", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert guia: %w", err)
	}
	for i, l := range g.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO guia_despacho_lines (guia_id, position, item_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			g.ID, i, l.ItemID, l.Name, l.Quantity, l.Price,
		)
		if err != nil {
			return fmt.Errorf("insert guia line: %w", err)
		}
	}
	return nil
}

const guideColumns = `id, nota_id, numero, fecha, estado, pdf_url, created_by, created_at`

func scanGuide(row pgx.Row) (*entity.DispatchGuide, error) {
	var g entity.DispatchGuide
	if err := row.Scan(&g.ID, &g.NoteID, &g.Numero, &g.Date, &g.Estado, &g.PDFURL, &g.CreatedBy, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID obtiene una guía con sus líneas.
func (r *DispatchGuideRepo) GetByID(ctx context.Context, id string) (*entity.DispatchGuide, error) {
	g, err := scanGuide(r.q.QueryRow(ctx, `SELECT `+guideColumns+` FROM guias_despacho WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guia: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.DispatchGuide{g}); err != nil {
		return nil, err
	}
	return g, nil
}

// ListByNote lista las guías de una nota en orden de creación.
func (r *DispatchGuideRepo) ListByNote(ctx context.Context, noteID string) ([]*entity.DispatchGuide, error) {
	rows, err := r.q.Query(ctx, `SELECT `+guideColumns+` FROM guias_despacho WHERE nota_id = $1 ORDER BY created_at, numero`, noteID)
	if err != nil {
		return nil, fmt.Errorf("list guias: %w", err)
	}
	var list []*entity.DispatchGuide
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan guia: %w", err)
		}
		list = append(list, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list guias: %w", err)
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *DispatchGuideRepo) loadLines(ctx context.Context, list []*entity.DispatchGuide) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.DispatchGuide, len(list))
	for i, g := range list {
		ids[i] = g.ID
		byID[g.ID] = g
	}
	rows, err := r.q.Query(ctx, `
		SELECT guia_id, item_id, name, quantity, price
		FROM guia_despacho_lines WHERE guia_id = ANY($1::uuid[]) ORDER BY guia_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list guia lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var guideID string
		var l entity.DispatchGuideLine
		if err := rows.Scan(&guideID, &l.ItemID, &l.Name, &l.Quantity, &l.Price); err != nil {
			return fmt.Errorf("scan guia line: %w", err)
		}
		if g := byID[guideID]; g != nil {
			g.Lines = append(g.Lines, l)
		}
	}
	return rows.Err()
}

// Delete elimina la guía (las líneas caen por cascada).
func (r *DispatchGuideRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM guias_despacho WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete guia: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPDFURL guarda la ubicación del PDF de la guía.
func (r *DispatchGuideRepo) SetPDFURL(ctx context.Context, id, url string) error {
	_, err := r.q.Exec(ctx, `UPDATE guias_despacho SET pdf_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("set guia pdf url: %w", err)
	}
	return nil
}

// DeliveredByItem suma lo despachado de la nota por ítem.
func (r *DispatchGuideRepo) DeliveredByItem(ctx context.Context, noteID string) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.item_id, sum(l.quantity)::bigint
		FROM guia_despacho_lines l JOIN guias_despacho g ON g.id = l.guia_id
		WHERE g.nota_id = $1 GROUP BY l.item_id`, noteID)
	if err != nil {
		return nil, fmt.Errorf("delivered by item: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var itemID string
		var qty int64
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("scan delivered: %w", err)
		}
		out[itemID] = qty
	}
	return out, rows.Err()
}
