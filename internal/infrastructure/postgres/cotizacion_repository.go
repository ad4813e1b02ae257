package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo implementación de CotizacionRepository sobre PostgreSQL (usable con pool o tx).
type CotizacionRepo struct {
	q Querier
}

// NewCotizacionRepository construye el adaptador de persistencia para cotizaciones.
func NewCotizacionRepository(q Querier) *CotizacionRepo {
	return &CotizacionRepo{q: q}
}

const cotizacionColumns = `c.id, c.tipo, c.estado, c.numero,
	c.client_name, c.client_tax_id, c.client_business, c.client_address, c.client_commune, c.client_city,
	c.client_attention, c.client_email, c.client_phone,
	c.delivery_address, c.issue_date, c.delivery_date, c.payment_method, c.payment_terms, c.notes,
	c.document_number, c.document_type, c.cancelled_at, c.total, c.pdf_url, c.original_id, c.created_by,
	c.created_at, c.updated_at,
	EXISTS (SELECT 1 FROM cotizaciones n WHERE n.original_id = c.id AND n.tipo = 'nota') AS converted`

func scanCotizacion(row pgx.Row) (*entity.Cotizacion, error) {
	var c entity.Cotizacion
	var deliveryDate *time.Time
	var originalID *string
	err := row.Scan(&c.ID, &c.Tipo, &c.Estado, &c.Numero,
		&c.Client.Name, &c.Client.TaxID, &c.Client.Business, &c.Client.Address, &c.Client.Commune, &c.Client.City,
		&c.Client.Attention, &c.Client.Email, &c.Client.Phone,
		&c.DeliveryAddress, &c.IssueDate, &deliveryDate, &c.PaymentMethod, &c.PaymentTerms, &c.Notes,
		&c.DocumentNumber, &c.DocumentType, &c.CancelledAt, &c.Total, &c.PDFURL, &originalID, &c.CreatedBy,
		&c.CreatedAt, &c.UpdatedAt, &c.Converted,
	)
	if err != nil {
		return nil, err
	}
	if deliveryDate != nil {
		c.DeliveryDate = *deliveryDate
	}
	c.OriginalID = derefString(originalID)
	return &c, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Create inserta la cabecera y sus líneas.
func (r *CotizacionRepo) Create(ctx context.Context, c *entity.Cotizacion) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cotizaciones (id, tipo, estado, numero,
			client_name, client_tax_id, client_business, client_address, client_commune, client_city,
			client_attention, client_email, client_phone,
			delivery_address, issue_date, delivery_date, payment_method, payment_terms, notes,
			document_number, document_type, cancelled_at, total, pdf_url, original_id, created_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25, $26, $27, $28)`,
		c.ID, c.Tipo, c.Estado, c.Numero,
		c.Client.Name, c.Client.TaxID, c.Client.Business, c.Client.Address, c.Client.Commune, c.Client.City,
		c.Client.Attention, c.Client.Email, c.Client.Phone,
		c.DeliveryAddress, c.IssueDate, nullTime(c.DeliveryDate), c.PaymentMethod, c.PaymentTerms, c.Notes,
		c.DocumentNumber, c.DocumentType, c.CancelledAt, c.Total, c.PDFURL, nullString(c.OriginalID), c.CreatedBy,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapCotizacionError(err)
	}
	return r.insertLines(ctx, c)
}

func mapCotizacionError(err error) error {
	if isUniqueViolation(err) {
		if violatedConstraint(err) == "uq_cotizaciones_conversion" {
			return domain.ErrAlreadyConverted
		}
		return fmt.Errorf("%w: número de documento repetido", domain.ErrDuplicate)
	}
	return fmt.Errorf("save cotizacion: %w", err)
}

func (r *CotizacionRepo) insertLines(ctx context.Context, c *entity.Cotizacion) error {
	if len(c.Lines) == 0 {
		return nil
	}
	rows := make([][]any, len(c.Lines))
	for i, l := range c.Lines {
		rows[i] = []any{c.ID, i, nullString(l.ItemID), l.Name, l.Quantity, l.Price, l.Total}
	}
	_, err := r.insertLineRows(ctx, rows)
	if err != nil {
		return fmt.Errorf("insert cotizacion lines: %w", err)
	}
	return nil
}

// insertLineRows inserta todas las líneas en un único INSERT multi-fila.
func (r *CotizacionRepo) insertLineRows(ctx context.Context, rows [][]any) (int64, error) {
	var sb strings.Builder
	args := make([]any, 0, len(rows)*7)
	sb.WriteString(`INSERT INTO cotizacion_lines (cotizacion_id, position, item_id, name, quantity, price, total) VALUES `)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, row...)
	}
	cmd, err := r.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *CotizacionRepo) getOne(ctx context.Context, query, id string) (*entity.Cotizacion, error) {
	c, err := scanCotizacion(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Cotizacion{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID obtiene un documento con sus líneas.
func (r *CotizacionRepo) GetByID(ctx context.Context, id string) (*entity.Cotizacion, error) {
	return r.getOne(ctx, `SELECT `+cotizacionColumns+` FROM cotizaciones c WHERE c.id = $1`, id)
}

// GetForUpdate obtiene el documento bloqueando su fila.
func (r *CotizacionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cotizacion, error) {
	return r.getOne(ctx, `SELECT `+cotizacionColumns+` FROM cotizaciones c WHERE c.id = $1 FOR UPDATE OF c`, id)
}

// Update reemplaza cabecera y líneas.
func (r *CotizacionRepo) Update(ctx context.Context, c *entity.Cotizacion) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE cotizaciones SET tipo = $2, estado = $3, numero = $4,
			client_name = $5, client_tax_id = $6, client_business = $7, client_address = $8, client_commune = $9,
			client_city = $10, client_attention = $11, client_email = $12, client_phone = $13,
			delivery_address = $14, issue_date = $15, delivery_date = $16, payment_method = $17, payment_terms = $18,
			notes = $19, document_number = $20, document_type = $21, cancelled_at = $22, total = $23, pdf_url = $24,
			original_id = $25, updated_at = $26
		WHERE id = $1`,
		c.ID, c.Tipo, c.Estado, c.Numero,
		c.Client.Name, c.Client.TaxID, c.Client.Business, c.Client.Address, c.Client.Commune,
		c.Client.City, c.Client.Attention, c.Client.Email, c.Client.Phone,
		c.DeliveryAddress, c.IssueDate, nullTime(c.DeliveryDate), c.PaymentMethod, c.PaymentTerms,
		c.Notes, c.DocumentNumber, c.DocumentType, c.CancelledAt, c.Total, c.PDFURL,
		nullString(c.OriginalID), c.UpdatedAt,
	)
	if err != nil {
		return mapCotizacionError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM cotizacion_lines WHERE cotizacion_id = $1`, c.ID); err != nil {
		return fmt.Errorf("delete cotizacion lines: %w", err)
	}
	return r.insertLines(ctx, c)
}

// Delete elimina el documento (las líneas caen por cascada).
func (r *CotizacionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM cotizaciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cotizacion: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista documentos filtrando por tipo y estado, más recientes primero.
func (r *CotizacionRepo) List(ctx context.Context, f repository.CotizacionFilter) ([]*entity.Cotizacion, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+cotizacionColumns+` FROM cotizaciones c
		WHERE ($1 = '' OR c.tipo = $1) AND ($2 = '' OR c.estado = $2)
		ORDER BY c.created_at DESC, c.id`, f.Tipo, f.Estado)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	var list []*entity.Cotizacion
	for rows.Next() {
		c, err := scanCotizacion(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cotizacion: %w", err)
		}
		list = append(list, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CotizacionRepo) loadLines(ctx context.Context, docs []*entity.Cotizacion) error {
	if len(docs) == 0 {
		return nil
	}
	ids := make([]string, len(docs))
	byID := make(map[string]*entity.Cotizacion, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		byID[d.ID] = d
	}
	rows, err := r.q.Query(ctx, `
		SELECT cotizacion_id, item_id, name, quantity, price, total
		FROM cotizacion_lines WHERE cotizacion_id = ANY($1::uuid[]) ORDER BY cotizacion_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list cotizacion lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var docID string
		var itemID *string
		var l entity.CotizacionLine
		if err := rows.Scan(&docID, &itemID, &l.Name, &l.Quantity, &l.Price, &l.Total); err != nil {
			return fmt.Errorf("scan cotizacion line: %w", err)
		}
		l.ItemID = derefString(itemID)
		if d := byID[docID]; d != nil {
			d.Lines = append(d.Lines, l)
		}
	}
	return rows.Err()
}

// ExistsByOriginalID indica si algún documento (del tipo dado, o cualquiera) referencia originalID.
func (r *CotizacionRepo) ExistsByOriginalID(ctx context.Context, originalID, tipo string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM cotizaciones WHERE original_id = $1 AND ($2 = '' OR tipo = $2))`,
		originalID, tipo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by original id: %w", err)
	}
	return exists, nil
}

// SetPDFURL guarda la ubicación del PDF.
func (r *CotizacionRepo) SetPDFURL(ctx context.Context, id, url string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE cotizaciones SET pdf_url = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("set pdf url: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkCancelled marca la nota como anulada.
func (r *CotizacionRepo) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE cotizaciones SET cancelled_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("cancel cotizacion: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
