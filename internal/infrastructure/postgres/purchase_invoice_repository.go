package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

// PurchaseInvoiceRepo facturas de compra sobre PostgreSQL.
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el repositorio de facturas de compra.
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

// Create inserta la factura y sus líneas.
func (r *PurchaseInvoiceRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO facturas_compra (id, supplier, supplier_rut, role, address, document_type, document_number, total, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.Supplier, inv.SupplierRUT, inv.Role, inv.Address, inv.DocumentType, inv.DocumentNumber,
		inv.Total, inv.CreatedBy, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert factura compra: %w", err)
	}
	for i, l := range inv.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO factura_compra_lines (factura_id, position, item_id, name, code, quantity, unit_price, cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			inv.ID, i, nullString(l.ItemID), l.Name, l.Code, l.Quantity, l.UnitPrice, l.Cost,
		)
		if err != nil {
			return fmt.Errorf("insert factura compra line: %w", err)
		}
	}
	return nil
}

const purchaseInvoiceColumns = `id, supplier, supplier_rut, role, address, document_type, document_number, total, created_by, created_at`

func scanPurchaseInvoice(row pgx.Row) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	err := row.Scan(&inv.ID, &inv.Supplier, &inv.SupplierRUT, &inv.Role, &inv.Address, &inv.DocumentType,
		&inv.DocumentNumber, &inv.Total, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByID obtiene una factura con sus líneas.
func (r *PurchaseInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	inv, err := scanPurchaseInvoice(r.q.QueryRow(ctx, `SELECT `+purchaseInvoiceColumns+` FROM facturas_compra WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura compra: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.PurchaseInvoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// List lista facturas del rango [From, To) (sin rango si From es cero) con paginación y total.
func (r *PurchaseInvoiceRepo) List(ctx context.Context, f repository.PurchaseInvoiceFilter) ([]*entity.PurchaseInvoice, int, error) {
	where := `TRUE`
	args := []any{}
	if !f.From.IsZero() {
		where = `created_at >= $1 AND created_at < $2`
		args = append(args, f.From, f.To)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM facturas_compra WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count facturas compra: %w", err)
	}

	n := len(args)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, fmt.Sprintf(`SELECT %s FROM facturas_compra WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		purchaseInvoiceColumns, where, n+1, n+2), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list facturas compra: %w", err)
	}
	var list []*entity.PurchaseInvoice
	for rows.Next() {
		inv, err := scanPurchaseInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan factura compra: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list facturas compra: %w", err)
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PurchaseInvoiceRepo) loadLines(ctx context.Context, list []*entity.PurchaseInvoice) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.PurchaseInvoice, len(list))
	for i, inv := range list {
		ids[i] = inv.ID
		byID[inv.ID] = inv
	}
	rows, err := r.q.Query(ctx, `
		SELECT factura_id, item_id, name, code, quantity, unit_price, cost
		FROM factura_compra_lines WHERE factura_id = ANY($1::uuid[]) ORDER BY factura_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list factura compra lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var invID string
		var itemID *string
		var l entity.PurchaseInvoiceLine
		if err := rows.Scan(&invID, &itemID, &l.Name, &l.Code, &l.Quantity, &l.UnitPrice, &l.Cost); err != nil {
			return fmt.Errorf("scan factura compra line: %w", err)
		}
		l.ItemID = derefString(itemID)
		if inv := byID[invID]; inv != nil {
			inv.Lines = append(inv.Lines, l)
		}
	}
	return rows.Err()
}
