package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediflow/mediflow/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewMedicineRepoPG(pool *pgxpool.Pool) MedicineRepository {
	return &medicineRepoPG{pool: pool}
}

func (r *medicineRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medCols = `id, name, category, manufacturer, supplier, unit_price, cost_price,
	stock_quantity, reorder_level, expiry_date, description, created_at, updated_at`

func scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Manufacturer, &m.Supplier,
		&m.UnitPrice, &m.CostPrice, &m.StockQuantity, &m.ReorderLevel,
		&m.ExpiryDate, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medicines (id, name, category, manufacturer, supplier, unit_price,
			cost_price, stock_quantity, reorder_level, expiry_date, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		m.ID, m.Name, m.Category, m.Manufacturer, m.Supplier, m.UnitPrice,
		m.CostPrice, m.StockQuantity, m.ReorderLevel, m.ExpiryDate, m.Description)
	return err
}

func (r *medicineRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return scanMedicine(r.conn(ctx).QueryRow(ctx, `SELECT `+medCols+` FROM medicines WHERE id = $1`, id))
}

func (r *medicineRepoPG) GetByName(ctx context.Context, name string) (*Medicine, error) {
	return scanMedicine(r.conn(ctx).QueryRow(ctx, `SELECT `+medCols+` FROM medicines WHERE name = $1`, name))
}

func (r *medicineRepoPG) Update(ctx context.Context, m *Medicine) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicines SET name=$2, category=$3, manufacturer=$4, supplier=$5,
			unit_price=$6, cost_price=$7, stock_quantity=$8, reorder_level=$9,
			expiry_date=$10, description=$11, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Category, m.Manufacturer, m.Supplier, m.UnitPrice,
		m.CostPrice, m.StockQuantity, m.ReorderLevel, m.ExpiryDate, m.Description)
	return err
}

func (r *medicineRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	return err
}

func (r *medicineRepoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Medicine, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medicines`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := `SELECT ` + medCols + ` FROM medicines` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

// AdjustStock applies a delta atomically and rejects adjustments that would
// take the quantity below zero.
func (r *medicineRepoPG) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Medicine, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		UPDATE medicines SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING `+medCols, id, delta)
	m, err := scanMedicine(row)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("insufficient stock or medicine not found")
	}
	return m, err
}

func (r *medicineRepoPG) ListLowStock(ctx context.Context) ([]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medCols+` FROM medicines
		WHERE stock_quantity <= reorder_level
		ORDER BY stock_quantity ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *medicineRepoPG) ListExpiring(ctx context.Context, days int) ([]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medCols+` FROM medicines
		WHERE expiry_date IS NOT NULL
		  AND expiry_date <= NOW() + make_interval(days => $1)
		ORDER BY expiry_date ASC`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
