package prescription

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

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const rxCols = `id, customer_id, customer_name, doctor_name, medicine_id, medicine_name,
	quantity, dosage, instructions, status, total_cost, prescribed_at, created_at, updated_at`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.CustomerID, &p.CustomerName, &p.DoctorName,
		&p.MedicineID, &p.MedicineName, &p.Quantity, &p.Dosage, &p.Instructions,
		&p.Status, &p.TotalCost, &p.PrescribedAt, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescriptions (id, customer_id, customer_name, doctor_name,
			medicine_id, medicine_name, quantity, dosage, instructions, status,
			total_cost, prescribed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.CustomerID, p.CustomerName, p.DoctorName, p.MedicineID,
		p.MedicineName, p.Quantity, p.Dosage, p.Instructions, p.Status,
		p.TotalCost, p.PrescribedAt)
	return err
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx, `SELECT `+rxCols+` FROM prescriptions WHERE id = $1`, id))
}

func (r *prescriptionRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE prescriptions SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prescription %s not found", id)
	}
	return nil
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	return err
}

func (r *prescriptionRepoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Prescription, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if filter.CustomerID != uuid.Nil {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prescriptions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := `SELECT ` + rxCols + ` FROM prescriptions` + where +
		fmt.Sprintf(` ORDER BY prescribed_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *prescriptionRepoPG) ActiveMedicineNames(ctx context.Context, customerID uuid.UUID) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT medicine_name FROM prescriptions
		WHERE customer_id = $1 AND status IN ($2, $3)
		ORDER BY prescribed_at`, customerID, StatusPending, StatusPartiallyFilled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
