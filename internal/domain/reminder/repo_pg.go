package reminder

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

type reminderRepoPG struct{ pool *pgxpool.Pool }

func NewReminderRepoPG(pool *pgxpool.Pool) ReminderRepository {
	return &reminderRepoPG{pool: pool}
}

func (r *reminderRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const remCols = `id, customer_name, medicine_name, last_prescription_date, refill_due_date,
	dosage, quantity_per_refill, reminder_sent, status, notes, created_at, updated_at`

func scanReminder(row pgx.Row) (*RefillReminder, error) {
	var rem RefillReminder
	err := row.Scan(&rem.ID, &rem.CustomerName, &rem.MedicineName,
		&rem.LastPrescriptionDate, &rem.RefillDueDate, &rem.Dosage,
		&rem.QuantityPerRefill, &rem.ReminderSent, &rem.Status, &rem.Notes,
		&rem.CreatedAt, &rem.UpdatedAt)
	return &rem, err
}

func (r *reminderRepoPG) Create(ctx context.Context, rem *RefillReminder) error {
	rem.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO refill_reminders (id, customer_name, medicine_name,
			last_prescription_date, refill_due_date, dosage, quantity_per_refill,
			reminder_sent, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rem.ID, rem.CustomerName, rem.MedicineName, rem.LastPrescriptionDate,
		rem.RefillDueDate, rem.Dosage, rem.QuantityPerRefill, rem.ReminderSent,
		rem.Status, rem.Notes)
	return err
}

func (r *reminderRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*RefillReminder, error) {
	return scanReminder(r.conn(ctx).QueryRow(ctx, `SELECT `+remCols+` FROM refill_reminders WHERE id = $1`, id))
}

func (r *reminderRepoPG) Update(ctx context.Context, rem *RefillReminder) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE refill_reminders SET customer_name=$2, medicine_name=$3,
			last_prescription_date=$4, refill_due_date=$5, dosage=$6,
			quantity_per_refill=$7, reminder_sent=$8, status=$9, notes=$10,
			updated_at=NOW()
		WHERE id = $1`,
		rem.ID, rem.CustomerName, rem.MedicineName, rem.LastPrescriptionDate,
		rem.RefillDueDate, rem.Dosage, rem.QuantityPerRefill, rem.ReminderSent,
		rem.Status, rem.Notes)
	return err
}

func (r *reminderRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM refill_reminders WHERE id = $1`, id)
	return err
}

func (r *reminderRepoPG) List(ctx context.Context, status string, limit, offset int) ([]*RefillReminder, int, error) {
	where := ``
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		where = ` WHERE status = $1`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM refill_reminders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := `SELECT ` + remCols + ` FROM refill_reminders` + where +
		fmt.Sprintf(` ORDER BY refill_due_date ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*RefillReminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rem)
	}
	return items, total, rows.Err()
}

func (r *reminderRepoPG) ListDue(ctx context.Context, daysAhead int) ([]*RefillReminder, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+remCols+` FROM refill_reminders
		WHERE status = $1 AND refill_due_date <= NOW() + make_interval(days => $2)
		ORDER BY refill_due_date ASC`, StatusActive, daysAhead)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*RefillReminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rem)
	}
	return items, rows.Err()
}

func (r *reminderRepoPG) MarkSent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE refill_reminders SET reminder_sent = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reminder %s not found", id)
	}
	return nil
}
