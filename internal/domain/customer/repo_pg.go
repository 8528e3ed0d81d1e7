package customer

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

type customerRepoPG struct{ pool *pgxpool.Pool }

func NewCustomerRepoPG(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepoPG{pool: pool}
}

func (r *customerRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const custCols = `id, name, date_of_birth, gender, blood_type, phone, email, address,
	allergies, medical_conditions, emergency_contact_name, emergency_contact_phone,
	created_at, updated_at`

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.DateOfBirth, &c.Gender, &c.BloodType,
		&c.Phone, &c.Email, &c.Address, &c.Allergies, &c.MedicalConditions,
		&c.EmergencyContactName, &c.EmergencyContactPhone, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *customerRepoPG) Create(ctx context.Context, c *Customer) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO customers (id, name, date_of_birth, gender, blood_type, phone,
			email, address, allergies, medical_conditions,
			emergency_contact_name, emergency_contact_phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		c.ID, c.Name, c.DateOfBirth, c.Gender, c.BloodType, c.Phone,
		c.Email, c.Address, c.Allergies, c.MedicalConditions,
		c.EmergencyContactName, c.EmergencyContactPhone)
	return err
}

func (r *customerRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return scanCustomer(r.conn(ctx).QueryRow(ctx, `SELECT `+custCols+` FROM customers WHERE id = $1`, id))
}

func (r *customerRepoPG) Update(ctx context.Context, c *Customer) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE customers SET name=$2, date_of_birth=$3, gender=$4, blood_type=$5,
			phone=$6, email=$7, address=$8, allergies=$9, medical_conditions=$10,
			emergency_contact_name=$11, emergency_contact_phone=$12, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.DateOfBirth, c.Gender, c.BloodType, c.Phone, c.Email,
		c.Address, c.Allergies, c.MedicalConditions,
		c.EmergencyContactName, c.EmergencyContactPhone)
	return err
}

func (r *customerRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}

func (r *customerRepoPG) List(ctx context.Context, query string, limit, offset int) ([]*Customer, int, error) {
	where := ``
	args := []interface{}{}
	if query != "" {
		args = append(args, "%"+query+"%")
		where = ` WHERE name ILIKE $1 OR phone ILIKE $1`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := `SELECT ` + custCols + ` FROM customers` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}
