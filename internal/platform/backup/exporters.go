package backup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterDefaultExporters wires the standard pharmacy tables and the
// summary report against the database pool.
func RegisterDefaultExporters(m *Manager, pool *pgxpool.Pool) {
	m.RegisterExporter(Exporter{
		Name:   "medicines",
		Header: []string{"id", "name", "category", "manufacturer", "unit_price", "stock_quantity", "reorder_level", "expiry_date"},
		Rows: func(ctx context.Context) ([][]string, error) {
			return queryStrings(ctx, pool, `SELECT id::text, name,
				COALESCE(category, ''), COALESCE(manufacturer, ''),
				unit_price::text, stock_quantity::text, reorder_level::text,
				COALESCE(expiry_date::text, '')
				FROM medicines ORDER BY name`)
		},
	})
	m.RegisterExporter(Exporter{
		Name:   "customers",
		Header: []string{"id", "name", "phone", "email", "date_of_birth", "allergies", "medical_conditions"},
		Rows: func(ctx context.Context) ([][]string, error) {
			return queryStrings(ctx, pool, `SELECT id::text, name,
				COALESCE(phone, ''), COALESCE(email, ''),
				COALESCE(date_of_birth::text, ''), COALESCE(allergies, ''),
				COALESCE(medical_conditions, '')
				FROM customers ORDER BY name`)
		},
	})
	m.RegisterExporter(Exporter{
		Name:   "prescriptions",
		Header: []string{"id", "customer_name", "medicine_name", "quantity", "status", "total_cost", "prescribed_at"},
		Rows: func(ctx context.Context) ([][]string, error) {
			return queryStrings(ctx, pool, `SELECT id::text, customer_name,
				medicine_name, quantity::text, status, total_cost::text,
				prescribed_at::text
				FROM prescriptions ORDER BY prescribed_at`)
		},
	})

	m.RegisterSummary(func(ctx context.Context) ([]string, error) {
		lines := []string{"MediFlow backup report", ""}

		var medicines, lowStock, expiring int
		err := pool.QueryRow(ctx, `SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN stock_quantity <= reorder_level THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN expiry_date IS NOT NULL AND expiry_date <= NOW() + INTERVAL '30 days' THEN 1 ELSE 0 END), 0)
			FROM medicines`).Scan(&medicines, &lowStock, &expiring)
		if err != nil {
			return nil, err
		}
		lines = append(lines,
			"medicines: "+strconv.Itoa(medicines),
			"low stock: "+strconv.Itoa(lowStock),
			"expiring within 30 days: "+strconv.Itoa(expiring))

		var customers int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&customers); err != nil {
			return nil, err
		}
		lines = append(lines, "customers: "+strconv.Itoa(customers), "", "prescriptions by status:")

		rows, err := pool.Query(ctx, `SELECT status, COUNT(*) FROM prescriptions GROUP BY status ORDER BY status`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		for rows.Next() {
			var status string
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("  %s: %d", status, count))
		}
		return lines, rows.Err()
	})
}

func queryStrings(ctx context.Context, pool *pgxpool.Pool, sql string) ([][]string, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				continue
			}
			row[i] = fmt.Sprint(v)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
