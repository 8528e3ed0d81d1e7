package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/mediflow/mediflow/internal/platform/auth"
)

// MeasureDefinition defines a reporting measure with its SQL query.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"sql"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

// Dashboard summarizes pharmacy operations in a single response.
type Dashboard struct {
	GeneratedAt time.Time `json:"generated_at"`

	MedicineCount  int     `json:"medicine_count"`
	InventoryValue float64 `json:"inventory_value"`
	LowStockCount  int     `json:"low_stock_count"`
	OutOfStock     int     `json:"out_of_stock_count"`
	ExpiringSoon   int     `json:"expiring_soon_count"`

	PrescriptionsByStatus map[string]int `json:"prescriptions_by_status"`
	CompletionRate        float64        `json:"completion_rate"`
	Revenue               float64        `json:"revenue"`
	AvgPrescriptionValue  float64        `json:"avg_prescription_value"`

	CustomerCount int `json:"customer_count"`
	RemindersDue  int `json:"reminders_due"`
}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "inventory-summary",
		Name:        "Inventory Summary",
		Description: "Medicine count, total stock value and low stock count",
		SQL: `SELECT COUNT(*) AS medicines,
			COALESCE(SUM(unit_price * stock_quantity), 0) AS inventory_value,
			COALESCE(SUM(CASE WHEN stock_quantity <= reorder_level THEN 1 ELSE 0 END), 0) AS low_stock,
			COALESCE(SUM(CASE WHEN stock_quantity = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock
			FROM medicines`,
		Parameters: []string{},
	},
	{
		ID:          "prescriptions-by-status",
		Name:        "Prescriptions by Status",
		Description: "Number of prescriptions grouped by status",
		SQL:         `SELECT status, COUNT(*) AS total FROM prescriptions GROUP BY status ORDER BY total DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "expiring-medicines",
		Name:        "Expiring Medicines",
		Description: "Medicines with an expiry date within the next 30 days",
		SQL: `SELECT name, stock_quantity, expiry_date FROM medicines
			WHERE expiry_date IS NOT NULL AND expiry_date <= NOW() + INTERVAL '30 days'
			ORDER BY expiry_date`,
		Parameters: []string{},
	},
	{
		ID:          "revenue-by-medicine",
		Name:        "Revenue by Medicine",
		Description: "Completed prescription revenue grouped by medicine",
		SQL: `SELECT medicine_name, COUNT(*) AS prescriptions, COALESCE(SUM(total_cost), 0) AS revenue
			FROM prescriptions WHERE status = 'Completed'
			GROUP BY medicine_name ORDER BY revenue DESC`,
		Parameters: []string{},
	},
	{
		ID:          "reminders-due",
		Name:        "Refill Reminders Due",
		Description: "Active refill reminders due within the next 7 days",
		SQL: `SELECT customer_name, medicine_name, refill_due_date, reminder_sent FROM refill_reminders
			WHERE status = 'Active' AND refill_due_date <= NOW() + INTERVAL '7 days'
			ORDER BY refill_due_date`,
		Parameters: []string{},
	},
}

// Handler provides HTTP handlers for the reporting API.
type Handler struct {
	pool *pgxpool.Pool
}

// NewHandler creates a new reporting handler.
func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// RegisterRoutes registers the reporting API routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	reportGroup := api.Group("/reports", auth.RequireRole("admin", "pharmacist", "technician"))
	reportGroup.GET("/dashboard", h.GetDashboard)
	reportGroup.GET("/measures", h.ListMeasures)
	reportGroup.GET("/measures/:id/evaluate", h.EvaluateMeasure)
}

// GetDashboard aggregates the operational summary in a single query round trip per section.
func (h *Handler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dash := Dashboard{
		GeneratedAt:           time.Now(),
		PrescriptionsByStatus: map[string]int{},
	}

	err := h.pool.QueryRow(ctx, `SELECT COUNT(*),
		COALESCE(SUM(unit_price * stock_quantity), 0),
		COALESCE(SUM(CASE WHEN stock_quantity <= reorder_level THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN stock_quantity = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN expiry_date IS NOT NULL AND expiry_date <= NOW() + INTERVAL '30 days' THEN 1 ELSE 0 END), 0)
		FROM medicines`).Scan(
		&dash.MedicineCount, &dash.InventoryValue, &dash.LowStockCount, &dash.OutOfStock, &dash.ExpiringSoon)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("inventory summary failed: %v", err))
	}

	rows, err := h.pool.Query(ctx, `SELECT status, COUNT(*) FROM prescriptions GROUP BY status`)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("prescription summary failed: %v", err))
	}
	total := 0
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("prescription summary failed: %v", err))
		}
		dash.PrescriptionsByStatus[status] = count
		total += count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("prescription summary failed: %v", err))
	}
	if total > 0 {
		dash.CompletionRate = float64(dash.PrescriptionsByStatus["Completed"]) / float64(total)
	}

	err = h.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_cost), 0), COALESCE(AVG(total_cost), 0)
		FROM prescriptions WHERE status = 'Completed'`).Scan(&dash.Revenue, &dash.AvgPrescriptionValue)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("revenue summary failed: %v", err))
	}

	err = h.pool.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM customers),
		(SELECT COUNT(*) FROM refill_reminders WHERE status = 'Active' AND refill_due_date <= NOW() + INTERVAL '7 days')`).
		Scan(&dash.CustomerCount, &dash.RemindersDue)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("customer summary failed: %v", err))
	}

	return c.JSON(http.StatusOK, dash)
}

// ListMeasures returns all available measure definitions.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure executes a measure's SQL and returns the results.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measure := FindMeasure(c.Param("id"))
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	for _, p := range measure.Parameters {
		if v := c.QueryParam(p); v != "" {
			params[p] = v
		}
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}

	report := MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now(),
		Results:     results,
		Parameters:  params,
	}

	return c.JSON(http.StatusOK, report)
}

// executeSQL runs a SQL query and returns results as a slice of maps.
func (h *Handler) executeSQL(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}

	if results == nil {
		results = []map[string]interface{}{}
	}

	return results, nil
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}
