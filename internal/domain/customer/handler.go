package customer

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mediflow/mediflow/internal/platform/auth"
	"github.com/mediflow/mediflow/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "pharmacist", "technician"))
	read.GET("/customers", h.ListCustomers)
	read.GET("/customers/:id", h.GetCustomer)

	write := api.Group("", auth.RequireRole("admin", "pharmacist"))
	write.POST("/customers", h.CreateCustomer)
	write.PUT("/customers/:id", h.UpdateCustomer)
	write.DELETE("/customers/:id", h.DeleteCustomer)
}

func (h *Handler) CreateCustomer(c echo.Context) error {
	var cust Customer
	if err := c.Bind(&cust); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCustomer(c.Request().Context(), &cust); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cust)
}

func (h *Handler) GetCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cust, err := h.svc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *Handler) ListCustomers(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCustomers(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cust Customer
	if err := c.Bind(&cust); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cust.ID = id
	if err := h.svc.UpdateCustomer(c.Request().Context(), &cust); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *Handler) DeleteCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
