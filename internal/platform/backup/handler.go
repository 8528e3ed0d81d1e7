package backup

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediflow/mediflow/internal/platform/auth"
)

// Handler exposes backup operations over HTTP.
type Handler struct {
	manager *Manager
}

// NewHandler creates a new backup handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// RegisterRoutes registers the backup API routes. Backups are admin-only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	group := api.Group("/backups", auth.RequireRole("admin"))
	group.POST("", h.Create)
	group.GET("", h.List)
}

type createRequest struct {
	Name string `json:"name"`
}

// Create runs a full export and returns the new archive.
func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	archive, err := h.manager.CreateFull(c.Request().Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAlreadyExist):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "backup failed: "+err.Error())
		}
	}

	return c.JSON(http.StatusCreated, archive)
}

// List returns all archives on disk.
func (h *Handler) List(c echo.Context) error {
	archives, err := h.manager.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list backups")
	}
	return c.JSON(http.StatusOK, archives)
}
