package safety

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mediflow/mediflow/internal/platform/auth"
)

type Handler struct {
	svc      *Service
	profiles ProfileSource
}

// NewHandler creates the safety HTTP handler. profiles may be nil when no
// customer directory is wired; checks then require an inline profile.
func NewHandler(svc *Service, profiles ProfileSource) *Handler {
	return &Handler{svc: svc, profiles: profiles}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "pharmacist", "technician"))
	readGroup.POST("/safety-checks", h.RunCheck)
	readGroup.GET("/safety-rules", h.GetRules)

	writeGroup := api.Group("", auth.RequireRole("admin", "pharmacist"))
	writeGroup.PUT("/safety-rules", h.ReplaceRules)
	writeGroup.POST("/safety-rules/reload", h.ReloadRules)
}

// CheckRequest is the safety-check payload. Either customer_id or the
// inline profile fields supply patient context; without both, only the
// pairwise interaction pass can fire.
type CheckRequest struct {
	Medicines  []string   `json:"medicines"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Age        *int       `json:"age,omitempty"`
	Conditions []string   `json:"conditions,omitempty"`
	Allergies  []string   `json:"allergies,omitempty"`
}

func (h *Handler) RunCheck(c echo.Context) error {
	var req CheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Medicines) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "medicines is required")
	}

	profile := Profile{Age: req.Age, Conditions: req.Conditions, Allergies: req.Allergies}
	if req.CustomerID != nil && h.profiles != nil {
		stored, err := h.profiles.SafetyProfile(c.Request().Context(), *req.CustomerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		if profile.Age == nil {
			profile.Age = stored.Age
		}
		if len(profile.Conditions) == 0 {
			profile.Conditions = stored.Conditions
		}
		if len(profile.Allergies) == 0 {
			profile.Allergies = stored.Allergies
		}
	}

	return c.JSON(http.StatusOK, h.svc.Check(req.Medicines, profile))
}

func (h *Handler) GetRules(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Rules())
}

func (h *Handler) ReplaceRules(c echo.Context) error {
	rules := NewRuleSet()
	if err := c.Bind(rules); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ReplaceRules(rules); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rules)
}

func (h *Handler) ReloadRules(c echo.Context) error {
	if err := h.svc.Reload(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Rules())
}
