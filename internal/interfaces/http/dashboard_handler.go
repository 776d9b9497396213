package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-recetas/internal/application/analytics"
	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.WeeklySalesUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.WeeklySalesUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// WeeklySales godoc
// @Summary      Ventas por semana
// @Description  Unidades vendidas agrupadas por semana (lunes UTC), en orden ascendente.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to          query  string  false  "Hasta, exclusivo (YYYY-MM-DD o RFC3339)"
// @Success      200  {object}  dto.WeeklySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/weekly-sales [get]
func (h *DashboardHandler) WeeklySales(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	from, ok := parseDateQuery(c.Query("from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, ok := parseDateQuery(c.Query("to"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	out, err := h.uc.WeeklySales(c.Context(), ownerID, c.Query("product_id"), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery acepta vacío (sin filtro), YYYY-MM-DD o RFC3339.
func parseDateQuery(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}
