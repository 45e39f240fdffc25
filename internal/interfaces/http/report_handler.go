package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
)

// ReportHandler maneja los reportes de ventas (protegido).
type ReportHandler struct {
	uc *sales.OrderUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *sales.OrderUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesSummary godoc
// @Summary      Resumen de ventas de un rango de fechas (solo órdenes completadas)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        end_date    query  string  true  "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.SalesSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida"})
	}
	end, err := parseDate(c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida"})
	}
	// Un rango de solo fechas incluye el día final completo.
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.SalesReport(GetActor(c), dto.DateRangeRequest{StartDate: start, EndDate: end}, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailySales godoc
// @Summary      Ventas completadas de los últimos N días, desglosadas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Cantidad de días hacia atrás"  default(7)
// @Success      200  {array}   dto.DailySalesEntry
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/daily-sales [get]
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	limit, offset := pageParams(c)
	out, err := h.uc.DailySales(GetActor(c), days, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
