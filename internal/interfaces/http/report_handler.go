package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermarket-pos/internal/application/dto"
	"github.com/jhoicas/supermarket-pos/internal/application/reports"
)

// ReportHandler maneja dashboard y reportes de ventas (protegido).
type ReportHandler struct {
	dashboardUC *reports.DashboardUseCase
	salesUC     *reports.SalesReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboardUC *reports.DashboardUseCase, salesUC *reports.SalesReportUseCase) *ReportHandler {
	return &ReportHandler{dashboardUC: dashboardUC, salesUC: salesUC}
}

// Dashboard devuelve el resumen operativo del día y del mes en curso.
// GET /api/reports/dashboard
//
// Respuesta: DashboardStatsDTO (total_products, low_stock_count,
// out_of_stock_count, todays_sales, todays_transactions, monthly_sales,
// monthly_transactions). Sin parámetros; las fechas las calcula el servidor.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardUC.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// SalesReport godoc
// @Summary      Reporte de ventas por rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start_date"), time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido (YYYY-MM-DD)"})
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end_date"), time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido (YYYY-MM-DD)"})
	}

	// end_date inclusive para el cliente; internamente [start, end).
	out, err := h.salesUC.GetSalesReport(c.Context(), start, end.AddDate(0, 0, 1))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyReport ventas de un día. Sin parámetro date usa el día actual.
// GET /api/reports/daily?date=YYYY-MM-DD
func (h *ReportHandler) DailyReport(c *fiber.Ctx) error {
	date := time.Now()
	if s := c.Query("date"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválido (YYYY-MM-DD)"})
		}
		date = parsed
	}
	out, err := h.salesUC.DailyReport(c.Context(), date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthlyReport ventas de un mes. Sin parámetros usa el mes actual.
// GET /api/reports/monthly?year=2026&month=8
func (h *ReportHandler) MonthlyReport(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe estar entre 1 y 12"})
	}
	out, err := h.salesUC.MonthlyReport(c.Context(), year, time.Month(month))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
