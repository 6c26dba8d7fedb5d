package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermarket-pos/internal/application/billing"
	"github.com/jhoicas/supermarket-pos/internal/application/dto"
)

// BillingHandler maneja las peticiones HTTP de facturación (protegido).
type BillingHandler struct {
	uc    *billing.CreateBillUseCase
	pdfUC *billing.PDFUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.CreateBillUseCase, pdfUC *billing.PDFUseCase) *BillingHandler {
	return &BillingHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Confirmar venta (crear factura)
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "Carrito: items + tax_rate + discount"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateBill(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetBillByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByNumber devuelve una factura por su número legible.
// GET /api/bills/number/:number
func (h *BillingHandler) GetByNumber(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "number es requerido"})
	}
	out, err := h.uc.GetBillByNumber(c.Context(), number)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas (recientes o por rango de fechas)
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (con end_date filtra por rango)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        limit       query  int     false  "Máximo de resultados (default 50)"
// @Param        offset      query  int     false  "Desplazamiento (default 0)"
// @Success      200  {object}  dto.BillListResponse
// @Router       /api/bills [get]
func (h *BillingHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" && endStr == "" {
		out, err := h.uc.ListRecentBills(c.Context(), limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido (YYYY-MM-DD)"})
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido (YYYY-MM-DD)"})
	}

	// end_date es inclusive para el cliente; el rango interno es [start, end).
	out, err := h.uc.ListBillsByDateRange(c.Context(), start, end.AddDate(0, 0, 1), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF descarga el recibo PDF de una factura.
// GET /api/bills/:id/pdf
func (h *BillingHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadBillPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
