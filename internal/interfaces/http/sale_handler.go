package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/sale"
)

// SaleHandler registro, historial y reportes de ventas (protegido).
type SaleHandler struct {
	register *sales.RegisterSaleUseCase
	history  *sales.HistoryUseCase
	undo     *sales.UndoSaleUseCase
	report   *sales.ReportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	register *sales.RegisterSaleUseCase,
	history *sales.HistoryUseCase,
	undo *sales.UndoSaleUseCase,
	report *sales.ReportUseCase,
) *SaleHandler {
	return &SaleHandler{register: register, history: history, undo: undo, report: report}
}

// Register godoc
// @Summary      Registrar venta
// @Description  Valida, descuenta stock y persiste la venta como una sola operación.
// @Description  Si user_id se omite, el responsable es el usuario autenticado.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "date (DD/MM/YYYY), items, discount"
// @Success      201   {object}  dto.RegisterSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	actor := in.UserID
	if actor == nil {
		if id := GetUserID(c); id > 0 {
			actor = &id
		}
	}
	items := make([]sale.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sale.LineInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	s, err := h.register.Register(c.UserContext(), sales.RegisterSaleInput{
		Date:     in.Date,
		Items:    items,
		ActorID:  actor,
		Discount: in.Discount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterSaleResponse{ID: s.ID, Total: s.Total})
}

// List godoc
// @Summary      Historial de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SaleListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out := dto.SaleListResponse{Items: []dto.SaleSummaryResponse{}}
	for s, err := range h.history.Sales(c.UserContext()) {
		if err != nil {
			return writeError(c, err)
		}
		out.Items = append(out.Items, toSaleSummaryResponse(s))
	}
	out.Total = len(out.Items)
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	s, err := h.history.GetSale(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSaleSummaryResponse(*s))
}

// Delete godoc
// @Summary      Eliminar venta del historial
// @Description  Borra el registro sin devolver stock. Para devolver stock usar /undo.
// @Tags         sales
// @Security     Bearer
// @Param        id   path  int  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.history.DeleteSale(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAll godoc
// @Summary      Vaciar el historial de ventas
// @Description  Solo admin. El stock no se modifica y los IDs no se reutilizan.
// @Tags         sales
// @Security     Bearer
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sales [delete]
func (h *SaleHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.history.DeleteAllSales(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Undo godoc
// @Summary      Anular venta
// @Description  Devuelve el stock de cada línea y elimina la venta.
// @Tags         sales
// @Security     Bearer
// @Param        id   path  int  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/undo [post]
func (h *SaleHandler) Undo(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.undo.UndoSale(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StockCheck godoc
// @Summary      Verificar stock para una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int  true  "ID del producto"
// @Param        quantity    query  int  true  "Cantidad a vender"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/stock-check [get]
func (h *SaleHandler) StockCheck(c *fiber.Ctx) error {
	productID := int64(c.QueryInt("product_id", 0))
	qty := c.QueryInt("quantity", 0)
	if productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "product_id debe ser un entero positivo"})
	}
	ok, err := h.register.ValidateStockForSale(c.UserContext(), productID, qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockCheckResponse{ProductID: productID, Quantity: qty, Available: ok})
}

// ReportPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/report/pdf [get]
func (h *SaleHandler) ReportPDF(c *fiber.Ctx) error {
	b, err := h.report.GeneratePDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, reportDisposition("pdf"))
	return c.Send(b)
}

// ReportXML godoc
// @Summary      Historial de ventas en XML
// @Tags         sales
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/report/xml [get]
func (h *SaleHandler) ReportXML(c *fiber.Ctx) error {
	b, err := h.report.GenerateXML(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, reportDisposition("xml"))
	return c.Send(b)
}

func reportDisposition(ext string) string {
	return fmt.Sprintf(`attachment; filename="ventas-%s.%s"`, time.Now().Format("20060102"), ext)
}

func toSaleSummaryResponse(s entity.SaleSummary) dto.SaleSummaryResponse {
	return dto.SaleSummaryResponse{
		ID:       s.ID,
		Date:     s.Date,
		Items:    s.Items,
		Discount: s.Discount,
		Total:    s.Total,
		UserID:   s.UserID,
		UserName: s.UserName,
	}
}
