package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/application/sales"
	"github.com/jhoicas/gestor-tienda/internal/domain/sale"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// SaleRegisterInput argumentos de `sale register`.
type SaleRegisterInput struct {
	Date     string
	Items    []string // "productID:cantidad"
	UserID   int64
	Discount string
}

// RunSaleRegister registra una venta y muestra su ID y total.
func RunSaleRegister(ctx context.Context, uc *sales.RegisterSaleUseCase, log *logger.Logger, in SaleRegisterInput, format string, io IOTuple) error {
	items, err := ParseItems(in.Items)
	if err != nil {
		return err
	}
	discount := decimal.Zero
	if strings.TrimSpace(in.Discount) != "" {
		discount, err = decimal.NewFromString(strings.TrimSpace(in.Discount))
		if err != nil {
			return fmt.Errorf("descuento %q inválido", in.Discount)
		}
	}
	input := sales.RegisterSaleInput{Date: in.Date, Items: items, Discount: discount}
	if in.UserID > 0 {
		input.ActorID = &in.UserID
	}

	s, err := uc.Register(ctx, input)
	if err != nil {
		return err
	}
	log.Debug().Int64("sale_id", s.ID).Msg("venta registrada desde CLI")
	if format == FormatJSON {
		return outputJSON(dto.RegisterSaleResponse{ID: s.ID, Total: s.Total}, io.Writer)
	}
	_, _ = fmt.Fprintf(io.Writer, "Venta registrada: #%d total %s\n", s.ID, s.Total.StringFixed(2))
	return nil
}

// ParseItems convierte "id:cantidad" en líneas de venta. Solo valida la forma;
// las reglas de negocio las aplica el registro.
func ParseItems(raw []string) ([]sale.LineInput, error) {
	items := make([]sale.LineInput, 0, len(raw))
	for _, r := range raw {
		id, qty, ok := strings.Cut(strings.TrimSpace(r), ":")
		if !ok {
			return nil, fmt.Errorf("línea %q inválida: use productID:cantidad", r)
		}
		pid, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("línea %q: ID de producto inválido", r)
		}
		q, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("línea %q: cantidad inválida", r)
		}
		items = append(items, sale.LineInput{ProductID: pid, Quantity: q})
	}
	return items, nil
}

// RunSaleList imprime el historial en orden de ID.
func RunSaleList(ctx context.Context, uc *sales.HistoryUseCase, format string, io IOTuple) error {
	if format == FormatJSON {
		list, err := uc.ListSales(ctx)
		if err != nil {
			return fmt.Errorf("historial: %w", err)
		}
		out := make([]dto.SaleSummaryResponse, 0, len(list))
		for _, s := range list {
			out = append(out, dto.SaleSummaryResponse{
				ID:       s.ID,
				Date:     s.Date,
				Items:    s.Items,
				Discount: s.Discount,
				Total:    s.Total,
				UserID:   s.UserID,
				UserName: s.UserName,
			})
		}
		return outputJSON(out, io.Writer)
	}
	n := 0
	for s, err := range uc.Sales(ctx) {
		if err != nil {
			return fmt.Errorf("historial: %w", err)
		}
		n++
		_, _ = fmt.Fprintf(io.Writer, "#%d  %s  %s  total %s", s.ID, s.Date, s.UserName, s.Total.StringFixed(2))
		if !s.Discount.IsZero() {
			_, _ = fmt.Fprintf(io.Writer, " (descuento %s%%)", s.Discount.String())
		}
		_, _ = fmt.Fprintln(io.Writer)
		for _, item := range s.Items {
			_, _ = fmt.Fprintf(io.Writer, "    - %s\n", item)
		}
	}
	if n == 0 {
		_, _ = fmt.Fprintln(io.Writer, "No hay ventas registradas.")
	}
	return nil
}

// RunSaleClear vacía el historial. Sin yes pide confirmación por Reader.
func RunSaleClear(ctx context.Context, uc *sales.HistoryUseCase, yes bool, io IOTuple) error {
	if !yes && !confirm(io, "¿Borrar todo el historial de ventas? El stock no se devuelve.") {
		_, _ = fmt.Fprintln(io.Writer, "Cancelado.")
		return nil
	}
	if err := uc.DeleteAllSales(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(io.Writer, "Historial de ventas borrado.")
	return nil
}

// RunSaleUndo anula una venta devolviendo su stock.
func RunSaleUndo(ctx context.Context, uc *sales.UndoSaleUseCase, id int64, io IOTuple) error {
	if err := uc.UndoSale(ctx, id); err != nil {
		return fmt.Errorf("anular venta %d: %w", id, err)
	}
	_, _ = fmt.Fprintf(io.Writer, "Venta #%d anulada; stock devuelto\n", id)
	return nil
}

// RunSaleDelete elimina una venta del historial sin tocar el stock.
func RunSaleDelete(ctx context.Context, uc *sales.HistoryUseCase, id int64, io IOTuple) error {
	if err := uc.DeleteSale(ctx, id); err != nil {
		return fmt.Errorf("eliminar venta %d: %w", id, err)
	}
	_, _ = fmt.Fprintf(io.Writer, "Venta #%d eliminada\n", id)
	return nil
}

// RunSaleCheck indica si hay stock para vender qty unidades del producto.
func RunSaleCheck(ctx context.Context, uc *sales.RegisterSaleUseCase, productID int64, qty int, format string, io IOTuple) error {
	ok, err := uc.ValidateStockForSale(ctx, productID, qty)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		return outputJSON(dto.StockCheckResponse{ProductID: productID, Quantity: qty, Available: ok}, io.Writer)
	}
	if ok {
		_, _ = fmt.Fprintf(io.Writer, "Hay stock para %d unidad(es) del producto #%d\n", qty, productID)
	} else {
		_, _ = fmt.Fprintf(io.Writer, "No hay stock para %d unidad(es) del producto #%d\n", qty, productID)
	}
	return nil
}
