package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/application/usecase"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// RunProductAdd crea un producto y muestra su ID.
func RunProductAdd(ctx context.Context, uc *usecase.ProductUseCase, log *logger.Logger, in dto.CreateProductRequest, format string, io IOTuple) error {
	p, err := uc.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("crear producto: %w", err)
	}
	log.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("producto creado")
	if format == FormatJSON {
		return outputJSON(p, io.Writer)
	}
	_, _ = fmt.Fprintf(io.Writer, "Producto creado: #%d %s (%d u)\n", p.ID, p.Name, p.Quantity)
	return nil
}

// RunProductList lista el catálogo; lowOnly deja solo los productos en o bajo su stock mínimo.
func RunProductList(ctx context.Context, uc *usecase.ProductUseCase, lowOnly bool, format string, io IOTuple) error {
	list := uc.List
	if lowOnly {
		list = uc.LowStock
	}
	out, err := list(ctx)
	if err != nil {
		return fmt.Errorf("listar productos: %w", err)
	}
	if format == FormatJSON {
		return outputJSON(out, io.Writer)
	}
	if out.Total == 0 {
		_, _ = fmt.Fprintln(io.Writer, "No hay productos.")
		return nil
	}
	tw := tabwriter.NewWriter(io.Writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNOMBRE\tCATEGORÍA\tPRECIO\tSTOCK\tMÍNIMO\t")
	for _, p := range out.Items {
		flag := ""
		if p.LowStock {
			flag = "bajo"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Quantity, p.MinStock, flag)
	}
	return tw.Flush()
}

// RunProductStock aplica un movimiento de stock (IN, OUT o ADJUSTMENT) y muestra el antes y el después.
func RunProductStock(ctx context.Context, uc *inventory.RegisterMovementUseCase, in inventory.MovementInputDTO, format string, io IOTuple) error {
	mov, err := uc.RegisterMovement(ctx, in)
	if err != nil {
		return fmt.Errorf("movimiento de stock: %w", err)
	}
	if format == FormatJSON {
		return outputJSON(dto.StockMovementResponse{
			ProductID: mov.ProductID,
			Type:      mov.Type,
			Quantity:  mov.Quantity,
			Before:    mov.Before,
			After:     mov.After,
		}, io.Writer)
	}
	_, _ = fmt.Fprintf(io.Writer, "Producto #%d: %d -> %d (%s %d)\n", mov.ProductID, mov.Before, mov.After, mov.Type, mov.Quantity)
	return nil
}

// RunProductDelete elimina un producto sin ventas.
func RunProductDelete(ctx context.Context, uc *usecase.ProductUseCase, log *logger.Logger, id int64, io IOTuple) error {
	if err := uc.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar producto %d: %w", id, err)
	}
	log.Info().Int64("product_id", id).Msg("producto eliminado")
	_, _ = fmt.Fprintf(io.Writer, "Producto #%d eliminado\n", id)
	return nil
}
