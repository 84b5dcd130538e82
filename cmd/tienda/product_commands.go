package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/jhoicas/gestor-tienda/cmd/tienda/commands"
	"github.com/jhoicas/gestor-tienda/internal/app"
	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

func getProductCommands() *cli.Command {
	return &cli.Command{
		Name:  "product",
		Usage: "Catálogo de productos",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Crea un producto",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true, Usage: "Nombre (3 a 100 caracteres)"},
					&cli.StringFlag{Name: "price", Required: true, Usage: "Precio unitario, p. ej. 2500.50"},
					&cli.IntFlag{Name: "quantity", Value: 0, Usage: "Stock inicial (0..1000)"},
					&cli.StringFlag{Name: "category", Required: true, Usage: "Categoría"},
					&cli.IntFlag{Name: "min-stock", Value: 0, Usage: "Umbral de stock bajo"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					price, err := decimal.NewFromString(cmd.String("price"))
					if err != nil {
						return fmt.Errorf("precio %q inválido", cmd.String("price"))
					}
					in := dto.CreateProductRequest{
						Name:     cmd.String("name"),
						Price:    price,
						Quantity: int(cmd.Int("quantity")),
						Category: cmd.String("category"),
						MinStock: int(cmd.Int("min-stock")),
					}
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunProductAdd(ctx, c.ProductUC, c.Log, in, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "list",
				Usage: "Lista los productos",
				Flags: []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunProductList(ctx, c.ProductUC, false, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "low-stock",
				Usage: "Lista los productos en o bajo su stock mínimo",
				Flags: []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunProductList(ctx, c.ProductUC, true, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "stock",
				Usage: "Ajusta el stock: --add suma, --remove resta, --set fija el valor",
				Flags: []cli.Flag{
					idFlag("ID del producto"),
					&cli.IntFlag{Name: "add", Usage: "Unidades a sumar (reposición)"},
					&cli.IntFlag{Name: "remove", Usage: "Unidades a restar"},
					&cli.IntFlag{Name: "set", Usage: "Stock absoluto (0..1000)"},
					&cli.StringFlag{Name: "reference", Usage: "Motivo del movimiento"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					in, err := movementFromFlags(cmd)
					if err != nil {
						return err
					}
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunProductStock(ctx, c.RegisterMovement, in, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "delete",
				Usage: "Elimina un producto sin ventas",
				Flags: []cli.Flag{idFlag("ID del producto")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunProductDelete(ctx, c.ProductUC, c.Log, cmd.Int64("id"), commands.DefaultIO())
					})
				},
			},
		},
	}
}

// movementFromFlags exige exactamente una de --add, --remove o --set.
func movementFromFlags(cmd *cli.Command) (inventory.MovementInputDTO, error) {
	in := inventory.MovementInputDTO{ProductID: cmd.Int64("id"), Reference: cmd.String("reference")}
	n := 0
	if cmd.IsSet("add") {
		in.Type, in.Quantity = entity.MovementTypeIN, int(cmd.Int("add"))
		n++
	}
	if cmd.IsSet("remove") {
		in.Type, in.Quantity = entity.MovementTypeOUT, int(cmd.Int("remove"))
		n++
	}
	if cmd.IsSet("set") {
		in.Type, in.Quantity = entity.MovementTypeADJUSTMENT, int(cmd.Int("set"))
		n++
	}
	if n != 1 {
		return in, fmt.Errorf("indique exactamente una de --add, --remove o --set")
	}
	return in, nil
}
