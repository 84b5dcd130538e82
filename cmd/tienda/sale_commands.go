package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jhoicas/gestor-tienda/cmd/tienda/commands"
	"github.com/jhoicas/gestor-tienda/internal/app"
)

func getSaleCommands() *cli.Command {
	return &cli.Command{
		Name:  "sale",
		Usage: "Registro e historial de ventas",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Registra una venta: --item 1:3 --item 2:1",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Required: true, Usage: "Fecha DD/MM/YYYY"},
					&cli.StringSliceFlag{Name: "item", Usage: "Línea productID:cantidad (repetible)"},
					&cli.Int64Flag{Name: "user", Usage: "ID del empleado responsable"},
					&cli.StringFlag{Name: "discount", Usage: "Descuento en porcentaje (0..100)"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					in := commands.SaleRegisterInput{
						Date:     cmd.String("date"),
						Items:    cmd.StringSlice("item"),
						UserID:   cmd.Int64("user"),
						Discount: cmd.String("discount"),
					}
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunSaleRegister(ctx, c.RegisterSale, c.Log, in, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "list",
				Usage: "Muestra el historial de ventas",
				Flags: []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunSaleList(ctx, c.History, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "clear",
				Usage: "Borra todo el historial (no devuelve stock)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "No pedir confirmación"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunSaleClear(ctx, c.History, cmd.Bool("yes"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "undo",
				Usage: "Anula una venta y devuelve su stock",
				Flags: []cli.Flag{idFlag("ID de la venta")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunSaleUndo(ctx, c.UndoSale, cmd.Int64("id"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "delete",
				Usage: "Elimina una venta del historial (no devuelve stock)",
				Flags: []cli.Flag{idFlag("ID de la venta")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunSaleDelete(ctx, c.History, cmd.Int64("id"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "check",
				Usage: "Verifica si hay stock para vender una cantidad",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true, Usage: "ID del producto"},
					&cli.IntFlag{Name: "quantity", Required: true, Usage: "Cantidad"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunSaleCheck(ctx, c.RegisterSale, cmd.Int64("product"), int(cmd.Int("quantity")), cmd.String("format"), commands.DefaultIO())
					})
				},
			},
		},
	}
}

func getReportCommands() *cli.Command {
	reportCmd := func(kind, def string) *cli.Command {
		return &cli.Command{
			Name:  kind,
			Usage: "Historial de ventas en " + kind,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: def, Usage: "Archivo de salida ('-' para stdout)"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					return commands.RunReport(ctx, c.Report, c.Log, kind, cmd.String("out"), commands.DefaultIO())
				})
			},
		}
	}
	return &cli.Command{
		Name:  "report",
		Usage: "Reportes del historial de ventas",
		Commands: []*cli.Command{
			reportCmd(commands.ReportPDF, "ventas.pdf"),
			reportCmd(commands.ReportXML, "ventas.xml"),
		},
	}
}
