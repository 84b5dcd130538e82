package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jhoicas/gestor-tienda/cmd/tienda/commands"
	"github.com/jhoicas/gestor-tienda/internal/app"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "serve",
			Usage: "Inicia el servidor HTTP",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "swagger",
					Value: "./docs/swagger.json",
					Usage: "Archivo swagger servido en /docs",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					return commands.RunServer(ctx, c, cmd.String("swagger"))
				})
			},
		},
		{
			Name:  "migrate",
			Usage: "Aplica las migraciones de base de datos",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, log, err := loadConfig()
				if err != nil {
					return err
				}
				return commands.RunMigrations(log, cfg)
			},
		},
	}
}
