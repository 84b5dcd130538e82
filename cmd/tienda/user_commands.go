package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jhoicas/gestor-tienda/cmd/tienda/commands"
	"github.com/jhoicas/gestor-tienda/internal/app"
	"github.com/jhoicas/gestor-tienda/internal/application/dto"
)

func getUserCommands() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Usuarios de la tienda",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Crea un usuario",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true, Usage: "Nombre de usuario (único)"},
					&cli.StringFlag{Name: "password", Required: true, Usage: "Contraseña (mínimo 4 caracteres)"},
					&cli.StringFlag{Name: "role", Required: true, Usage: "admin, vendedor o inventarista"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					in := dto.CreateUserRequest{
						Name:     cmd.String("name"),
						Password: cmd.String("password"),
						Role:     cmd.String("role"),
					}
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunUserAdd(ctx, c.UserUC, c.Log, in, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "list",
				Usage: "Lista los usuarios",
				Flags: []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(c *app.Container) error {
						return commands.RunUserList(ctx, c.UserUC, cmd.String("format"), commands.DefaultIO())
					})
				},
			},
		},
	}
}
