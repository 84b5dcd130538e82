// Command tienda es el CLI del gestor: servidor HTTP, migraciones y operaciones de catálogo y ventas.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jhoicas/gestor-tienda/cmd/tienda/commands"
	"github.com/jhoicas/gestor-tienda/internal/app"
	"github.com/jhoicas/gestor-tienda/pkg/config"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:     "tienda",
		Usage:    "Gestor de tienda: productos, usuarios y ventas",
		Version:  version,
		Commands: getCommands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands()...)
	cmds = append(cmds, getProductCommands(), getUserCommands(), getSaleCommands(), getReportCommands())
	return cmds
}

// loadConfig lee la configuración y arma un logger a stderr para no mezclarlo con la salida del comando.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Output: os.Stderr,
	})
	return cfg, log, nil
}

// withContainer construye el contenedor, ejecuta fn y libera los recursos.
func withContainer(ctx context.Context, fn func(c *app.Container) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer container.Close(context.Background())
	return fn(container)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Formato de salida: 'text' o 'json'",
	}
}

func idFlag(usage string) cli.Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Required: true,
		Usage:    usage,
	}
}
