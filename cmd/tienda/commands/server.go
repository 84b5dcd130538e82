package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/app"
	apphttp "github.com/jhoicas/gestor-tienda/internal/interfaces/http"
)

// RunServer levanta la API HTTP y espera SIGINT/SIGTERM para apagarla.
func RunServer(ctx context.Context, container *app.Container, swaggerFile string) error {
	log := container.Log
	if err := container.Bootstrap(ctx); err != nil {
		return err
	}

	server := apphttp.NewApp(container.ServerConfig(swaggerFile), container.RouterDeps())

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		addr := container.Config.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		serverErr <- server.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("servidor HTTP: %w", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	log.Info().Msg("aplicación detenida")
	return nil
}
