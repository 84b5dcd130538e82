package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/application/usecase"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// RunUserAdd crea un usuario.
func RunUserAdd(ctx context.Context, uc *usecase.UserUseCase, log *logger.Logger, in dto.CreateUserRequest, format string, io IOTuple) error {
	u, err := uc.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("crear usuario: %w", err)
	}
	log.Info().Int64("user_id", u.ID).Str("role", u.Role).Msg("usuario creado")
	if format == FormatJSON {
		return outputJSON(u, io.Writer)
	}
	_, _ = fmt.Fprintf(io.Writer, "Usuario creado: #%d %s (%s)\n", u.ID, u.Name, u.Role)
	return nil
}

// RunUserList lista los usuarios.
func RunUserList(ctx context.Context, uc *usecase.UserUseCase, format string, io IOTuple) error {
	list, err := uc.List(ctx)
	if err != nil {
		return fmt.Errorf("listar usuarios: %w", err)
	}
	if format == FormatJSON {
		return outputJSON(list, io.Writer)
	}
	tw := tabwriter.NewWriter(io.Writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNOMBRE\tROL\t")
	for _, u := range list {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t\n", u.ID, u.Name, u.Role)
	}
	return tw.Flush()
}
