package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, saleRepo repository.SaleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, saleRepo: saleRepo, now: time.Now}
}

// Create crea un usuario; el nombre es único sin distinguir mayúsculas (ErrDuplicate).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user := &entity.User{Name: strings.TrimSpace(in.Name), Role: in.Role}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := user.SetPassword(in.Password, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Update cambia nombre o rol.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual y guarda la nueva.
func (uc *UserUseCase) ChangePassword(ctx context.Context, id int64, in dto.ChangePasswordRequest) error {
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.CheckPassword(in.CurrentPassword) {
		return domain.ErrInvalidCredential
	}
	if err := user.SetPassword(in.NewPassword, uc.now()); err != nil {
		return err
	}
	return uc.repo.Update(ctx, user)
}

// Delete elimina un usuario sin ventas asociadas (ErrConflict en ese caso).
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	used, err := uc.saleRepo.ExistsForUser(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el usuario %d tiene ventas registradas", domain.ErrConflict, id)
	}
	return uc.repo.Delete(ctx, id)
}

// EnsureAdmin crea un admin con name/password si no existe ningún usuario con ese nombre.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, name, password string) (bool, error) {
	existing, err := uc.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: name, Password: password, Role: entity.RoleAdmin})
	if errors.Is(err, domain.ErrDuplicate) {
		return false, nil
	}
	return err == nil, err
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Role:              u.Role,
		PasswordChangedAt: u.PasswordChangedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
