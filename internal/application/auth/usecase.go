// Package auth contiene el caso de uso de autenticación por nombre de usuario y contraseña.
package auth

import (
	"context"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
	"github.com/jhoicas/gestor-tienda/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase verifica credenciales y emite tokens.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	jwtCfg         JWTConfig
	passwordMaxAge time.Duration
	now            func() time.Time
}

// NewAuthUseCase construye el caso de uso. passwordMaxAge <= 0 desactiva la expiración.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, passwordMaxAge time.Duration) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, passwordMaxAge: passwordMaxAge, now: time.Now}
}

// Authenticate devuelve el usuario si nombre y contraseña coinciden y la contraseña no expiró.
// Usuario inexistente y contraseña incorrecta dan el mismo error.
func (uc *AuthUseCase) Authenticate(ctx context.Context, name, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, domain.ErrInvalidCredential
	}
	if user.PasswordExpired(uc.passwordMaxAge, uc.now()) {
		return nil, domain.ErrPasswordExpired
	}
	return user, nil
}

// Login verifica nombre/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.Authenticate(ctx, in.Name, in.Password)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User: dto.UserResponse{
			ID:                user.ID,
			Name:              user.Name,
			Role:              user.Role,
			PasswordChangedAt: user.PasswordChangedAt,
			CreatedAt:         user.CreatedAt,
			UpdatedAt:         user.UpdatedAt,
		},
	}, nil
}
