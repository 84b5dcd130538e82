package dto

import (
	"time"

	"github.com/jellydator/validation"

	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

var roleRule = validation.In(entity.RoleAdmin, entity.RoleVendedor, entity.RoleInventarista).
	Error("debe ser admin, vendedor o inventarista")

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en la entidad).
type CreateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate valida nombre, rol y longitud mínima de la contraseña.
func (r *CreateUserRequest) Validate() error {
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, notBlank, validation.Length(entity.UserNameMin, entity.UserNameMax)),
		validation.Field(&r.Password, validation.Required, validation.Length(entity.PasswordMinLength, 72)),
		validation.Field(&r.Role, validation.Required, roleRule),
	))
}

// UpdateUserRequest entrada para actualizar nombre o rol.
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

// Validate valida solo los campos presentes.
func (r *UpdateUserRequest) Validate() error {
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, notBlank, validation.Length(entity.UserNameMin, entity.UserNameMax)),
		validation.Field(&r.Role, validation.NilOrNotEmpty, roleRule),
	))
}

// ChangePasswordRequest entrada para cambiar la contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate exige ambas contraseñas.
func (r *ChangePasswordRequest) Validate() error {
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(entity.PasswordMinLength, 72)),
	))
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	PasswordChangedAt time.Time `json:"password_changed_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LoginRequest entrada para login por nombre de usuario.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate exige nombre y contraseña.
func (r *LoginRequest) Validate() error {
	return wrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, notBlank),
		validation.Field(&r.Password, validation.Required),
	))
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}
