package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestor-tienda/internal/domain"
)

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleVendedor     = "vendedor"
	RoleInventarista = "inventarista"
)

// Reglas de credenciales y nombre.
const (
	PasswordMinLength = 4
	UserNameMin       = 3
	UserNameMax       = 100
)

// SellerRoles son los roles que pueden figurar como responsables de una venta.
var SellerRoles = []string{RoleAdmin, RoleVendedor}

// User representa un empleado de la tienda.
// El hash de la contraseña no se expone como campo: solo se manipula con los métodos de credencial.
type User struct {
	ID                int64
	Name              string
	Role              string // admin, vendedor, inventarista
	PasswordChangedAt time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	passwordHash string
}

// IsValidRole indica si role pertenece al conjunto de roles permitidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVendedor, RoleInventarista:
		return true
	}
	return false
}

// Validate verifica nombre y rol.
func (u *User) Validate() error {
	name := strings.TrimSpace(u.Name)
	if n := utf8.RuneCountInString(name); n < UserNameMin || n > UserNameMax {
		return fmt.Errorf("%w: el nombre debe tener entre %d y %d caracteres", domain.ErrInvalidUserName, UserNameMin, UserNameMax)
	}
	if !IsValidRole(u.Role) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, u.Role)
	}
	return nil
}

// HasRole indica si el usuario tiene alguno de los roles dados.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// SetPassword valida la longitud mínima, guarda el hash bcrypt y marca la fecha de cambio.
func (u *User) SetPassword(plain string, now time.Time) error {
	if utf8.RuneCountInString(plain) < PasswordMinLength {
		return fmt.Errorf("%w: mínimo %d caracteres", domain.ErrInvalidPassword, PasswordMinLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: contraseña demasiado larga", domain.ErrInvalidPassword)
		}
		return fmt.Errorf("hash password: %w", err)
	}
	u.passwordHash = string(hash)
	u.PasswordChangedAt = now
	return nil
}

// CheckPassword compara plain contra el hash almacenado.
func (u *User) CheckPassword(plain string) bool {
	if u.passwordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(plain)) == nil
}

// PasswordHash devuelve el hash para persistirlo.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// RestorePasswordHash rehidrata el hash leído desde el almacenamiento.
func (u *User) RestorePasswordHash(hash string) {
	u.passwordHash = hash
}

// PasswordExpired indica si la contraseña superó maxAge. maxAge <= 0 desactiva la expiración.
func (u *User) PasswordExpired(maxAge time.Duration, now time.Time) bool {
	if maxAge <= 0 || u.PasswordChangedAt.IsZero() {
		return false
	}
	return now.Sub(u.PasswordChangedAt) > maxAge
}
