package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Errores de catálogo y usuarios.
var (
	ErrInvalidProduct    = errors.New("producto inválido")
	ErrInvalidPrice      = errors.New("el precio debe ser mayor que cero")
	ErrInvalidStock      = errors.New("cantidad de stock fuera de rango")
	ErrEmptyCategory     = errors.New("la categoría no puede estar vacía")
	ErrInvalidUserName   = errors.New("nombre de usuario inválido")
	ErrInvalidRole       = errors.New("rol inválido")
	ErrInvalidPassword   = errors.New("la contraseña no cumple los requisitos mínimos")
	ErrPasswordExpired   = errors.New("la contraseña ha expirado")
	ErrInvalidCredential = errors.New("credenciales incorrectas")
)

// Tipos de fallo de una venta. Se comparan con errors.Is contra un *SaleError.
var (
	ErrInvalidDate         = errors.New("fecha de venta inválida")
	ErrEmptySale           = errors.New("la venta debe incluir al menos un producto")
	ErrUnregisteredProduct = errors.New("producto no registrado en el inventario")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor a cero")
	ErrInvalidCategory     = errors.New("categoría no permitida para la venta")
	ErrNoAssignedActor     = errors.New("la venta debe estar asociada a un empleado")
	ErrInvalidTotal        = errors.New("el total de la venta no puede ser negativo")
	ErrInvalidDiscount     = errors.New("el descuento debe estar entre 0 y 100")
	ErrPersistence         = errors.New("error de persistencia")
)
