package domain

import (
	"errors"
	"fmt"
)

// SaleError es el error tipado que devuelve el registro de ventas.
// Kind es uno de los Err* de venta; Err es la causa subyacente (solo en persistencia).
type SaleError struct {
	Kind    error
	Message string

	// Detalle de ErrInsufficientStock (y del producto implicado en otros tipos).
	ProductID   int64
	ProductName string
	Available   int
	Requested   int

	Err error
}

// NewSaleError construye un SaleError del tipo indicado con un mensaje formateado.
func NewSaleError(kind error, format string, args ...any) *SaleError {
	return &SaleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewInsufficientStockError construye un ErrInsufficientStock con disponible vs solicitado.
func NewInsufficientStockError(productID int64, productName string, available, requested int) *SaleError {
	return &SaleError{
		Kind:        ErrInsufficientStock,
		Message:     fmt.Sprintf("stock insuficiente para el producto '%s' (ID %d). Disponible: %d, requerido: %d", productName, productID, available, requested),
		ProductID:   productID,
		ProductName: productName,
		Available:   available,
		Requested:   requested,
	}
}

// NewPersistenceError envuelve un error de almacenamiento. Si err ya es un SaleError se devuelve tal cual.
func NewPersistenceError(err error) *SaleError {
	var se *SaleError
	if errors.As(err, &se) {
		return se
	}
	return &SaleError{Kind: ErrPersistence, Message: ErrPersistence.Error(), Err: err}
}

func (e *SaleError) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap expone el tipo y la causa para errors.Is / errors.As.
func (e *SaleError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// SaleErrorKind devuelve el tipo de un SaleError o nil si err no lo es.
func SaleErrorKind(err error) error {
	var se *SaleError
	if errors.As(err, &se) {
		return se.Kind
	}
	return nil
}
