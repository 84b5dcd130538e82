// Package sale contiene las reglas de negocio que una venta debe cumplir antes de tocar el stock.
package sale

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ProductReader es la vista de solo lectura del catálogo que necesita el validador.
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
}

// UserReader es la vista de solo lectura de usuarios que necesita el validador.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// LineInput es una línea propuesta por el llamador: producto y cantidad.
type LineInput struct {
	ProductID int64
	Quantity  int
}

// Candidate es una venta propuesta, todavía sin validar.
type Candidate struct {
	Date     string
	Items    []LineInput
	ActorID  *int64
	Discount decimal.Decimal // porcentaje; cero si no aplica
}

// Line es una línea validada con el producto leído en el momento de la validación.
type Line struct {
	Product  *entity.Product
	Quantity int
}

// Validated es el resultado de una validación exitosa.
// Las líneas duplicadas del mismo producto ya vienen fusionadas, en orden de primera aparición.
type Validated struct {
	Date     time.Time
	Lines    []Line
	Actor    *entity.User
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ProductIDs devuelve los IDs de producto involucrados.
func (v *Validated) ProductIDs() []int64 {
	ids := make([]int64, 0, len(v.Lines))
	for _, l := range v.Lines {
		ids = append(ids, l.Product.ID)
	}
	return ids
}

// Sale construye la entidad a persistir. El precio unitario es el leído al validar.
func (v *Validated) Sale() *entity.Sale {
	items := make([]entity.SaleLineItem, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, entity.SaleLineItem{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}
	return &entity.Sale{
		Date:     v.Date,
		UserID:   v.Actor.ID,
		Items:    items,
		Discount: v.Discount,
		Total:    v.Total,
	}
}

// Validator aplica las reglas de una venta en un orden fijo; gana el primer fallo:
//
//  1. fecha válida y no futura            -> ErrInvalidDate
//  2. al menos una línea                  -> ErrEmptySale
//  3. todos los productos existen         -> ErrUnregisteredProduct
//  4. todas las cantidades > 0            -> ErrInvalidQuantity
//  5. categorías habilitadas              -> ErrInvalidCategory
//  6. empleado existente con rol de venta -> ErrNoAssignedActor
//  7. total >= 0                          -> ErrInvalidTotal
//  8. descuento entre 0 y 100             -> ErrInvalidDiscount
//
// No verifica stock: eso se hace al registrar, con el producto bloqueado.
type Validator struct {
	products    ProductReader
	users       UserReader
	categories  CategorySet
	sellerRoles []string
	now         func() time.Time
}

// Option configura un Validator.
type Option func(*Validator)

// WithCategories reemplaza las categorías habilitadas para la venta.
func WithCategories(categories ...string) Option {
	return func(v *Validator) {
		if len(categories) > 0 {
			v.categories = NewCategorySet(categories...)
		}
	}
}

// WithSellerRoles reemplaza los roles que pueden figurar como responsables.
func WithSellerRoles(roles ...string) Option {
	return func(v *Validator) {
		if len(roles) > 0 {
			v.sellerRoles = roles
		}
	}
}

// WithClock fija el reloj usado para rechazar fechas futuras.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator construye el validador.
func NewValidator(products ProductReader, users UserReader, opts ...Option) *Validator {
	v := &Validator{
		products:    products,
		users:       users,
		categories:  NewCategorySet(DefaultCategories...),
		sellerRoles: entity.SellerRoles,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate comprueba la venta candidata. Los errores son *domain.SaleError;
// un fallo al leer el almacenamiento se devuelve como ErrPersistence.
func (v *Validator) Validate(ctx context.Context, c Candidate) (*Validated, error) {
	date, err := ParseDate(c.Date, v.now())
	if err != nil {
		return nil, domain.NewSaleError(domain.ErrInvalidDate, "la fecha '%s' es inválida: %v", c.Date, err)
	}

	if len(c.Items) == 0 {
		return nil, domain.NewSaleError(domain.ErrEmptySale, "la venta debe incluir al menos un producto")
	}

	products := make([]*entity.Product, len(c.Items))
	for i, it := range c.Items {
		p, err := v.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, domain.NewPersistenceError(err)
		}
		if p == nil {
			se := domain.NewSaleError(domain.ErrUnregisteredProduct, "el producto con ID %d no está registrado en el inventario", it.ProductID)
			se.ProductID = it.ProductID
			return nil, se
		}
		products[i] = p
	}

	for i, it := range c.Items {
		if it.Quantity <= 0 {
			se := domain.NewSaleError(domain.ErrInvalidQuantity, "la cantidad del producto '%s' debe ser mayor a cero", products[i].Name)
			se.ProductID, se.ProductName, se.Requested = products[i].ID, products[i].Name, it.Quantity
			return nil, se
		}
	}

	for _, p := range products {
		if !v.categories.Contains(p.Category) {
			se := domain.NewSaleError(domain.ErrInvalidCategory, "la categoría '%s' del producto '%s' no es válida para la venta", p.Category, p.Name)
			se.ProductID, se.ProductName = p.ID, p.Name
			return nil, se
		}
	}

	lines := mergeLines(products, c.Items)

	actor, err := v.actor(ctx, c.ActorID)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if subtotal.IsNegative() {
		return nil, domain.NewSaleError(domain.ErrInvalidTotal, "el total de la venta no puede ser negativo (%s)", subtotal.StringFixed(2))
	}

	if c.Discount.IsNegative() || c.Discount.GreaterThan(hundred) {
		return nil, domain.NewSaleError(domain.ErrInvalidDiscount, "el descuento debe estar entre 0 y 100 (recibido %s)", c.Discount.String())
	}

	return &Validated{
		Date:     date,
		Lines:    lines,
		Actor:    actor,
		Subtotal: subtotal,
		Discount: c.Discount,
		Total:    ApplyDiscount(subtotal, c.Discount),
	}, nil
}

func (v *Validator) actor(ctx context.Context, id *int64) (*entity.User, error) {
	if id == nil {
		return nil, domain.NewSaleError(domain.ErrNoAssignedActor, "la venta debe estar asociada a un empleado")
	}
	u, err := v.users.GetByID(ctx, *id)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	if u == nil {
		return nil, domain.NewSaleError(domain.ErrNoAssignedActor, "el empleado con ID %d no existe", *id)
	}
	if !u.HasRole(v.sellerRoles...) {
		return nil, domain.NewSaleError(domain.ErrNoAssignedActor, "el usuario '%s' (rol %s) no puede registrar ventas", u.Name, u.Role)
	}
	return u, nil
}

// ApplyDiscount devuelve total × (100 − pct) / 100 redondeado a 2 decimales, nunca negativo.
func ApplyDiscount(total, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return total
	}
	out := total.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

func mergeLines(products []*entity.Product, items []LineInput) []Line {
	lines := make([]Line, 0, len(items))
	index := make(map[int64]int, len(items))
	for i, it := range items {
		if j, ok := index[it.ProductID]; ok {
			lines[j].Quantity = addQuantity(lines[j].Quantity, it.Quantity)
			continue
		}
		index[it.ProductID] = len(lines)
		lines = append(lines, Line{Product: products[i], Quantity: it.Quantity})
	}
	return lines
}

// addQuantity suma cantidades positivas saturando en math.MaxInt.
func addQuantity(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
