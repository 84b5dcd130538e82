package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/infrastructure/memory"
)

func newProduct(qty int) *entity.Product {
	return &entity.Product{Name: "cuaderno", Price: decimal.NewFromInt(3500), Quantity: qty, Category: "escolar", MinStock: 5}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_CreateAsignaIDs(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	a, b := newProduct(1), newProduct(2)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestProductRepo_GetByIDInexistente(t *testing.T) {
	p, err := memory.NewProductRepository().GetByID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	p := newProduct(10)
	require.NoError(t, repo.Create(ctx, p))

	got, _ := repo.GetByID(ctx, p.ID)
	got.Quantity = 999

	again, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, 10, again.Quantity)
}

func TestProductRepo_ReduceIncrease(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	p := newProduct(10)
	require.NoError(t, repo.Create(ctx, p))

	left, err := repo.ReduceStock(ctx, p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, left)

	_, err = repo.ReduceStock(ctx, p.ID, 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	left, err = repo.IncreaseStock(ctx, p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, left)

	_, err = repo.IncreaseStock(ctx, p.ID, entity.StockMax)
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	_, err = repo.ReduceStock(ctx, 99, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_SetStock(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	p := newProduct(10)
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.SetStock(ctx, p.ID, 0))
	assert.ErrorIs(t, repo.SetStock(ctx, p.ID, entity.StockMax+1), domain.ErrInvalidStock)
	assert.ErrorIs(t, repo.SetStock(ctx, p.ID, -1), domain.ErrInvalidStock)

	got, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, 0, got.Quantity)
}

func TestProductRepo_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	p := newProduct(10)
	require.NoError(t, repo.Create(ctx, p))

	edit := *p
	edit.Name = "cuaderno rayado"
	edit.Quantity = 0
	require.NoError(t, repo.Update(ctx, &edit))

	got, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, "cuaderno rayado", got.Name)
	assert.Equal(t, 10, got.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRepo_NombreUnico(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{Name: "Ana", Role: entity.RoleVendedor}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{Name: "ana", Role: entity.RoleAdmin}), domain.ErrDuplicate)

	u, err := repo.GetByName(ctx, "ANA")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleVendedor, u.Role)
}

func TestUserRepo_ConservaHash(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	u := &entity.User{Name: "luis", Role: entity.RoleAdmin}
	u.RestorePasswordHash("hash-precalculado")
	require.NoError(t, repo.Create(ctx, u))

	got, _ := repo.GetByID(ctx, u.ID)
	assert.Equal(t, "hash-precalculado", got.PasswordHash())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleRepo_IDsNoSeReutilizan(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSaleRepository()

	s1 := &entity.Sale{UserID: 1, Items: []entity.SaleLineItem{{ProductID: 1, Quantity: 1}}}
	s2 := &entity.Sale{UserID: 1, Items: []entity.SaleLineItem{{ProductID: 2, Quantity: 1}}}
	require.NoError(t, repo.Create(ctx, s1))
	require.NoError(t, repo.Create(ctx, s2))
	assert.Equal(t, int64(1), s1.ID)
	assert.Equal(t, int64(2), s2.ID)
	assert.Equal(t, s2.ID, s2.Items[0].SaleID)

	require.NoError(t, repo.DeleteAll(ctx))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	s3 := &entity.Sale{UserID: 1, Items: []entity.SaleLineItem{{ProductID: 1, Quantity: 1}}}
	require.NoError(t, repo.Create(ctx, s3))
	assert.Equal(t, int64(3), s3.ID, "la secuencia sigue después de borrar el historial")
}

func TestSaleRepo_Referencias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSaleRepository()
	require.NoError(t, repo.Create(ctx, &entity.Sale{UserID: 4, Items: []entity.SaleLineItem{{ProductID: 9, Quantity: 1}}}))

	ok, err := repo.ExistsForProduct(ctx, 9)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = repo.ExistsForProduct(ctx, 8)
	assert.False(t, ok)
	ok, _ = repo.ExistsForUser(ctx, 4)
	assert.True(t, ok)

	assert.ErrorIs(t, repo.Delete(ctx, 99), domain.ErrNotFound)
}
