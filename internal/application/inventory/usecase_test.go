package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/infrastructure/memory"
	"github.com/jhoicas/gestor-tienda/internal/metrics"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

func seedProducts(t *testing.T, products ...*entity.Product) *memory.ProductRepo {
	t.Helper()
	repo := memory.NewProductRepository()
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
	return repo
}

func product(name string, qty, minStock int) *entity.Product {
	return &entity.Product{Name: name, Price: decimal.NewFromInt(1000), Quantity: qty, Category: "escolar", MinStock: minStock}
}

func newMovementUseCase(repo *memory.ProductRepo) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(repo, inventory.NewStockLocker(), metrics.NewNoOpBusinessMetrics(), logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_IN_OUT_ADJUSTMENT(t *testing.T) {
	ctx := context.Background()
	repo := seedProducts(t, product("regla", 10, 2))
	uc := newMovementUseCase(repo)

	mov, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: 1, Type: entity.MovementTypeIN, Quantity: 5, UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, mov.Before)
	assert.Equal(t, 15, mov.After)
	assert.Equal(t, int64(3), mov.CreatedBy)

	mov, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: 1, Type: entity.MovementTypeOUT, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 11, mov.After)

	mov, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: 1, Type: entity.MovementTypeADJUSTMENT, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 11, mov.Before)
	assert.Equal(t, 3, mov.After)
	assert.Equal(t, 8, mov.Quantity)

	p, _ := repo.GetByID(ctx, 1)
	assert.Equal(t, 3, p.Quantity)
}

func TestRegisterMovement_Errores(t *testing.T) {
	ctx := context.Background()
	repo := seedProducts(t, product("regla", 10, 2))
	uc := newMovementUseCase(repo)

	tests := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"tipo desconocido", inventory.MovementInputDTO{ProductID: 1, Type: "TRANSFER", Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInputDTO{ProductID: 1, Type: entity.MovementTypeIN}, domain.ErrInvalidInput},
		{"ajuste fuera de rango", inventory.MovementInputDTO{ProductID: 1, Type: entity.MovementTypeADJUSTMENT, Quantity: entity.StockMax + 1}, domain.ErrInvalidStock},
		{"producto inexistente", inventory.MovementInputDTO{ProductID: 9, Type: entity.MovementTypeIN, Quantity: 1}, domain.ErrNotFound},
		{"salida mayor al stock", inventory.MovementInputDTO{ProductID: 1, Type: entity.MovementTypeOUT, Quantity: 11}, domain.ErrInsufficientStock},
		{"entrada supera el máximo", inventory.MovementInputDTO{ProductID: 1, Type: entity.MovementTypeIN, Quantity: entity.StockMax}, domain.ErrInvalidStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	p, _ := repo.GetByID(ctx, 1)
	assert.Equal(t, 10, p.Quantity, "ningún movimiento fallido altera el stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateReplenishmentList(t *testing.T) {
	repo := seedProducts(t,
		product("borrador", 50, 10), // sin alerta
		product("compás", 4, 10),    // déficit 6
		product("tijeras", 0, 2),    // agotado
		product("colores", 10, 10),  // en el mínimo
	)
	list, err := inventory.NewReplenishmentUseCase(repo).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "tijeras", list[0].ProductName)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 3, list[0].SuggestedOrderQty)

	assert.Equal(t, "compás", list[1].ProductName)
	assert.Equal(t, 15, list[1].IdealStock)
	assert.Equal(t, 11, list[1].SuggestedOrderQty)

	assert.Equal(t, "colores", list[2].ProductName)
	assert.Equal(t, 3, list[2].Priority)
}
