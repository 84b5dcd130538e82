package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo su stock mínimo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos con Quantity <= MinStock y la cantidad
// sugerida para llegar a 1.5 × MinStock (tope entity.StockMax), ordenados por urgencia.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		ideal := min(p.MinStock*3/2, entity.StockMax)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			ProductName:       p.Name,
			Category:          p.Category,
			CurrentStock:      p.Quantity,
			MinStock:          p.MinStock,
			IdealStock:        ideal,
			SuggestedOrderQty: max(ideal-p.Quantity, 0),
		})
	}

	// Primero los agotados, luego mayor déficit bajo el mínimo, luego ID.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		defA, defB := a.MinStock-a.CurrentStock, b.MinStock-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.ProductID < b.ProductID
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
