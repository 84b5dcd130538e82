package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/application/inventory"
	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock cambia solo vía movimientos o ventas.
type ProductUseCase struct {
	repo     repository.ProductRepository
	saleRepo repository.SaleRepository
	locker   *inventory.StockLocker
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, saleRepo repository.SaleRepository, locker *inventory.StockLocker) *ProductUseCase {
	return &ProductUseCase{repo: repo, saleRepo: saleRepo, locker: locker}
}

// Create crea un nuevo producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Quantity: in.Quantity,
		Category: strings.TrimSpace(in.Category),
		MinStock: in.MinStock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, precio, categoría o stock mínimo.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista el catálogo ordenado por ID.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// LowStock lista los productos con cantidad en o por debajo de su stock mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list = slices.DeleteFunc(list, func(p *entity.Product) bool { return !p.IsLowStock() })
	return toProductList(list), nil
}

// Delete elimina un producto que no figure en ninguna venta (ErrConflict en ese caso).
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	unlock := uc.locker.Lock(id)
	defer unlock()

	used, err := uc.saleRepo.ExistsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el producto %d figura en ventas registradas", domain.ErrConflict, id)
	}
	return uc.repo.Delete(ctx, id)
}

func toProductList(list []*entity.Product) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Category:  p.Category,
		MinStock:  p.MinStock,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
