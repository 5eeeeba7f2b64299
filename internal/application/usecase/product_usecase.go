package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ProductPolicy variantes de comportamiento del catálogo.
type ProductPolicy struct {
	OwnerScoped bool // update/delete/list solo sobre productos propios
	Ledger      bool // historial ADD/UPDATE/DELETE además de ORDER
}

// ProductUseCase casos de uso CRUD para productos. Las mutaciones corren en transacción
// para que el historial (si está activo) quede consistente con la cantidad.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner TxRunner
	policy   ProductPolicy
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner TxRunner, policy ProductPolicy) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, policy: policy}
}

// Create crea un nuevo producto a nombre de callerID. reorder_level por defecto 5.
func (uc *ProductUseCase) Create(ctx context.Context, callerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" || in.Quantity == nil || in.Price == nil {
		return nil, domain.ErrInvalidInput
	}
	qty, err := nonNegativeInt(in.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := nonNegativePrice(in.Price)
	if err != nil {
		return nil, err
	}
	reorder := entity.DefaultReorderLevel
	if in.ReorderLevel != nil {
		if reorder, err = nonNegativeInt(in.ReorderLevel); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Quantity:     qty,
		Price:        price,
		Category:     category,
		ReorderLevel: reorder,
		UserID:       callerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository, historyRepo repository.StockHistoryRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if uc.policy.Ledger && qty > 0 {
			return historyRepo.Append(ctx, newHistory(product.ID, callerID, 0, qty, entity.StockAdd, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza solo los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, callerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository, historyRepo repository.StockHistoryRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil || !uc.visible(callerID, product) {
			return domain.ErrProductNotFound
		}
		oldQty := product.Quantity
		if err := applyUpdate(product, in); err != nil {
			return err
		}
		product.UpdatedAt = time.Now().UTC()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		if uc.policy.Ledger && product.Quantity != oldQty {
			if err := historyRepo.Append(ctx, newHistory(product.ID, callerID, oldQty, product.Quantity, entity.StockUpdate, product.UpdatedAt)); err != nil {
				return err
			}
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete elimina un producto. Ventas e historial previos se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, callerID, id string) error {
	return uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository, historyRepo repository.StockHistoryRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil || !uc.visible(callerID, product) {
			return domain.ErrProductNotFound
		}
		if uc.policy.Ledger {
			if err := historyRepo.Append(ctx, newHistory(product.ID, callerID, product.Quantity, 0, entity.StockDelete, time.Now().UTC())); err != nil {
				return err
			}
		}
		return productRepo.Delete(ctx, id)
	})
}

// List lista productos por orden de creación. limit/offset acotan la página (por defecto 50).
func (uc *ProductUseCase) List(ctx context.Context, callerID string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, uc.ownerFilter(callerID), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListLowStock productos con cantidad en o bajo su reorder_level.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, callerID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, uc.ownerFilter(callerID))
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

func (uc *ProductUseCase) ownerFilter(callerID string) string {
	if uc.policy.OwnerScoped {
		return callerID
	}
	return ""
}

func (uc *ProductUseCase) visible(callerID string, p *entity.Product) bool {
	return !uc.policy.OwnerScoped || p.UserID == callerID
}

func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return domain.ErrInvalidInput
		}
		p.Category = category
	}
	if in.Quantity != nil {
		qty, err := nonNegativeInt(in.Quantity)
		if err != nil {
			return err
		}
		p.Quantity = qty
	}
	if in.Price != nil {
		price, err := nonNegativePrice(in.Price)
		if err != nil {
			return err
		}
		p.Price = price
	}
	if in.ReorderLevel != nil {
		lvl, err := nonNegativeInt(in.ReorderLevel)
		if err != nil {
			return err
		}
		p.ReorderLevel = lvl
	}
	return nil
}

var maxInt32 = decimal.NewFromInt(1<<31 - 1)

func nonNegativeInt(d *decimal.Decimal) (int, error) {
	if !d.IsInteger() || d.IsNegative() || d.GreaterThan(maxInt32) {
		return 0, domain.ErrInvalidInput
	}
	return int(d.IntPart()), nil
}

// nonNegativePrice redondea a 2 decimales (NUMERIC(12,2)).
func nonNegativePrice(d *decimal.Decimal) (decimal.Decimal, error) {
	price := d.Round(2)
	if price.IsNegative() || price.GreaterThan(entity.MaxAmount) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return price, nil
}

func newHistory(productID, userID string, oldQty, newQty int, txType string, at time.Time) *entity.StockHistory {
	return &entity.StockHistory{
		ID:              uuid.New().String(),
		ProductID:       productID,
		UserID:          userID,
		OldQuantity:     oldQty,
		NewQuantity:     newQty,
		TransactionType: txType,
		CreatedAt:       at,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Quantity:     p.Quantity,
		Price:        p.Price,
		Category:     p.Category,
		ReorderLevel: p.ReorderLevel,
		UserID:       p.UserID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
