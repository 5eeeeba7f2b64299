package sales

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// QueryUseCase listados de ventas (solo lectura).
type QueryUseCase struct {
	repo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// ListSales todas las ventas, más recientes primero.
func (uc *QueryUseCase) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	return uc.list(ctx, repository.SaleFilter{})
}

// ListSalesByProduct ventas de un producto (también de productos ya eliminados).
func (uc *QueryUseCase) ListSalesByProduct(ctx context.Context, productID string) ([]dto.SaleResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(ctx, repository.SaleFilter{ProductID: productID})
}

// ListSalesByUser ventas registradas por un usuario.
func (uc *QueryUseCase) ListSalesByUser(ctx context.Context, userID string) ([]dto.SaleResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(ctx, repository.SaleFilter{UserID: userID})
}

func (uc *QueryUseCase) list(ctx context.Context, f repository.SaleFilter) ([]dto.SaleResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *ToSaleResponse(&rows[i].Sale, rows[i].ProductName, rows[i].Username))
	}
	return out, nil
}
