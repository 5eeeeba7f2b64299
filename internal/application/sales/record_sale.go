package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// RecordSaleUseCase registra ventas de forma transaccional: bloqueo de fila (SELECT FOR UPDATE),
// verificación de stock, venta, descuento de stock e historial ORDER en un único Commit/Rollback.
type RecordSaleUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(txRunner TxRunner, log zerolog.Logger) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner: txRunner,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SaleInputDTO entrada ya autenticada para registrar una venta.
type SaleInputDTO struct {
	UserID     string
	ProductID  string
	Quantity   int
	TotalPrice *decimal.Decimal // opcional, se contrasta con cantidad × precio
}

// FromRequest adapta el request HTTP. Cantidades no enteras o no positivas -> ErrInvalidInput.
func FromRequest(userID string, in dto.CreateSaleRequest) (SaleInputDTO, error) {
	if in.ProductID == "" || in.Quantity == nil {
		return SaleInputDTO{}, domain.ErrInvalidInput
	}
	if !in.Quantity.IsInteger() || !in.Quantity.IsPositive() || !in.Quantity.LessThanOrEqual(decimal.NewFromInt(1<<31-1)) {
		return SaleInputDTO{}, domain.ErrInvalidInput
	}
	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return SaleInputDTO{}, domain.ErrInvalidInput
	}
	return SaleInputDTO{
		UserID:     userID,
		ProductID:  in.ProductID,
		Quantity:   int(in.Quantity.IntPart()),
		TotalPrice: in.TotalPrice,
	}, nil
}

// RecordSale valida la entrada y ejecuta la venta en una transacción. Cualquier error deja el
// inventario intacto; no hay reintentos.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, input SaleInputDTO) (*dto.SaleResponse, error) {
	if input.ProductID == "" || input.UserID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		// Bloquea la fila del producto hasta el Commit
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if input.Quantity > product.Quantity {
			return domain.ErrInsufficientStock
		}

		expected := product.Price.Mul(decimal.NewFromInt(int64(input.Quantity))).Round(2)
		if expected.GreaterThan(entity.MaxAmount) {
			return domain.ErrInvalidInput
		}
		if input.TotalPrice != nil && !input.TotalPrice.Round(2).Equal(expected) {
			uc.log.Warn().
				Str("product_id", product.ID).
				Str("user_id", input.UserID).
				Int("quantity", input.Quantity).
				Str("sent_total", input.TotalPrice.String()).
				Str("expected_total", expected.String()).
				Msg("total de venta no coincide con el precio del producto")
			return domain.ErrPriceMismatch
		}

		now := uc.now()
		sale = &entity.Sale{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			UserID:     input.UserID,
			Quantity:   input.Quantity,
			TotalPrice: expected,
			CreatedAt:  now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		// Descuento condicional: falla si otra tx dejó menos stock del necesario
		remaining, err := productRepo.DecrementStock(ctx, product.ID, input.Quantity)
		if err != nil {
			return err
		}
		return historyRepo.Append(ctx, &entity.StockHistory{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			UserID:          input.UserID,
			OldQuantity:     remaining + input.Quantity,
			NewQuantity:     remaining,
			TransactionType: entity.StockOrder,
			CreatedAt:       now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("product_id", sale.ProductID).
		Int("quantity", sale.Quantity).
		Str("total", sale.TotalPrice.StringFixed(2)).
		Msg("venta registrada")
	return ToSaleResponse(sale, "", ""), nil
}

// ToSaleResponse convierte la entidad a DTO.
func ToSaleResponse(s *entity.Sale, productName, username string) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: productName,
		UserID:      s.UserID,
		Username:    username,
		Quantity:    s.Quantity,
		TotalPrice:  s.TotalPrice,
		CreatedAt:   s.CreatedAt,
	}
}
