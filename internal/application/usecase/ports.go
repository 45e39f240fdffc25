package usecase

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción de BD,
// pasando repositorios atados a esa tx. Garantiza que producto y
// movimiento de auditoría se escriban atómicamente.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error) error
}
