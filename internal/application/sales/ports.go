package sales

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La creación y las transiciones de órdenes
// dependen de él: o se persiste todo (orden, líneas, stock, auditoría) o
// no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orders repository.OrderRepository,
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error) error
}
