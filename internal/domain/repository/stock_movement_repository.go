package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para los
// movimientos de inventario. Solo inserción y lectura: las filas son
// inmutables por diseño.
type StockMovementRepository interface {
	Insert(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
