package repository

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
// GetByID y List devuelven las órdenes con sus líneas cargadas.
type OrderRepository interface {
	Insert(order *entity.Order) error
	GetByID(id string, vis Visibility) (*entity.Order, error)
	List(limit, offset int, vis Visibility) ([]*entity.Order, error)
	// ListByDateRange lista órdenes creadas en [from, to], opcionalmente
	// filtradas por estado (vacío = todos). El filtro va en el query para
	// que la paginación aplique sobre las filas ya filtradas.
	ListByDateRange(from, to time.Time, status string, limit, offset int) ([]*entity.Order, error)
	Update(order *entity.Order) error
	// Delete existe por plumbing del manager genérico; la política de órdenes
	// lo prohíbe siempre, así que en operación normal nunca se invoca.
	Delete(id string) error
	InsertItem(item *entity.OrderItem) error
	ListItems(orderID string) ([]entity.OrderItem, error)
}
