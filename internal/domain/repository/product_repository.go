package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Insert(product *entity.Product) error
	GetByID(id string, vis Visibility) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int, vis Visibility) ([]*entity.Product, error)
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
}
