package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Insert(supplier *entity.Supplier) error
	GetByID(id string, vis Visibility) (*entity.Supplier, error)
	List(limit, offset int, vis Visibility) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}
