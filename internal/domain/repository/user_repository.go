package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Insert(user *entity.User) error
	GetByID(id string, vis Visibility) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(limit, offset int, vis Visibility) ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// CountByRole cuenta usuarios con ese rol; se usa antes de borrar un rol personalizado.
	CountByRole(role string) (int64, error)
}
