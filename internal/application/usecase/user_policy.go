package usecase

import (
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ query.Policy[*entity.User] = (*UserPolicy)(nil)

// UserPolicy reglas de acceso para usuarios: cada uno se ve y se edita a
// sí mismo; administrar a otros requiere permisos users:*.
type UserPolicy struct {
	perms *permission.Registry
}

// NewUserPolicy construye la política con el registro de permisos.
func NewUserPolicy(perms *permission.Registry) *UserPolicy {
	return &UserPolicy{perms: perms}
}

// VisibilityFor todas las filas con users:read; sin él, solo la fila propia;
// anónimo no ve nada.
func (p *UserPolicy) VisibilityFor(actor *entity.User) repository.Visibility {
	if actor == nil {
		return repository.VisibleNone()
	}
	if p.perms.Has(actor, permission.UsersRead) {
		return repository.VisibleAll()
	}
	return repository.VisibleMine(actor.ID)
}

// CanCreate permitido sin autenticación (registro); autenticado requiere users:create.
func (p *UserPolicy) CanCreate(actor *entity.User) error {
	if actor != nil && !p.perms.Has(actor, permission.UsersCreate) {
		return domain.ErrForbidden
	}
	return nil
}

// CanUpdate cada usuario puede editarse a sí mismo; a otros, con users:update.
func (p *UserPolicy) CanUpdate(actor *entity.User, target *entity.User) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if target.ID == actor.ID {
		return nil
	}
	if !p.perms.Has(actor, permission.UsersUpdate) {
		return domain.ErrForbidden
	}
	return nil
}

// CanDelete nadie se borra a sí mismo; a otros, con users:delete.
func (p *UserPolicy) CanDelete(actor *entity.User, target *entity.User) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if target.ID == actor.ID {
		return domain.ErrForbidden
	}
	if !p.perms.Has(actor, permission.UsersDelete) {
		return domain.ErrForbidden
	}
	return nil
}
