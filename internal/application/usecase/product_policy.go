package usecase

import (
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ query.Policy[*entity.Product] = (*ProductPolicy)(nil)

// ProductPolicy reglas de acceso para productos: lectura abierta a quien
// tenga inventory:read, mutaciones según los permisos de inventario.
type ProductPolicy struct {
	perms *permission.Registry
}

// NewProductPolicy construye la política con el registro de permisos.
func NewProductPolicy(perms *permission.Registry) *ProductPolicy {
	return &ProductPolicy{perms: perms}
}

// VisibilityFor todas las filas con inventory:read, ninguna sin él.
func (p *ProductPolicy) VisibilityFor(actor *entity.User) repository.Visibility {
	if p.perms.Has(actor, permission.InventoryRead) {
		return repository.VisibleAll()
	}
	return repository.VisibleNone()
}

// CanCreate requiere inventory:create.
func (p *ProductPolicy) CanCreate(actor *entity.User) error {
	if !p.perms.Has(actor, permission.InventoryCreate) {
		return domain.ErrForbidden
	}
	return nil
}

// CanUpdate requiere inventory:update.
func (p *ProductPolicy) CanUpdate(actor *entity.User, _ *entity.Product) error {
	if !p.perms.Has(actor, permission.InventoryUpdate) {
		return domain.ErrForbidden
	}
	return nil
}

// CanDelete requiere inventory:delete.
func (p *ProductPolicy) CanDelete(actor *entity.User, _ *entity.Product) error {
	if !p.perms.Has(actor, permission.InventoryDelete) {
		return domain.ErrForbidden
	}
	return nil
}
