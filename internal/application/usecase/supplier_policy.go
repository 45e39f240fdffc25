package usecase

import (
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ query.Policy[*entity.Supplier] = (*SupplierPolicy)(nil)

// SupplierPolicy mismas reglas que ProductPolicy: los proveedores se
// administran con los permisos generales de inventario (los permisos
// inventory:*_supplier existen en el catálogo para roles personalizados
// de grano fino, pero las compuertas estándar usan los generales).
type SupplierPolicy struct {
	perms *permission.Registry
}

// NewSupplierPolicy construye la política con el registro de permisos.
func NewSupplierPolicy(perms *permission.Registry) *SupplierPolicy {
	return &SupplierPolicy{perms: perms}
}

// VisibilityFor todas las filas con inventory:read, ninguna sin él.
func (p *SupplierPolicy) VisibilityFor(actor *entity.User) repository.Visibility {
	if p.perms.Has(actor, permission.InventoryRead) {
		return repository.VisibleAll()
	}
	return repository.VisibleNone()
}

// CanCreate requiere inventory:create.
func (p *SupplierPolicy) CanCreate(actor *entity.User) error {
	if !p.perms.Has(actor, permission.InventoryCreate) {
		return domain.ErrForbidden
	}
	return nil
}

// CanUpdate requiere inventory:update.
func (p *SupplierPolicy) CanUpdate(actor *entity.User, _ *entity.Supplier) error {
	if !p.perms.Has(actor, permission.InventoryUpdate) {
		return domain.ErrForbidden
	}
	return nil
}

// CanDelete requiere inventory:delete.
func (p *SupplierPolicy) CanDelete(actor *entity.User, _ *entity.Supplier) error {
	if !p.perms.Has(actor, permission.InventoryDelete) {
		return domain.ErrForbidden
	}
	return nil
}
