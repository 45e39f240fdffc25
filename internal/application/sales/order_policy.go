package sales

import (
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ query.Policy[*entity.Order] = (*OrderPolicy)(nil)

// OrderPolicy reglas de acceso para órdenes: los cajeros solo ven y tocan
// sus propias ventas; borrar está siempre prohibido.
type OrderPolicy struct {
	perms *permission.Registry
}

// NewOrderPolicy construye la política con el registro de permisos.
func NewOrderPolicy(perms *permission.Registry) *OrderPolicy {
	return &OrderPolicy{perms: perms}
}

// VisibilityFor sin sales:read no hay filas; con sales:read, todas si el
// actor es superusuario o tiene users:read (admin/manager), si no solo
// las órdenes donde cashier_id es el actor.
func (p *OrderPolicy) VisibilityFor(actor *entity.User) repository.Visibility {
	if actor == nil || !p.perms.Has(actor, permission.SalesRead) {
		return repository.VisibleNone()
	}
	if actor.IsSuperuser || p.perms.Has(actor, permission.UsersRead) {
		return repository.VisibleAll()
	}
	return repository.VisibleMine(actor.ID)
}

// CanCreate requiere sales:create.
func (p *OrderPolicy) CanCreate(actor *entity.User) error {
	if !p.perms.Has(actor, permission.SalesCreate) {
		return domain.ErrForbidden
	}
	return nil
}

// CanUpdate requiere sales:update, o bien ser dueño de la orden y tener
// sales:complete (el cajero opera sus propias ventas).
func (p *OrderPolicy) CanUpdate(actor *entity.User, target *entity.Order) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if p.perms.Has(actor, permission.SalesUpdate) {
		return nil
	}
	if target.CashierID == actor.ID && p.perms.Has(actor, permission.SalesComplete) {
		return nil
	}
	return domain.ErrForbidden
}

// CanDelete siempre prohibido: las órdenes no se borran, se cancelan o reembolsan.
func (p *OrderPolicy) CanDelete(_ *entity.User, _ *entity.Order) error {
	return domain.ErrForbidden
}
