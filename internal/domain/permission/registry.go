// Package permission implementa el registro de permisos por rol.
// Los permisos son strings de capacidad ("recurso:acción"), no un enum
// cerrado en compilación, porque los roles personalizados se definen en
// runtime sin cambio de código.
package permission

import (
	"sort"
	"sync"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// Catálogo de permisos. Los nombres son parte del contrato con clientes
// existentes y no deben cambiar.
const (
	UsersCreate = "users:create"
	UsersRead   = "users:read"
	UsersUpdate = "users:update"
	UsersDelete = "users:delete"

	InventoryCreate      = "inventory:create"
	InventoryRead        = "inventory:read"
	InventoryUpdate      = "inventory:update"
	InventoryDelete      = "inventory:delete"
	InventoryManageStock = "inventory:manage_stock"

	SupplierCreate = "inventory:create_supplier"
	SupplierRead   = "inventory:read_supplier"
	SupplierUpdate = "inventory:update_supplier"
	SupplierDelete = "inventory:delete_supplier"

	SalesCreate   = "sales:create"
	SalesRead     = "sales:read"
	SalesUpdate   = "sales:update"
	SalesComplete = "sales:complete"
	SalesCancel   = "sales:cancel"
	SalesRefund   = "sales:refund"

	ReportsView   = "reports:view"
	ReportsExport = "reports:export"
)

type permSet map[string]struct{}

func (s permSet) clone() permSet {
	out := make(permSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

func (s permSet) sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Registry mapea roles (estándar y personalizados) a conjuntos de permisos.
// Es una instancia explícita inyectada donde se necesita, no estado global;
// el RWMutex permite mutar roles personalizados en runtime de forma segura
// mientras los chequeos de permisos leen concurrentemente.
type Registry struct {
	mu       sync.RWMutex
	all      permSet            // permisos registrados (conjunto global conocido)
	standard map[string]permSet // rol estándar -> permisos
	custom   map[string]permSet // rol personalizado -> permisos
}

// NewRegistry crea un registro vacío con los tres roles estándar sin permisos.
func NewRegistry() *Registry {
	return &Registry{
		all: make(permSet),
		standard: map[string]permSet{
			entity.RoleAdmin:   make(permSet),
			entity.RoleManager: make(permSet),
			entity.RoleCashier: make(permSet),
		},
		custom: make(map[string]permSet),
	}
}

// RegisterPermission agrega el permiso al conjunto global y lo concede a los
// roles estándar indicados. Admin lo recibe siempre: su conjunto es por
// invariante un superconjunto de todo permiso registrado. Idempotente.
func (r *Registry) RegisterPermission(name string, roles ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.all[name] = struct{}{}
	r.standard[entity.RoleAdmin][name] = struct{}{}
	for _, role := range roles {
		if role == entity.RoleAdmin {
			continue // admin ya lo tiene
		}
		if set, ok := r.standard[role]; ok {
			set[name] = struct{}{}
		}
	}
}

// RegisterCustomRole define (o redefine, last-write-wins) un rol personalizado.
// Falla con ErrUnknownPermission si algún permiso no fue registrado antes;
// en ese caso no queda estado parcial.
func (r *Registry) RegisterCustomRole(roleName string, permissions []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := make(permSet, len(permissions))
	for _, p := range permissions {
		if _, ok := r.all[p]; !ok {
			return domain.ErrUnknownPermission
		}
		set[p] = struct{}{}
	}
	r.custom[roleName] = set
	return nil
}

// RemoveCustomRole elimina un rol personalizado. Devuelve false si no existía.
func (r *Registry) RemoveCustomRole(roleName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.custom[roleName]; !ok {
		return false
	}
	delete(r.custom, roleName)
	return true
}

// HasCustomRole indica si existe un rol personalizado con ese nombre.
func (r *Registry) HasCustomRole(roleName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.custom[roleName]
	return ok
}

// RolePermissions devuelve los permisos de un rol, estándar o personalizado.
// Rol desconocido devuelve lista vacía.
func (r *Registry) RolePermissions(role string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if set, ok := r.standard[role]; ok {
		return set.sorted()
	}
	if set, ok := r.custom[role]; ok {
		return set.sorted()
	}
	return nil
}

// Has responde si el actor tiene la capacidad pedida. Superusuarios siempre
// sí; actor nil (no autenticado) siempre no.
func (r *Registry) Has(actor *entity.User, perm string) bool {
	if actor == nil {
		return false
	}
	if actor.IsSuperuser {
		return true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.standard[actor.Role]
	if !ok {
		set, ok = r.custom[actor.Role]
	}
	if !ok {
		return false
	}
	_, granted := set[perm]
	return granted
}

// AllPermissions devuelve todos los permisos registrados, ordenados.
func (r *Registry) AllPermissions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.all.sorted()
}

// AllRoles devuelve cada rol (estándar y personalizado) con sus permisos.
func (r *Registry) AllRoles() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]string, len(r.standard)+len(r.custom))
	for role, set := range r.standard {
		out[role] = set.sorted()
	}
	for role, set := range r.custom {
		out[role] = set.sorted()
	}
	return out
}
