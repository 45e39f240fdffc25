// Package roles administra los roles personalizados sobre el registro de
// permisos: definir, redefinir y eliminar roles en runtime.
package roles

import (
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// RoleUseCase opera el registro de permisos con las reglas del límite
// administrativo: los roles estándar no se tocan y un rol en uso no se borra.
type RoleUseCase struct {
	perms *permission.Registry
	users repository.UserRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(perms *permission.Registry, users repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{perms: perms, users: users}
}

// AllPermissions lista el catálogo completo de permisos (requiere users:read).
func (uc *RoleUseCase) AllPermissions(actor *entity.User) ([]string, error) {
	if !uc.perms.Has(actor, permission.UsersRead) {
		return nil, domain.ErrForbidden
	}
	return uc.perms.AllPermissions(), nil
}

// AllRoles lista todos los roles (estándar y personalizados) con sus permisos.
func (uc *RoleUseCase) AllRoles(actor *entity.User) ([]dto.RoleResponse, error) {
	if !uc.perms.Has(actor, permission.UsersRead) {
		return nil, domain.ErrForbidden
	}
	all := uc.perms.AllRoles()
	out := make([]dto.RoleResponse, 0, len(all))
	for name, perms := range all {
		out = append(out, dto.RoleResponse{Name: name, Permissions: perms})
	}
	return out, nil
}

// RolePermissions permisos de un rol puntual. Un rol desconocido que
// tampoco es estándar es NotFound (un rol estándar sin permisos es válido).
func (uc *RoleUseCase) RolePermissions(actor *entity.User, role string) (*dto.RoleResponse, error) {
	if !uc.perms.Has(actor, permission.UsersRead) {
		return nil, domain.ErrForbidden
	}
	perms := uc.perms.RolePermissions(role)
	if len(perms) == 0 && !entity.IsStandardRole(role) && !uc.perms.HasCustomRole(role) {
		return nil, domain.ErrNotFound
	}
	return &dto.RoleResponse{Name: role, Permissions: perms}, nil
}

// CreateCustomRole define un rol nuevo (requiere users:create). Nombres de
// roles estándar o ya existentes se rechazan; permisos no registrados
// fallan con ErrUnknownPermission sin dejar estado parcial.
func (uc *RoleUseCase) CreateCustomRole(actor *entity.User, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if !uc.perms.Has(actor, permission.UsersCreate) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || len(in.Permissions) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if entity.IsStandardRole(in.Name) {
		return nil, domain.ErrInvalidInput
	}
	if uc.perms.HasCustomRole(in.Name) {
		return nil, domain.ErrDuplicate
	}
	if err := uc.perms.RegisterCustomRole(in.Name, in.Permissions); err != nil {
		return nil, err
	}
	return &dto.RoleResponse{Name: in.Name, Permissions: uc.perms.RolePermissions(in.Name)}, nil
}

// UpdateCustomRole redefine los permisos de un rol personalizado existente
// (requiere users:update). Last-write-wins sobre el conjunto completo.
func (uc *RoleUseCase) UpdateCustomRole(actor *entity.User, name string, permissions []string) (*dto.RoleResponse, error) {
	if !uc.perms.Has(actor, permission.UsersUpdate) {
		return nil, domain.ErrForbidden
	}
	if entity.IsStandardRole(name) {
		return nil, domain.ErrInvalidInput
	}
	if !uc.perms.HasCustomRole(name) {
		return nil, domain.ErrNotFound
	}
	if err := uc.perms.RegisterCustomRole(name, permissions); err != nil {
		return nil, err
	}
	return &dto.RoleResponse{Name: name, Permissions: uc.perms.RolePermissions(name)}, nil
}

// DeleteCustomRole elimina un rol personalizado (requiere users:delete),
// siempre que ningún usuario lo tenga asignado.
func (uc *RoleUseCase) DeleteCustomRole(actor *entity.User, name string) (*dto.RoleResponse, error) {
	if !uc.perms.Has(actor, permission.UsersDelete) {
		return nil, domain.ErrForbidden
	}
	if entity.IsStandardRole(name) {
		return nil, domain.ErrInvalidInput
	}
	if !uc.perms.HasCustomRole(name) {
		return nil, domain.ErrNotFound
	}
	count, err := uc.users.CountByRole(name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrConflict
	}
	perms := uc.perms.RolePermissions(name)
	uc.perms.RemoveCustomRole(name)
	return &dto.RoleResponse{Name: name, Permissions: perms}, nil
}
