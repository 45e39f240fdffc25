package usecase

import (
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase manager de usuarios: CRUD administrativo sobre el motor
// genérico, con hashing bcrypt de passwords y unicidad de email.
type UserUseCase struct {
	mgr    *query.Manager[*entity.User]
	policy *UserPolicy
	users  repository.UserRepository
	perms  *permission.Registry
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, perms *permission.Registry) *UserUseCase {
	policy := NewUserPolicy(perms)
	return &UserUseCase{
		mgr:    query.NewManager[*entity.User](users, policy),
		policy: policy,
		users:  users,
		perms:  perms,
	}
}

// Create crea un usuario. Actor nil es el flujo de registro público (rol
// cashier, nunca superusuario); actor autenticado requiere users:create.
func (uc *UserUseCase) Create(actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := uc.policy.CanCreate(actor); err != nil {
		return nil, err
	}
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role := in.Role
	if role == "" {
		role = entity.RoleCashier
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	isSuperuser := in.IsSuperuser
	if actor == nil {
		// Registro público: sin escalar rol ni privilegios.
		role = entity.RoleCashier
		isSuperuser = false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:          in.Email,
		HashedPassword: string(hash),
		FullName:       in.FullName,
		Role:           role,
		IsActive:       isActive,
		IsSuperuser:    isSuperuser,
	}
	created, err := uc.mgr.Create(actor, user)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(created), nil
}

// GetByID devuelve el usuario visible para el actor, o nil.
func (uc *UserUseCase) GetByID(actor *entity.User, id string) (*dto.UserResponse, error) {
	user, err := uc.mgr.GetByID(actor, id)
	if err != nil || user == nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List devuelve una página de usuarios visibles para el actor.
func (uc *UserUseCase) List(actor *entity.User, limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.mgr.List(actor, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// Update actualización parcial. Password presente se re-hashea; email
// presente se valida contra duplicados.
func (uc *UserUseCase) Update(actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	target, err := uc.mgr.GetByID(actor, id)
	if err != nil || target == nil {
		return nil, err
	}
	// Cambiar el rol exige users:update siempre: la auto-edición cubre los
	// datos propios, no la escalada de privilegios.
	if in.Role != nil && *in.Role != target.Role && !uc.perms.Has(actor, permission.UsersUpdate) {
		return nil, domain.ErrForbidden
	}
	if in.Email != nil && *in.Email != target.Email {
		existing, err := uc.users.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	var newHash string
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		newHash = string(hash)
	}
	updated, err := uc.mgr.Update(actor, target, func(u *entity.User) {
		if in.Email != nil {
			u.Email = *in.Email
		}
		if newHash != "" {
			u.HashedPassword = newHash
		}
		if in.FullName != nil {
			u.FullName = *in.FullName
		}
		if in.Role != nil {
			u.Role = *in.Role
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(updated), nil
}

// Delete elimina el usuario; la política impide el auto-borrado.
func (uc *UserUseCase) Delete(actor *entity.User, id string) (*dto.UserResponse, error) {
	target, err := uc.mgr.GetByID(actor, id)
	if err != nil || target == nil {
		return nil, err
	}
	deleted, err := uc.mgr.Delete(actor, target)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(deleted), nil
}

// ToUserResponse proyecta la entidad a su DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
