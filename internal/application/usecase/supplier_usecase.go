package usecase

import (
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// SupplierUseCase manager de proveedores sobre el motor CRUD genérico.
type SupplierUseCase struct {
	mgr    *query.Manager[*entity.Supplier]
	policy *SupplierPolicy
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers repository.SupplierRepository, perms *permission.Registry) *SupplierUseCase {
	policy := NewSupplierPolicy(perms)
	return &SupplierUseCase{
		mgr:    query.NewManager[*entity.Supplier](suppliers, policy),
		policy: policy,
	}
}

// Create valida y persiste un proveedor.
func (uc *SupplierUseCase) Create(actor *entity.User, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
	}
	created, err := uc.mgr.Create(actor, supplier)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(created), nil
}

// GetByID devuelve el proveedor visible para el actor, o nil.
func (uc *SupplierUseCase) GetByID(actor *entity.User, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.mgr.GetByID(actor, id)
	if err != nil || supplier == nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List devuelve una página de proveedores visibles para el actor.
func (uc *SupplierUseCase) List(actor *entity.User, limit, offset int) ([]dto.SupplierResponse, error) {
	suppliers, err := uc.mgr.List(actor, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// Update actualización parcial de un proveedor.
func (uc *SupplierUseCase) Update(actor *entity.User, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	target, err := uc.mgr.GetByID(actor, id)
	if err != nil || target == nil {
		return nil, err
	}
	updated, err := uc.mgr.Update(actor, target, func(s *entity.Supplier) {
		if in.Name != nil {
			s.Name = *in.Name
		}
		if in.ContactName != nil {
			s.ContactName = *in.ContactName
		}
		if in.Email != nil {
			s.Email = *in.Email
		}
		if in.Phone != nil {
			s.Phone = *in.Phone
		}
		if in.Address != nil {
			s.Address = *in.Address
		}
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(updated), nil
}

// Delete elimina el proveedor y devuelve sus datos ya desacoplados.
func (uc *SupplierUseCase) Delete(actor *entity.User, id string) (*dto.SupplierResponse, error) {
	target, err := uc.mgr.GetByID(actor, id)
	if err != nil || target == nil {
		return nil, err
	}
	deleted, err := uc.mgr.Delete(actor, target)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(deleted), nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
