package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// ProductUseCase manager de productos: compone el motor CRUD genérico con
// la política de inventario y agrega las operaciones propias de stock.
type ProductUseCase struct {
	mgr       *query.Manager[*entity.Product]
	policy    *ProductPolicy
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	perms     *permission.Registry
	tx        StockTxRunner
	log       *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	perms *permission.Registry,
	tx StockTxRunner,
	log *logger.Logger,
) *ProductUseCase {
	policy := NewProductPolicy(perms)
	return &ProductUseCase{
		mgr:       query.NewManager[*entity.Product](products, policy),
		policy:    policy,
		products:  products,
		movements: movements,
		perms:     perms,
		tx:        tx,
		log:       log,
	}
}

// Create valida la entrada, rechaza SKU duplicado y persiste.
// La unicidad del SKU la garantiza el storage; el chequeo previo solo
// produce un error más claro.
func (uc *ProductUseCase) Create(actor *entity.User, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.policy.CanCreate(actor); err != nil {
		return nil, err
	}
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Category == "" {
		in.Category = entity.CategoryOther
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.products.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := &entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		SKU:          in.SKU,
		Category:     in.Category,
		Price:        in.Price,
		Cost:         in.Cost,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		SupplierID:   in.SupplierID,
	}
	created, err := uc.mgr.Create(actor, product)
	if err != nil {
		return nil, err
	}
	return toProductResponse(created), nil
}

// GetByID devuelve el producto visible para el actor, o nil si no existe
// o no le es visible.
func (uc *ProductUseCase) GetByID(actor *entity.User, id string) (*dto.ProductResponse, error) {
	product, err := uc.mgr.GetByID(actor, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve una página de productos visibles para el actor.
func (uc *ProductUseCase) List(actor *entity.User, limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.mgr.List(actor, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// ListLowStock productos en o bajo su umbral de reposición. Los cajeros
// no acceden a este listado.
func (uc *ProductUseCase) ListLowStock(actor *entity.User, limit, offset int) ([]dto.ProductResponse, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if !actor.IsSuperuser && actor.Role == entity.RoleCashier {
		return nil, domain.ErrForbidden
	}
	products, err := uc.products.ListLowStock(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update aplica una actualización parcial: solo los campos presentes en la
// petición se tocan.
func (uc *ProductUseCase) Update(actor *entity.User, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	target, err := uc.mgr.GetByID(actor, id)
	if err != nil || target == nil {
		return nil, err
	}
	if in.Category != nil && !entity.ValidCategory(*in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	updated, err := uc.mgr.Update(actor, target, func(p *entity.Product) {
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.Cost != nil {
			p.Cost = *in.Cost
		}
		if in.ReorderLevel != nil {
			p.ReorderLevel = *in.ReorderLevel
		}
		if in.SupplierID != nil {
			p.SupplierID = *in.SupplierID
		}
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete elimina el producto y devuelve sus datos ya desacoplados.
func (uc *ProductUseCase) Delete(actor *entity.User, id string) (*dto.ProductResponse, error) {
	target, err := uc.mgr.GetByID(actor, id)
	if err != nil || target == nil {
		return nil, err
	}
	deleted, err := uc.mgr.Delete(actor, target)
	if err != nil {
		return nil, err
	}
	return toProductResponse(deleted), nil
}

// UpdateStock ajuste manual de inventario: requiere inventory:manage_stock.
// El límite del servicio rechaza dejar el stock bajo cero en ajustes
// manuales; el primitivo de dominio en sí no impone piso (las ventas
// concurrentes sí pueden dejarlo negativo).
func (uc *ProductUseCase) UpdateStock(ctx context.Context, actor *entity.User, id string, in dto.StockUpdateRequest) (*dto.ProductResponse, error) {
	if !uc.perms.Has(actor, permission.InventoryManageStock) {
		return nil, domain.ErrForbidden
	}
	if in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ProductResponse
	err := uc.tx.RunStock(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity+in.Quantity < 0 {
			return domain.ErrInvalidInput
		}
		movement := product.UpdateStock(in.Quantity, false, time.Now())
		movement.AssignID(uuid.New().String())
		movement.Notes = in.Notes
		if err := products.Update(product); err != nil {
			return err
		}
		if err := movements.Insert(movement); err != nil {
			return err
		}
		out = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Quantity <= out.ReorderLevel {
		uc.log.Warn().
			Str("product_id", out.ID).
			Str("sku", out.SKU).
			Int64("quantity", out.Quantity).
			Int64("reorder_level", out.ReorderLevel).
			Msg("producto bajo el umbral de reposición")
	}
	return out, nil
}

// ListMovements historial de auditoría de inventario de un producto,
// más recientes primero. La visibilidad del producto gobierna el acceso.
func (uc *ProductUseCase) ListMovements(actor *entity.User, id string, limit, offset int) ([]dto.StockMovementResponse, error) {
	product, err := uc.mgr.GetByID(actor, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movements.ListByProduct(id, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			Quantity:     m.Quantity,
			MovementType: m.MovementType,
			Notes:        m.Notes,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		SKU:          p.SKU,
		Category:     p.Category,
		Price:        p.Price,
		Cost:         p.Cost,
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
		SupplierID:   p.SupplierID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
