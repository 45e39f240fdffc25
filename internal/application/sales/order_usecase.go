package sales

import (
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/query"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// OrderUseCase manager de órdenes: compone el motor CRUD genérico con la
// política de ventas y orquesta el ciclo de vida contra el inventario.
type OrderUseCase struct {
	mgr    *query.Manager[*entity.Order]
	policy *OrderPolicy
	orders repository.OrderRepository
	perms  *permission.Registry
	tx     TxRunner
	log    *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders repository.OrderRepository,
	perms *permission.Registry,
	tx TxRunner,
	log *logger.Logger,
) *OrderUseCase {
	policy := NewOrderPolicy(perms)
	return &OrderUseCase{
		mgr:    query.NewManager[*entity.Order](orders, policy),
		policy: policy,
		orders: orders,
		perms:  perms,
		tx:     tx,
		log:    log,
	}
}

// GetByID devuelve la orden visible para el actor (con líneas), o nil.
// Una orden ajena para un cajero es indistinguible de una inexistente.
func (uc *OrderUseCase) GetByID(actor *entity.User, id string) (*dto.OrderResponse, error) {
	order, err := uc.mgr.GetByID(actor, id)
	if err != nil || order == nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List devuelve una página de órdenes visibles para el actor.
func (uc *OrderUseCase) List(actor *entity.User, limit, offset int) ([]dto.OrderResponse, error) {
	orders, err := uc.mgr.List(actor, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// Update actualización parcial de los datos de la orden (no toca líneas,
// estado ni total).
func (uc *OrderUseCase) Update(actor *entity.User, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	target, err := uc.mgr.GetByID(actor, id)
	if err != nil || target == nil {
		return nil, err
	}
	if in.PaymentMethod != nil && !entity.ValidPaymentMethod(*in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	updated, err := uc.mgr.Update(actor, target, func(o *entity.Order) {
		if in.CustomerName != nil {
			o.CustomerName = *in.CustomerName
		}
		if in.PaymentMethod != nil {
			o.PaymentMethod = *in.PaymentMethod
		}
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(updated), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		CashierID:     o.CashierID,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
