package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Complete transiciona la orden a completed y descuenta el stock de cada
// línea como venta, todo en una transacción. La entidad es tolerante (una
// transición inválida es no-op); este límite es estricto: el no-op se
// reporta como ErrConflict para que el caller reciba "ya está en X".
// Los productos se bloquean con SELECT FOR UPDATE para serializar el
// descuento; aun así el stock puede quedar negativo si otra orden
// pendiente reservó el mismo disponible (decisión de negocio preservada).
func (uc *OrderUseCase) Complete(ctx context.Context, actor *entity.User, id string) (*dto.OrderResponse, error) {
	visible, err := uc.mgr.GetByID(actor, id)
	if err != nil || visible == nil {
		return nil, err
	}
	if err := uc.policy.CanUpdate(actor, visible); err != nil {
		return nil, err
	}

	var out *dto.OrderResponse
	err = uc.tx.Run(ctx, func(
		orders repository.OrderRepository,
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error {
		// Releer dentro de la tx: el estado visto fuera puede estar viejo.
		order, err := orders.GetByID(id, repository.VisibleAll())
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if t := order.Complete(now); !t.Applied {
			return domain.ErrConflict
		}
		for i := range order.Items {
			item := &order.Items[i]
			product, err := products.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				// Producto borrado después de crear la orden: sin stock que tocar.
				continue
			}
			movement := product.UpdateStock(-item.Quantity, true, now)
			movement.AssignID(uuid.New().String())
			if err := products.Update(product); err != nil {
				return err
			}
			if err := movements.Insert(movement); err != nil {
				return err
			}
		}
		if err := orders.Update(order); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", id).Msg("orden completada")
	return out, nil
}

// Cancel transiciona la orden a cancelled. Sin efecto de inventario: una
// orden pendiente nunca descontó stock. No-op → ErrConflict.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor *entity.User, id string) (*dto.OrderResponse, error) {
	visible, err := uc.mgr.GetByID(actor, id)
	if err != nil || visible == nil {
		return nil, err
	}
	if err := uc.policy.CanUpdate(actor, visible); err != nil {
		return nil, err
	}

	var out *dto.OrderResponse
	err = uc.tx.Run(ctx, func(
		orders repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		order, err := orders.GetByID(id, repository.VisibleAll())
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if t := order.Cancel(time.Now()); !t.Applied {
			return domain.ErrConflict
		}
		if err := orders.Update(order); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", id).Msg("orden cancelada")
	return out, nil
}

// Refund transiciona completed -> refunded y restituye el stock de cada
// línea (movimiento de tipo addition, no venta). Requiere sales:refund.
func (uc *OrderUseCase) Refund(ctx context.Context, actor *entity.User, id string) (*dto.OrderResponse, error) {
	visible, err := uc.mgr.GetByID(actor, id)
	if err != nil || visible == nil {
		return nil, err
	}
	if !uc.perms.Has(actor, permission.SalesRefund) {
		return nil, domain.ErrForbidden
	}

	var out *dto.OrderResponse
	err = uc.tx.Run(ctx, func(
		orders repository.OrderRepository,
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error {
		order, err := orders.GetByID(id, repository.VisibleAll())
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if t := order.Refund(now); !t.Applied {
			return domain.ErrConflict
		}
		for i := range order.Items {
			item := &order.Items[i]
			product, err := products.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				continue
			}
			movement := product.UpdateStock(item.Quantity, false, now)
			movement.AssignID(uuid.New().String())
			if err := products.Update(product); err != nil {
				return err
			}
			if err := movements.Insert(movement); err != nil {
				return err
			}
		}
		if err := orders.Update(order); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", id).Msg("orden reembolsada")
	return out, nil
}
