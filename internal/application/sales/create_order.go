package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Create crea una orden pendiente con sus líneas en una sola transacción.
// Por cada línea el producto debe existir y tener stock suficiente; si no,
// toda la transacción se revierte y no queda orden ni líneas a medias.
// El precio unitario por defecto es el precio vigente del producto
// (snapshot: cambios de precio posteriores no tocan órdenes históricas).
// Crear NO descuenta stock: eso ocurre recién en Complete, por lo que dos
// órdenes pendientes concurrentes pueden reservar de más contra el mismo
// disponible; comportamiento de negocio aceptado, no un bug.
func (uc *OrderUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := uc.policy.CanCreate(actor); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	order := &entity.Order{
		CustomerName:  in.CustomerName,
		PaymentMethod: paymentMethod,
		Status:        entity.OrderPending,
	}
	if actor != nil {
		order.CashierID = actor.ID
	}
	order.AssignID(uuid.New().String())
	order.Stamp(now)

	err := uc.tx.Run(ctx, func(
		orders repository.OrderRepository,
		products repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := orders.Insert(order); err != nil {
			return err
		}
		for _, item := range in.Items {
			product, err := products.GetByID(item.ProductID, repository.VisibleAll())
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Quantity < item.Quantity {
				return domain.ErrInsufficientStock
			}
			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			line := entity.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			}
			line.AssignID(uuid.New().String())
			line.Stamp(now)
			if err := orders.InsertItem(&line); err != nil {
				return err
			}
			order.Items = append(order.Items, line)
		}
		order.CalculateTotal()
		return orders.Update(order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("cashier_id", order.CashierID).
		Int("items", len(order.Items)).
		Msg("orden creada")
	return toOrderResponse(order), nil
}
