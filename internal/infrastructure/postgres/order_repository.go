package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_name, total_amount, payment_method, status, cashier_id, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las lecturas devuelven las órdenes con sus líneas cargadas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Insert persiste la cabecera de una orden (las líneas van por InsertItem).
func (r *OrderRepo) Insert(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_name, total_amount, payment_method, status, cashier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerName, order.TotalAmount, order.PaymentMethod,
		order.Status, order.CashierID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden con sus líneas respetando la visibilidad.
// Para ScopeMine el dueño de la fila es el cajero (columna cashier_id).
func (r *OrderRepo) GetByID(id string, vis repository.Visibility) (*entity.Order, error) {
	where, args := visibilityClause(vis, "cashier_id", 2)
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if where != "" {
		query += ` AND ` + where
	}
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, append([]any{id}, args...)...).Scan(
		&o.ID, &o.CustomerName, &o.TotalAmount, &o.PaymentMethod, &o.Status,
		&o.CashierID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.ListItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// List lista órdenes con paginación respetando la visibilidad.
func (r *OrderRepo) List(limit, offset int, vis repository.Visibility) ([]*entity.Order, error) {
	where, args := visibilityClause(vis, "cashier_id", 3)
	query := `SELECT ` + orderColumns + ` FROM orders`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(query, append([]any{limit, offset}, args...)...)
}

// ListByDateRange lista órdenes creadas en [from, to] con paginación,
// opcionalmente filtradas por estado. Lo usan los reportes de ventas, que
// ya exigen su propio permiso; el filtro de estado va en el WHERE para que
// una página no se consuma con órdenes que el reporte igual descartaría.
func (r *OrderRepo) ListByDateRange(from, to time.Time, status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE created_at >= $1 AND created_at <= $2`
	args := []any{from, to}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.queryOrders(query, args...)
}

func (r *OrderRepo) queryOrders(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.TotalAmount, &o.PaymentMethod, &o.Status,
			&o.CashierID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.ListItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

// Update actualiza la cabecera de una orden (estado, cliente, método de pago, total).
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET customer_name = $2, total_amount = $3, payment_method = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerName, order.TotalAmount, order.PaymentMethod,
		order.Status, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina una orden. La política lo prohíbe en operación normal;
// existe por el contrato del manager genérico.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// InsertItem persiste una línea de orden.
func (r *OrderRepo) InsertItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// ListItems lista las líneas de una orden.
func (r *OrderRepo) ListItems(orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, created_at, updated_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
