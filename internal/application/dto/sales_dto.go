package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea pedida al crear una orden. UnitPrice nil toma el
// precio vigente del producto.
type OrderItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest entrada para crear una orden.
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest actualización parcial de una orden (no toca líneas ni estado).
type UpdateOrderRequest struct {
	CustomerName  *string `json:"customer_name"`
	PaymentMethod *string `json:"payment_method"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse salida de una orden con sus líneas.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	CashierID     string              `json:"cashier_id,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// DateRangeRequest rango de fechas para reportes.
type DateRangeRequest struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// SalesSummary resumen de ventas de un rango (solo órdenes completadas).
type SalesSummary struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	OrderCount        int             `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
}

// DailySalesEntry ventas completadas de un día calendario.
type DailySalesEntry struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int             `json:"order_count"`
}
