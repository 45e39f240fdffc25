package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

// Métodos de pago.
const (
	PaymentCash          = "cash"
	PaymentCreditCard    = "credit_card"
	PaymentDebitCard     = "debit_card"
	PaymentMobilePayment = "mobile_payment"
	PaymentOther         = "other"
)

// ValidPaymentMethod indica si el método de pago pertenece al enum.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentMobilePayment, PaymentOther:
		return true
	}
	return false
}

// Transition resultado etiquetado de una transición de estado.
// Applied=false significa que la transición era inválida y la orden quedó
// intacta; la entidad nunca falla por eso, el límite del servicio decide
// si el no-op es un error para su caller.
type Transition struct {
	Applied bool
}

// Order representa una venta. Posee sus líneas por composición; los
// productos se referencian solo por ID. Las órdenes nunca se borran,
// solo se cancelan o reembolsan.
type Order struct {
	Meta
	CustomerName  string
	TotalAmount   decimal.Decimal // derivado de las líneas, ver CalculateTotal
	PaymentMethod string
	Status        string
	CashierID     string // usuario que creó la orden, vacío si no aplica
	Items         []OrderItem
}

// OrderItem línea de una orden. UnitPrice es un snapshot del precio al
// momento de la venta: cambios posteriores del producto no alteran
// órdenes históricas.
type OrderItem struct {
	Meta
	OrderID   string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal de la línea (cantidad por precio unitario).
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// CalculateTotal recalcula TotalAmount sumando las líneas. No se invoca
// automáticamente al mutar líneas: es un valor derivado que el flujo de
// creación debe refrescar explícitamente.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	o.TotalAmount = total
	return total
}

// Complete transiciona pending -> completed. Desde cualquier otro estado
// es un no-op. El efecto de inventario (descontar stock por línea) lo
// aplica el caso de uso cuando Applied es true.
func (o *Order) Complete(now time.Time) Transition {
	if o.Status != OrderPending {
		return Transition{Applied: false}
	}
	o.Status = OrderCompleted
	o.Touch(now)
	return Transition{Applied: true}
}

// Cancel transiciona pending -> cancelled. Sin efecto de inventario:
// una orden pendiente nunca descontó stock.
func (o *Order) Cancel(now time.Time) Transition {
	if o.Status != OrderPending {
		return Transition{Applied: false}
	}
	o.Status = OrderCancelled
	o.Touch(now)
	return Transition{Applied: true}
}

// Refund transiciona completed -> refunded. El caso de uso restituye el
// stock de cada línea cuando Applied es true.
func (o *Order) Refund(now time.Time) Transition {
	if o.Status != OrderCompleted {
		return Transition{Applied: false}
	}
	o.Status = OrderRefunded
	o.Touch(now)
	return Transition{Applied: true}
}
