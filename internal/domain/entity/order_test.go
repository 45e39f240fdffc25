package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

func newPendingOrder() *entity.Order {
	o := &entity.Order{
		PaymentMethod: entity.PaymentCash,
		Status:        entity.OrderPending,
	}
	o.AssignID("order-1")
	o.Stamp(time.Now())
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados — la entidad es tolerante: transición inválida = no-op
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_DesdePending(t *testing.T) {
	o := newPendingOrder()

	tr := o.Complete(time.Now())

	assert.True(t, tr.Applied)
	assert.Equal(t, entity.OrderCompleted, o.Status)
}

// Completar dos veces: la segunda es no-op y la orden queda intacta.
func TestComplete_DosVeces_SegundaEsNoOp(t *testing.T) {
	o := newPendingOrder()
	o.Complete(time.Now())

	tr := o.Complete(time.Now())

	assert.False(t, tr.Applied, "completar una orden ya completada no aplica")
	assert.Equal(t, entity.OrderCompleted, o.Status, "el estado no cambia")
}

func TestCancel_DesdePending(t *testing.T) {
	o := newPendingOrder()

	tr := o.Cancel(time.Now())

	assert.True(t, tr.Applied)
	assert.Equal(t, entity.OrderCancelled, o.Status)
}

// Cancelar una orden completada es no-op: solo pending se cancela.
func TestCancel_DesdeCompleted_EsNoOp(t *testing.T) {
	o := newPendingOrder()
	o.Complete(time.Now())

	tr := o.Cancel(time.Now())

	assert.False(t, tr.Applied)
	assert.Equal(t, entity.OrderCompleted, o.Status)
}

func TestRefund_DesdeCompleted(t *testing.T) {
	o := newPendingOrder()
	o.Complete(time.Now())

	tr := o.Refund(time.Now())

	assert.True(t, tr.Applied)
	assert.Equal(t, entity.OrderRefunded, o.Status)
}

// Reembolsar una pendiente o una cancelada es no-op.
func TestRefund_DesdeEstadosInvalidos_EsNoOp(t *testing.T) {
	pending := newPendingOrder()
	assert.False(t, pending.Refund(time.Now()).Applied)
	assert.Equal(t, entity.OrderPending, pending.Status)

	cancelled := newPendingOrder()
	cancelled.Cancel(time.Now())
	assert.False(t, cancelled.Refund(time.Now()).Applied)
	assert.Equal(t, entity.OrderCancelled, cancelled.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateTotal — valor derivado, se refresca explícitamente
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateTotal_SumaLineas(t *testing.T) {
	o := newPendingOrder()
	o.Items = []entity.OrderItem{
		{Quantity: 3, UnitPrice: decimal.NewFromFloat(10.50)}, // 31.50
		{Quantity: 2, UnitPrice: decimal.NewFromFloat(31.75)}, // 63.50
	}

	total := o.CalculateTotal()

	assert.True(t, decimal.NewFromFloat(95.0).Equal(total), "total esperado 95.0, fue %s", total)
	assert.True(t, o.TotalAmount.Equal(total), "TotalAmount debe quedar sincronizado")
}

func TestCalculateTotal_SinLineas(t *testing.T) {
	o := newPendingOrder()

	total := o.CalculateTotal()

	assert.True(t, total.IsZero())
}

func TestSubtotal(t *testing.T) {
	it := entity.OrderItem{Quantity: 4, UnitPrice: decimal.NewFromFloat(2.25)}
	assert.True(t, decimal.NewFromFloat(9.0).Equal(it.Subtotal()))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentCash))
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMobilePayment))
	assert.False(t, entity.ValidPaymentMethod("bitcoin"))
	assert.False(t, entity.ValidPaymentMethod(""))
}
