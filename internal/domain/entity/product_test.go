package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

func newProduct(quantity, reorderLevel int64) *entity.Product {
	p := &entity.Product{
		Name:         "Leche entera 1L",
		SKU:          "LACT-001",
		Category:     entity.CategoryDairy,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
	p.AssignID("prod-1")
	p.Stamp(time.Now())
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStock — el único punto por el que muta el inventario
// ──────────────────────────────────────────────────────────────────────────────

// Un cambio positivo suma al stock y produce un movimiento "addition".
func TestUpdateStock_AgregaStock(t *testing.T) {
	p := newProduct(10, 5)
	now := time.Now()

	m := p.UpdateStock(7, false, now)

	assert.Equal(t, int64(17), p.Quantity)
	require.NotNil(t, m)
	assert.Equal(t, entity.MovementAddition, m.MovementType)
	assert.Equal(t, int64(7), m.Quantity, "el movimiento guarda la magnitud")
	assert.Equal(t, "prod-1", m.ProductID)
}

// Un cambio negativo sin flag de venta produce un movimiento "removal"
// con la magnitud absoluta.
func TestUpdateStock_QuitaStock(t *testing.T) {
	p := newProduct(10, 5)

	m := p.UpdateStock(-4, false, time.Now())

	assert.Equal(t, int64(6), p.Quantity)
	assert.Equal(t, entity.MovementRemoval, m.MovementType)
	assert.Equal(t, int64(4), m.Quantity, "la magnitud nunca es negativa")
}

// Una venta produce un movimiento "sale" sin importar el signo.
func TestUpdateStock_Venta(t *testing.T) {
	p := newProduct(10, 5)

	m := p.UpdateStock(-3, true, time.Now())

	assert.Equal(t, int64(7), p.Quantity)
	assert.Equal(t, entity.MovementSale, m.MovementType)
	assert.Equal(t, int64(3), m.Quantity)
}

// El primitivo de dominio no impone piso en cero: el flujo de ventas
// concurrentes puede dejar stock negativo y eso se conserva tal cual.
func TestUpdateStock_PermiteNegativo(t *testing.T) {
	p := newProduct(2, 5)

	m := p.UpdateStock(-5, true, time.Now())

	assert.Equal(t, int64(-3), p.Quantity, "el stock negativo se conserva, no se recorta a cero")
	assert.Equal(t, int64(5), m.Quantity)
}

// UpdateStock refresca UpdatedAt del producto y estampa el movimiento.
func TestUpdateStock_Timestamps(t *testing.T) {
	p := newProduct(10, 5)
	now := time.Now().Add(time.Hour)

	m := p.UpdateStock(1, false, now)

	assert.Equal(t, now, p.UpdatedAt)
	assert.Equal(t, now, m.CreatedAt)
	assert.Equal(t, now, m.UpdatedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// LowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock(t *testing.T) {
	assert.False(t, newProduct(10, 5).LowStock(), "sobre el umbral no es low stock")
	assert.True(t, newProduct(5, 5).LowStock(), "el umbral exacto cuenta como low stock")
	assert.True(t, newProduct(-1, 0).LowStock(), "stock negativo siempre es low stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestValidCategory(t *testing.T) {
	assert.True(t, entity.ValidCategory(entity.CategoryGrocery))
	assert.True(t, entity.ValidCategory(entity.CategoryOther))
	assert.False(t, entity.ValidCategory("electronics"), "categoría fuera del enum")
	assert.False(t, entity.ValidCategory(""))
}
