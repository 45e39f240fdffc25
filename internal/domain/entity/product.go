package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto (enum cerrado).
const (
	CategoryGrocery      = "grocery"
	CategoryDairy        = "dairy"
	CategoryMeat         = "meat"
	CategoryProduce      = "produce"
	CategoryBakery       = "bakery"
	CategoryFrozen       = "frozen"
	CategoryBeverages    = "beverages"
	CategoryHousehold    = "household"
	CategoryPersonalCare = "personal_care"
	CategoryOther        = "other"
)

// ValidCategory indica si la categoría pertenece al enum.
func ValidCategory(c string) bool {
	switch c {
	case CategoryGrocery, CategoryDairy, CategoryMeat, CategoryProduce,
		CategoryBakery, CategoryFrozen, CategoryBeverages, CategoryHousehold,
		CategoryPersonalCare, CategoryOther:
		return true
	}
	return false
}

// Product representa un producto del inventario.
// Quantity puede quedar negativa: el flujo de venta concurrente lo permite
// a propósito y el piso en cero no se impone en esta capa.
type Product struct {
	Meta
	Name         string
	Description  string
	SKU          string // código único, la unicidad la impone el storage
	Category     string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	Quantity     int64
	ReorderLevel int64  // umbral en o bajo el cual el producto está en "low stock"
	SupplierID   string // referencia débil a Supplier, vacío si no tiene
}

// LowStock indica si el producto está en o bajo su umbral de reposición.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// UpdateStock aplica un cambio de cantidad (positivo o negativo) y devuelve
// el movimiento de auditoría correspondiente. Es el único punto por el que
// pasan todas las mutaciones de inventario; no impone piso en cero.
// El movimiento guarda la magnitud absoluta y el tipo derivado del signo
// y del flag isSale. La persistencia de producto y movimiento queda a cargo
// del caller dentro de su transacción; el movimiento se devuelve sin clave,
// el caller debe asignarla antes de insertarlo.
func (p *Product) UpdateStock(change int64, isSale bool, now time.Time) *StockMovement {
	p.Quantity += change
	p.Touch(now)

	movementType := MovementAddition
	switch {
	case isSale:
		movementType = MovementSale
	case change < 0:
		movementType = MovementRemoval
	}

	qty := change
	if qty < 0 {
		qty = -qty
	}
	m := &StockMovement{
		ProductID:    p.ID,
		Quantity:     qty,
		MovementType: movementType,
	}
	m.Stamp(now)
	return m
}
