package entity

// Tipos de movimiento de inventario.
const (
	MovementAddition   = "addition"
	MovementRemoval    = "removal"
	MovementSale       = "sale"
	MovementReturn     = "return"
	MovementAdjustment = "adjustment"
)

// StockMovement registro de auditoría inmutable de cada cambio de inventario.
// Quantity guarda la magnitud absoluta; el sentido lo da MovementType.
// El sistema nunca actualiza ni borra estas filas.
type StockMovement struct {
	Meta
	ProductID    string
	Quantity     int64
	MovementType string
	Notes        string
}
