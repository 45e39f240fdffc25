package entity

import "time"

// Meta campos comunes a todas las entidades persistentes: clave surrogate
// y timestamps. Se embebe en cada entidad (equivalente a un modelo base).
type Meta struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordID devuelve la clave primaria.
func (m *Meta) RecordID() string { return m.ID }

// AssignID asigna la clave primaria (solo en creación).
func (m *Meta) AssignID(id string) { m.ID = id }

// Stamp fija CreatedAt y UpdatedAt al momento de creación.
func (m *Meta) Stamp(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Touch refresca UpdatedAt en cada mutación.
func (m *Meta) Touch(now time.Time) { m.UpdatedAt = now }

// Record contrato mínimo que exige el query manager genérico.
// Lo implementa cualquier entidad que embeba Meta.
type Record interface {
	RecordID() string
	AssignID(id string)
	Stamp(now time.Time)
	Touch(now time.Time)
}
