package repository

// Scope alcance de filas que un actor puede ver.
type Scope int

const (
	// ScopeNone ninguna fila (actor sin permiso de lectura o anónimo).
	ScopeNone Scope = iota
	// ScopeMine solo las filas cuyo dueño es el actor.
	ScopeMine
	// ScopeAll todas las filas.
	ScopeAll
)

// Visibility predicado de visibilidad por fila que los adaptadores de
// persistencia componen en el WHERE de sus queries. Para ScopeMine,
// OwnerID es el ID del actor y cada repositorio sabe contra qué columna
// compararlo (cashier_id en órdenes, id en usuarios).
type Visibility struct {
	Scope   Scope
	OwnerID string
}

// VisibleAll visibilidad sin restricción.
func VisibleAll() Visibility { return Visibility{Scope: ScopeAll} }

// VisibleNone visibilidad nula.
func VisibleNone() Visibility { return Visibility{Scope: ScopeNone} }

// VisibleMine visibilidad restringida a las filas del dueño.
func VisibleMine(ownerID string) Visibility {
	return Visibility{Scope: ScopeMine, OwnerID: ownerID}
}
