// Package query implementa el motor CRUD genérico con filtrado de
// visibilidad y compuertas de permiso por entidad. La política concreta
// se inyecta como estrategia (Policy) en vez de heredarse, de modo que
// cada entidad declara sus reglas sin duplicar el CRUD.
package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Store primitivas de persistencia que el manager necesita de cada entidad.
// Los adaptadores postgres las implementan componiendo Visibility en el WHERE.
type Store[T entity.Record] interface {
	Insert(rec T) error
	GetByID(id string, vis repository.Visibility) (T, error)
	List(limit, offset int, vis repository.Visibility) ([]T, error)
	Update(rec T) error
	Delete(id string) error
}

// Policy reglas de acceso de una entidad: qué filas puede ver un actor y
// qué mutaciones puede hacer. Actor nil representa un caller no autenticado
// y cada compuerta debe tratarlo como el caso más restrictivo, salvo que la
// operación admita acceso anónimo (ej. registro de usuarios).
// Las compuertas devuelven nil (permitido) o domain.ErrForbidden.
type Policy[T entity.Record] interface {
	VisibilityFor(actor *entity.User) repository.Visibility
	CanCreate(actor *entity.User) error
	CanUpdate(actor *entity.User, target T) error
	CanDelete(actor *entity.User, target T) error
}

// Manager CRUD genérico sobre una entidad: aplica el filtro de visibilidad
// en las lecturas y las compuertas de permiso en las mutaciones.
type Manager[T entity.Record] struct {
	store  Store[T]
	policy Policy[T]
}

// NewManager compone el motor con el store y la política de la entidad.
func NewManager[T entity.Record](store Store[T], policy Policy[T]) *Manager[T] {
	return &Manager[T]{store: store, policy: policy}
}

// GetByID busca por clave primaria dentro de lo visible para el actor.
// "No existe" y "existe pero no lo puedes ver" son indistinguibles: ambos
// devuelven el cero sin error, para no confirmar existencia de registros
// ajenos.
func (m *Manager[T]) GetByID(actor *entity.User, id string) (T, error) {
	var zero T
	vis := m.policy.VisibilityFor(actor)
	if vis.Scope == repository.ScopeNone {
		return zero, nil
	}
	return m.store.GetByID(id, vis)
}

// List devuelve una página de filas visibles para el actor. La paginación
// es controlada por el caller, sin máximo impuesto en esta capa.
func (m *Manager[T]) List(actor *entity.User, limit, offset int) ([]T, error) {
	vis := m.policy.VisibilityFor(actor)
	if vis.Scope == repository.ScopeNone {
		return nil, nil
	}
	return m.store.List(limit, offset, vis)
}

// Create corre la compuerta de creación, asigna clave y timestamps y
// persiste. Devuelve la fila ya poblada.
func (m *Manager[T]) Create(actor *entity.User, rec T) (T, error) {
	var zero T
	if err := m.policy.CanCreate(actor); err != nil {
		return zero, err
	}
	rec.AssignID(uuid.New().String())
	rec.Stamp(time.Now())
	if err := m.store.Insert(rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update corre la compuerta de actualización (recibe la entidad destino,
// lo que habilita reglas tipo "puede editarse a sí mismo"), aplica la
// mutación parcial vía apply (solo los campos presentes en la petición;
// no es un reemplazo completo) y refresca UpdatedAt.
func (m *Manager[T]) Update(actor *entity.User, target T, apply func(T)) (T, error) {
	var zero T
	if err := m.policy.CanUpdate(actor, target); err != nil {
		return zero, err
	}
	apply(target)
	target.Touch(time.Now())
	if err := m.store.Update(target); err != nil {
		return zero, err
	}
	return target, nil
}

// Delete corre la compuerta de borrado y elimina la fila. Devuelve la
// entidad ya desacoplada del storage para que el caller arme su respuesta.
func (m *Manager[T]) Delete(actor *entity.User, target T) (T, error) {
	var zero T
	if err := m.policy.CanDelete(actor, target); err != nil {
		return zero, err
	}
	if err := m.store.Delete(target.RecordID()); err != nil {
		return zero, err
	}
	return target, nil
}
