package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// visibilityClause traduce la visibilidad a una condición SQL adicional.
// ownerColumn es la columna que identifica al dueño de la fila (cashier_id
// en órdenes, id en usuarios); nextArg es el índice del siguiente
// placeholder. Devuelve la condición (vacía para ScopeAll) y sus argumentos.
func visibilityClause(vis repository.Visibility, ownerColumn string, nextArg int) (string, []any) {
	switch vis.Scope {
	case repository.ScopeAll:
		return "", nil
	case repository.ScopeMine:
		return fmt.Sprintf("%s = $%d", ownerColumn, nextArg), []any{vis.OwnerID}
	default:
		// ScopeNone: condición imposible, cero filas sin ida extra a la DB
		return "FALSE", nil
	}
}
