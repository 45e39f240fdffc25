package entity

// Roles estándar. Role admite además nombres de roles personalizados
// registrados en runtime, por eso es string y no un tipo cerrado.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// IsStandardRole indica si el nombre corresponde a un rol estándar.
func IsStandardRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleCashier
}

// User representa un usuario del sistema (actor de las operaciones).
// Los superusuarios pasan por alto todos los chequeos de permisos.
type User struct {
	Meta
	Email          string
	HashedPassword string // bcrypt hash, nunca plano en dominio después de persistir
	FullName       string
	Role           string // estándar (admin, manager, cashier) o personalizado
	IsActive       bool
	IsSuperuser    bool
}
