package permission

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// NewDefaultRegistry crea el registro con la tabla fija de permisos
// estándar. Debe ejecutarse una sola vez al arranque, antes de cualquier
// chequeo de permisos; después solo mutan los roles personalizados.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Gestión de usuarios
	r.RegisterPermission(UsersCreate)
	r.RegisterPermission(UsersRead, entity.RoleManager)
	r.RegisterPermission(UsersUpdate)
	r.RegisterPermission(UsersDelete)

	// Inventario
	r.RegisterPermission(InventoryCreate, entity.RoleManager)
	r.RegisterPermission(InventoryRead, entity.RoleManager, entity.RoleCashier)
	r.RegisterPermission(InventoryUpdate, entity.RoleManager)
	r.RegisterPermission(InventoryDelete, entity.RoleManager)
	r.RegisterPermission(InventoryManageStock, entity.RoleManager)

	// Proveedores
	r.RegisterPermission(SupplierCreate, entity.RoleManager)
	r.RegisterPermission(SupplierRead, entity.RoleManager, entity.RoleCashier)
	r.RegisterPermission(SupplierUpdate, entity.RoleManager)
	r.RegisterPermission(SupplierDelete, entity.RoleManager)

	// Ventas
	r.RegisterPermission(SalesCreate, entity.RoleManager, entity.RoleCashier)
	r.RegisterPermission(SalesRead, entity.RoleManager, entity.RoleCashier)
	r.RegisterPermission(SalesUpdate, entity.RoleManager)
	r.RegisterPermission(SalesComplete, entity.RoleManager, entity.RoleCashier)
	r.RegisterPermission(SalesCancel, entity.RoleManager, entity.RoleCashier)
	r.RegisterPermission(SalesRefund, entity.RoleManager)

	// Reportes
	r.RegisterPermission(ReportsView, entity.RoleManager)
	r.RegisterPermission(ReportsExport, entity.RoleManager)

	return r
}
