package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/roles"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	OrderUC    *sales.OrderUseCase
	RoleUC     *roles.RoleUseCase
	AuthUC     *auth.AuthUseCase
	Users      repository.UserRepository
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: token válido + actor vivo cargado de la DB
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), CurrentUser(deps.Users))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock", productHandler.UpdateStock)
	products.Get("/:id/movements", productHandler.ListMovements)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/complete", orderHandler.Complete)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/refund", orderHandler.Refund)

	// Reports (protegido)
	reportHandler := NewReportHandler(deps.OrderUC)
	protected.Get("/reports/sales", reportHandler.SalesSummary)
	protected.Get("/reports/daily-sales", reportHandler.DailySales)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Roles y permisos (protegido)
	roleHandler := NewRoleHandler(deps.RoleUC)
	protected.Get("/permissions", roleHandler.ListPermissions)
	rolesGroup := protected.Group("/roles")
	rolesGroup.Get("/", roleHandler.ListRoles)
	rolesGroup.Post("/", roleHandler.CreateRole)
	rolesGroup.Get("/:name", roleHandler.GetRole)
	rolesGroup.Put("/:name", roleHandler.UpdateRole)
	rolesGroup.Delete("/:name", roleHandler.DeleteRole)
}
