package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/roles"
)

// RoleHandler maneja la administración de roles y permisos (protegido).
type RoleHandler struct {
	uc *roles.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *roles.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// ListPermissions godoc
// @Summary      Catálogo completo de permisos
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/permissions [get]
func (h *RoleHandler) ListPermissions(c *fiber.Ctx) error {
	out, err := h.uc.AllPermissions(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListRoles godoc
// @Summary      Todos los roles (estándar y personalizados) con sus permisos
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RoleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/roles [get]
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.AllRoles(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRole godoc
// @Summary      Permisos de un rol puntual
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del rol"
// @Success      200   {object}  dto.RoleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{name} [get]
func (h *RoleHandler) GetRole(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "name es requerido"})
	}
	out, err := h.uc.RolePermissions(GetActor(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateRole godoc
// @Summary      Definir rol personalizado
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "name, permissions"
// @Success      201   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateCustomRole(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRole godoc
// @Summary      Redefinir permisos de un rol personalizado
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre del rol"
// @Param        body  body  dto.RoleRequest  true  "permissions"
// @Success      200   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{name} [put]
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "name es requerido"})
	}
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateCustomRole(GetActor(c), name, in.Permissions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteRole godoc
// @Summary      Eliminar rol personalizado (rechaza si está en uso)
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del rol"
// @Success      200   {object}  dto.RoleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles/{name} [delete]
func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "name es requerido"})
	}
	out, err := h.uc.DeleteCustomRole(GetActor(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
