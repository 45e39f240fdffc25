package dto

// RoleRequest definición de un rol personalizado.
type RoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// RoleResponse rol con sus permisos ordenados.
type RoleResponse struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
