package dto

import "time"

// CreateUsuarioRequest alta de usuario (la contraseña se hashea en el caso de uso).
type CreateUsuarioRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=200"`
	DNI            string `json:"dni" validate:"required,dni"`
	Telefono       string `json:"telefono" validate:"omitempty,max=20"`
	Usuario        string `json:"usuario" validate:"required,min=3,max=50"`
	Correo         string `json:"correo" validate:"required,email"`
	Contrasena     string `json:"contrasena" validate:"required,min=6"`
	Rol            string `json:"rol" validate:"required,oneof=Administrador Colaborador"`
	Estado         string `json:"estado" validate:"omitempty,oneof=Activo Inactivo"`
}

// UpdateUsuarioRequest edición; contraseña vacía conserva la actual.
type UpdateUsuarioRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=200"`
	DNI            string `json:"dni" validate:"required,dni"`
	Telefono       string `json:"telefono" validate:"omitempty,max=20"`
	Usuario        string `json:"usuario" validate:"required,min=3,max=50"`
	Correo         string `json:"correo" validate:"required,email"`
	Contrasena     string `json:"contrasena" validate:"omitempty,min=6"`
	Rol            string `json:"rol" validate:"required,oneof=Administrador Colaborador"`
	Estado         string `json:"estado" validate:"required,oneof=Activo Inactivo"`
}

// CambiarEstadoUsuarioRequest activar o desactivar.
type CambiarEstadoUsuarioRequest struct {
	Estado string `json:"estado" validate:"required,oneof=Activo Inactivo"`
}

// UsuarioListRequest filtros del listado.
type UsuarioListRequest struct {
	Estado string `query:"estado"`
	Rol    string `query:"rol"`
	Buscar string `query:"buscar"`
}

// UsuarioResponse salida de un usuario (sin contraseña).
type UsuarioResponse struct {
	ID             int64     `json:"id"`
	NombreCompleto string    `json:"nombre_completo"`
	DNI            string    `json:"dni"`
	Telefono       string    `json:"telefono"`
	Usuario        string    `json:"usuario"`
	Correo         string    `json:"correo"`
	Rol            string    `json:"rol"`
	Estado         string    `json:"estado"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UsuarioEstadisticasResponse tarjetas del módulo de usuarios.
type UsuarioEstadisticasResponse struct {
	Total           int `json:"total"`
	Activos         int `json:"activos"`
	Inactivos       int `json:"inactivos"`
	Administradores int `json:"administradores"`
	Colaboradores   int `json:"colaboradores"`
}

// LoginRequest entrada de login: usuario o correo más contraseña.
type LoginRequest struct {
	Usuario    string `json:"usuario" validate:"required"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}
