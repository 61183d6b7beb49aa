package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdministrador = "Administrador"
	RolColaborador   = "Colaborador"
)

// Estados de cuenta.
const (
	UsuarioActivo   = "Activo"
	UsuarioInactivo = "Inactivo"
)

// Usuario funcionario con acceso al panel.
type Usuario struct {
	ID             int64
	NombreCompleto string
	DNI            string
	Telefono       string
	Usuario        string
	Correo         string
	PasswordHash   string // bcrypt, nunca en claro
	Rol            string
	Estado         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EsAdmin indica si el usuario tiene rol Administrador.
func (u *Usuario) EsAdmin() bool {
	return u.Rol == RolAdministrador
}
