package repository

import (
	"context"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
)

// UsuarioFilter filtros del listado de usuarios.
type UsuarioFilter struct {
	Estado string
	Rol    string
	Buscar string // nombre, usuario, correo o DNI (ILIKE)
}

// UsuarioStats conteos para las tarjetas del módulo de usuarios.
type UsuarioStats struct {
	Total           int
	Activos         int
	Inactivos       int
	Administradores int
	Colaboradores   int
}

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id int64) (*entity.Usuario, error)
	// FindByLogin busca por nombre de usuario o correo.
	FindByLogin(ctx context.Context, login string) (*entity.Usuario, error)
	List(ctx context.Context, f UsuarioFilter) ([]*entity.Usuario, error)
	Stats(ctx context.Context) (UsuarioStats, error)
	Update(ctx context.Context, u *entity.Usuario) error
	Delete(ctx context.Context, id int64) error
}
