package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementa repository.UsuarioRepository.
type UsuarioRepo struct {
	db Querier
}

func NewUsuarioRepository(db Querier) *UsuarioRepo {
	return &UsuarioRepo{db: db}
}

const usuarioSelect = `
	SELECT id, nombre_completo, dni, telefono, usuario, correo, password_hash, rol, estado, created_at, updated_at
	FROM usuarios`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	u := &entity.Usuario{}
	err := row.Scan(&u.ID, &u.NombreCompleto, &u.DNI, &u.Telefono, &u.Usuario, &u.Correo,
		&u.PasswordHash, &u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (nombre_completo, dni, telefono, usuario, correo, password_hash, rol, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		u.NombreCompleto, u.DNI, u.Telefono, u.Usuario, u.Correo, u.PasswordHash, u.Rol, u.Estado,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	u, err := scanUsuario(r.db.QueryRow(ctx, usuarioSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UsuarioRepo) FindByLogin(ctx context.Context, login string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.db.QueryRow(ctx, usuarioSelect+` WHERE usuario = $1 OR lower(correo) = lower($1)`, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UsuarioRepo) List(ctx context.Context, f repository.UsuarioFilter) ([]*entity.Usuario, error) {
	var w whereBuilder
	if f.Estado != "" {
		w.add("estado = ?", f.Estado)
	}
	if f.Rol != "" {
		w.add("rol = ?", f.Rol)
	}
	if f.Buscar != "" {
		w.add("(nombre_completo ILIKE ? OR usuario ILIKE ? OR correo ILIKE ? OR dni ILIKE ?)",
			"%"+f.Buscar+"%", "%"+f.Buscar+"%", "%"+f.Buscar+"%", "%"+f.Buscar+"%")
	}
	rows, err := r.db.Query(ctx, usuarioSelect+w.sql()+` ORDER BY nombre_completo`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UsuarioRepo) Stats(ctx context.Context) (repository.UsuarioStats, error) {
	var s repository.UsuarioStats
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE estado = 'Activo'),
			COUNT(*) FILTER (WHERE estado = 'Inactivo'),
			COUNT(*) FILTER (WHERE rol = 'Administrador'),
			COUNT(*) FILTER (WHERE rol = 'Colaborador')
		FROM usuarios`
	err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Activos, &s.Inactivos, &s.Administradores, &s.Colaboradores)
	if err != nil {
		return s, fmt.Errorf("stats usuarios: %w", err)
	}
	return s, nil
}

// Update persiste todos los campos editables, incluido el hash de contraseña.
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios
		SET nombre_completo = $2, dni = $3, telefono = $4, usuario = $5, correo = $6,
			password_hash = $7, rol = $8, estado = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		u.ID, u.NombreCompleto, u.DNI, u.Telefono, u.Usuario, u.Correo, u.PasswordHash, u.Rol, u.Estado,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
