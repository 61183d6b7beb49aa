package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	"github.com/ugelsanta/expedientes-api/pkg/logger"
)

// UsuarioUseCase administración de usuarios del panel (solo administradores).
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
	log  *logger.Logger
}

// NewUsuarioUseCase construye el caso de uso con el puerto de persistencia.
func NewUsuarioUseCase(repo repository.UsuarioRepository, log *logger.Logger) *UsuarioUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UsuarioUseCase{repo: repo, log: log.Component("usuario")}
}

// List usuarios filtrados por estado, rol y texto.
func (uc *UsuarioUseCase) List(ctx context.Context, in dto.UsuarioListRequest) ([]dto.UsuarioResponse, error) {
	f := repository.UsuarioFilter{
		Estado: strings.TrimSpace(in.Estado),
		Rol:    strings.TrimSpace(in.Rol),
		Buscar: strings.TrimSpace(in.Buscar),
	}
	if f.Estado == "Todos" {
		f.Estado = ""
	}
	if f.Rol == "Todos" {
		f.Rol = ""
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("usuario: listar: %w", err)
	}
	out := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.NewUsuarioResponse(u))
	}
	return out, nil
}

// Estadisticas conteos por estado y rol.
func (uc *UsuarioUseCase) Estadisticas(ctx context.Context) (*dto.UsuarioEstadisticasResponse, error) {
	s, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("usuario: estadisticas: %w", err)
	}
	return &dto.UsuarioEstadisticasResponse{
		Total:           s.Total,
		Activos:         s.Activos,
		Inactivos:       s.Inactivos,
		Administradores: s.Administradores,
		Colaboradores:   s.Colaboradores,
	}, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, id int64) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUsuarioResponse(u), nil
}

// Create alta con contraseña hasheada (bcrypt).
func (uc *UsuarioUseCase) Create(ctx context.Context, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.UsuarioActivo
	}
	now := time.Now()
	u := &entity.Usuario{
		NombreCompleto: strings.TrimSpace(in.NombreCompleto),
		DNI:            strings.TrimSpace(in.DNI),
		Telefono:       strings.TrimSpace(in.Telefono),
		Usuario:        strings.TrimSpace(in.Usuario),
		Correo:         strings.ToLower(strings.TrimSpace(in.Correo)),
		PasswordHash:   string(hash),
		Rol:            in.Rol,
		Estado:         estado,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario, correo o DNI ya está registrado", domain.ErrDuplicate)
		}
		return nil, fmt.Errorf("usuario: crear: %w", err)
	}
	uc.log.Info().Int64("usuario_id", u.ID).Str("usuario", u.Usuario).Str("rol", u.Rol).Msg("usuario creado")
	return dto.NewUsuarioResponse(u), nil
}

// EnsureAdmin crea la cuenta administradora inicial si todavía no hay ninguna.
// Devuelve true si la creó.
func (uc *UsuarioUseCase) EnsureAdmin(ctx context.Context, in dto.CreateUsuarioRequest) (bool, error) {
	s, err := uc.repo.Stats(ctx)
	if err != nil {
		return false, fmt.Errorf("usuario: verificar administradores: %w", err)
	}
	if s.Administradores > 0 {
		return false, nil
	}
	in.Rol = entity.RolAdministrador
	in.Estado = entity.UsuarioActivo
	if _, err := uc.Create(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}

// Update edición; contraseña vacía conserva la actual. Un administrador no puede quitarse su propio rol ni desactivarse.
func (uc *UsuarioUseCase) Update(ctx context.Context, id, actorID int64, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if id == actorID && (in.Rol != entity.RolAdministrador || in.Estado != entity.UsuarioActivo) {
		return nil, fmt.Errorf("%w: no puede quitarse el rol de administrador ni desactivar su propia cuenta", domain.ErrConflict)
	}
	u.NombreCompleto = strings.TrimSpace(in.NombreCompleto)
	u.DNI = strings.TrimSpace(in.DNI)
	u.Telefono = strings.TrimSpace(in.Telefono)
	u.Usuario = strings.TrimSpace(in.Usuario)
	u.Correo = strings.ToLower(strings.TrimSpace(in.Correo))
	u.Rol = in.Rol
	u.Estado = in.Estado
	if in.Contrasena != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario, correo o DNI ya está registrado", domain.ErrDuplicate)
		}
		return nil, fmt.Errorf("usuario: actualizar: %w", err)
	}
	return dto.NewUsuarioResponse(u), nil
}

// CambiarEstado activa o desactiva una cuenta.
func (uc *UsuarioUseCase) CambiarEstado(ctx context.Context, id, actorID int64, estado string) (*dto.UsuarioResponse, error) {
	if estado != entity.UsuarioActivo && estado != entity.UsuarioInactivo {
		return nil, fmt.Errorf("%w: estado debe ser Activo o Inactivo", domain.ErrInvalidInput)
	}
	if id == actorID && estado == entity.UsuarioInactivo {
		return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrConflict)
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Estado = estado
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("usuario: cambiar estado: %w", err)
	}
	uc.log.Info().Int64("usuario_id", id).Str("estado", estado).Msg("estado de usuario actualizado")
	return dto.NewUsuarioResponse(u), nil
}

// Delete elimina un usuario (no el propio).
func (uc *UsuarioUseCase) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return fmt.Errorf("%w: no puede eliminar su propia cuenta", domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("usuario: eliminar: %w", err)
	}
	uc.log.Warn().Int64("usuario_id", id).Int64("actor_id", actorID).Msg("usuario eliminado")
	return nil
}
