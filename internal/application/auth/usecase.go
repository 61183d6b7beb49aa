package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	"github.com/ugelsanta/expedientes-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de funcionarios.
type AuthUseCase struct {
	userRepo repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario (o correo) y contraseña, genera JWT y retorna token + usuario.
// Credenciales incorrectas dan ErrUnauthorized sin distinguir el caso; cuenta inactiva da ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	login := strings.TrimSpace(in.Usuario)
	user, err := uc.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Contrasena)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Estado != entity.UsuarioActivo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Usuario, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.NewUsuarioResponse(user),
	}, nil
}

// Me datos del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, id int64) (*dto.UsuarioResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUsuarioResponse(u), nil
}
