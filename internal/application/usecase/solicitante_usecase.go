package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	"github.com/ugelsanta/expedientes-api/pkg/texto"
)

// SolicitanteUseCase aplica reglas de negocio para solicitantes.
type SolicitanteUseCase struct {
	repo repository.SolicitanteRepository
}

// NewSolicitanteUseCase construye el caso de uso con el puerto de persistencia.
func NewSolicitanteUseCase(repo repository.SolicitanteRepository) *SolicitanteUseCase {
	return &SolicitanteUseCase{repo: repo}
}

// Buscar devuelve 0 o 1 solicitante por DNI o código modular (la recepción lo usa para evitar duplicados).
func (uc *SolicitanteUseCase) Buscar(ctx context.Context, in dto.SolicitanteListRequest) ([]dto.SolicitanteResponse, error) {
	var (
		s   *entity.Solicitante
		err error
	)
	switch {
	case strings.TrimSpace(in.DNI) != "":
		s, err = uc.repo.FindByDNI(ctx, strings.TrimSpace(in.DNI))
	case strings.TrimSpace(in.CodigoModular) != "":
		s, err = uc.repo.FindByCodigoModular(ctx, strings.TrimSpace(in.CodigoModular))
	default:
		return nil, fmt.Errorf("%w: indique dni o codigo_modular", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("solicitante: buscar: %w", err)
	}
	out := []dto.SolicitanteResponse{}
	if s != nil {
		out = append(out, *dto.NewSolicitanteResponse(s))
	}
	return out, nil
}

// GetByID obtiene un solicitante por ID.
func (uc *SolicitanteUseCase) GetByID(ctx context.Context, id int64) (*dto.SolicitanteResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewSolicitanteResponse(s), nil
}

// Create registra un solicitante; la identificación repetida devuelve ErrDuplicate.
func (uc *SolicitanteUseCase) Create(ctx context.Context, in dto.CreateSolicitanteRequest) (*dto.SolicitanteResponse, error) {
	now := time.Now()
	s := &entity.Solicitante{
		NombreSolicitante: texto.Titulo(in.NombreSolicitante),
		NombreTipo:        in.NombreTipo,
		Email:             strings.ToLower(strings.TrimSpace(in.Email)),
		Telefono:          strings.TrimSpace(in.Telefono),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var existente *entity.Solicitante
	var err error
	switch in.NombreTipo {
	case entity.TipoNatural:
		s.DNI = strings.TrimSpace(in.DNI)
		if !entity.DNIValido(s.DNI) {
			return nil, fmt.Errorf("%w: el DNI debe tener 8 dígitos", domain.ErrInvalidInput)
		}
		existente, err = uc.repo.FindByDNI(ctx, s.DNI)
	case entity.TipoJuridica:
		s.CodigoModular = strings.TrimSpace(in.CodigoModular)
		if s.CodigoModular == "" {
			return nil, fmt.Errorf("%w: el código modular es obligatorio", domain.ErrInvalidInput)
		}
		// Las instituciones se registran con su nombre oficial, sin cambiar mayúsculas.
		s.NombreSolicitante = strings.Join(strings.Fields(in.NombreSolicitante), " ")
		existente, err = uc.repo.FindByCodigoModular(ctx, s.CodigoModular)
	default:
		return nil, fmt.Errorf("%w: tipo de solicitante debe ser Natural o Jurídica", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("solicitante: verificar duplicado: %w", err)
	}
	if existente != nil {
		return nil, fmt.Errorf("%w: ya está registrado a nombre de %q", domain.ErrDuplicate, existente.NombreSolicitante)
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("solicitante: crear: %w", err)
	}
	return dto.NewSolicitanteResponse(s), nil
}
