package repository

import (
	"context"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
)

// SolicitanteRepository define el puerto de persistencia para Solicitante (DIP).
type SolicitanteRepository interface {
	Create(ctx context.Context, s *entity.Solicitante) error
	GetByID(ctx context.Context, id int64) (*entity.Solicitante, error)
	FindByDNI(ctx context.Context, dni string) (*entity.Solicitante, error)
	FindByCodigoModular(ctx context.Context, codigo string) (*entity.Solicitante, error)
	Update(ctx context.Context, s *entity.Solicitante) error
}
