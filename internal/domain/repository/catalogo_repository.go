package repository

import (
	"context"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
)

// DocumentoRepository catálogo de tipos de documento.
type DocumentoRepository interface {
	List(ctx context.Context) ([]*entity.Documento, error)
	GetByID(ctx context.Context, id int64) (*entity.Documento, error)
}

// AsuntoFilter filtros de listado de asuntos. Activo nil = todos.
type AsuntoFilter struct {
	DocumentoID int64
	Activo      *bool
}

// AsuntoRepository define el puerto de persistencia para Asunto (DIP).
type AsuntoRepository interface {
	Create(ctx context.Context, a *entity.Asunto) error
	GetByID(ctx context.Context, id int64) (*entity.Asunto, error)
	List(ctx context.Context, f AsuntoFilter) ([]*entity.Asunto, error)
	Update(ctx context.Context, a *entity.Asunto) error
	Delete(ctx context.Context, id int64) error
}
