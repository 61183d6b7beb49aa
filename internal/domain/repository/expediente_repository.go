package repository

import (
	"context"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
)

// ExpedienteFilter filtros que se resuelven en SQL; la búsqueda por texto se hace en memoria.
type ExpedienteFilter struct {
	Estado        string
	EstadoExcluir string
	DocumentoID   int64
	FechaDesde    string // YYYY-MM-DD inclusive
	FechaHasta    string // YYYY-MM-DD inclusive
}

// ExpedienteRepository define el puerto de persistencia para Expediente (DIP).
// Las lecturas devuelven Solicitante y Asunto cargados.
type ExpedienteRepository interface {
	Create(ctx context.Context, e *entity.Expediente) error
	GetByID(ctx context.Context, id int64) (*entity.Expediente, error)
	// GetByCodigo busca por número de expediente o por código de seguimiento.
	GetByCodigo(ctx context.Context, codigo string) (*entity.Expediente, error)
	List(ctx context.Context, f ExpedienteFilter) ([]*entity.Expediente, error)
	Update(ctx context.Context, e *entity.Expediente) error
	Delete(ctx context.Context, id int64) error
	// NextNumero siguiente correlativo para el número de expediente.
	NextNumero(ctx context.Context) (int64, error)
}

// HistorialRepository log append-only de cambios de estado.
type HistorialRepository interface {
	Create(ctx context.Context, h *entity.Historial) error
	ListByExpediente(ctx context.Context, expedienteID int64) ([]*entity.Historial, error)
}
