package repository

import (
	"context"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
)

// AtencionRepository persistencia de atenciones.
type AtencionRepository interface {
	Create(ctx context.Context, a *entity.Atencion) error
	ListByExpediente(ctx context.Context, expedienteID int64) ([]*entity.Atencion, error)
}

// EntregaFilter rango por fecha de entrega (YYYY-MM-DD, inclusivo).
type EntregaFilter struct {
	FechaDesde string
	FechaHasta string
}

// EntregaConExpediente fila de reporte: la entrega con su expediente.
type EntregaConExpediente struct {
	Entrega    entity.Entrega
	Expediente entity.Expediente
}

// EntregaRepository persistencia de actas de entrega.
type EntregaRepository interface {
	Create(ctx context.Context, e *entity.Entrega) error
	GetByExpediente(ctx context.Context, expedienteID int64) (*entity.Entrega, error)
	List(ctx context.Context, f EntregaFilter) ([]EntregaConExpediente, error)
}

// NotificacionRepository registro de avisos enviados.
type NotificacionRepository interface {
	Create(ctx context.Context, n *entity.Notificacion) error
}

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Expedientes ExpedienteRepository
	Historial   HistorialRepository
	Atenciones  AtencionRepository
	Entregas    EntregaRepository
}

// TxRunner ejecuta fn con repositorios atados a una transacción: Commit si fn no falla, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
