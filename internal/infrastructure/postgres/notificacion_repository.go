package postgres

import (
	"context"
	"fmt"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var _ repository.NotificacionRepository = (*NotificacionRepo)(nil)

// NotificacionRepo implementa repository.NotificacionRepository.
type NotificacionRepo struct {
	db Querier
}

func NewNotificacionRepository(db Querier) *NotificacionRepo {
	return &NotificacionRepo{db: db}
}

func (r *NotificacionRepo) Create(ctx context.Context, n *entity.Notificacion) error {
	query := `
		INSERT INTO notificaciones (expediente_id, tipo, dias, mensaje, usuario)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_notificacion, created_at`
	if err := r.db.QueryRow(ctx, query, n.ExpedienteID, n.Tipo, n.Dias, n.Mensaje, n.Usuario).Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("insert notificacion: %w", err)
	}
	return nil
}
