package postgres

import (
	"context"
	"fmt"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var _ repository.HistorialRepository = (*HistorialRepo)(nil)

// HistorialRepo implementa repository.HistorialRepository.
type HistorialRepo struct {
	db Querier
}

func NewHistorialRepository(db Querier) *HistorialRepo {
	return &HistorialRepo{db: db}
}

func (r *HistorialRepo) Create(ctx context.Context, h *entity.Historial) error {
	query := `
		INSERT INTO historial_expedientes (expediente_id, estado_anterior, estado_nuevo, observaciones, usuario)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_historial, fecha_cambio`
	err := r.db.QueryRow(ctx, query, h.ExpedienteID, h.EstadoAnterior, h.EstadoNuevo, h.Observaciones, h.Usuario).
		Scan(&h.ID, &h.FechaCambio)
	if err != nil {
		return fmt.Errorf("insert historial: %w", err)
	}
	return nil
}

// ListByExpediente devuelve el historial en orden cronológico.
func (r *HistorialRepo) ListByExpediente(ctx context.Context, expedienteID int64) ([]*entity.Historial, error) {
	query := `
		SELECT id_historial, expediente_id, estado_anterior, estado_nuevo, observaciones, usuario, fecha_cambio
		FROM historial_expedientes
		WHERE expediente_id = $1
		ORDER BY fecha_cambio, id_historial`
	rows, err := r.db.Query(ctx, query, expedienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Historial
	for rows.Next() {
		h := &entity.Historial{}
		if err := rows.Scan(&h.ID, &h.ExpedienteID, &h.EstadoAnterior, &h.EstadoNuevo, &h.Observaciones, &h.Usuario, &h.FechaCambio); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
