package postgres

import (
	"context"
	"fmt"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var _ repository.AtencionRepository = (*AtencionRepo)(nil)

// AtencionRepo implementa repository.AtencionRepository.
type AtencionRepo struct {
	db Querier
}

func NewAtencionRepository(db Querier) *AtencionRepo {
	return &AtencionRepo{db: db}
}

func (r *AtencionRepo) Create(ctx context.Context, a *entity.Atencion) error {
	query := `
		INSERT INTO atenciones (expediente_id, estado_anterior, estado_nuevo, observaciones, usuario)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_atencion, fecha_atencion`
	err := r.db.QueryRow(ctx, query, a.ExpedienteID, a.EstadoAnterior, a.EstadoNuevo, a.Observaciones, a.Usuario).
		Scan(&a.ID, &a.FechaAtencion)
	if err != nil {
		return fmt.Errorf("insert atencion: %w", err)
	}
	return nil
}

// ListByExpediente atenciones de un expediente en orden cronológico.
func (r *AtencionRepo) ListByExpediente(ctx context.Context, expedienteID int64) ([]*entity.Atencion, error) {
	query := `
		SELECT id_atencion, expediente_id, estado_anterior, estado_nuevo, observaciones, usuario, fecha_atencion
		FROM atenciones
		WHERE expediente_id = $1
		ORDER BY fecha_atencion, id_atencion`
	rows, err := r.db.Query(ctx, query, expedienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Atencion
	for rows.Next() {
		a := &entity.Atencion{}
		if err := rows.Scan(&a.ID, &a.ExpedienteID, &a.EstadoAnterior, &a.EstadoNuevo, &a.Observaciones, &a.Usuario, &a.FechaAtencion); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
