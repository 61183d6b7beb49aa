package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var _ repository.EntregaRepository = (*EntregaRepo)(nil)

// EntregaRepo implementa repository.EntregaRepository.
type EntregaRepo struct {
	db Querier
}

func NewEntregaRepository(db Querier) *EntregaRepo {
	return &EntregaRepo{db: db}
}

const entregaColumns = `en.id_entrega, en.expediente_id, en.tipo_recogida, en.dni_recoge, en.nombre_autorizado,
	en.dni_autorizado, en.documento_autorizacion, en.observaciones, en.entregado_por, en.fecha_entrega`

func entregaDest(en *entity.Entrega) []any {
	return []any{
		&en.ID, &en.ExpedienteID, &en.TipoRecogida, &en.DNIRecoge, &en.NombreAutorizado,
		&en.DNIAutorizado, &en.DocumentoAutorizacion, &en.Observaciones, &en.EntregadoPor, &en.FechaEntrega,
	}
}

// Create falla con ErrDuplicate si el expediente ya tiene acta de entrega.
func (r *EntregaRepo) Create(ctx context.Context, en *entity.Entrega) error {
	query := `
		INSERT INTO entregas (expediente_id, tipo_recogida, dni_recoge, nombre_autorizado, dni_autorizado,
			documento_autorizacion, observaciones, entregado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_entrega, fecha_entrega`
	err := r.db.QueryRow(ctx, query,
		en.ExpedienteID, en.TipoRecogida, en.DNIRecoge, en.NombreAutorizado, en.DNIAutorizado,
		en.DocumentoAutorizacion, en.Observaciones, en.EntregadoPor,
	).Scan(&en.ID, &en.FechaEntrega)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert entrega: %w", err)
	}
	return nil
}

func (r *EntregaRepo) GetByExpediente(ctx context.Context, expedienteID int64) (*entity.Entrega, error) {
	en := &entity.Entrega{}
	err := r.db.QueryRow(ctx, `SELECT `+entregaColumns+` FROM entregas en WHERE en.expediente_id = $1`, expedienteID).
		Scan(entregaDest(en)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return en, nil
}

// List entregas con su expediente y solicitante, la más reciente primero.
func (r *EntregaRepo) List(ctx context.Context, f repository.EntregaFilter) ([]repository.EntregaConExpediente, error) {
	var w whereBuilder
	if f.FechaDesde != "" {
		w.add("en.fecha_entrega::date >= ?::date", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		w.add("en.fecha_entrega::date <= ?::date", f.FechaHasta)
	}
	query := `
		SELECT ` + entregaColumns + `,
			e.id_expediente, e.num_expediente, e.firma_ruta, e.fecha_recepcion::text, e.estado,
			s.id_solicitante, s.nombre_solicitante, s.nombre_tipo
		FROM entregas en
		JOIN expedientes e ON e.id_expediente = en.expediente_id
		JOIN solicitantes s ON s.id_solicitante = e.solicitante_id` + w.sql() + `
		ORDER BY en.fecha_entrega DESC`

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []repository.EntregaConExpediente
	for rows.Next() {
		var item repository.EntregaConExpediente
		s := &entity.Solicitante{}
		e := &item.Expediente
		dest := append(entregaDest(&item.Entrega),
			&e.ID, &e.NumExpediente, &e.FirmaRuta, &e.FechaRecepcion, &e.Estado,
			&s.ID, &s.NombreSolicitante, &s.NombreTipo,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		e.SolicitanteID = s.ID
		e.Solicitante = s
		list = append(list, item)
	}
	return list, rows.Err()
}
