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

var _ repository.ExpedienteRepository = (*ExpedienteRepo)(nil)

// ExpedienteRepo implementa repository.ExpedienteRepository.
type ExpedienteRepo struct {
	db Querier
}

// NewExpedienteRepository crea el repositorio sobre el pool o sobre una tx.
func NewExpedienteRepository(db Querier) *ExpedienteRepo {
	return &ExpedienteRepo{db: db}
}

// fecha_recepcion se lee como texto YYYY-MM-DD para no pasar por time.Time y su zona.
const expedienteSelect = `
	SELECT e.id_expediente, e.num_expediente, e.firma_ruta, e.fecha_recepcion::text, e.estado,
		e.observaciones, e.receptor, e.nombre_documento, e.tipo_documento, e.solicitante_id, e.asunto_id,
		e.created_at, e.updated_at,
		s.id_solicitante, s.nombre_solicitante, s.nombre_tipo, COALESCE(s.dni, ''), COALESCE(s.codigo_modular, ''),
		s.email, s.telefono,
		a.id_asunto, a.nombre_asunto, a.descripcion, a.activo, a.documento_id, d.nombre_documento
	FROM expedientes e
	JOIN solicitantes s ON s.id_solicitante = e.solicitante_id
	JOIN asuntos a ON a.id_asunto = e.asunto_id
	JOIN documentos d ON d.id_documento = a.documento_id`

func scanExpediente(row pgx.Row) (*entity.Expediente, error) {
	e := &entity.Expediente{Solicitante: &entity.Solicitante{}, Asunto: &entity.Asunto{}}
	s, a := e.Solicitante, e.Asunto
	err := row.Scan(
		&e.ID, &e.NumExpediente, &e.FirmaRuta, &e.FechaRecepcion, &e.Estado,
		&e.Observaciones, &e.Receptor, &e.NombreDocumento, &e.TipoDocumento, &e.SolicitanteID, &e.AsuntoID,
		&e.CreatedAt, &e.UpdatedAt,
		&s.ID, &s.NombreSolicitante, &s.NombreTipo, &s.DNI, &s.CodigoModular, &s.Email, &s.Telefono,
		&a.ID, &a.NombreAsunto, &a.Descripcion, &a.Activo, &a.DocumentoID, &a.TipoDocumento,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ExpedienteRepo) Create(ctx context.Context, e *entity.Expediente) error {
	query := `
		INSERT INTO expedientes (num_expediente, firma_ruta, fecha_recepcion, estado, observaciones, receptor,
			nombre_documento, tipo_documento, solicitante_id, asunto_id)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id_expediente, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		e.NumExpediente, e.FirmaRuta, e.FechaRecepcion, e.Estado, e.Observaciones, e.Receptor,
		e.NombreDocumento, e.TipoDocumento, e.SolicitanteID, e.AsuntoID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expediente: %w", err)
	}
	return nil
}

func (r *ExpedienteRepo) GetByID(ctx context.Context, id int64) (*entity.Expediente, error) {
	e, err := scanExpediente(r.db.QueryRow(ctx, expedienteSelect+` WHERE e.id_expediente = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *ExpedienteRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Expediente, error) {
	query := expedienteSelect + ` WHERE upper(e.num_expediente) = upper($1) OR upper(e.firma_ruta) = upper($1) LIMIT 1`
	e, err := scanExpediente(r.db.QueryRow(ctx, query, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *ExpedienteRepo) List(ctx context.Context, f repository.ExpedienteFilter) ([]*entity.Expediente, error) {
	var w whereBuilder
	if f.Estado != "" {
		w.add("e.estado = ?", f.Estado)
	}
	if f.EstadoExcluir != "" {
		w.add("e.estado <> ?", f.EstadoExcluir)
	}
	if f.DocumentoID > 0 {
		w.add("a.documento_id = ?", f.DocumentoID)
	}
	if f.FechaDesde != "" {
		w.add("e.fecha_recepcion >= ?::date", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		w.add("e.fecha_recepcion <= ?::date", f.FechaHasta)
	}
	query := expedienteSelect + w.sql() + ` ORDER BY e.fecha_recepcion DESC, e.id_expediente DESC`

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Expediente
	for rows.Next() {
		e, err := scanExpediente(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update persiste estado, observaciones, receptor y fecha de recepción.
func (r *ExpedienteRepo) Update(ctx context.Context, e *entity.Expediente) error {
	query := `
		UPDATE expedientes
		SET estado = $2, observaciones = $3, receptor = $4, fecha_recepcion = $5::date, updated_at = now()
		WHERE id_expediente = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, e.ID, e.Estado, e.Observaciones, e.Receptor, e.FechaRecepcion).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update expediente: %w", err)
	}
	return nil
}

func (r *ExpedienteRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expedientes WHERE id_expediente = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expediente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExpedienteRepo) NextNumero(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('expediente_numero_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("nextval expediente: %w", err)
	}
	return n, nil
}
