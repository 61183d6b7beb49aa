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

var (
	_ repository.DocumentoRepository = (*DocumentoRepo)(nil)
	_ repository.AsuntoRepository    = (*AsuntoRepo)(nil)
)

// DocumentoRepo implementa repository.DocumentoRepository.
type DocumentoRepo struct {
	db Querier
}

func NewDocumentoRepository(db Querier) *DocumentoRepo {
	return &DocumentoRepo{db: db}
}

func (r *DocumentoRepo) List(ctx context.Context) ([]*entity.Documento, error) {
	rows, err := r.db.Query(ctx, `SELECT id_documento, nombre_documento FROM documentos ORDER BY nombre_documento`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Documento
	for rows.Next() {
		d := &entity.Documento{}
		if err := rows.Scan(&d.ID, &d.NombreDocumento); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DocumentoRepo) GetByID(ctx context.Context, id int64) (*entity.Documento, error) {
	d := &entity.Documento{}
	err := r.db.QueryRow(ctx, `SELECT id_documento, nombre_documento FROM documentos WHERE id_documento = $1`, id).
		Scan(&d.ID, &d.NombreDocumento)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// AsuntoRepo implementa repository.AsuntoRepository.
type AsuntoRepo struct {
	db Querier
}

func NewAsuntoRepository(db Querier) *AsuntoRepo {
	return &AsuntoRepo{db: db}
}

const asuntoSelect = `
	SELECT a.id_asunto, a.nombre_asunto, a.descripcion, a.activo, a.documento_id, d.nombre_documento,
		a.created_at, a.updated_at
	FROM asuntos a
	JOIN documentos d ON d.id_documento = a.documento_id`

func scanAsunto(row pgx.Row) (*entity.Asunto, error) {
	a := &entity.Asunto{}
	err := row.Scan(&a.ID, &a.NombreAsunto, &a.Descripcion, &a.Activo, &a.DocumentoID, &a.TipoDocumento, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AsuntoRepo) Create(ctx context.Context, a *entity.Asunto) error {
	query := `
		INSERT INTO asuntos (nombre_asunto, descripcion, activo, documento_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id_asunto, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, a.NombreAsunto, a.Descripcion, a.Activo, a.DocumentoID).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asunto: %w", err)
	}
	return nil
}

func (r *AsuntoRepo) GetByID(ctx context.Context, id int64) (*entity.Asunto, error) {
	a, err := scanAsunto(r.db.QueryRow(ctx, asuntoSelect+` WHERE a.id_asunto = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *AsuntoRepo) List(ctx context.Context, f repository.AsuntoFilter) ([]*entity.Asunto, error) {
	var w whereBuilder
	if f.DocumentoID > 0 {
		w.add("a.documento_id = ?", f.DocumentoID)
	}
	if f.Activo != nil {
		w.add("a.activo = ?", *f.Activo)
	}
	rows, err := r.db.Query(ctx, asuntoSelect+w.sql()+` ORDER BY a.nombre_asunto`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Asunto
	for rows.Next() {
		a, err := scanAsunto(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AsuntoRepo) Update(ctx context.Context, a *entity.Asunto) error {
	query := `
		UPDATE asuntos
		SET nombre_asunto = $2, descripcion = $3, activo = $4, documento_id = $5, updated_at = now()
		WHERE id_asunto = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, a.ID, a.NombreAsunto, a.Descripcion, a.Activo, a.DocumentoID).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update asunto: %w", err)
	}
	return nil
}

// Delete con expedientes que lo referencian devuelve ErrConflict.
func (r *AsuntoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM asuntos WHERE id_asunto = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el asunto tiene expedientes registrados, desactívelo en su lugar", domain.ErrConflict)
		}
		return fmt.Errorf("delete asunto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
