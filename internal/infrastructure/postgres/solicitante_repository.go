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

var _ repository.SolicitanteRepository = (*SolicitanteRepo)(nil)

// SolicitanteRepo implementa repository.SolicitanteRepository.
type SolicitanteRepo struct {
	db Querier
}

func NewSolicitanteRepository(db Querier) *SolicitanteRepo {
	return &SolicitanteRepo{db: db}
}

const solicitanteSelect = `
	SELECT id_solicitante, nombre_solicitante, nombre_tipo, COALESCE(dni, ''), COALESCE(codigo_modular, ''),
		email, telefono, created_at, updated_at
	FROM solicitantes`

func (r *SolicitanteRepo) findOne(ctx context.Context, where string, arg any) (*entity.Solicitante, error) {
	s := &entity.Solicitante{}
	err := r.db.QueryRow(ctx, solicitanteSelect+" WHERE "+where, arg).Scan(
		&s.ID, &s.NombreSolicitante, &s.NombreTipo, &s.DNI, &s.CodigoModular,
		&s.Email, &s.Telefono, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SolicitanteRepo) Create(ctx context.Context, s *entity.Solicitante) error {
	query := `
		INSERT INTO solicitantes (nombre_solicitante, nombre_tipo, dni, codigo_modular, email, telefono)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_solicitante, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		s.NombreSolicitante, s.NombreTipo, nullIfEmpty(s.DNI), nullIfEmpty(s.CodigoModular), s.Email, s.Telefono,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert solicitante: %w", err)
	}
	return nil
}

func (r *SolicitanteRepo) GetByID(ctx context.Context, id int64) (*entity.Solicitante, error) {
	return r.findOne(ctx, "id_solicitante = $1", id)
}

func (r *SolicitanteRepo) FindByDNI(ctx context.Context, dni string) (*entity.Solicitante, error) {
	return r.findOne(ctx, "dni = $1", dni)
}

func (r *SolicitanteRepo) FindByCodigoModular(ctx context.Context, codigo string) (*entity.Solicitante, error) {
	return r.findOne(ctx, "upper(codigo_modular) = upper($1)", codigo)
}

func (r *SolicitanteRepo) Update(ctx context.Context, s *entity.Solicitante) error {
	query := `
		UPDATE solicitantes
		SET nombre_solicitante = $2, email = $3, telefono = $4, updated_at = now()
		WHERE id_solicitante = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, s.ID, s.NombreSolicitante, s.Email, s.Telefono).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update solicitante: %w", err)
	}
	return nil
}
