package postgres

import (
	"context"
	"fmt"

	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas agregadas para reportes.
type ReporteRepo struct {
	db Querier
}

func NewReporteRepository(db Querier) *ReporteRepo {
	return &ReporteRepo{db: db}
}

func (r *ReporteRepo) ConteoPorEstado(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT estado, COUNT(*) FROM expedientes GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("conteo por estado: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var estado string
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, err
		}
		out[estado] = n
	}
	return out, rows.Err()
}

// PorColaborador une atenciones (por usuario) y entregas (por entregado_por).
// Los parámetros vacíos no filtran.
func (r *ReporteRepo) PorColaborador(ctx context.Context, desde, hasta, usuario string) ([]repository.ColaboradorResult, error) {
	query := `
		WITH at AS (
			SELECT usuario,
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE estado_nuevo = 'EN PROCESO') AS en_proceso,
				COUNT(*) FILTER (WHERE estado_nuevo = 'OBSERVADO') AS observados,
				COUNT(*) FILTER (WHERE estado_nuevo = 'LISTO PARA ENTREGA') AS listos
			FROM atenciones
			WHERE ($1::text = '' OR fecha_atencion::date >= $1::text::date)
				AND ($2::text = '' OR fecha_atencion::date <= $2::text::date)
				AND ($3::text = '' OR usuario = $3::text)
			GROUP BY usuario
		), en AS (
			SELECT entregado_por AS usuario, COUNT(*) AS entregas
			FROM entregas
			WHERE ($1::text = '' OR fecha_entrega::date >= $1::text::date)
				AND ($2::text = '' OR fecha_entrega::date <= $2::text::date)
				AND ($3::text = '' OR entregado_por = $3::text)
			GROUP BY entregado_por
		)
		SELECT COALESCE(at.usuario, en.usuario),
			COALESCE(at.total, 0), COALESCE(at.en_proceso, 0), COALESCE(at.observados, 0), COALESCE(at.listos, 0),
			COALESCE(en.entregas, 0)
		FROM at
		FULL OUTER JOIN en ON en.usuario = at.usuario
		WHERE COALESCE(at.usuario, en.usuario) <> ''
		ORDER BY 2 DESC, 1`

	rows, err := r.db.Query(ctx, query, desde, hasta, usuario)
	if err != nil {
		return nil, fmt.Errorf("reporte colaboradores: %w", err)
	}
	defer rows.Close()

	var list []repository.ColaboradorResult
	for rows.Next() {
		var c repository.ColaboradorResult
		if err := rows.Scan(&c.Usuario, &c.TotalAtenciones, &c.EnProceso, &c.Observados, &c.ListosEntrega, &c.Entregas); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
