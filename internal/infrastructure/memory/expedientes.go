package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var (
	_ repository.ExpedienteRepository = (*ExpedienteRepo)(nil)
	_ repository.HistorialRepository  = (*HistorialRepo)(nil)
)

// ExpedienteRepo implementa repository.ExpedienteRepository en memoria.
type ExpedienteRepo struct{ s *Store }

func (s *Store) Expedientes() *ExpedienteRepo { return &ExpedienteRepo{s: s} }

// cargado devuelve una copia con solicitante y asunto, como el join de PostgreSQL.
// Requiere s.mu tomado.
func (s *Store) cargado(e entity.Expediente) *entity.Expediente {
	if sol, ok := s.solicitantes[e.SolicitanteID]; ok {
		e.Solicitante = &sol
	}
	if a, ok := s.asuntos[e.AsuntoID]; ok {
		a.TipoDocumento = s.documentos[a.DocumentoID].NombreDocumento
		e.Asunto = &a
	}
	return &e
}

func (r *ExpedienteRepo) Create(_ context.Context, e *entity.Expediente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.expedientes {
		if x.NumExpediente == e.NumExpediente || x.FirmaRuta == e.FirmaRuta {
			return domain.ErrDuplicate
		}
	}
	e.ID = r.s.id()
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	v := *e
	v.Solicitante, v.Asunto = nil, nil
	r.s.expedientes[e.ID] = v
	return nil
}

func (r *ExpedienteRepo) GetByID(_ context.Context, id int64) (*entity.Expediente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.expedientes[id]
	if !ok {
		return nil, nil
	}
	return r.s.cargado(e), nil
}

func (r *ExpedienteRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Expediente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.expedientes {
		if strings.EqualFold(e.NumExpediente, codigo) || strings.EqualFold(e.FirmaRuta, codigo) {
			return r.s.cargado(e), nil
		}
	}
	return nil, nil
}

func (r *ExpedienteRepo) List(_ context.Context, f repository.ExpedienteFilter) ([]*entity.Expediente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Expediente
	for _, e := range r.s.expedientes {
		if f.Estado != "" && e.Estado != f.Estado {
			continue
		}
		if f.EstadoExcluir != "" && e.Estado == f.EstadoExcluir {
			continue
		}
		if f.DocumentoID > 0 && r.s.asuntos[e.AsuntoID].DocumentoID != f.DocumentoID {
			continue
		}
		// YYYY-MM-DD se ordena igual como texto que como fecha.
		if f.FechaDesde != "" && e.FechaRecepcion < f.FechaDesde {
			continue
		}
		if f.FechaHasta != "" && e.FechaRecepcion > f.FechaHasta {
			continue
		}
		list = append(list, r.s.cargado(e))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].FechaRecepcion != list[j].FechaRecepcion {
			return list[i].FechaRecepcion > list[j].FechaRecepcion
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *ExpedienteRepo) Update(_ context.Context, e *entity.Expediente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.expedientes[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Estado = e.Estado
	cur.Observaciones = e.Observaciones
	cur.Receptor = e.Receptor
	cur.FechaRecepcion = e.FechaRecepcion
	cur.UpdatedAt = r.s.now()
	e.UpdatedAt = cur.UpdatedAt
	r.s.expedientes[e.ID] = cur
	return nil
}

// Delete borra también historial, atenciones, entregas y notificaciones (ON DELETE CASCADE).
func (r *ExpedienteRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expedientes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.expedientes, id)
	r.s.historial = filtrar(r.s.historial, func(h entity.Historial) bool { return h.ExpedienteID != id })
	r.s.atenciones = filtrar(r.s.atenciones, func(a entity.Atencion) bool { return a.ExpedienteID != id })
	r.s.entregas = filtrar(r.s.entregas, func(e entity.Entrega) bool { return e.ExpedienteID != id })
	r.s.notificaciones = filtrar(r.s.notificaciones, func(n entity.Notificacion) bool { return n.ExpedienteID != id })
	return nil
}

func (r *ExpedienteRepo) NextNumero(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.numero++
	return r.s.numero, nil
}

func filtrar[T any](in []T, keep func(T) bool) []T {
	out := in[:0:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// HistorialRepo implementa repository.HistorialRepository en memoria.
type HistorialRepo struct{ s *Store }

func (s *Store) Historial() *HistorialRepo { return &HistorialRepo{s: s} }

func (r *HistorialRepo) Create(_ context.Context, h *entity.Historial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.ID = r.s.id()
	h.FechaCambio = r.s.now()
	r.s.historial = append(r.s.historial, *h)
	return nil
}

func (r *HistorialRepo) ListByExpediente(_ context.Context, expedienteID int64) ([]*entity.Historial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Historial
	for _, h := range r.s.historial {
		if h.ExpedienteID == expedienteID {
			h := h
			list = append(list, &h)
		}
	}
	return list, nil
}
