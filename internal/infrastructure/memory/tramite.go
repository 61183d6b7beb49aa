package memory

import (
	"context"
	"sort"

	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var (
	_ repository.AtencionRepository     = (*AtencionRepo)(nil)
	_ repository.EntregaRepository      = (*EntregaRepo)(nil)
	_ repository.NotificacionRepository = (*NotificacionRepo)(nil)
)

// AtencionRepo implementa repository.AtencionRepository en memoria.
type AtencionRepo struct{ s *Store }

func (s *Store) Atenciones() *AtencionRepo { return &AtencionRepo{s: s} }

func (r *AtencionRepo) Create(_ context.Context, a *entity.Atencion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.id()
	a.FechaAtencion = r.s.now()
	r.s.atenciones = append(r.s.atenciones, *a)
	return nil
}

func (r *AtencionRepo) ListByExpediente(_ context.Context, expedienteID int64) ([]*entity.Atencion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Atencion
	for _, a := range r.s.atenciones {
		if a.ExpedienteID == expedienteID {
			a := a
			list = append(list, &a)
		}
	}
	return list, nil
}

// Atenciones registradas, en orden de inserción. Solo para inspección en pruebas.
func (s *Store) TodasLasAtenciones() []entity.Atencion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Atencion(nil), s.atenciones...)
}

// EntregaRepo implementa repository.EntregaRepository en memoria.
type EntregaRepo struct{ s *Store }

func (s *Store) Entregas() *EntregaRepo { return &EntregaRepo{s: s} }

func (r *EntregaRepo) Create(_ context.Context, e *entity.Entrega) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.entregas {
		if x.ExpedienteID == e.ExpedienteID {
			return domain.ErrDuplicate
		}
	}
	e.ID = r.s.id()
	e.FechaEntrega = r.s.now()
	r.s.entregas = append(r.s.entregas, *e)
	return nil
}

func (r *EntregaRepo) GetByExpediente(_ context.Context, expedienteID int64) (*entity.Entrega, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.entregas {
		if e.ExpedienteID == expedienteID {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *EntregaRepo) List(_ context.Context, f repository.EntregaFilter) ([]repository.EntregaConExpediente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []repository.EntregaConExpediente
	for _, en := range r.s.entregas {
		dia := en.FechaEntrega.In(r.s.Zona).Format("2006-01-02")
		if f.FechaDesde != "" && dia < f.FechaDesde {
			continue
		}
		if f.FechaHasta != "" && dia > f.FechaHasta {
			continue
		}
		exp, ok := r.s.expedientes[en.ExpedienteID]
		if !ok {
			continue
		}
		list = append(list, repository.EntregaConExpediente{
			Entrega:    en,
			Expediente: *r.s.cargado(exp),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Entrega.FechaEntrega.After(list[j].Entrega.FechaEntrega)
	})
	return list, nil
}

// NotificacionRepo implementa repository.NotificacionRepository en memoria.
type NotificacionRepo struct{ s *Store }

func (s *Store) Notificaciones() *NotificacionRepo { return &NotificacionRepo{s: s} }

func (r *NotificacionRepo) Create(_ context.Context, n *entity.Notificacion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = r.s.id()
	n.CreatedAt = r.s.now()
	r.s.notificaciones = append(r.s.notificaciones, *n)
	return nil
}

// TodasLasNotificaciones registradas, en orden de inserción.
func (s *Store) TodasLasNotificaciones() []entity.Notificacion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Notificacion(nil), s.notificaciones...)
}
