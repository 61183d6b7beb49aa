package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

var (
	_ repository.DocumentoRepository   = (*DocumentoRepo)(nil)
	_ repository.AsuntoRepository      = (*AsuntoRepo)(nil)
	_ repository.SolicitanteRepository = (*SolicitanteRepo)(nil)
)

type DocumentoRepo struct{ s *Store }

func (s *Store) Documentos() *DocumentoRepo { return &DocumentoRepo{s: s} }

func (r *DocumentoRepo) List(_ context.Context) ([]*entity.Documento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Documento
	for _, d := range r.s.documentos {
		d := d
		list = append(list, &d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].NombreDocumento < list[j].NombreDocumento })
	return list, nil
}

func (r *DocumentoRepo) GetByID(_ context.Context, id int64) (*entity.Documento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.documentos[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// DocumentoPorNombre id del documento sembrado, 0 si no existe.
func (s *Store) DocumentoPorNombre(nombre string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, d := range s.documentos {
		if d.NombreDocumento == nombre {
			return id
		}
	}
	return 0
}

type AsuntoRepo struct{ s *Store }

func (s *Store) Asuntos() *AsuntoRepo { return &AsuntoRepo{s: s} }

func (r *AsuntoRepo) Create(_ context.Context, a *entity.Asunto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documentos[a.DocumentoID]; !ok {
		return fmt.Errorf("insert asunto: documento %d inexistente", a.DocumentoID)
	}
	for _, x := range r.s.asuntos {
		if x.DocumentoID == a.DocumentoID && x.NombreAsunto == a.NombreAsunto {
			return domain.ErrDuplicate
		}
	}
	a.ID = r.s.id()
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.asuntos[a.ID] = *a
	return nil
}

func (r *AsuntoRepo) GetByID(_ context.Context, id int64) (*entity.Asunto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.asuntos[id]
	if !ok {
		return nil, nil
	}
	a.TipoDocumento = r.s.documentos[a.DocumentoID].NombreDocumento
	return &a, nil
}

func (r *AsuntoRepo) List(_ context.Context, f repository.AsuntoFilter) ([]*entity.Asunto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Asunto
	for _, a := range r.s.asuntos {
		if f.DocumentoID > 0 && a.DocumentoID != f.DocumentoID {
			continue
		}
		if f.Activo != nil && a.Activo != *f.Activo {
			continue
		}
		a := a
		a.TipoDocumento = r.s.documentos[a.DocumentoID].NombreDocumento
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].NombreAsunto < list[j].NombreAsunto })
	return list, nil
}

func (r *AsuntoRepo) Update(_ context.Context, a *entity.Asunto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.asuntos[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, x := range r.s.asuntos {
		if x.ID != a.ID && x.DocumentoID == a.DocumentoID && x.NombreAsunto == a.NombreAsunto {
			return domain.ErrDuplicate
		}
	}
	cur.NombreAsunto = a.NombreAsunto
	cur.Descripcion = a.Descripcion
	cur.Activo = a.Activo
	cur.DocumentoID = a.DocumentoID
	cur.UpdatedAt = r.s.now()
	r.s.asuntos[a.ID] = cur
	return nil
}

func (r *AsuntoRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.asuntos[id]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.expedientes {
		if e.AsuntoID == id {
			return fmt.Errorf("%w: el asunto tiene expedientes registrados, desactívelo en su lugar", domain.ErrConflict)
		}
	}
	delete(r.s.asuntos, id)
	return nil
}

type SolicitanteRepo struct{ s *Store }

func (s *Store) Solicitantes() *SolicitanteRepo { return &SolicitanteRepo{s: s} }

// choca indica si otro solicitante ya usa el DNI o el código modular.
func (s *Store) choca(sol *entity.Solicitante) bool {
	for _, x := range s.solicitantes {
		if x.ID == sol.ID {
			continue
		}
		if sol.DNI != "" && x.DNI == sol.DNI {
			return true
		}
		if sol.CodigoModular != "" && strings.EqualFold(x.CodigoModular, sol.CodigoModular) {
			return true
		}
	}
	return false
}

func (r *SolicitanteRepo) Create(_ context.Context, sol *entity.Solicitante) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.choca(sol) {
		return domain.ErrDuplicate
	}
	sol.ID = r.s.id()
	sol.CreatedAt = r.s.now()
	sol.UpdatedAt = sol.CreatedAt
	r.s.solicitantes[sol.ID] = *sol
	return nil
}

func (r *SolicitanteRepo) GetByID(_ context.Context, id int64) (*entity.Solicitante, error) {
	return r.find(func(x entity.Solicitante) bool { return x.ID == id })
}

func (r *SolicitanteRepo) FindByDNI(_ context.Context, dni string) (*entity.Solicitante, error) {
	return r.find(func(x entity.Solicitante) bool { return x.DNI != "" && x.DNI == dni })
}

func (r *SolicitanteRepo) FindByCodigoModular(_ context.Context, codigo string) (*entity.Solicitante, error) {
	return r.find(func(x entity.Solicitante) bool {
		return x.CodigoModular != "" && strings.EqualFold(x.CodigoModular, codigo)
	})
}

func (r *SolicitanteRepo) find(match func(entity.Solicitante) bool) (*entity.Solicitante, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.solicitantes {
		if match(x) {
			return &x, nil
		}
	}
	return nil, nil
}

func (r *SolicitanteRepo) Update(_ context.Context, sol *entity.Solicitante) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.solicitantes[sol.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.NombreSolicitante = sol.NombreSolicitante
	cur.Email = sol.Email
	cur.Telefono = sol.Telefono
	cur.UpdatedAt = r.s.now()
	r.s.solicitantes[sol.ID] = cur
	return nil
}
