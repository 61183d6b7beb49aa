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
	_ repository.UsuarioRepository = (*UsuarioRepo)(nil)
	_ repository.ReporteRepository = (*ReporteRepo)(nil)
)

type UsuarioRepo struct{ s *Store }

func (s *Store) Usuarios() *UsuarioRepo { return &UsuarioRepo{s: s} }

func (s *Store) usuarioDuplicado(u *entity.Usuario) bool {
	for _, x := range s.usuarios {
		if x.ID == u.ID {
			continue
		}
		if x.DNI == u.DNI || x.Usuario == u.Usuario || strings.EqualFold(x.Correo, u.Correo) {
			return true
		}
	}
	return false
}

func (r *UsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usuarioDuplicado(u) {
		return domain.ErrDuplicate
	}
	u.ID = r.s.id()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.usuarios[u.ID] = *u
	return nil
}

func (r *UsuarioRepo) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.usuarios[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UsuarioRepo) FindByLogin(_ context.Context, login string) (*entity.Usuario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.usuarios {
		if u.Usuario == login || strings.EqualFold(u.Correo, login) {
			return &u, nil
		}
	}
	return nil, nil
}

func contiene(campo, buscar string) bool {
	return strings.Contains(strings.ToLower(campo), strings.ToLower(buscar))
}

func (r *UsuarioRepo) List(_ context.Context, f repository.UsuarioFilter) ([]*entity.Usuario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Usuario
	for _, u := range r.s.usuarios {
		if f.Estado != "" && u.Estado != f.Estado {
			continue
		}
		if f.Rol != "" && u.Rol != f.Rol {
			continue
		}
		if f.Buscar != "" && !contiene(u.NombreCompleto, f.Buscar) && !contiene(u.Usuario, f.Buscar) &&
			!contiene(u.Correo, f.Buscar) && !contiene(u.DNI, f.Buscar) {
			continue
		}
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].NombreCompleto < list[j].NombreCompleto })
	return list, nil
}

func (r *UsuarioRepo) Stats(_ context.Context) (repository.UsuarioStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var st repository.UsuarioStats
	for _, u := range r.s.usuarios {
		st.Total++
		switch u.Estado {
		case entity.UsuarioActivo:
			st.Activos++
		case entity.UsuarioInactivo:
			st.Inactivos++
		}
		switch u.Rol {
		case entity.RolAdministrador:
			st.Administradores++
		case entity.RolColaborador:
			st.Colaboradores++
		}
	}
	return st, nil
}

func (r *UsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.usuarios[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.s.usuarioDuplicado(u) {
		return domain.ErrDuplicate
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.s.now()
	r.s.usuarios[u.ID] = *u
	return nil
}

func (r *UsuarioRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usuarios[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.usuarios, id)
	return nil
}

// ReporteRepo agrega sobre los datos del store con la misma semántica que las consultas SQL.
type ReporteRepo struct{ s *Store }

func (s *Store) Reportes() *ReporteRepo { return &ReporteRepo{s: s} }

func (r *ReporteRepo) ConteoPorEstado(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, e := range r.s.expedientes {
		out[e.Estado]++
	}
	return out, nil
}

func (r *ReporteRepo) PorColaborador(_ context.Context, desde, hasta, usuario string) ([]repository.ColaboradorResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	enRango := func(dia string) bool {
		return (desde == "" || dia >= desde) && (hasta == "" || dia <= hasta)
	}
	por := make(map[string]*repository.ColaboradorResult)
	fila := func(u string) *repository.ColaboradorResult {
		c, ok := por[u]
		if !ok {
			c = &repository.ColaboradorResult{Usuario: u}
			por[u] = c
		}
		return c
	}
	for _, a := range r.s.atenciones {
		if a.Usuario == "" || (usuario != "" && a.Usuario != usuario) ||
			!enRango(a.FechaAtencion.In(r.s.Zona).Format("2006-01-02")) {
			continue
		}
		c := fila(a.Usuario)
		c.TotalAtenciones++
		switch a.EstadoNuevo {
		case entity.EstadoEnProceso:
			c.EnProceso++
		case entity.EstadoObservado:
			c.Observados++
		case entity.EstadoListoEntrega:
			c.ListosEntrega++
		}
	}
	for _, en := range r.s.entregas {
		if en.EntregadoPor == "" || (usuario != "" && en.EntregadoPor != usuario) ||
			!enRango(en.FechaEntrega.In(r.s.Zona).Format("2006-01-02")) {
			continue
		}
		fila(en.EntregadoPor).Entregas++
	}

	list := make([]repository.ColaboradorResult, 0, len(por))
	for _, c := range por {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].TotalAtenciones != list[j].TotalAtenciones {
			return list[i].TotalAtenciones > list[j].TotalAtenciones
		}
		return list[i].Usuario < list[j].Usuario
	})
	return list, nil
}
