// Package memory implementa los puertos de repositorio en memoria.
// Sirve para pruebas y para levantar la API sin PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	documentos     map[int64]entity.Documento
	asuntos        map[int64]entity.Asunto
	solicitantes   map[int64]entity.Solicitante
	expedientes    map[int64]entity.Expediente
	historial      []entity.Historial
	atenciones     []entity.Atencion
	entregas       []entity.Entrega
	notificaciones []entity.Notificacion
	usuarios       map[int64]entity.Usuario

	lastID int64
	numero int64

	// Now reloj de created_at y fechas de movimientos; se puede fijar en pruebas.
	Now func() time.Time
	// Zona para convertir fechas de entrega a días de calendario.
	Zona *time.Location
}

// NewStore crea un store vacío con los documentos Solicitud y Oficio.
func NewStore() *Store {
	s := &Store{
		documentos:   make(map[int64]entity.Documento),
		asuntos:      make(map[int64]entity.Asunto),
		solicitantes: make(map[int64]entity.Solicitante),
		expedientes:  make(map[int64]entity.Expediente),
		usuarios:     make(map[int64]entity.Usuario),
		Now:          time.Now,
		Zona:         time.UTC,
	}
	for _, nombre := range []string{"Solicitud", "Oficio"} {
		id := s.id()
		s.documentos[id] = entity.Documento{ID: id, NombreDocumento: nombre}
	}
	return s
}

func (s *Store) id() int64 {
	s.lastID++
	return s.lastID
}

func (s *Store) now() time.Time {
	return s.Now()
}

// snapshot copia superficial de todo el estado; las entidades se guardan por valor.
type snapshot struct {
	documentos     map[int64]entity.Documento
	asuntos        map[int64]entity.Asunto
	solicitantes   map[int64]entity.Solicitante
	expedientes    map[int64]entity.Expediente
	historial      []entity.Historial
	atenciones     []entity.Atencion
	entregas       []entity.Entrega
	notificaciones []entity.Notificacion
	usuarios       map[int64]entity.Usuario
	lastID, numero int64
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		documentos:     cloneMap(s.documentos),
		asuntos:        cloneMap(s.asuntos),
		solicitantes:   cloneMap(s.solicitantes),
		expedientes:    cloneMap(s.expedientes),
		historial:      append([]entity.Historial(nil), s.historial...),
		atenciones:     append([]entity.Atencion(nil), s.atenciones...),
		entregas:       append([]entity.Entrega(nil), s.entregas...),
		notificaciones: append([]entity.Notificacion(nil), s.notificaciones...),
		usuarios:       cloneMap(s.usuarios),
		lastID:         s.lastID,
		numero:         s.numero,
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentos = sn.documentos
	s.asuntos = sn.asuntos
	s.solicitantes = sn.solicitantes
	s.expedientes = sn.expedientes
	s.historial = sn.historial
	s.atenciones = sn.atenciones
	s.entregas = sn.entregas
	s.notificaciones = sn.notificaciones
	s.usuarios = sn.usuarios
	s.lastID = sn.lastID
	s.numero = sn.numero
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre el mismo store y deshace todos los cambios si fn falla.
// No aísla transacciones concurrentes.
type TxRunner struct {
	store *Store
	// Fail si no es nil se devuelve antes de ejecutar fn (simula caída de la base).
	Fail error
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

func (r *TxRunner) Run(_ context.Context, fn func(repos repository.TxRepos) error) error {
	if r.Fail != nil {
		return r.Fail
	}
	sn := r.store.snapshot()
	err := fn(repository.TxRepos{
		Expedientes: r.store.Expedientes(),
		Historial:   r.store.Historial(),
		Atenciones:  r.store.Atenciones(),
		Entregas:    r.store.Entregas(),
	})
	if err != nil {
		r.store.restore(sn)
	}
	return err
}
