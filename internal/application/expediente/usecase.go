package expediente

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	"github.com/ugelsanta/expedientes-api/pkg/logger"
	"github.com/ugelsanta/expedientes-api/pkg/texto"
)

// Periodos del filtro de gestión.
const (
	PeriodoTodos      = "Todos"
	PeriodoEstaSemana = "Esta semana"
	PeriodoEsteMes    = "Este mes"
)

const (
	nombreDocumentoDefecto = "FUT"
	intentosFirmaRuta      = 5
)

// UseCase casos de uso de expedientes: recepción, gestión, observados e historial.
type UseCase struct {
	repo         repository.ExpedienteRepository
	historial    repository.HistorialRepository
	solicitantes repository.SolicitanteRepository
	asuntos      repository.AsuntoRepository
	tx           repository.TxRunner
	cal          *plazo.Calendario
	log          *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.ExpedienteRepository,
	historial repository.HistorialRepository,
	solicitantes repository.SolicitanteRepository,
	asuntos repository.AsuntoRepository,
	tx repository.TxRunner,
	cal *plazo.Calendario,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:         repo,
		historial:    historial,
		solicitantes: solicitantes,
		asuntos:      asuntos,
		tx:           tx,
		cal:          cal,
		log:          log.Component("expediente"),
	}
}

// Hoy fecha de calendario de la oficina.
func (uc *UseCase) Hoy() plazo.Fecha {
	return uc.cal.Hoy()
}

func (uc *UseCase) ahora() time.Time {
	if uc.cal == nil || uc.cal.Zona == nil {
		return time.Now()
	}
	return time.Now().In(uc.cal.Zona)
}

// Create registra un expediente en mesa de partes: numera, genera el código de
// seguimiento y deja la primera fila del historial en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateExpedienteRequest) (*dto.CreateExpedienteResponse, error) {
	hoy := uc.cal.Hoy()
	fecha := hoy
	if strings.TrimSpace(in.FechaRecepcion) != "" {
		f, err := plazo.ParseFecha(in.FechaRecepcion)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de recepción inválida", domain.ErrInvalidInput)
		}
		if hoy.Antes(f) {
			return nil, fmt.Errorf("%w: la fecha de recepción no puede ser futura", domain.ErrInvalidInput)
		}
		fecha = f
	}

	sol, err := uc.solicitantes.GetByID(ctx, in.SolicitanteID)
	if err != nil {
		return nil, fmt.Errorf("expediente: obtener solicitante: %w", err)
	}
	if sol == nil {
		return nil, fmt.Errorf("%w: solicitante no encontrado", domain.ErrNotFound)
	}
	asunto, err := uc.asuntos.GetByID(ctx, in.AsuntoID)
	if err != nil {
		return nil, fmt.Errorf("expediente: obtener asunto: %w", err)
	}
	if asunto == nil {
		return nil, fmt.Errorf("%w: asunto no encontrado", domain.ErrNotFound)
	}
	if !asunto.Activo {
		return nil, fmt.Errorf("%w: el asunto está inactivo", domain.ErrInvalidInput)
	}

	nombreDoc := strings.TrimSpace(in.NombreDocumento)
	if nombreDoc == "" {
		nombreDoc = nombreDocumentoDefecto
	}
	tipoDoc := strings.TrimSpace(in.TipoDocumento)
	if tipoDoc == "" {
		tipoDoc = asunto.TipoDocumento
	}

	now := time.Now()
	exp := &entity.Expediente{
		FechaRecepcion:  fecha.String(),
		Estado:          entity.EstadoRecepcionado,
		Observaciones:   strings.TrimSpace(in.Observaciones),
		Receptor:        strings.TrimSpace(in.Receptor),
		NombreDocumento: nombreDoc,
		TipoDocumento:   tipoDoc,
		SolicitanteID:   sol.ID,
		AsuntoID:        asunto.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		n, err := r.Expedientes.NextNumero(ctx)
		if err != nil {
			return fmt.Errorf("numerar expediente: %w", err)
		}
		exp.NumExpediente = NumeroExpediente(hoy.Anio, n)
		firma, err := uc.nuevaFirmaRuta(ctx, r.Expedientes)
		if err != nil {
			return err
		}
		exp.FirmaRuta = firma
		if err := r.Expedientes.Create(ctx, exp); err != nil {
			return fmt.Errorf("crear expediente: %w", err)
		}
		return r.Historial.Create(ctx, &entity.Historial{
			ExpedienteID:  exp.ID,
			EstadoNuevo:   entity.EstadoRecepcionado,
			Observaciones: "Expediente recepcionado",
			Usuario:       exp.Receptor,
			FechaCambio:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	exp.Solicitante = sol
	exp.Asunto = asunto
	limite := plazo.FechaLimiteHabil(fecha, plazo.DiasHabilesPlazo)
	uc.log.Info().
		Int64("expediente_id", exp.ID).
		Str("num_expediente", exp.NumExpediente).
		Str("receptor", exp.Receptor).
		Msg("expediente recepcionado")

	return &dto.CreateExpedienteResponse{
		ExpedienteResponse:    dto.NewExpedienteResponse(exp, hoy),
		FechaLimite:           limite.String(),
		FechaLimiteFormateada: limite.Formatear(),
	}, nil
}

// NumeroExpediente formato EXP-AAAA-NNNNNN.
func NumeroExpediente(anio int, n int64) string {
	return fmt.Sprintf("EXP-%04d-%06d", anio, n)
}

// NuevaFirmaRuta código de 8 caracteres en mayúsculas.
func NuevaFirmaRuta() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (uc *UseCase) nuevaFirmaRuta(ctx context.Context, repo repository.ExpedienteRepository) (string, error) {
	for i := 0; i < intentosFirmaRuta; i++ {
		firma := NuevaFirmaRuta()
		existente, err := repo.GetByCodigo(ctx, firma)
		if err != nil {
			return "", fmt.Errorf("verificar firma de ruta: %w", err)
		}
		if existente == nil {
			return firma, nil
		}
	}
	return "", fmt.Errorf("%w: no se pudo generar un código de seguimiento único", domain.ErrConflict)
}

// List listado con filtros; la búsqueda por texto ignora mayúsculas y tildes.
func (uc *UseCase) List(ctx context.Context, in dto.ExpedienteListRequest) ([]dto.ExpedienteResponse, error) {
	hoy := uc.cal.Hoy()
	f, err := uc.filtro(in, hoy)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("expediente: listar: %w", err)
	}
	out := make([]dto.ExpedienteResponse, 0, len(list))
	for _, e := range list {
		if !Coincide(e, in.Buscar) {
			continue
		}
		out = append(out, dto.NewExpedienteResponse(e, hoy))
	}
	return out, nil
}

func (uc *UseCase) filtro(in dto.ExpedienteListRequest, hoy plazo.Fecha) (repository.ExpedienteFilter, error) {
	f := repository.ExpedienteFilter{
		Estado:        strings.TrimSpace(in.Estado),
		EstadoExcluir: strings.TrimSpace(in.EstadoExcluir),
		DocumentoID:   in.DocumentoID,
	}
	if f.Estado == "Todos" {
		f.Estado = ""
	}
	if f.Estado != "" && !entity.EstadoValido(f.Estado) {
		return f, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, f.Estado)
	}
	// Se guarda la fecha ya parseada: una hora en el parámetro no debe mover el día.
	for _, c := range []struct{ origen, destino *string }{
		{&in.FechaInicio, &f.FechaDesde},
		{&in.FechaFin, &f.FechaHasta},
	} {
		if strings.TrimSpace(*c.origen) == "" {
			continue
		}
		fecha, err := plazo.ParseFecha(*c.origen)
		if err != nil {
			return f, fmt.Errorf("%w: rango de fechas inválido", domain.ErrInvalidInput)
		}
		*c.destino = fecha.String()
	}

	desde, err := InicioPeriodo(in.Periodo, hoy)
	if err != nil {
		return f, err
	}
	if !desde.IsZero() {
		f.FechaDesde = desde.String()
	}
	return f, nil
}

// InicioPeriodo primer día del periodo de gestión: lunes de la semana o día 1 del mes.
func InicioPeriodo(periodo string, hoy plazo.Fecha) (plazo.Fecha, error) {
	switch strings.TrimSpace(periodo) {
	case "", PeriodoTodos:
		return plazo.Fecha{}, nil
	case PeriodoEstaSemana:
		desdeLunes := (int(hoy.DiaSemana()) + 6) % 7
		return hoy.AgregarDias(-desdeLunes), nil
	case PeriodoEsteMes:
		return plazo.Fecha{Anio: hoy.Anio, Mes: hoy.Mes, Dia: 1}, nil
	default:
		return plazo.Fecha{}, fmt.Errorf("%w: periodo desconocido %q", domain.ErrInvalidInput, periodo)
	}
}

// Coincide búsqueda libre sobre número, código, solicitante y asunto.
func Coincide(e *entity.Expediente, buscar string) bool {
	campos := []string{e.NumExpediente, e.FirmaRuta, e.NombreDocumento}
	if e.Solicitante != nil {
		campos = append(campos, e.Solicitante.NombreSolicitante, e.Solicitante.Identificacion())
	}
	if e.Asunto != nil {
		campos = append(campos, e.Asunto.NombreAsunto)
	}
	return texto.ContieneAlguno(buscar, campos...)
}

// GetByID expediente con solicitante y asunto.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.ExpedienteResponse, error) {
	e, err := uc.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	r := dto.NewExpedienteResponse(e, uc.cal.Hoy())
	return &r, nil
}

// Buscar por número de expediente o código de seguimiento (entrega y consulta).
func (uc *UseCase) Buscar(ctx context.Context, codigo string) (*entity.Expediente, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return nil, fmt.Errorf("%w: ingrese el número de expediente o código", domain.ErrInvalidInput)
	}
	e, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("expediente: buscar: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (uc *UseCase) cargar(ctx context.Context, id int64) (*entity.Expediente, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("expediente: obtener: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Update edita observaciones y, si se indica, el estado. Volver a RECEPCIONADO
// desde OBSERVADO es una corrección y reinicia el plazo.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateExpedienteRequest, usuario string) (*dto.ExpedienteResponse, error) {
	e, err := uc.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if usuario == "" {
		usuario = in.Usuario
	}

	if in.Estado != nil && *in.Estado != e.Estado {
		destino := *in.Estado
		if e.Estado == entity.EstadoObservado && destino == entity.EstadoRecepcionado {
			obs := ""
			if in.Observaciones != nil {
				obs = *in.Observaciones
			}
			return uc.Corregir(ctx, id, dto.CorregirRequest{Observaciones: obs}, usuario)
		}
		if !e.PuedeSerAtendido() || !entity.EstadoDestinoAtencion(destino) {
			return nil, fmt.Errorf("%w: de %s a %s", domain.ErrInvalidTransition, e.Estado, destino)
		}
		anterior := e.Estado
		e.Estado = destino
		if in.Observaciones != nil {
			e.Observaciones = strings.TrimSpace(*in.Observaciones)
		}
		e.UpdatedAt = time.Now()
		err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
			if err := r.Expedientes.Update(ctx, e); err != nil {
				return fmt.Errorf("actualizar expediente: %w", err)
			}
			return r.Historial.Create(ctx, &entity.Historial{
				ExpedienteID:   e.ID,
				EstadoAnterior: anterior,
				EstadoNuevo:    destino,
				Observaciones:  e.Observaciones,
				Usuario:        usuario,
				FechaCambio:    e.UpdatedAt,
			})
		})
		if err != nil {
			return nil, err
		}
		uc.log.Info().Int64("expediente_id", e.ID).Str("estado", destino).Str("usuario", usuario).Msg("estado actualizado")
	} else if in.Observaciones != nil {
		e.Observaciones = strings.TrimSpace(*in.Observaciones)
		e.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, e); err != nil {
			return nil, fmt.Errorf("expediente: actualizar: %w", err)
		}
	}

	r := dto.NewExpedienteResponse(e, uc.cal.Hoy())
	return &r, nil
}

// Corregir subsana un expediente OBSERVADO: vuelve a RECEPCIONADO con fecha de
// recepción de hoy, por lo que los días transcurridos se reinician en 0.
func (uc *UseCase) Corregir(ctx context.Context, id int64, in dto.CorregirRequest, usuario string) (*dto.ExpedienteResponse, error) {
	e, err := uc.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Estado != entity.EstadoObservado {
		return nil, fmt.Errorf("%w: solo se corrigen expedientes observados (estado actual %s)", domain.ErrInvalidTransition, e.Estado)
	}
	if usuario == "" {
		usuario = in.Usuario
	}

	hoy := uc.cal.Hoy()
	e.Estado = entity.EstadoRecepcionado
	e.FechaRecepcion = hoy.String()
	if obs := strings.TrimSpace(in.Observaciones); obs != "" {
		e.Observaciones = obs
	}
	e.UpdatedAt = time.Now()

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Expedientes.Update(ctx, e); err != nil {
			return fmt.Errorf("corregir expediente: %w", err)
		}
		return r.Historial.Create(ctx, &entity.Historial{
			ExpedienteID:   e.ID,
			EstadoAnterior: entity.EstadoObservado,
			EstadoNuevo:    entity.EstadoRecepcionado,
			Observaciones:  "Corrección de observaciones: " + e.Observaciones,
			Usuario:        usuario,
			FechaCambio:    e.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("expediente_id", e.ID).Str("usuario", usuario).Str("fecha_recepcion", e.FechaRecepcion).Msg("expediente corregido")

	r := dto.NewExpedienteResponse(e, hoy)
	return &r, nil
}

// Observados expedientes OBSERVADO ordenados por días transcurridos (mayor primero).
func (uc *UseCase) Observados(ctx context.Context, buscar string) ([]dto.ExpedienteResponse, error) {
	out, err := uc.List(ctx, dto.ExpedienteListRequest{Estado: entity.EstadoObservado, Buscar: buscar})
	if err != nil {
		return nil, err
	}
	OrdenarPorDias(out)
	return out, nil
}

// OrdenarPorDias orden descendente por días; empate por número de expediente.
func OrdenarPorDias(list []dto.ExpedienteResponse) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DiasTranscurridos != list[j].DiasTranscurridos {
			return list[i].DiasTranscurridos > list[j].DiasTranscurridos
		}
		return list[i].NumExpediente < list[j].NumExpediente
	})
}

// Historial expediente y sus cambios de estado en orden cronológico.
func (uc *UseCase) Historial(ctx context.Context, id int64) (*dto.HistorialResponse, error) {
	e, hs, err := uc.cargarHistorial(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.HistorialResponse{
		Expediente: dto.NewExpedienteResponse(e, uc.cal.Hoy()),
		Historial:  dto.NewHistorialItems(hs),
	}, nil
}

func (uc *UseCase) cargarHistorial(ctx context.Context, id int64) (*entity.Expediente, []*entity.Historial, error) {
	e, err := uc.cargar(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	hs, err := uc.historial.ListByExpediente(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("expediente: historial: %w", err)
	}
	return e, hs, nil
}

// Delete elimina el expediente y sus movimientos.
func (uc *UseCase) Delete(ctx context.Context, id int64, usuario string) error {
	if _, err := uc.cargar(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("expediente: eliminar: %w", err)
	}
	uc.log.Warn().Int64("expediente_id", id).Str("usuario", usuario).Msg("expediente eliminado")
	return nil
}
