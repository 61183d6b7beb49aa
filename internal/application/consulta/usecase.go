package consulta

import (
	"context"
	"fmt"
	"strings"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

const mensajeObservadoDefecto = "Su expediente presenta observaciones. Acérquese a mesa de partes para conocer los detalles y subsanarlas."

var descripciones = map[string]string{
	entity.EstadoRecepcionado: "Su expediente fue recibido y está en cola de atención.",
	entity.EstadoEnProceso:    "Su expediente está siendo atendido.",
	entity.EstadoObservado:    "Su expediente está OBSERVADO.",
	entity.EstadoListoEntrega: "Su trámite está listo para recoger en mesa de partes.",
	entity.EstadoEntregado:    "Su trámite fue entregado.",
}

// UseCase consulta pública de seguimiento por número de expediente o código.
type UseCase struct {
	expedientes repository.ExpedienteRepository
	cal         *plazo.Calendario
}

// NewUseCase construye el caso de uso.
func NewUseCase(expedientes repository.ExpedienteRepository, cal *plazo.Calendario) *UseCase {
	return &UseCase{expedientes: expedientes, cal: cal}
}

// Consultar devuelve solo lo que el ciudadano necesita ver; los días nunca son negativos.
func (uc *UseCase) Consultar(ctx context.Context, codigo string) (*dto.ConsultaResponse, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return nil, fmt.Errorf("%w: ingrese el número de expediente o código", domain.ErrInvalidInput)
	}
	e, err := uc.expedientes.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("consulta: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: no se encontró ningún expediente con el código %s", domain.ErrNotFound, codigo)
	}

	dias, err := plazo.DiasTranscurridos(e.FechaRecepcion, uc.cal.Hoy())
	if err != nil {
		dias = 0
	}
	dias = plazo.SinNegativos(dias)
	r := &dto.ConsultaResponse{
		NumExpediente:     e.NumExpediente,
		FirmaRuta:         e.FirmaRuta,
		Estado:            e.Estado,
		EstadoDescripcion: descripciones[e.Estado],
		FechaRecepcion:    e.FechaRecepcion,
		DiasTranscurridos: dias,
		DiasLimite:        plazo.DiasLimite,
		Progreso:          plazo.Progreso(dias),
	}
	if f, err := plazo.FormatearFecha(e.FechaRecepcion); err == nil {
		r.FechaRecepcionFormateada = f
	}
	if e.Solicitante != nil {
		r.NombreSolicitante = e.Solicitante.NombreSolicitante
	}
	if e.Asunto != nil {
		r.NombreAsunto = e.Asunto.NombreAsunto
	}
	if e.Estado == entity.EstadoObservado {
		r.Observaciones = strings.TrimSpace(e.Observaciones)
		r.Mensaje = r.Observaciones
		if r.Mensaje == "" {
			r.Mensaje = mensajeObservadoDefecto
		}
	}
	return r, nil
}
