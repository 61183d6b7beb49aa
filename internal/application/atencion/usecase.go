package atencion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	"github.com/ugelsanta/expedientes-api/pkg/logger"
)

// UseCase registro de atenciones sobre expedientes recepcionados o en proceso.
type UseCase struct {
	expedientes repository.ExpedienteRepository
	atenciones  repository.AtencionRepository
	tx          repository.TxRunner
	cal         *plazo.Calendario
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	expedientes repository.ExpedienteRepository,
	atenciones repository.AtencionRepository,
	tx repository.TxRunner,
	cal *plazo.Calendario,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{expedientes: expedientes, atenciones: atenciones, tx: tx, cal: cal, log: log.Component("atencion")}
}

// Registrar guarda la atención, cambia el estado del expediente y escribe el
// historial en una sola transacción. El estado anterior se toma de la base,
// no del cliente.
func (uc *UseCase) Registrar(ctx context.Context, in dto.AtencionRequest, usuario string) (*dto.AtencionResponse, error) {
	if usuario == "" {
		usuario = strings.TrimSpace(in.Usuario)
	}
	destino := strings.TrimSpace(in.EstadoNuevo)
	if !entity.EstadoDestinoAtencion(destino) {
		return nil, fmt.Errorf("%w: estado destino no permitido %q", domain.ErrInvalidInput, destino)
	}
	obs := strings.TrimSpace(in.Observaciones)
	if destino == entity.EstadoObservado && obs == "" {
		return nil, fmt.Errorf("%w: indique las observaciones del expediente", domain.ErrInvalidInput)
	}

	e, err := uc.expedientes.GetByID(ctx, in.ExpedienteID)
	if err != nil {
		return nil, fmt.Errorf("atencion: obtener expediente: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if !e.PuedeSerAtendido() {
		return nil, fmt.Errorf("%w: solo se atienden expedientes RECEPCIONADO o EN PROCESO (estado actual %s)",
			domain.ErrInvalidTransition, e.Estado)
	}
	if in.EstadoAnterior != "" && in.EstadoAnterior != e.Estado {
		uc.log.Debug().Int64("expediente_id", e.ID).
			Str("cliente", in.EstadoAnterior).Str("actual", e.Estado).
			Msg("estado anterior desactualizado en el cliente")
	}

	now := time.Now()
	at := &entity.Atencion{
		ExpedienteID:   e.ID,
		EstadoAnterior: e.Estado,
		EstadoNuevo:    destino,
		Observaciones:  obs,
		Usuario:        usuario,
		FechaAtencion:  now,
	}
	e.Estado = destino
	if obs != "" {
		e.Observaciones = obs
	}
	e.UpdatedAt = now

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Atenciones.Create(ctx, at); err != nil {
			return fmt.Errorf("crear atención: %w", err)
		}
		if err := r.Expedientes.Update(ctx, e); err != nil {
			return fmt.Errorf("actualizar expediente: %w", err)
		}
		return r.Historial.Create(ctx, &entity.Historial{
			ExpedienteID:   e.ID,
			EstadoAnterior: at.EstadoAnterior,
			EstadoNuevo:    destino,
			Observaciones:  obs,
			Usuario:        usuario,
			FechaCambio:    now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("expediente_id", e.ID).
		Str("estado_anterior", at.EstadoAnterior).
		Str("estado", destino).
		Str("usuario", usuario).
		Msg("atención registrada")

	exp := dto.NewExpedienteResponse(e, uc.cal.Hoy())
	return &dto.AtencionResponse{
		ID:             at.ID,
		ExpedienteID:   e.ID,
		EstadoAnterior: at.EstadoAnterior,
		EstadoNuevo:    at.EstadoNuevo,
		Observaciones:  at.Observaciones,
		Usuario:        at.Usuario,
		FechaAtencion:  at.FechaAtencion,
		Expediente:     &exp,
	}, nil
}

// ListByExpediente atenciones de un expediente, más antigua primero.
func (uc *UseCase) ListByExpediente(ctx context.Context, expedienteID int64) ([]dto.AtencionResponse, error) {
	list, err := uc.atenciones.ListByExpediente(ctx, expedienteID)
	if err != nil {
		return nil, fmt.Errorf("atencion: listar: %w", err)
	}
	out := make([]dto.AtencionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AtencionResponse{
			ID:             a.ID,
			ExpedienteID:   a.ExpedienteID,
			EstadoAnterior: a.EstadoAnterior,
			EstadoNuevo:    a.EstadoNuevo,
			Observaciones:  a.Observaciones,
			Usuario:        a.Usuario,
			FechaAtencion:  a.FechaAtencion,
		})
	}
	return out, nil
}
