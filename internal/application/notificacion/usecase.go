package notificacion

import (
	"context"
	"fmt"
	"time"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	"github.com/ugelsanta/expedientes-api/pkg/logger"
)

// UseCase avisos de expedientes observados próximos a vencer.
type UseCase struct {
	expedientes    repository.ExpedienteRepository
	notificaciones repository.NotificacionRepository
	cal            *plazo.Calendario
	log            *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	expedientes repository.ExpedienteRepository,
	notificaciones repository.NotificacionRepository,
	cal *plazo.Calendario,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{expedientes: expedientes, notificaciones: notificaciones, cal: cal, log: log.Component("notificacion")}
}

// Vencimientos registra un aviso por cada OBSERVADO con 8 días o más. Si la
// consola envía candidatos, solo se consideran esos; los días siempre se recalculan.
func (uc *UseCase) Vencimientos(ctx context.Context, in dto.NotificarVencimientosRequest, usuario string) (*dto.NotificarVencimientosResponse, error) {
	list, err := uc.expedientes.List(ctx, repository.ExpedienteFilter{Estado: entity.EstadoObservado})
	if err != nil {
		return nil, fmt.Errorf("notificacion: observados: %w", err)
	}
	var candidatos map[int64]bool
	if len(in.Expedientes) > 0 {
		candidatos = make(map[int64]bool, len(in.Expedientes))
		for _, c := range in.Expedientes {
			candidatos[c.ID] = true
		}
	}

	hoy := uc.cal.Hoy()
	resp := &dto.NotificarVencimientosResponse{Notificaciones: []dto.NotificacionItem{}}
	for _, e := range list {
		if candidatos != nil && !candidatos[e.ID] {
			continue
		}
		dias, err := plazo.DiasTranscurridos(e.FechaRecepcion, hoy)
		if err != nil || !plazo.ProximoAVencer(dias) {
			continue
		}
		n := &entity.Notificacion{
			ExpedienteID: e.ID,
			Tipo:         entity.NotificacionVencimiento,
			Dias:         dias,
			Mensaje:      Mensaje(e, dias),
			Usuario:      usuario,
			CreatedAt:    time.Now(),
		}
		if err := uc.notificaciones.Create(ctx, n); err != nil {
			return nil, fmt.Errorf("notificacion: registrar: %w", err)
		}
		uc.log.Info().
			Int64("expediente_id", e.ID).
			Str("num_expediente", e.NumExpediente).
			Int("dias", dias).
			Str("usuario", usuario).
			Msg("aviso de vencimiento registrado")
		resp.Notificaciones = append(resp.Notificaciones, dto.NotificacionItem{
			ExpedienteID:  e.ID,
			NumExpediente: e.NumExpediente,
			Dias:          dias,
			Mensaje:       n.Mensaje,
		})
	}
	resp.Enviadas = len(resp.Notificaciones)
	resp.Message = fmt.Sprintf("Notificaciones enviadas para %d expediente(s) próximo(s) a vencer", resp.Enviadas)
	return resp, nil
}

// Mensaje texto del aviso.
func Mensaje(e *entity.Expediente, dias int) string {
	restantes := plazo.DiasLimite - dias
	if restantes <= 0 {
		return fmt.Sprintf("El expediente %s lleva %d días observado y superó el plazo de %d días.", e.NumExpediente, dias, plazo.DiasLimite)
	}
	return fmt.Sprintf("El expediente %s lleva %d días observado; vence en %d día(s).", e.NumExpediente, dias, restantes)
}
