package entrega

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	"github.com/ugelsanta/expedientes-api/pkg/logger"
)

const contentTypePDF = "application/pdf"

// Archivo documento de autorización subido con la entrega a un tercero.
type Archivo struct {
	Nombre      string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UseCase entrega de expedientes listos al titular o a un tercero autorizado.
type UseCase struct {
	expedientes repository.ExpedienteRepository
	entregas    repository.EntregaRepository
	tx          repository.TxRunner
	storage     ports.FileStorage // nil = sin almacenamiento configurado
	maxBytes    int64
	cal         *plazo.Calendario
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. storage puede ser nil.
func NewUseCase(
	expedientes repository.ExpedienteRepository,
	entregas repository.EntregaRepository,
	tx repository.TxRunner,
	storage ports.FileStorage,
	maxBytes int64,
	cal *plazo.Calendario,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		expedientes: expedientes,
		entregas:    entregas,
		tx:          tx,
		storage:     storage,
		maxBytes:    maxBytes,
		cal:         cal,
		log:         log.Component("entrega"),
	}
}

// Buscar expediente por número o código; solo es entregable si está LISTO PARA ENTREGA.
func (uc *UseCase) Buscar(ctx context.Context, codigo string) (*dto.ExpedienteResponse, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return nil, fmt.Errorf("%w: ingrese el número de expediente o código", domain.ErrInvalidInput)
	}
	e, err := uc.expedientes.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("entrega: buscar expediente: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.Estado != entity.EstadoListoEntrega {
		return nil, fmt.Errorf("%w: el expediente no está listo para entrega (estado: %s)", domain.ErrConflict, e.Estado)
	}
	r := dto.NewExpedienteResponse(e, uc.cal.Hoy())
	return &r, nil
}

// Registrar entrega el expediente: guarda el acta, pasa a ENTREGADO y escribe el
// historial en una transacción. El PDF de autorización se sube antes y se borra
// si la transacción falla.
func (uc *UseCase) Registrar(ctx context.Context, in dto.EntregaRequest, archivo *Archivo, usuario string) (*dto.EntregaResponse, error) {
	if usuario == "" {
		usuario = strings.TrimSpace(in.EntregadoPor)
	}
	ent := &entity.Entrega{
		ExpedienteID:  in.ExpedienteID,
		TipoRecogida:  strings.TrimSpace(in.TipoRecogida),
		Observaciones: strings.TrimSpace(in.Observaciones),
		EntregadoPor:  usuario,
	}
	switch ent.TipoRecogida {
	case entity.RecogidaTitular:
		ent.DNIRecoge = strings.TrimSpace(in.DNIRecoge)
		if !entity.DNIValido(ent.DNIRecoge) {
			return nil, fmt.Errorf("%w: el DNI de quien recoge debe tener 8 dígitos", domain.ErrInvalidInput)
		}
		if archivo != nil {
			return nil, fmt.Errorf("%w: el documento de autorización solo aplica a entregas a terceros", domain.ErrInvalidInput)
		}
	case entity.RecogidaTercero:
		ent.NombreAutorizado = strings.TrimSpace(in.NombreAutorizado)
		ent.DNIAutorizado = strings.TrimSpace(in.DNIAutorizado)
		if ent.NombreAutorizado == "" {
			return nil, fmt.Errorf("%w: indique el nombre de la persona autorizada", domain.ErrInvalidInput)
		}
		if !entity.DNIValido(ent.DNIAutorizado) {
			return nil, fmt.Errorf("%w: el DNI del autorizado debe tener 8 dígitos", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: tipo de recogida debe ser titular o tercero", domain.ErrInvalidInput)
	}

	e, err := uc.expedientes.GetByID(ctx, in.ExpedienteID)
	if err != nil {
		return nil, fmt.Errorf("entrega: obtener expediente: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.Estado != entity.EstadoListoEntrega {
		return nil, fmt.Errorf("%w: solo se entregan expedientes LISTO PARA ENTREGA (estado actual %s)",
			domain.ErrInvalidTransition, e.Estado)
	}

	if archivo != nil {
		key, err := uc.subir(ctx, e, archivo)
		if err != nil {
			return nil, err
		}
		ent.DocumentoAutorizacion = key
	}

	now := time.Now()
	ent.FechaEntrega = now
	anterior := e.Estado
	e.Estado = entity.EstadoEntregado
	e.UpdatedAt = now

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Entregas.Create(ctx, ent); err != nil {
			return fmt.Errorf("crear entrega: %w", err)
		}
		if err := r.Expedientes.Update(ctx, e); err != nil {
			return fmt.Errorf("actualizar expediente: %w", err)
		}
		return r.Historial.Create(ctx, &entity.Historial{
			ExpedienteID:   e.ID,
			EstadoAnterior: anterior,
			EstadoNuevo:    entity.EstadoEntregado,
			Observaciones:  descripcionEntrega(ent),
			Usuario:        usuario,
			FechaCambio:    now,
		})
	})
	if err != nil {
		if ent.DocumentoAutorizacion != "" {
			if derr := uc.storage.Delete(ctx, ent.DocumentoAutorizacion); derr != nil {
				uc.log.Error().Err(derr).Str("key", ent.DocumentoAutorizacion).Msg("no se pudo borrar el documento huérfano")
			}
		}
		return nil, err
	}

	dias := DiasAtencion(e.FechaRecepcion, ent.FechaEntrega, uc.cal)
	uc.log.Info().
		Int64("expediente_id", e.ID).
		Int64("entrega_id", ent.ID).
		Str("tipo_recogida", ent.TipoRecogida).
		Str("usuario", usuario).
		Int("dias", dias).
		Msg("expediente entregado")

	resp := uc.toResponse(ctx, ent, e)
	resp.TiempoAtencion = dias
	return resp, nil
}

// GetByExpediente acta de entrega de un expediente, con enlace temporal al documento.
func (uc *UseCase) GetByExpediente(ctx context.Context, expedienteID int64) (*dto.EntregaResponse, error) {
	e, err := uc.expedientes.GetByID(ctx, expedienteID)
	if err != nil {
		return nil, fmt.Errorf("entrega: obtener expediente: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	ent, err := uc.entregas.GetByExpediente(ctx, expedienteID)
	if err != nil {
		return nil, fmt.Errorf("entrega: obtener: %w", err)
	}
	if ent == nil {
		return nil, fmt.Errorf("%w: el expediente no tiene entrega registrada", domain.ErrNotFound)
	}
	resp := uc.toResponse(ctx, ent, e)
	resp.TiempoAtencion = DiasAtencion(e.FechaRecepcion, ent.FechaEntrega, uc.cal)
	return resp, nil
}

// DiasAtencion días de calendario entre la recepción y la fecha de entrega (en la zona de la oficina).
func DiasAtencion(fechaRecepcion string, entregado time.Time, cal *plazo.Calendario) int {
	var loc *time.Location
	if cal != nil {
		loc = cal.Zona
	}
	dias, err := plazo.DiasTranscurridos(fechaRecepcion, plazo.Hoy(entregado, loc))
	if err != nil {
		return 0
	}
	return plazo.SinNegativos(dias)
}

func (uc *UseCase) subir(ctx context.Context, e *entity.Expediente, a *Archivo) (string, error) {
	if uc.storage == nil {
		return "", domain.ErrStorageDisabled
	}
	if uc.maxBytes > 0 && a.Size > uc.maxBytes {
		return "", fmt.Errorf("%w: máximo %d MB", domain.ErrFileTooLarge, uc.maxBytes/(1024*1024))
	}
	cabecera := make([]byte, 5)
	n, err := io.ReadFull(a.Reader, cabecera)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%w: no se pudo leer el archivo", domain.ErrInvalidInput)
	}
	if !bytes.Equal(cabecera[:n], []byte("%PDF-")) {
		return "", fmt.Errorf("%w: el documento de autorización debe ser PDF", domain.ErrInvalidInput)
	}
	key := fmt.Sprintf("autorizaciones/%s/%s.pdf", e.NumExpediente, uuid.NewString())
	body := io.MultiReader(bytes.NewReader(cabecera[:n]), a.Reader)
	if err := uc.storage.Upload(ctx, key, body, a.Size, contentTypePDF); err != nil {
		return "", fmt.Errorf("entrega: subir documento: %w", err)
	}
	return key, nil
}

func (uc *UseCase) toResponse(ctx context.Context, ent *entity.Entrega, e *entity.Expediente) *dto.EntregaResponse {
	r := &dto.EntregaResponse{
		ID:                    ent.ID,
		ExpedienteID:          e.ID,
		NumExpediente:         e.NumExpediente,
		FirmaRuta:             e.FirmaRuta,
		FechaRecepcion:        e.FechaRecepcion,
		TipoRecogida:          ent.TipoRecogida,
		DNIRecoge:             ent.DNIRecoge,
		NombreAutorizado:      ent.NombreAutorizado,
		DNIAutorizado:         ent.DNIAutorizado,
		DocumentoAutorizacion: ent.DocumentoAutorizacion,
		Observaciones:         ent.Observaciones,
		EntregadoPor:          ent.EntregadoPor,
		FechaEntrega:          ent.FechaEntrega,
	}
	if e.Solicitante != nil {
		r.NombreSolicitante = e.Solicitante.NombreSolicitante
	}
	if e.Asunto != nil {
		r.NombreAsunto = e.Asunto.NombreAsunto
	}
	if ent.DocumentoAutorizacion != "" && uc.storage != nil {
		url, err := uc.storage.PresignedURL(ctx, ent.DocumentoAutorizacion)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", ent.DocumentoAutorizacion).Msg("no se pudo firmar la URL del documento")
		} else {
			r.DocumentoURL = url
		}
	}
	return r
}

func descripcionEntrega(ent *entity.Entrega) string {
	if ent.TipoRecogida == entity.RecogidaTercero {
		return fmt.Sprintf("Entregado a tercero autorizado: %s (DNI %s)", ent.NombreAutorizado, ent.DNIAutorizado)
	}
	return fmt.Sprintf("Entregado al titular (DNI %s)", ent.DNIRecoge)
}
