package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

// CatalogoUseCase documentos y asuntos.
type CatalogoUseCase struct {
	documentos repository.DocumentoRepository
	asuntos    repository.AsuntoRepository
}

// NewCatalogoUseCase construye el caso de uso.
func NewCatalogoUseCase(documentos repository.DocumentoRepository, asuntos repository.AsuntoRepository) *CatalogoUseCase {
	return &CatalogoUseCase{documentos: documentos, asuntos: asuntos}
}

// ListDocumentos tipos de documento.
func (uc *CatalogoUseCase) ListDocumentos(ctx context.Context) ([]dto.DocumentoResponse, error) {
	list, err := uc.documentos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalogo: listar documentos: %w", err)
	}
	out := make([]dto.DocumentoResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DocumentoResponse{ID: d.ID, NombreDocumento: d.NombreDocumento})
	}
	return out, nil
}

// ListAsuntos asuntos, opcionalmente de un documento y por estado activo.
func (uc *CatalogoUseCase) ListAsuntos(ctx context.Context, in dto.AsuntoListRequest) ([]dto.AsuntoResponse, error) {
	f := repository.AsuntoFilter{DocumentoID: in.DocumentoID}
	if s := strings.TrimSpace(in.Activo); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: activo debe ser true o false", domain.ErrInvalidInput)
		}
		f.Activo = &b
	}
	list, err := uc.asuntos.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("catalogo: listar asuntos: %w", err)
	}
	out := make([]dto.AsuntoResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *dto.NewAsuntoResponse(a))
	}
	return out, nil
}

// GetAsunto asunto por ID.
func (uc *CatalogoUseCase) GetAsunto(ctx context.Context, id int64) (*dto.AsuntoResponse, error) {
	a, err := uc.asuntos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewAsuntoResponse(a), nil
}

// CreateAsunto alta de asunto; activo por defecto.
func (uc *CatalogoUseCase) CreateAsunto(ctx context.Context, in dto.AsuntoRequest) (*dto.AsuntoResponse, error) {
	doc, err := uc.documento(ctx, in.DocumentoID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	a := &entity.Asunto{
		NombreAsunto:  strings.TrimSpace(in.NombreAsunto),
		Descripcion:   strings.TrimSpace(in.Descripcion),
		Activo:        in.Activo == nil || *in.Activo,
		DocumentoID:   doc.ID,
		TipoDocumento: doc.NombreDocumento,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.asuntos.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe el asunto %q para %s", domain.ErrDuplicate, a.NombreAsunto, doc.NombreDocumento)
		}
		return nil, fmt.Errorf("catalogo: crear asunto: %w", err)
	}
	return dto.NewAsuntoResponse(a), nil
}

// UpdateAsunto edición completa; la consola también la usa para activar/desactivar.
func (uc *CatalogoUseCase) UpdateAsunto(ctx context.Context, id int64, in dto.AsuntoRequest) (*dto.AsuntoResponse, error) {
	a, err := uc.asuntos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	doc, err := uc.documento(ctx, in.DocumentoID)
	if err != nil {
		return nil, err
	}
	a.NombreAsunto = strings.TrimSpace(in.NombreAsunto)
	a.Descripcion = strings.TrimSpace(in.Descripcion)
	a.DocumentoID = doc.ID
	a.TipoDocumento = doc.NombreDocumento
	if in.Activo != nil {
		a.Activo = *in.Activo
	}
	a.UpdatedAt = time.Now()
	if err := uc.asuntos.Update(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("catalogo: actualizar asunto: %w", err)
	}
	return dto.NewAsuntoResponse(a), nil
}

// DeleteAsunto elimina un asunto sin expedientes; con expedientes devuelve ErrConflict.
func (uc *CatalogoUseCase) DeleteAsunto(ctx context.Context, id int64) error {
	if err := uc.asuntos.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("catalogo: eliminar asunto: %w", err)
	}
	return nil
}

func (uc *CatalogoUseCase) documento(ctx context.Context, id int64) (*entity.Documento, error) {
	doc, err := uc.documentos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalogo: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: tipo de documento no encontrado", domain.ErrInvalidInput)
	}
	return doc, nil
}
