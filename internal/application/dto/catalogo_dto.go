package dto

import "time"

// DocumentoResponse tipo de documento del catálogo.
type DocumentoResponse struct {
	ID              int64  `json:"id_documento"`
	NombreDocumento string `json:"nombre_documento"`
}

// AsuntoRequest alta o edición de asunto. Activo nil en alta = true.
type AsuntoRequest struct {
	NombreAsunto string `json:"nombre_asunto" validate:"required,min=2,max=255"`
	Descripcion  string `json:"descripcion" validate:"omitempty,max=1000"`
	DocumentoID  int64  `json:"documento_id" validate:"required,gt=0"`
	Activo       *bool  `json:"activo"`
}

// AsuntoListRequest filtros del listado de asuntos.
type AsuntoListRequest struct {
	DocumentoID int64  `query:"documento_id"`
	Activo      string `query:"activo"` // "true" | "false" | vacío
}

// AsuntoResponse salida de un asunto.
type AsuntoResponse struct {
	ID            int64     `json:"id_asunto"`
	NombreAsunto  string    `json:"nombre_asunto"`
	Descripcion   string    `json:"descripcion"`
	Activo        bool      `json:"activo"`
	DocumentoID   int64     `json:"documento_id"`
	TipoDocumento string    `json:"tipo_documento,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
