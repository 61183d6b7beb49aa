package entity

import "time"

// Documento tipo de documento de ingreso (Solicitud, Oficio).
type Documento struct {
	ID              int64
	NombreDocumento string
}

// Asunto tipo de trámite; pertenece a un Documento.
type Asunto struct {
	ID            int64
	NombreAsunto  string
	Descripcion   string
	Activo        bool
	DocumentoID   int64
	TipoDocumento string // nombre del documento (join)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
