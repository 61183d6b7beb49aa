package dto

import "time"

// CreateSolicitanteRequest alta de solicitante: Natural con DNI o Jurídica con código modular.
type CreateSolicitanteRequest struct {
	NombreSolicitante string `json:"nombre_solicitante" validate:"required,min=2,max=200"`
	NombreTipo        string `json:"nombre_tipo" validate:"required,oneof=Natural Jurídica"`
	DNI               string `json:"dni" validate:"required_if=NombreTipo Natural,omitempty,dni"`
	CodigoModular     string `json:"codigo_modular" validate:"required_if=NombreTipo Jurídica,omitempty,max=20"`
	Email             string `json:"email" validate:"omitempty,email"`
	Telefono          string `json:"telefono" validate:"omitempty,max=20"`
}

// SolicitanteListRequest búsqueda exacta por identificación.
type SolicitanteListRequest struct {
	DNI           string `query:"dni"`
	CodigoModular string `query:"codigo_modular"`
}

// SolicitanteResponse salida de un solicitante.
type SolicitanteResponse struct {
	ID                int64     `json:"id_solicitante"`
	NombreSolicitante string    `json:"nombre_solicitante"`
	NombreTipo        string    `json:"nombre_tipo"`
	DNI               string    `json:"dni,omitempty"`
	CodigoModular     string    `json:"codigo_modular,omitempty"`
	Email             string    `json:"email"`
	Telefono          string    `json:"telefono"`
	CreatedAt         time.Time `json:"created_at"`
}
