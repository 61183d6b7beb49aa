package dto

import "time"

// CreateExpedienteRequest entrada de mesa de partes. FechaRecepcion vacía = hoy.
type CreateExpedienteRequest struct {
	SolicitanteID   int64  `json:"solicitante_id" validate:"required,gt=0"`
	AsuntoID        int64  `json:"asunto_id" validate:"required,gt=0"`
	FechaRecepcion  string `json:"fecha_recepcion" validate:"omitempty,fecha"`
	Receptor        string `json:"receptor" validate:"required,max=150"`
	NombreDocumento string `json:"nombre_documento" validate:"omitempty,max=150"`
	TipoDocumento   string `json:"tipo_documento" validate:"omitempty,max=100"`
	Observaciones   string `json:"observaciones" validate:"omitempty,max=2000"`
}

// UpdateExpedienteRequest edición desde gestión o atención. Campos nil no cambian.
// Estado RECEPCIONADO sobre un OBSERVADO se trata como corrección.
type UpdateExpedienteRequest struct {
	Estado        *string `json:"estado" validate:"omitempty,estado"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=2000"`
	Usuario       string  `json:"usuario" validate:"omitempty,max=100"`
}

// CorregirRequest subsanación de un expediente observado.
type CorregirRequest struct {
	Observaciones string `json:"observaciones" validate:"omitempty,max=2000"`
	Usuario       string `json:"usuario" validate:"omitempty,max=100"`
}

// ExpedienteListRequest filtros de listado (query string).
type ExpedienteListRequest struct {
	Estado        string `query:"estado"`
	EstadoExcluir string `query:"estado_excluir"`
	Buscar        string `query:"buscar"`
	Periodo       string `query:"periodo"` // Todos | Esta semana | Este mes
	DocumentoID   int64  `query:"documento_id"`
	FechaInicio   string `query:"fecha_inicio"`
	FechaFin      string `query:"fecha_fin"`
}

// UrgenciaResponse semáforo calculado por el servidor.
type UrgenciaResponse struct {
	Nivel    string `json:"nivel"`
	Etiqueta string `json:"etiqueta"`
	Color    string `json:"color"`
}

// ExpedienteResponse salida de un expediente con su plazo ya evaluado.
type ExpedienteResponse struct {
	ID                       int64                `json:"id_expediente"`
	NumExpediente            string               `json:"num_expediente"`
	FirmaRuta                string               `json:"firma_ruta"`
	FechaRecepcion           string               `json:"fecha_recepcion"`
	FechaRecepcionFormateada string               `json:"fecha_recepcion_formateada"`
	Estado                   string               `json:"estado"`
	Observaciones            string               `json:"observaciones"`
	Receptor                 string               `json:"receptor"`
	NombreDocumento          string               `json:"nombre_documento"`
	TipoDocumento            string               `json:"tipo_documento"`
	SolicitanteID            int64                `json:"solicitante_id"`
	AsuntoID                 int64                `json:"asunto_id"`
	Solicitante              *SolicitanteResponse `json:"solicitante,omitempty"`
	Asunto                   *AsuntoResponse      `json:"asunto,omitempty"`
	DiasTranscurridos        int                  `json:"dias_transcurridos"`
	Urgencia                 UrgenciaResponse     `json:"urgencia"`
	LimiteAlcanzado          bool                 `json:"limite_alcanzado"`
	CreatedAt                time.Time            `json:"created_at"`
	UpdatedAt                time.Time            `json:"updated_at"`
}

// CreateExpedienteResponse expediente creado más la fecha límite del cargo.
type CreateExpedienteResponse struct {
	ExpedienteResponse
	FechaLimite           string `json:"fecha_limite"`
	FechaLimiteFormateada string `json:"fecha_limite_formateada"`
}

// HistorialItem fila del historial de estados.
type HistorialItem struct {
	ID             int64     `json:"id_historial"`
	EstadoAnterior string    `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	Estado         string    `json:"estado"`
	Observaciones  string    `json:"observaciones"`
	Usuario        string    `json:"usuario"`
	FechaCambio    time.Time `json:"fecha_cambio"`
}

// HistorialResponse {expediente, historial} que consume la pantalla de historial.
type HistorialResponse struct {
	Expediente ExpedienteResponse `json:"expediente"`
	Historial  []HistorialItem    `json:"historial"`
}
