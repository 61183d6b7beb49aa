package dto

import "time"

// AtencionRequest registro de atención. EstadoAnterior lo envía la consola; el servidor usa el estado real.
type AtencionRequest struct {
	ExpedienteID   int64  `json:"id_expediente" validate:"required,gt=0"`
	EstadoAnterior string `json:"estado_anterior"`
	EstadoNuevo    string `json:"estado_nuevo" validate:"required,oneof='EN PROCESO' OBSERVADO 'LISTO PARA ENTREGA'"`
	Observaciones  string `json:"observaciones" validate:"required_if=EstadoNuevo OBSERVADO,max=2000"`
	Usuario        string `json:"usuario" validate:"omitempty,max=100"`
}

// AtencionResponse atención registrada.
type AtencionResponse struct {
	ID             int64               `json:"id_atencion"`
	ExpedienteID   int64               `json:"id_expediente"`
	EstadoAnterior string              `json:"estado_anterior"`
	EstadoNuevo    string              `json:"estado_nuevo"`
	Observaciones  string              `json:"observaciones"`
	Usuario        string              `json:"usuario"`
	FechaAtencion  time.Time           `json:"fecha_atencion"`
	Expediente     *ExpedienteResponse `json:"expediente,omitempty"`
}

// EntregaRequest datos de la entrega (JSON o multipart; el archivo va aparte).
type EntregaRequest struct {
	ExpedienteID     int64  `json:"expediente_id" form:"expediente_id" validate:"required,gt=0"`
	TipoRecogida     string `json:"tipo_recogida" form:"tipo_recogida" validate:"required,oneof=titular tercero"`
	DNIRecoge        string `json:"dni_recoge" form:"dni_recoge" validate:"required_if=TipoRecogida titular,omitempty,dni"`
	NombreAutorizado string `json:"nombre_autorizado" form:"nombre_autorizado" validate:"required_if=TipoRecogida tercero,omitempty,max=200"`
	DNIAutorizado    string `json:"dni_autorizado" form:"dni_autorizado" validate:"required_if=TipoRecogida tercero,omitempty,dni"`
	Observaciones    string `json:"observaciones" form:"observaciones" validate:"omitempty,max=2000"`
	EntregadoPor     string `json:"entregado_por" form:"entregado_por" validate:"omitempty,max=100"`
}

// EntregaResponse datos del acta de entrega.
type EntregaResponse struct {
	ID                    int64     `json:"id_entrega"`
	ExpedienteID          int64     `json:"expediente_id"`
	NumExpediente         string    `json:"num_expediente"`
	FirmaRuta             string    `json:"firma_ruta"`
	NombreSolicitante     string    `json:"nombre_solicitante"`
	NombreAsunto          string    `json:"nombre_asunto"`
	FechaRecepcion        string    `json:"fecha_recepcion"`
	TipoRecogida          string    `json:"tipo_recogida"`
	DNIRecoge             string    `json:"dni_recoge,omitempty"`
	NombreAutorizado      string    `json:"nombre_autorizado,omitempty"`
	DNIAutorizado         string    `json:"dni_autorizado,omitempty"`
	DocumentoAutorizacion string    `json:"documento_autorizacion,omitempty"`
	DocumentoURL          string    `json:"documento_url,omitempty"`
	Observaciones         string    `json:"observaciones"`
	EntregadoPor          string    `json:"entregado_por"`
	FechaEntrega          time.Time `json:"fecha_entrega"`
	TiempoAtencion        int       `json:"tiempo_atencion"`
}

// NotificacionCandidato expediente que la consola marcó como próximo a vencer.
type NotificacionCandidato struct {
	ID            int64  `json:"id"`
	NumExpediente string `json:"num_expediente"`
	Dias          int    `json:"dias"`
}

// NotificarVencimientosRequest candidatos enviados por la consola (opcional); el servidor recalcula los días.
type NotificarVencimientosRequest struct {
	Expedientes []NotificacionCandidato `json:"expedientes"`
}

// NotificacionItem aviso registrado.
type NotificacionItem struct {
	ExpedienteID  int64  `json:"id_expediente"`
	NumExpediente string `json:"num_expediente"`
	Dias          int    `json:"dias_transcurridos"`
	Mensaje       string `json:"mensaje"`
}

// NotificarVencimientosResponse resultado del envío.
type NotificarVencimientosResponse struct {
	Message        string             `json:"message"`
	Enviadas       int                `json:"enviadas"`
	Notificaciones []NotificacionItem `json:"notificaciones"`
}

// ConsultaResponse vista pública de seguimiento.
type ConsultaResponse struct {
	NumExpediente            string  `json:"num_expediente"`
	FirmaRuta                string  `json:"firma_ruta"`
	Estado                   string  `json:"estado"`
	EstadoDescripcion        string  `json:"estado_descripcion"`
	FechaRecepcion           string  `json:"fecha_recepcion"`
	FechaRecepcionFormateada string  `json:"fecha_recepcion_formateada"`
	DiasTranscurridos        int     `json:"dias_transcurridos"`
	DiasLimite               int     `json:"dias_limite"`
	Progreso                 float64 `json:"progreso"`
	NombreSolicitante        string  `json:"nombre_solicitante"`
	NombreAsunto             string  `json:"nombre_asunto"`
	Observaciones            string  `json:"observaciones,omitempty"`
	Mensaje                  string  `json:"mensaje,omitempty"`
}
