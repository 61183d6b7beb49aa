package dto

import "time"

// ReporteRequest filtros comunes de los reportes (query string, fechas YYYY-MM-DD).
type ReporteRequest struct {
	FechaInicio string `query:"fecha_inicio"`
	FechaFin    string `query:"fecha_fin"`
	DocumentoID int64  `query:"documento_id"`
	Estado      string `query:"estado"`
	Usuario     string `query:"usuario"`
}

// ResumenPeriodo tarjetas del reporte por periodo.
type ResumenPeriodo struct {
	TotalRecibidos        int     `json:"total_recibidos"`
	TotalAtendidos        int     `json:"total_atendidos"`
	TotalObservados       int     `json:"total_observados"`
	TotalEnProceso        int     `json:"total_en_proceso"`
	TiempoPromedioDias    float64 `json:"tiempo_promedio_dias"`
	PorcentajeDentroPlazo float64 `json:"porcentaje_dentro_plazo"`
}

// ConteoItem cantidad y porcentaje de un grupo (asunto o estado).
type ConteoItem struct {
	Asunto     string  `json:"asunto,omitempty"`
	Estado     string  `json:"estado,omitempty"`
	Cantidad   int     `json:"cantidad"`
	Porcentaje float64 `json:"porcentaje"`
}

// ExpedienteFila fila plana para tablas y exportación.
type ExpedienteFila struct {
	ID                int64  `json:"id_expediente"`
	NumExpediente     string `json:"num_expediente"`
	FirmaRuta         string `json:"firma_ruta"`
	FechaRecepcion    string `json:"fecha_recepcion"`
	Solicitante       string `json:"solicitante"`
	Asunto            string `json:"asunto"`
	Estado            string `json:"estado"`
	DiasTranscurridos int    `json:"dias_transcurridos"`
	Observaciones     string `json:"observaciones"`
	Urgencia          string `json:"urgencia,omitempty"` // alta | media | baja (observados)
}

// ReportePeriodoResponse expedientes recibidos en un rango.
type ReportePeriodoResponse struct {
	Resumen     ResumenPeriodo   `json:"resumen"`
	TopAsuntos  []ConteoItem     `json:"top_asuntos"`
	Expedientes []ExpedienteFila `json:"expedientes"`
}

// ReporteEstadosResponse foto actual por estado.
type ReporteEstadosResponse struct {
	Total                  int              `json:"total"`
	PorEstado              []ConteoItem     `json:"por_estado"`
	ExpedientesMasAntiguos []ExpedienteFila `json:"expedientes_mas_antiguos"`
}

// ColaboradorItem productividad de un funcionario.
type ColaboradorItem struct {
	Usuario         string `json:"usuario"`
	NombreCompleto  string `json:"nombre_completo"`
	TotalAtenciones int    `json:"total_atenciones"`
	EnProceso       int    `json:"en_proceso"`
	Observados      int    `json:"observados"`
	ListosEntrega   int    `json:"listos_entrega"`
	Entregas        int    `json:"entregas"`
}

// ReporteColaboradorResponse atenciones por usuario.
type ReporteColaboradorResponse struct {
	TotalUsuarios int               `json:"total_usuarios"`
	Estadisticas  []ColaboradorItem `json:"estadisticas"`
}

// TiempoAsuntoItem tiempos de atención de un asunto.
type TiempoAsuntoItem struct {
	Asunto                string  `json:"asunto"`
	Cantidad              int     `json:"cantidad"`
	PromedioDias          float64 `json:"promedio_dias"`
	MinimoDias            int     `json:"minimo_dias"`
	MaximoDias            int     `json:"maximo_dias"`
	PorcentajeDentroPlazo float64 `json:"porcentaje_dentro_plazo"`
}

// ReporteTiemposResponse tiempos por asunto y cuellos de botella (< 80% en plazo).
type ReporteTiemposResponse struct {
	TiemposPorAsunto []TiempoAsuntoItem `json:"tiempos_por_asunto"`
	CuellosBotella   []TiempoAsuntoItem `json:"cuellos_botella"`
}

// ObservadosEstadisticas tarjetas del reporte de observados.
type ObservadosEstadisticas struct {
	Total         int     `json:"total"`
	UrgenciaAlta  int     `json:"urgencia_alta"`
	UrgenciaMedia int     `json:"urgencia_media"`
	PromedioDias  float64 `json:"promedio_dias"`
}

// ReporteObservadosResponse observados ordenados por días desc.
type ReporteObservadosResponse struct {
	Estadisticas ObservadosEstadisticas `json:"estadisticas"`
	Expedientes  []ExpedienteFila       `json:"expedientes"`
}

// EntregaSolicitante referencia anidada que lee la tabla de entregas.
type EntregaSolicitante struct {
	NombreSolicitante string `json:"nombre_solicitante"`
}

// EntregaExpediente expediente anidado en la fila de entrega.
type EntregaExpediente struct {
	NumExpediente string             `json:"num_expediente"`
	FirmaRuta     string             `json:"firma_ruta"`
	Solicitante   EntregaSolicitante `json:"solicitante"`
}

// EntregaFila fila del reporte de entregas.
type EntregaFila struct {
	ID               int64             `json:"id_entrega"`
	Expediente       EntregaExpediente `json:"expediente"`
	TipoRecogida     string            `json:"tipo_recogida"`
	NombreAutorizado string            `json:"nombre_autorizado,omitempty"`
	FechaEntrega     time.Time         `json:"fecha_entrega"`
	DiasAtencion     int               `json:"dias_atencion"`
	EntregadoPor     string            `json:"entregado_por"`
}

// EntregasEstadisticas tarjetas del reporte de entregas.
type EntregasEstadisticas struct {
	TotalEntregas  int     `json:"total_entregas"`
	EntregaTitular int     `json:"entrega_titular"`
	EntregaTercero int     `json:"entrega_tercero"`
	TiempoPromedio float64 `json:"tiempo_promedio"`
}

// ReporteEntregasResponse entregas del rango.
type ReporteEntregasResponse struct {
	Estadisticas EntregasEstadisticas `json:"estadisticas"`
	Entregas     []EntregaFila        `json:"entregas"`
}

// ExportarExcelRequest tipo de reporte y filas ya mostradas en pantalla.
type ExportarExcelRequest struct {
	Tipo  string           `json:"tipo" validate:"required,oneof=expedientes observados entregas colaboradores"`
	Datos []map[string]any `json:"datos"`
}
