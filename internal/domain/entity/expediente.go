package entity

import "time"

// Estados del ciclo de vida de un expediente.
const (
	EstadoRecepcionado = "RECEPCIONADO"
	EstadoEnProceso    = "EN PROCESO"
	EstadoObservado    = "OBSERVADO"
	EstadoListoEntrega = "LISTO PARA ENTREGA"
	EstadoEntregado    = "ENTREGADO"
)

// Estados en el orden del flujo; lo usan los reportes para agrupar.
var Estados = []string{
	EstadoRecepcionado,
	EstadoEnProceso,
	EstadoObservado,
	EstadoListoEntrega,
	EstadoEntregado,
}

// EstadoValido indica si s es uno de los cinco estados.
func EstadoValido(s string) bool {
	for _, e := range Estados {
		if e == s {
			return true
		}
	}
	return false
}

// Expediente representa un trámite recibido en mesa de partes.
type Expediente struct {
	ID              int64
	NumExpediente   string
	FirmaRuta       string // código de seguimiento que se entrega al ciudadano
	FechaRecepcion  string // YYYY-MM-DD, fecha de calendario sin hora
	Estado          string
	Observaciones   string
	Receptor        string
	NombreDocumento string
	TipoDocumento   string
	SolicitanteID   int64
	AsuntoID        int64
	Solicitante     *Solicitante // cargado por join en lecturas
	Asunto          *Asunto
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PuedeSerAtendido solo los expedientes recepcionados o en proceso pasan por atención.
func (e *Expediente) PuedeSerAtendido() bool {
	return e.Estado == EstadoRecepcionado || e.Estado == EstadoEnProceso
}

// EstadoDestinoAtencion estados a los que puede llevar una atención.
func EstadoDestinoAtencion(estado string) bool {
	switch estado {
	case EstadoEnProceso, EstadoObservado, EstadoListoEntrega:
		return true
	}
	return false
}
