package entity

import "time"

// Historial fila append-only por cada cambio de estado de un expediente.
type Historial struct {
	ID             int64
	ExpedienteID   int64
	EstadoAnterior string
	EstadoNuevo    string
	Observaciones  string
	Usuario        string
	FechaCambio    time.Time
}

// Atencion registro de la atención de un colaborador sobre un expediente.
type Atencion struct {
	ID             int64
	ExpedienteID   int64
	EstadoAnterior string
	EstadoNuevo    string
	Observaciones  string
	Usuario        string
	FechaAtencion  time.Time
}

// Tipos de recogida en la entrega.
const (
	RecogidaTitular = "titular"
	RecogidaTercero = "tercero"
)

// Entrega acta de entrega de un expediente al titular o a un tercero autorizado.
type Entrega struct {
	ID                    int64
	ExpedienteID          int64
	TipoRecogida          string
	DNIRecoge             string
	NombreAutorizado      string
	DNIAutorizado         string
	DocumentoAutorizacion string // clave del objeto en el bucket
	Observaciones         string
	EntregadoPor          string
	FechaEntrega          time.Time
}

// Notificacion aviso de vencimiento registrado para un expediente.
type Notificacion struct {
	ID           int64
	ExpedienteID int64
	Tipo         string
	Dias         int
	Mensaje      string
	Usuario      string
	CreatedAt    time.Time
}

// NotificacionVencimiento tipo de aviso para observados próximos a vencer.
const NotificacionVencimiento = "VENCIMIENTO"
