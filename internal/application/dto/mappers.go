package dto

import (
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
)

// NewExpedienteResponse arma la salida y evalúa el plazo contra hoy.
// Una fecha almacenada ilegible cuenta como 0 días y se muestra tal cual.
func NewExpedienteResponse(e *entity.Expediente, hoy plazo.Fecha) ExpedienteResponse {
	r := ExpedienteResponse{
		ID:              e.ID,
		NumExpediente:   e.NumExpediente,
		FirmaRuta:       e.FirmaRuta,
		FechaRecepcion:  e.FechaRecepcion,
		Estado:          e.Estado,
		Observaciones:   e.Observaciones,
		Receptor:        e.Receptor,
		NombreDocumento: e.NombreDocumento,
		TipoDocumento:   e.TipoDocumento,
		SolicitanteID:   e.SolicitanteID,
		AsuntoID:        e.AsuntoID,
		Solicitante:     NewSolicitanteResponse(e.Solicitante),
		Asunto:          NewAsuntoResponse(e.Asunto),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	ev, err := plazo.Evaluar(e.FechaRecepcion, hoy)
	if err != nil {
		ev = plazo.Evaluacion{Urgencia: plazo.ClasificarUrgencia(0)}
	}
	r.DiasTranscurridos = ev.Dias
	r.LimiteAlcanzado = ev.LimiteAlcanzado
	r.Urgencia = UrgenciaResponse{
		Nivel:    string(ev.Urgencia.Nivel),
		Etiqueta: ev.Urgencia.Etiqueta,
		Color:    ev.Urgencia.Color,
	}
	if f, err := plazo.FormatearFecha(e.FechaRecepcion); err == nil {
		r.FechaRecepcionFormateada = f
	} else {
		r.FechaRecepcionFormateada = e.FechaRecepcion
	}
	return r
}

// NewSolicitanteResponse nil-safe.
func NewSolicitanteResponse(s *entity.Solicitante) *SolicitanteResponse {
	if s == nil {
		return nil
	}
	return &SolicitanteResponse{
		ID:                s.ID,
		NombreSolicitante: s.NombreSolicitante,
		NombreTipo:        s.NombreTipo,
		DNI:               s.DNI,
		CodigoModular:     s.CodigoModular,
		Email:             s.Email,
		Telefono:          s.Telefono,
		CreatedAt:         s.CreatedAt,
	}
}

// NewAsuntoResponse nil-safe.
func NewAsuntoResponse(a *entity.Asunto) *AsuntoResponse {
	if a == nil {
		return nil
	}
	return &AsuntoResponse{
		ID:            a.ID,
		NombreAsunto:  a.NombreAsunto,
		Descripcion:   a.Descripcion,
		Activo:        a.Activo,
		DocumentoID:   a.DocumentoID,
		TipoDocumento: a.TipoDocumento,
		CreatedAt:     a.CreatedAt,
	}
}

// NewUsuarioResponse sin contraseña.
func NewUsuarioResponse(u *entity.Usuario) *UsuarioResponse {
	if u == nil {
		return nil
	}
	return &UsuarioResponse{
		ID:             u.ID,
		NombreCompleto: u.NombreCompleto,
		DNI:            u.DNI,
		Telefono:       u.Telefono,
		Usuario:        u.Usuario,
		Correo:         u.Correo,
		Rol:            u.Rol,
		Estado:         u.Estado,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// NewHistorialItems convierte las filas del historial.
func NewHistorialItems(hs []*entity.Historial) []HistorialItem {
	out := make([]HistorialItem, 0, len(hs))
	for _, h := range hs {
		out = append(out, HistorialItem{
			ID:             h.ID,
			EstadoAnterior: h.EstadoAnterior,
			EstadoNuevo:    h.EstadoNuevo,
			Estado:         h.EstadoNuevo,
			Observaciones:  h.Observaciones,
			Usuario:        h.Usuario,
			FechaCambio:    h.FechaCambio,
		})
	}
	return out
}
