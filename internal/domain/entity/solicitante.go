package entity

import "time"

// Tipos de solicitante.
const (
	TipoNatural  = "Natural"
	TipoJuridica = "Jurídica"
)

// Solicitante persona natural (DNI) o institución educativa (código modular).
type Solicitante struct {
	ID                int64
	NombreSolicitante string
	NombreTipo        string
	DNI               string
	CodigoModular     string
	Email             string
	Telefono          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Identificacion devuelve el DNI o el código modular según el tipo.
func (s *Solicitante) Identificacion() string {
	if s.NombreTipo == TipoJuridica {
		return s.CodigoModular
	}
	return s.DNI
}

// DNIValido DNI peruano: exactamente 8 dígitos.
func DNIValido(dni string) bool {
	if len(dni) != 8 {
		return false
	}
	for _, c := range dni {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
