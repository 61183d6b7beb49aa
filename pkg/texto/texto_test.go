package texto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizar(t *testing.T) {
	assert.Equal(t, "juridica", Normalizar(" Jurídica "))
	assert.Equal(t, "constancia de pago", Normalizar("CONSTANCIA DE PAGO"))
	assert.Equal(t, "nunez", Normalizar("Núñez"))
}

func TestContiene(t *testing.T) {
	assert.True(t, Contiene("Licencia por Enfermedad", "enfer"))
	assert.True(t, Contiene("José Ramírez", "ramirez"))
	assert.False(t, Contiene("EXP-2026-000012", "013"))
	assert.True(t, Contiene("lo que sea", "  "))
}

func TestContieneAlguno(t *testing.T) {
	assert.True(t, ContieneAlguno("ab12", "EXP-2026-000001", "AB12CD34"))
	assert.False(t, ContieneAlguno("zz", "EXP-2026-000001", "AB12CD34"))
	assert.True(t, ContieneAlguno("", "x"))
}

func TestTitulo(t *testing.T) {
	assert.Equal(t, "María López", Titulo("  MARÍA   LÓPEZ "))
}
