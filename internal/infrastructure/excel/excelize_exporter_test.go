package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/ports"
)

func TestExport_EscribeEncabezadoYFilas(t *testing.T) {
	cols := []ports.Columna{
		{Titulo: "N° Expediente", Campo: "num_expediente"},
		{Titulo: "Solicitante", Campo: "solicitante.nombre_solicitante", Ancho: 30},
		{Titulo: "Días", Campo: "dias"},
	}
	filas := []map[string]any{
		{"num_expediente": "EXP-2026-000001", "solicitante": map[string]any{"nombre_solicitante": "Ana Pérez"}, "dias": 9},
		{"num_expediente": "EXP-2026-000002", "dias": 3},
	}

	b, err := NewExcelizeExporter().Export(context.Background(), "Observados", cols, filas)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Observados")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"N° Expediente", "Solicitante", "Días"}, rows[0])
	assert.Equal(t, []string{"EXP-2026-000001", "Ana Pérez", "9"}, rows[1])
	assert.Equal(t, "EXP-2026-000002", rows[2][0])
	assert.Equal(t, "", rows[2][1])
}

func TestExport_SinColumnas(t *testing.T) {
	_, err := NewExcelizeExporter().Export(context.Background(), "x", nil, nil)
	assert.Error(t, err)
}

func TestValor(t *testing.T) {
	fila := map[string]any{
		"a":      map[string]any{"b": map[string]any{"c": "profundo"}},
		"activo": true,
		"nulo":   nil,
	}
	assert.Equal(t, "profundo", Valor(fila, "a.b.c"))
	assert.Equal(t, "Sí", Valor(fila, "activo"))
	assert.Equal(t, "", Valor(fila, "nulo"))
	assert.Equal(t, "", Valor(fila, "a.x.c"))
	assert.Equal(t, "", Valor(fila, "activo.b"))
}

func TestNombreHoja(t *testing.T) {
	assert.Equal(t, "Datos", nombreHoja("  "))
	assert.Equal(t, "a-b-c", nombreHoja("a/b?c"))
	assert.Len(t, []rune(nombreHoja("Reporte de expedientes observados por colaborador")), 31)
}
