package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeerPares_Latin1(t *testing.T) {
	// ó en ISO-8859-1 es 0xF3
	raw := []byte("documento;asunto\nSolicitud;Pensi\xf3n de viudez\nOficio;Remisi\xf3n de informe\nSolicitud;Pensi\xf3n de viudez\n;sin documento\n")

	pares, err := leerPares(raw)

	require.NoError(t, err)
	assert.Equal(t, []par{
		{documento: "Oficio", asunto: "Remisión de informe"},
		{documento: "Solicitud", asunto: "Pensión de viudez"},
	}, pares)
}

func TestLeerPares_UTF8ConBOM(t *testing.T) {
	raw := []byte("\xef\xbb\xbfSolicitud;Constancia de pagos\nSolicitud ; Licencia por salud \n")

	pares, err := leerPares(raw)

	require.NoError(t, err)
	require.Len(t, pares, 2)
	assert.Equal(t, "Constancia de pagos", pares[0].asunto)
	assert.Equal(t, "Licencia por salud", pares[1].asunto)
}

func TestEscribirSQL(t *testing.T) {
	var b strings.Builder
	docs, err := escribirSQL(&b, []par{
		{documento: "Oficio", asunto: "Informe del director"},
		{documento: "Solicitud", asunto: "Constancia d'haberes"},
		{documento: "Solicitud", asunto: "Licencia por salud"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, docs)
	sql := b.String()
	assert.Contains(t, sql, "  ('Oficio'),\n  ('Solicitud')\nON CONFLICT (nombre_documento) DO NOTHING;")
	assert.Contains(t, sql, "SELECT id_documento, 'Constancia d''haberes' FROM documentos WHERE nombre_documento = 'Solicitud'")
	assert.Equal(t, 3, strings.Count(sql, "ON CONFLICT (documento_id, nombre_asunto) DO NOTHING;"))
}
