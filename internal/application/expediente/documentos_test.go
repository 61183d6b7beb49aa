package expediente_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/expediente"
	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	excelinfra "github.com/ugelsanta/expedientes-api/internal/infrastructure/excel"
)

// pdfEspia guarda lo que recibe el generador.
type pdfEspia struct {
	cargo     ports.CargoPDF
	historial ports.HistorialPDF
}

func (p *pdfEspia) GenerateCargoPDF(_ context.Context, data ports.CargoPDF) ([]byte, error) {
	p.cargo = data
	return []byte("%PDF-cargo"), nil
}

func (p *pdfEspia) GenerateHistorialPDF(_ context.Context, data ports.HistorialPDF) ([]byte, error) {
	p.historial = data
	return []byte("%PDF-historial"), nil
}

func TestCargoPDF_FechaLimiteYQR(t *testing.T) {
	e := nuevoEntorno(t)
	res := e.crear(t, "2026-10-09") // viernes
	espia := &pdfEspia{}
	docs := expediente.NewDocumentosUseCase(e.uc, espia, excelinfra.NewExcelizeExporter(), "https://ugel.gob.pe/consulta/")

	b, nombre, err := docs.CargoPDF(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-cargo", string(b))
	assert.Equal(t, "cargo_EXP-2026-000001.pdf", nombre)
	assert.Equal(t, "2026-10-23", espia.cargo.FechaLimite.String())
	assert.Equal(t, "https://ugel.gob.pe/consulta/"+res.FirmaRuta, espia.cargo.URLConsulta)
	require.NotNil(t, espia.cargo.Expediente.Solicitante)
}

func TestCargoPDF_SinURL_NoGeneraQR(t *testing.T) {
	e := nuevoEntorno(t)
	res := e.crear(t, "")
	espia := &pdfEspia{}
	docs := expediente.NewDocumentosUseCase(e.uc, espia, nil, "")

	_, _, err := docs.CargoPDF(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Empty(t, espia.cargo.URLConsulta)

	_, _, err = docs.CargoPDF(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistorialPDF_IncluyeDias(t *testing.T) {
	e := nuevoEntorno(t)
	res := e.crear(t, "2026-10-03")
	espia := &pdfEspia{}
	docs := expediente.NewDocumentosUseCase(e.uc, espia, nil, "")

	_, nombre, err := docs.HistorialPDF(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "historial_EXP-2026-000001.pdf", nombre)
	assert.Equal(t, 12, espia.historial.Dias)
	assert.Len(t, espia.historial.Historial, 1)
}

func TestExportarObservados_OrdenDePantalla(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	for _, f := range []string{"2026-10-13", "2026-10-01"} {
		res := e.crear(t, f)
		_, err := e.uc.Update(ctx, res.ID, dto.UpdateExpedienteRequest{Estado: ptr(entity.EstadoObservado)}, "colab")
		require.NoError(t, err)
	}
	docs := expediente.NewDocumentosUseCase(e.uc, &pdfEspia{}, excelinfra.NewExcelizeExporter(), "")

	b, nombre, err := docs.ExportarObservados(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "expedientes_observados_2026-10-15.xlsx", nombre)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Observados")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "N° Expediente", rows[0][0])
	assert.Equal(t, "EXP-2026-000002", rows[1][0])
	assert.Equal(t, "14", rows[1][5])
	assert.Equal(t, "José Pérez Ramírez", rows[1][3])
}
