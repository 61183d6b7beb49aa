package expediente

import (
	"context"
	"fmt"
	"strings"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
)

// ColumnasObservados hoja de exportación de observados.
var ColumnasObservados = []ports.Columna{
	{Titulo: "N° Expediente", Campo: "num_expediente", Ancho: 20},
	{Titulo: "Código", Campo: "firma_ruta", Ancho: 12},
	{Titulo: "Fecha Recepción", Campo: "fecha_recepcion", Ancho: 16},
	{Titulo: "Solicitante", Campo: "solicitante", Ancho: 35},
	{Titulo: "Asunto", Campo: "asunto", Ancho: 40},
	{Titulo: "Días", Campo: "dias_transcurridos", Ancho: 8},
	{Titulo: "Urgencia", Campo: "urgencia", Ancho: 18},
	{Titulo: "Observaciones", Campo: "observaciones", Ancho: 50},
}

// DocumentosUseCase cargo de recepción, historial en PDF y exportación de observados.
type DocumentosUseCase struct {
	exp         *UseCase
	pdf         ports.PDFGenerator
	excel       ports.ExcelExporter
	urlConsulta string
}

// NewDocumentosUseCase urlConsulta es la base pública del QR (ej. https://ugel.gob.pe/consulta); puede ir vacía.
func NewDocumentosUseCase(exp *UseCase, pdf ports.PDFGenerator, excel ports.ExcelExporter, urlConsulta string) *DocumentosUseCase {
	return &DocumentosUseCase{exp: exp, pdf: pdf, excel: excel, urlConsulta: strings.TrimRight(urlConsulta, "/")}
}

// CargoPDF cargo de recepción con la fecha límite en días hábiles.
func (uc *DocumentosUseCase) CargoPDF(ctx context.Context, id int64) ([]byte, string, error) {
	e, err := uc.exp.cargar(ctx, id)
	if err != nil {
		return nil, "", err
	}
	recepcion, err := plazo.ParseFecha(e.FechaRecepcion)
	if err != nil {
		return nil, "", fmt.Errorf("cargo: %w", err)
	}
	data := ports.CargoPDF{
		Expediente:  e,
		FechaLimite: plazo.FechaLimiteHabil(recepcion, plazo.DiasHabilesPlazo),
	}
	if uc.urlConsulta != "" {
		data.URLConsulta = uc.urlConsulta + "/" + e.FirmaRuta
	}
	b, err := uc.pdf.GenerateCargoPDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("cargo: generar pdf: %w", err)
	}
	return b, fmt.Sprintf("cargo_%s.pdf", e.NumExpediente), nil
}

// HistorialPDF reporte de seguimiento de un expediente.
func (uc *DocumentosUseCase) HistorialPDF(ctx context.Context, id int64) ([]byte, string, error) {
	e, hs, err := uc.exp.cargarHistorial(ctx, id)
	if err != nil {
		return nil, "", err
	}
	dias, _ := plazo.DiasTranscurridos(e.FechaRecepcion, uc.exp.Hoy())
	b, err := uc.pdf.GenerateHistorialPDF(ctx, ports.HistorialPDF{
		Expediente: e,
		Historial:  hs,
		Dias:       dias,
		Generado:   uc.exp.ahora(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("historial: generar pdf: %w", err)
	}
	return b, fmt.Sprintf("historial_%s.pdf", e.NumExpediente), nil
}

// ExportarObservados libro .xlsx con los observados en el orden de la pantalla.
func (uc *DocumentosUseCase) ExportarObservados(ctx context.Context, buscar string) ([]byte, string, error) {
	list, err := uc.exp.Observados(ctx, buscar)
	if err != nil {
		return nil, "", err
	}
	filas := make([]map[string]any, 0, len(list))
	for _, r := range list {
		filas = append(filas, FilaPlana(r))
	}
	b, err := uc.excel.Export(ctx, "Observados", ColumnasObservados, filas)
	if err != nil {
		return nil, "", fmt.Errorf("observados: exportar: %w", err)
	}
	return b, fmt.Sprintf("expedientes_observados_%s.xlsx", uc.exp.Hoy().String()), nil
}

// FilaPlana aplana un expediente para tablas y hojas de cálculo.
func FilaPlana(r dto.ExpedienteResponse) map[string]any {
	fila := map[string]any{
		"id_expediente":      r.ID,
		"num_expediente":     r.NumExpediente,
		"firma_ruta":         r.FirmaRuta,
		"fecha_recepcion":    r.FechaRecepcionFormateada,
		"estado":             r.Estado,
		"dias_transcurridos": r.DiasTranscurridos,
		"urgencia":           r.Urgencia.Etiqueta,
		"observaciones":      r.Observaciones,
		"solicitante":        "",
		"asunto":             "",
	}
	if r.Solicitante != nil {
		fila["solicitante"] = r.Solicitante.NombreSolicitante
	}
	if r.Asunto != nil {
		fila["asunto"] = r.Asunto.NombreAsunto
	}
	return fila
}
