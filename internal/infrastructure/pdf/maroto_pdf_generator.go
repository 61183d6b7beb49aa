// Package pdf genera los documentos imprimibles de mesa de partes.
//
// Cargo de recepción (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: UGEL Santa + Mesa de Partes │ N° Expediente + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nombre + DNI/Código modular + contacto        │
//	│  TRÁMITE: Documento / Asunto / Fecha límite                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SEGUIMIENTO: Código + QR de consulta                        │
//	└─────────────────────────────────────────────────────────────┘
//
// El reporte de historial repite el header y lista los cambios de estado.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
)

const institucion = "UGEL SANTA"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(titulo string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor(institucion, true).
		Build()
	return maroto.New(cfg)
}

// GenerateCargoPDF genera el cargo de recepción y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCargoPDF(_ context.Context, data ports.CargoPDF) ([]byte, error) {
	e := data.Expediente
	if e == nil {
		return nil, fmt.Errorf("pdf: cargo sin expediente")
	}
	m := newDocument("Cargo de recepción " + e.NumExpediente)

	m.AddRows(headerRow(e, "CARGO DE RECEPCIÓN"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(solicitanteRow(e.Solicitante))
	m.AddRows(tramiteRow(e, data.FechaLimite))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range seguimientoRows(e.FirmaRuta, data.URLConsulta) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cargo: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateHistorialPDF genera el reporte de seguimiento con todos los cambios de estado.
func (g *MarotoPDFGenerator) GenerateHistorialPDF(_ context.Context, data ports.HistorialPDF) ([]byte, error) {
	e := data.Expediente
	if e == nil {
		return nil, fmt.Errorf("pdf: historial sin expediente")
	}
	m := newDocument("Historial " + e.NumExpediente)

	m.AddRows(headerRow(e, "HISTORIAL DEL EXPEDIENTE"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(solicitanteRow(e.Solicitante))
	m.AddRows(estadoRow(e, data.Dias))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range historialRows(data.Historial) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado el "+data.Generado.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Align: align.Right, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar historial: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: institución (izq) y N° expediente + fecha de recepción (der).
func headerRow(e *entity.Expediente, titulo string) core.Row {
	fecha, err := plazo.FormatearFecha(e.FechaRecepcion)
	if err != nil {
		fecha = e.FechaRecepcion
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(institucion, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mesa de Partes - Trámite Documentario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(e.NumExpediente, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Recepción: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func solicitanteRow(s *entity.Solicitante) core.Row {
	nombre, ident, contacto := "-", "-", "-"
	if s != nil {
		nombre = s.NombreSolicitante
		etiqueta := "DNI"
		if s.NombreTipo == entity.TipoJuridica {
			etiqueta = "Código modular"
		}
		ident = etiqueta + ": " + nonEmpty(s.Identificacion(), "-")
		contacto = fmt.Sprintf("Email: %s   |   Tel: %s", nonEmpty(s.Email, "-"), nonEmpty(s.Telefono, "-"))
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(ident+"   |   "+contacto, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tramiteRow(e *entity.Expediente, limite plazo.Fecha) core.Row {
	asunto := "-"
	if e.Asunto != nil {
		asunto = e.Asunto.NombreAsunto
	}
	return row.New(24).Add(
		col.New(8).Add(
			text.New("TRÁMITE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Documento: %s (%s)", e.NombreDocumento, nonEmpty(e.TipoDocumento, "-")), props.Text{Size: 9, Top: 7}),
			text.New("Asunto: "+asunto, props.Text{Size: 9, Top: 12}),
			text.New("Recibido por: "+nonEmpty(e.Receptor, "-"), props.Text{Size: 8, Top: 18, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("FECHA LÍMITE DE ATENCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(limite.Formatear(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("%d días hábiles", plazo.DiasHabilesPlazo), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// seguimientoRows: código de seguimiento + QR hacia la consulta pública.
func seguimientoRows(firma, url string) []core.Row {
	rows := []core.Row{
		row.New(3),
		row.New(6).Add(col.New(12).Add(
			text.New("SEGUIMIENTO DEL TRÁMITE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	leyenda := "Consulte el estado de su trámite con el código de seguimiento."
	if url != "" {
		rows = append(rows, row.New(45).Add(
			col.New(4).Add(code.NewQr(url, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New(firma, props.Text{
					Style: fontstyle.Bold, Size: 16, Top: 8, Left: 3, Color: colorPrimary,
				}),
				text.New(leyenda+"\nEscanee el código QR para abrir la consulta.", props.Text{
					Size: 8, Top: 20, Left: 3, Color: colorGray,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(16).Add(col.New(12).Add(
			text.New(firma, props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 2,
			}),
			text.New(leyenda, props.Text{Size: 8, Align: align.Center, Top: 10, Color: colorGray}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Conserve este cargo. El código de seguimiento es personal.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}

func estadoRow(e *entity.Expediente, dias int) core.Row {
	u := plazo.ClasificarUrgencia(dias)
	return row.New(12).Add(
		col.New(6).Add(
			text.New("ESTADO ACTUAL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(e.Estado, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(6).Add(
			text.New("DÍAS TRANSCURRIDOS", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d (%s)", dias, u.Etiqueta), props.Text{Size: 10, Align: align.Right, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de historial.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Estado anterior", 2, align.Left),
		h("Estado nuevo", 2, align.Left),
		h("Observaciones", 4, align.Left),
		h("Usuario", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// historialRows: una fila por cambio de estado.
func historialRows(hs []*entity.Historial) []core.Row {
	if len(hs) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(hs))
	for _, h := range hs {
		result = append(result, row.New(10).Add(
			cell(h.FechaCambio.Format("02/01/2006 15:04"), 2),
			cell(nonEmpty(h.EstadoAnterior, "-"), 2),
			cell(h.EstadoNuevo, 2),
			cell(nonEmpty(h.Observaciones, "-"), 4),
			cell(nonEmpty(h.Usuario, "-"), 2),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
