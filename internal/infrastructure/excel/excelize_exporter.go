// Package excel exporta tablas de reportes a .xlsx con excelize.
package excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/ports"
)

var _ ports.ExcelExporter = (*ExcelizeExporter)(nil)

const anchoPorDefecto = 18

// ExcelizeExporter implementa ports.ExcelExporter.
type ExcelizeExporter struct{}

func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// Export escribe una hoja con encabezado en negrita, filtros y panel congelado.
func (x *ExcelizeExporter) Export(_ context.Context, hoja string, columnas []ports.Columna, filas []map[string]any) ([]byte, error) {
	if len(columnas) == 0 {
		return nil, fmt.Errorf("excel: sin columnas")
	}
	hoja = nombreHoja(hoja)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), hoja); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, c := range columnas {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, celda, c.Titulo); err != nil {
			return nil, err
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		ancho := c.Ancho
		if ancho <= 0 {
			ancho = anchoPorDefecto
		}
		if err := f.SetColWidth(hoja, colName, colName, ancho); err != nil {
			return nil, err
		}
	}
	ultima, _ := excelize.CoordinatesToCellName(len(columnas), 1)
	if err := f.SetCellStyle(hoja, "A1", ultima, header); err != nil {
		return nil, err
	}

	for r, fila := range filas {
		for i, c := range columnas {
			celda, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(hoja, celda, Valor(fila, c.Campo)); err != nil {
				return nil, err
			}
		}
	}

	if len(filas) > 0 {
		rango := fmt.Sprintf("A1:%s", mustCell(len(columnas), len(filas)+1))
		if err := f.AutoFilter(hoja, rango, nil); err != nil {
			return nil, fmt.Errorf("excel: autofiltro: %w", err)
		}
	}
	if err := f.SetPanes(hoja, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("excel: panel: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// Valor resuelve una ruta con puntos ("expediente.solicitante.nombre_solicitante") dentro de la fila.
// Las rutas inexistentes devuelven "".
func Valor(fila map[string]any, campo string) any {
	var actual any = fila
	for _, parte := range strings.Split(campo, ".") {
		m, ok := actual.(map[string]any)
		if !ok {
			return ""
		}
		actual, ok = m[parte]
		if !ok || actual == nil {
			return ""
		}
	}
	switch v := actual.(type) {
	case map[string]any, []any:
		return fmt.Sprint(v)
	case bool:
		if v {
			return "Sí"
		}
		return "No"
	}
	return actual
}

// nombreHoja excel limita a 31 caracteres y prohíbe : \ / ? * [ ].
func nombreHoja(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		s = "Datos"
	}
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}

func mustCell(col, row int) string {
	c, _ := excelize.CoordinatesToCellName(col, row)
	return c
}
