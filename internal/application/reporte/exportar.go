package reporte

import (
	"context"
	"fmt"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/internal/domain"
)

// Hojas de exportación por tipo de reporte.
var hojas = map[string]struct {
	nombre   string
	columnas []ports.Columna
}{
	"expedientes": {"Expedientes", []ports.Columna{
		{Titulo: "N° Expediente", Campo: "num_expediente", Ancho: 20},
		{Titulo: "Fecha Recepción", Campo: "fecha_recepcion", Ancho: 16},
		{Titulo: "Solicitante", Campo: "solicitante", Ancho: 35},
		{Titulo: "Asunto", Campo: "asunto", Ancho: 40},
		{Titulo: "Estado", Campo: "estado", Ancho: 20},
		{Titulo: "Días", Campo: "dias_transcurridos", Ancho: 8},
		{Titulo: "Observaciones", Campo: "observaciones", Ancho: 50},
	}},
	"observados": {"Observados", []ports.Columna{
		{Titulo: "N° Expediente", Campo: "num_expediente", Ancho: 20},
		{Titulo: "Solicitante", Campo: "solicitante", Ancho: 35},
		{Titulo: "Asunto", Campo: "asunto", Ancho: 40},
		{Titulo: "Días", Campo: "dias_transcurridos", Ancho: 8},
		{Titulo: "Urgencia", Campo: "urgencia", Ancho: 10},
		{Titulo: "Observaciones", Campo: "observaciones", Ancho: 50},
	}},
	"entregas": {"Entregas", []ports.Columna{
		{Titulo: "N° Expediente", Campo: "expediente.num_expediente", Ancho: 20},
		{Titulo: "Solicitante", Campo: "expediente.solicitante.nombre_solicitante", Ancho: 35},
		{Titulo: "Tipo de Recogida", Campo: "tipo_recogida", Ancho: 16},
		{Titulo: "Autorizado", Campo: "nombre_autorizado", Ancho: 30},
		{Titulo: "Fecha de Entrega", Campo: "fecha_entrega", Ancho: 20},
		{Titulo: "Días de Atención", Campo: "dias_atencion", Ancho: 10},
		{Titulo: "Entregado por", Campo: "entregado_por", Ancho: 20},
	}},
	"colaboradores": {"Colaboradores", []ports.Columna{
		{Titulo: "Usuario", Campo: "usuario", Ancho: 18},
		{Titulo: "Nombre", Campo: "nombre_completo", Ancho: 35},
		{Titulo: "Atenciones", Campo: "total_atenciones", Ancho: 12},
		{Titulo: "En Proceso", Campo: "en_proceso", Ancho: 12},
		{Titulo: "Observados", Campo: "observados", Ancho: 12},
		{Titulo: "Listos", Campo: "listos_entrega", Ancho: 12},
		{Titulo: "Entregas", Campo: "entregas", Ancho: 12},
	}},
}

// ExportarExcel arma el .xlsx con las filas que la consola ya tiene en pantalla.
func (uc *UseCase) ExportarExcel(ctx context.Context, in dto.ExportarExcelRequest) ([]byte, string, error) {
	h, ok := hojas[in.Tipo]
	if !ok {
		return nil, "", fmt.Errorf("%w: tipo de reporte no soportado para exportación", domain.ErrInvalidInput)
	}
	b, err := uc.excel.Export(ctx, h.nombre, h.columnas, in.Datos)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: exportar: %w", err)
	}
	return b, fmt.Sprintf("reporte_%s_%s.xlsx", in.Tipo, uc.cal.Hoy().String()), nil
}
