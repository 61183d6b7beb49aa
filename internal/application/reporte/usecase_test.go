package reporte_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/reporte"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	excelinfra "github.com/ugelsanta/expedientes-api/internal/infrastructure/excel"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario
//
//   EXP-1  01/10  Licencia    ENTREGADO (entregado hoy, 14 días)
//   EXP-2  08/10  Licencia    OBSERVADO (7 días)
//   EXP-3  12/10  Constancia  EN PROCESO (3 días)
//   EXP-4  14/10  Constancia  RECEPCIONADO (1 día)
//   EXP-5  10/09  Constancia  OBSERVADO (35 días, fuera del mes)
// ──────────────────────────────────────────────────────────────────────────────

var ahoraFijo = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func escenario(t *testing.T) *reporte.UseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.Now = func() time.Time { return ahoraFijo }

	sol := &entity.Solicitante{NombreSolicitante: "Rosa Díaz", NombreTipo: entity.TipoNatural, DNI: "42223334"}
	require.NoError(t, store.Solicitantes().Create(ctx, sol))
	doc := store.DocumentoPorNombre("Solicitud")
	licencia := &entity.Asunto{NombreAsunto: "Licencia", Activo: true, DocumentoID: doc}
	constancia := &entity.Asunto{NombreAsunto: "Constancia", Activo: true, DocumentoID: doc}
	require.NoError(t, store.Asuntos().Create(ctx, licencia))
	require.NoError(t, store.Asuntos().Create(ctx, constancia))

	datos := []struct {
		fecha  string
		asunto int64
		estado string
	}{
		{"2026-10-01", licencia.ID, entity.EstadoEntregado},
		{"2026-10-08", licencia.ID, entity.EstadoObservado},
		{"2026-10-12", constancia.ID, entity.EstadoEnProceso},
		{"2026-10-14", constancia.ID, entity.EstadoRecepcionado},
		{"2026-09-10", constancia.ID, entity.EstadoObservado},
	}
	ids := make([]int64, len(datos))
	for i, d := range datos {
		e := &entity.Expediente{
			NumExpediente:  fmt.Sprintf("EXP-2026-%06d", i+1),
			FirmaRuta:      fmt.Sprintf("CODIGO%02d", i+1),
			FechaRecepcion: d.fecha,
			Estado:         d.estado,
			SolicitanteID:  sol.ID,
			AsuntoID:       d.asunto,
		}
		require.NoError(t, store.Expedientes().Create(ctx, e))
		ids[i] = e.ID
	}

	require.NoError(t, store.Entregas().Create(ctx, &entity.Entrega{
		ExpedienteID: ids[0], TipoRecogida: entity.RecogidaTitular, DNIRecoge: "42223334", EntregadoPor: "ventanilla",
	}))
	atenciones := []entity.Atencion{
		{ExpedienteID: ids[2], EstadoAnterior: entity.EstadoRecepcionado, EstadoNuevo: entity.EstadoEnProceso, Usuario: "colab01"},
		{ExpedienteID: ids[1], EstadoAnterior: entity.EstadoRecepcionado, EstadoNuevo: entity.EstadoObservado, Usuario: "colab01"},
		{ExpedienteID: ids[0], EstadoAnterior: entity.EstadoEnProceso, EstadoNuevo: entity.EstadoListoEntrega, Usuario: "colab02"},
	}
	for i := range atenciones {
		require.NoError(t, store.Atenciones().Create(ctx, &atenciones[i]))
	}
	require.NoError(t, store.Usuarios().Create(ctx, &entity.Usuario{
		NombreCompleto: "Carla Ríos", DNI: "43334445", Usuario: "colab01", Correo: "carla@ugel.gob.pe",
		Rol: entity.RolColaborador, Estado: entity.UsuarioActivo,
	}))

	cal := &plazo.Calendario{Zona: time.UTC, Ahora: func() time.Time { return ahoraFijo }}
	return reporte.NewUseCase(store.Expedientes(), store.Entregas(), store.Usuarios(), store.Reportes(), excelinfra.NewExcelizeExporter(), cal)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestExpedientesPeriodo_MesActualPorDefecto(t *testing.T) {
	uc := escenario(t)

	res, err := uc.ExpedientesPeriodo(context.Background(), dto.ReporteRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Resumen.TotalRecibidos)
	assert.Equal(t, 1, res.Resumen.TotalAtendidos)
	assert.Equal(t, 1, res.Resumen.TotalObservados)
	assert.Equal(t, 1, res.Resumen.TotalEnProceso)
	// (14 + 7 + 3 + 1) / 4 = 6.25
	assert.Equal(t, 6.3, res.Resumen.TiempoPromedioDias)
	assert.Equal(t, 75.0, res.Resumen.PorcentajeDentroPlazo)

	require.Len(t, res.TopAsuntos, 2)
	assert.Equal(t, "Constancia", res.TopAsuntos[0].Asunto)
	assert.Equal(t, 50.0, res.TopAsuntos[0].Porcentaje)
	assert.Equal(t, "01/10/2026", res.Expedientes[len(res.Expedientes)-1].FechaRecepcion)
}

func TestExpedientesPeriodo_FiltroEstadoYRangoInvalido(t *testing.T) {
	uc := escenario(t)
	ctx := context.Background()

	res, err := uc.ExpedientesPeriodo(ctx, dto.ReporteRequest{FechaInicio: "2026-09-01", FechaFin: "2026-10-31", Estado: entity.EstadoObservado})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Resumen.TotalRecibidos)

	_, err = uc.ExpedientesPeriodo(ctx, dto.ReporteRequest{FechaInicio: "2026-10-31", FechaFin: "2026-10-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ExpedientesPeriodo(ctx, dto.ReporteRequest{FechaInicio: "31/10/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRango_ConHoraSeTomaPorDia(t *testing.T) {
	uc := escenario(t)
	ctx := context.Background()

	res, err := uc.ExpedientesPeriodo(ctx, dto.ReporteRequest{FechaInicio: "2026-10-12T09:00:00", FechaFin: "2026-10-14 09:00"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Resumen.TotalRecibidos)

	ent, err := uc.Entregas(ctx, dto.ReporteRequest{FechaInicio: "2026-10-15T08:00", FechaFin: "2026-10-15T08:00"})
	require.NoError(t, err)
	assert.Equal(t, 1, ent.Estadisticas.TotalEntregas)
}

func TestEstadosActuales(t *testing.T) {
	uc := escenario(t)

	res, err := uc.EstadosActuales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	require.Len(t, res.PorEstado, len(entity.Estados))
	for _, c := range res.PorEstado {
		switch c.Estado {
		case entity.EstadoObservado:
			assert.Equal(t, 2, c.Cantidad)
			assert.Equal(t, 40.0, c.Porcentaje)
		case entity.EstadoListoEntrega:
			assert.Equal(t, 0, c.Cantidad)
		}
	}
	require.Len(t, res.ExpedientesMasAntiguos, 4)
	assert.Equal(t, "EXP-2026-000005", res.ExpedientesMasAntiguos[0].NumExpediente)
	assert.Equal(t, 35, res.ExpedientesMasAntiguos[0].DiasTranscurridos)
}

func TestPorColaborador(t *testing.T) {
	uc := escenario(t)

	res, err := uc.PorColaborador(context.Background(), dto.ReporteRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalUsuarios)

	primero := res.Estadisticas[0]
	assert.Equal(t, "colab01", primero.Usuario)
	assert.Equal(t, "Carla Ríos", primero.NombreCompleto)
	assert.Equal(t, 2, primero.TotalAtenciones)
	assert.Equal(t, 1, primero.EnProceso)
	assert.Equal(t, 1, primero.Observados)

	assert.Equal(t, "colab02", res.Estadisticas[1].NombreCompleto)
	assert.Equal(t, 1, res.Estadisticas[1].ListosEntrega)

	ventanilla := res.Estadisticas[2]
	assert.Equal(t, "ventanilla", ventanilla.Usuario)
	assert.Equal(t, 0, ventanilla.TotalAtenciones)
	assert.Equal(t, 1, ventanilla.Entregas)

	filtrado, err := uc.PorColaborador(context.Background(), dto.ReporteRequest{Usuario: "colab02"})
	require.NoError(t, err)
	assert.Equal(t, 1, filtrado.TotalUsuarios)
}

func TestTiemposAtencion_CuellosDeBotella(t *testing.T) {
	uc := escenario(t)

	res, err := uc.TiemposAtencion(context.Background(), dto.ReporteRequest{})
	require.NoError(t, err)
	require.Len(t, res.TiemposPorAsunto, 2)

	constancia := res.TiemposPorAsunto[0]
	assert.Equal(t, "Constancia", constancia.Asunto)
	assert.Equal(t, 3, constancia.Cantidad)
	assert.Equal(t, 13.0, constancia.PromedioDias)
	assert.Equal(t, 1, constancia.MinimoDias)
	assert.Equal(t, 35, constancia.MaximoDias)
	assert.Equal(t, 66.7, constancia.PorcentajeDentroPlazo)

	licencia := res.TiemposPorAsunto[1]
	assert.Equal(t, 10.5, licencia.PromedioDias)

	require.Len(t, res.CuellosBotella, 2)
	assert.Equal(t, "Licencia", res.CuellosBotella[0].Asunto)
	assert.Equal(t, 50.0, res.CuellosBotella[0].PorcentajeDentroPlazo)
}

func TestExpedientesObservados_Urgencia(t *testing.T) {
	uc := escenario(t)

	res, err := uc.ExpedientesObservados(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Estadisticas.Total)
	assert.Equal(t, 1, res.Estadisticas.UrgenciaAlta)
	assert.Equal(t, 1, res.Estadisticas.UrgenciaMedia)
	assert.Equal(t, 21.0, res.Estadisticas.PromedioDias)
	require.Len(t, res.Expedientes, 2)
	assert.Equal(t, reporte.UrgenciaAlta, res.Expedientes[0].Urgencia)
	assert.Equal(t, reporte.UrgenciaMedia, res.Expedientes[1].Urgencia)
}

func TestNivelObservado(t *testing.T) {
	casos := map[int]string{
		0:  reporte.UrgenciaBaja,
		5:  reporte.UrgenciaBaja,
		6:  reporte.UrgenciaMedia,
		8:  reporte.UrgenciaMedia,
		9:  reporte.UrgenciaAlta,
		10: reporte.UrgenciaAlta,
		40: reporte.UrgenciaAlta,
	}
	for dias, want := range casos {
		assert.Equal(t, want, reporte.NivelObservado(dias), "días %d", dias)
	}
}

func TestEntregas(t *testing.T) {
	uc := escenario(t)

	res, err := uc.Entregas(context.Background(), dto.ReporteRequest{FechaInicio: "2026-10-15", FechaFin: "2026-10-15"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Estadisticas.TotalEntregas)
	assert.Equal(t, 1, res.Estadisticas.EntregaTitular)
	assert.Equal(t, 14.0, res.Estadisticas.TiempoPromedio)
	require.Len(t, res.Entregas, 1)
	assert.Equal(t, "EXP-2026-000001", res.Entregas[0].Expediente.NumExpediente)
	assert.Equal(t, "Rosa Díaz", res.Entregas[0].Expediente.Solicitante.NombreSolicitante)

	vacio, err := uc.Entregas(context.Background(), dto.ReporteRequest{FechaFin: "2026-10-14"})
	require.NoError(t, err)
	assert.Empty(t, vacio.Entregas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExportarExcel_Entregas(t *testing.T) {
	uc := escenario(t)
	b, nombre, err := uc.ExportarExcel(context.Background(), dto.ExportarExcelRequest{
		Tipo: "entregas",
		Datos: []map[string]any{{
			"expediente": map[string]any{
				"num_expediente": "EXP-2026-000001",
				"solicitante":    map[string]any{"nombre_solicitante": "Rosa Díaz"},
			},
			"tipo_recogida": "titular",
			"dias_atencion": 14,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "reporte_entregas_2026-10-15.xlsx", nombre)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Entregas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EXP-2026-000001", rows[1][0])
	assert.Equal(t, "Rosa Díaz", rows[1][1])
	assert.Equal(t, "titular", rows[1][2])
}

func TestExportarExcel_TipoDesconocido(t *testing.T) {
	uc := escenario(t)
	_, _, err := uc.ExportarExcel(context.Background(), dto.ExportarExcelRequest{Tipo: "facturas"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
