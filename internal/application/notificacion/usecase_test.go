package notificacion_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/notificacion"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/memory"
)

var ahoraFijo = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

// preparar crea un observado por fecha y un EN PROCESO antiguo que nunca se notifica.
func preparar(t *testing.T, fechas ...string) (*memory.Store, *notificacion.UseCase, []int64) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.Now = func() time.Time { return ahoraFijo }

	sol := &entity.Solicitante{NombreSolicitante: "Pedro Salas", NombreTipo: entity.TipoNatural, DNI: "41112223"}
	require.NoError(t, store.Solicitantes().Create(ctx, sol))
	as := &entity.Asunto{NombreAsunto: "Reintegro", Activo: true, DocumentoID: store.DocumentoPorNombre("Solicitud")}
	require.NoError(t, store.Asuntos().Create(ctx, as))

	var ids []int64
	for i, f := range fechas {
		e := &entity.Expediente{
			NumExpediente: fmt.Sprintf("EXP-2026-%06d", i+1), FirmaRuta: fmt.Sprintf("OBS%05d", i+1),
			FechaRecepcion: f, Estado: entity.EstadoObservado, SolicitanteID: sol.ID, AsuntoID: as.ID,
		}
		require.NoError(t, store.Expedientes().Create(ctx, e))
		ids = append(ids, e.ID)
	}
	require.NoError(t, store.Expedientes().Create(ctx, &entity.Expediente{
		NumExpediente: "EXP-2026-000099", FirmaRuta: "PROC0099", FechaRecepcion: "2026-09-01",
		Estado: entity.EstadoEnProceso, SolicitanteID: sol.ID, AsuntoID: as.ID,
	}))

	cal := &plazo.Calendario{Zona: time.UTC, Ahora: func() time.Time { return ahoraFijo }}
	return store, notificacion.NewUseCase(store.Expedientes(), store.Notificaciones(), cal, nil), ids
}

func TestVencimientos_DesdeOchoDias(t *testing.T) {
	// 7, 8 y 12 días
	store, uc, ids := preparar(t, "2026-10-08", "2026-10-07", "2026-10-03")

	res, err := uc.Vencimientos(context.Background(), dto.NotificarVencimientosRequest{}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Enviadas)
	assert.Contains(t, res.Message, "2 expediente(s)")

	notificados := map[int64]int{}
	for _, n := range res.Notificaciones {
		notificados[n.ExpedienteID] = n.Dias
	}
	assert.NotContains(t, notificados, ids[0])
	assert.Equal(t, 8, notificados[ids[1]])
	assert.Equal(t, 12, notificados[ids[2]])

	guardadas := store.TodasLasNotificaciones()
	require.Len(t, guardadas, 2)
	for _, n := range guardadas {
		assert.Equal(t, entity.NotificacionVencimiento, n.Tipo)
		assert.Equal(t, "admin", n.Usuario)
	}
}

func TestVencimientos_SoloCandidatosConDiasRecalculados(t *testing.T) {
	_, uc, ids := preparar(t, "2026-10-07", "2026-10-01")

	res, err := uc.Vencimientos(context.Background(), dto.NotificarVencimientosRequest{
		Expedientes: []dto.NotificacionCandidato{{ID: ids[0], Dias: 30}, {ID: 12345, Dias: 20}},
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, 1, res.Enviadas)
	assert.Equal(t, ids[0], res.Notificaciones[0].ExpedienteID)
	assert.Equal(t, 8, res.Notificaciones[0].Dias)
}

func TestVencimientos_SinPendientes(t *testing.T) {
	_, uc, _ := preparar(t, "2026-10-14")
	res, err := uc.Vencimientos(context.Background(), dto.NotificarVencimientosRequest{}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Enviadas)
	assert.NotNil(t, res.Notificaciones)
}

func TestMensaje(t *testing.T) {
	e := &entity.Expediente{NumExpediente: "EXP-2026-000007"}
	assert.Equal(t, "El expediente EXP-2026-000007 lleva 8 días observado; vence en 2 día(s).", notificacion.Mensaje(e, 8))
	assert.Contains(t, notificacion.Mensaje(e, 10), "superó el plazo de 10 días")
}
