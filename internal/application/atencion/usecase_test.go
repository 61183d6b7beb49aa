package atencion_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugelsanta/expedientes-api/internal/application/atencion"
	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/memory"
)

var ahoraFijo = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func preparar(t *testing.T, estado string) (*memory.Store, *memory.TxRunner, *atencion.UseCase, int64) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.Now = func() time.Time { return ahoraFijo }

	sol := &entity.Solicitante{NombreSolicitante: "Ana Torres", NombreTipo: entity.TipoNatural, DNI: "40000001"}
	require.NoError(t, store.Solicitantes().Create(ctx, sol))
	as := &entity.Asunto{NombreAsunto: "Constancia de trabajo", Activo: true, DocumentoID: store.DocumentoPorNombre("Solicitud")}
	require.NoError(t, store.Asuntos().Create(ctx, as))
	exp := &entity.Expediente{
		NumExpediente:  "EXP-2026-000010",
		FirmaRuta:      "AB12CD34",
		FechaRecepcion: "2026-10-08",
		Estado:         estado,
		SolicitanteID:  sol.ID,
		AsuntoID:       as.ID,
	}
	require.NoError(t, store.Expedientes().Create(ctx, exp))

	cal := &plazo.Calendario{Zona: time.UTC, Ahora: func() time.Time { return ahoraFijo }}
	tx := memory.NewTxRunner(store)
	uc := atencion.NewUseCase(store.Expedientes(), store.Atenciones(), tx, cal, nil)
	return store, tx, uc, exp.ID
}

func TestRegistrar_CambiaEstadoEHistorial(t *testing.T) {
	store, _, uc, id := preparar(t, entity.EstadoRecepcionado)
	ctx := context.Background()

	res, err := uc.Registrar(ctx, dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: entity.EstadoEnProceso}, "colab01")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoRecepcionado, res.EstadoAnterior)
	assert.Equal(t, entity.EstadoEnProceso, res.EstadoNuevo)
	assert.Equal(t, "colab01", res.Usuario)
	require.NotNil(t, res.Expediente)
	assert.Equal(t, entity.EstadoEnProceso, res.Expediente.Estado)
	assert.Equal(t, 7, res.Expediente.DiasTranscurridos)

	e, err := store.Expedientes().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoEnProceso, e.Estado)

	hs, err := store.Historial().ListByExpediente(ctx, id)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "colab01", hs[0].Usuario)
}

func TestRegistrar_EstadoAnteriorDeLaBase(t *testing.T) {
	_, _, uc, id := preparar(t, entity.EstadoEnProceso)

	res, err := uc.Registrar(context.Background(), dto.AtencionRequest{
		ExpedienteID:   id,
		EstadoAnterior: entity.EstadoRecepcionado,
		EstadoNuevo:    entity.EstadoListoEntrega,
	}, "colab01")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoEnProceso, res.EstadoAnterior)
}

func TestRegistrar_ObservadoExigeObservaciones(t *testing.T) {
	_, _, uc, id := preparar(t, entity.EstadoRecepcionado)
	ctx := context.Background()

	_, err := uc.Registrar(ctx, dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: entity.EstadoObservado, Observaciones: "  "}, "colab01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := uc.Registrar(ctx, dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: entity.EstadoObservado, Observaciones: "falta FUT firmado"}, "colab01")
	require.NoError(t, err)
	assert.Equal(t, "falta FUT firmado", res.Expediente.Observaciones)
}

func TestRegistrar_DestinoNoPermitido(t *testing.T) {
	_, _, uc, id := preparar(t, entity.EstadoRecepcionado)
	for _, destino := range []string{entity.EstadoRecepcionado, entity.EstadoEntregado, "ARCHIVADO"} {
		_, err := uc.Registrar(context.Background(), dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: destino}, "colab01")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, destino)
	}
}

func TestRegistrar_ExpedienteNoAtendible(t *testing.T) {
	for _, estado := range []string{entity.EstadoObservado, entity.EstadoListoEntrega, entity.EstadoEntregado} {
		_, _, uc, id := preparar(t, estado)
		_, err := uc.Registrar(context.Background(), dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: entity.EstadoEnProceso}, "colab01")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, estado)
	}
}

func TestRegistrar_Inexistente(t *testing.T) {
	_, _, uc, _ := preparar(t, entity.EstadoRecepcionado)
	_, err := uc.Registrar(context.Background(), dto.AtencionRequest{ExpedienteID: 999, EstadoNuevo: entity.EstadoEnProceso}, "colab01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrar_FallaTransaccion_SinCambios(t *testing.T) {
	store, tx, uc, id := preparar(t, entity.EstadoRecepcionado)
	ctx := context.Background()
	tx.Fail = errors.New("deadlock")

	_, err := uc.Registrar(ctx, dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: entity.EstadoEnProceso}, "colab01")
	require.Error(t, err)

	e, err := store.Expedientes().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoRecepcionado, e.Estado)
	assert.Empty(t, store.TodasLasAtenciones())
}

func TestListByExpediente_OrdenCronologico(t *testing.T) {
	_, _, uc, id := preparar(t, entity.EstadoRecepcionado)
	ctx := context.Background()
	_, err := uc.Registrar(ctx, dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: entity.EstadoEnProceso}, "colab01")
	require.NoError(t, err)
	_, err = uc.Registrar(ctx, dto.AtencionRequest{ExpedienteID: id, EstadoNuevo: entity.EstadoListoEntrega}, "colab02")
	require.NoError(t, err)

	list, err := uc.ListByExpediente(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.EstadoEnProceso, list[0].EstadoNuevo)
	assert.Equal(t, entity.EstadoListoEntrega, list[1].EstadoNuevo)
	assert.Equal(t, "colab02", list[1].Usuario)
}
