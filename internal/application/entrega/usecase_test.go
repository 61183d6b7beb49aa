package entrega_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/entrega"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/memory"
)

var ahoraFijo = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

// bucketFalso almacenamiento en memoria con URLs firmadas predecibles.
type bucketFalso struct {
	objetos   map[string][]byte
	borrados  []string
	uploadErr error
}

func nuevoBucket() *bucketFalso { return &bucketFalso{objetos: map[string][]byte{}} }

func (b *bucketFalso) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objetos[key] = data
	return nil
}

func (b *bucketFalso) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://minio.local/" + key + "?firmado", nil
}

func (b *bucketFalso) Delete(_ context.Context, key string) error {
	b.borrados = append(b.borrados, key)
	delete(b.objetos, key)
	return nil
}

type entorno struct {
	store  *memory.Store
	tx     *memory.TxRunner
	bucket *bucketFalso
	uc     *entrega.UseCase
	id     int64
}

func preparar(t *testing.T, estado string) *entorno {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.Now = func() time.Time { return ahoraFijo }

	sol := &entity.Solicitante{NombreSolicitante: "I.E. San Pedro", NombreTipo: entity.TipoJuridica, CodigoModular: "0345678"}
	require.NoError(t, store.Solicitantes().Create(ctx, sol))
	as := &entity.Asunto{NombreAsunto: "Resolución de nombramiento", Activo: true, DocumentoID: store.DocumentoPorNombre("Oficio")}
	require.NoError(t, store.Asuntos().Create(ctx, as))
	exp := &entity.Expediente{
		NumExpediente:  "EXP-2026-000020",
		FirmaRuta:      "ZX98YW76",
		FechaRecepcion: "2026-10-06",
		Estado:         estado,
		SolicitanteID:  sol.ID,
		AsuntoID:       as.ID,
	}
	require.NoError(t, store.Expedientes().Create(ctx, exp))

	cal := &plazo.Calendario{Zona: time.UTC, Ahora: func() time.Time { return ahoraFijo }}
	tx := memory.NewTxRunner(store)
	bucket := nuevoBucket()
	uc := entrega.NewUseCase(store.Expedientes(), store.Entregas(), tx, bucket, 1024*1024, cal, nil)
	return &entorno{store: store, tx: tx, bucket: bucket, uc: uc, id: exp.ID}
}

func pdf(contenido string) *entrega.Archivo {
	data := "%PDF-1.4\n" + contenido
	return &entrega.Archivo{Nombre: "autorizacion.pdf", ContentType: "application/pdf", Size: int64(len(data)), Reader: strings.NewReader(data)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestBuscar_SoloListos(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	res, err := e.uc.Buscar(context.Background(), "zx98yw76")
	require.NoError(t, err)
	assert.Equal(t, "EXP-2026-000020", res.NumExpediente)

	e = preparar(t, entity.EstadoEnProceso)
	_, err = e.uc.Buscar(context.Background(), "EXP-2026-000020")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.uc.Buscar(context.Background(), "EXP-1999-000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrar_Titular(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	ctx := context.Background()

	res, err := e.uc.Registrar(ctx, dto.EntregaRequest{ExpedienteID: e.id, TipoRecogida: entity.RecogidaTitular, DNIRecoge: "41234567"}, nil, "ventanilla")
	require.NoError(t, err)
	assert.Equal(t, "ventanilla", res.EntregadoPor)
	assert.Equal(t, 9, res.TiempoAtencion)
	assert.Equal(t, "I.E. San Pedro", res.NombreSolicitante)
	assert.Empty(t, res.DocumentoURL)

	exp, err := e.store.Expedientes().GetByID(ctx, e.id)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoEntregado, exp.Estado)

	hs, err := e.store.Historial().ListByExpediente(ctx, e.id)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Entregado al titular (DNI 41234567)", hs[0].Observaciones)
}

func TestRegistrar_TerceroConAutorizacion(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	ctx := context.Background()

	res, err := e.uc.Registrar(ctx, dto.EntregaRequest{
		ExpedienteID:     e.id,
		TipoRecogida:     entity.RecogidaTercero,
		NombreAutorizado: "Luis Vega",
		DNIAutorizado:    "47654321",
	}, pdf("carta poder"), "ventanilla")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.DocumentoAutorizacion, "autorizaciones/EXP-2026-000020/"))
	assert.True(t, strings.HasSuffix(res.DocumentoAutorizacion, ".pdf"))
	assert.Equal(t, "https://minio.local/"+res.DocumentoAutorizacion+"?firmado", res.DocumentoURL)

	guardado := e.bucket.objetos[res.DocumentoAutorizacion]
	assert.True(t, bytes.HasPrefix(guardado, []byte("%PDF-1.4")))
	assert.Contains(t, string(guardado), "carta poder")

	acta, err := e.uc.GetByExpediente(ctx, e.id)
	require.NoError(t, err)
	assert.Equal(t, "Luis Vega", acta.NombreAutorizado)
	assert.Equal(t, res.DocumentoURL, acta.DocumentoURL)
	assert.Equal(t, 9, acta.TiempoAtencion)
}

func TestRegistrar_Validaciones(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	ctx := context.Background()
	casos := map[string]dto.EntregaRequest{
		"dni titular corto":    {ExpedienteID: e.id, TipoRecogida: entity.RecogidaTitular, DNIRecoge: "1234"},
		"tercero sin nombre":   {ExpedienteID: e.id, TipoRecogida: entity.RecogidaTercero, DNIAutorizado: "47654321"},
		"tercero dni inválido": {ExpedienteID: e.id, TipoRecogida: entity.RecogidaTercero, NombreAutorizado: "Luis", DNIAutorizado: "4765432A"},
		"tipo desconocido":     {ExpedienteID: e.id, TipoRecogida: "courier"},
	}
	for nombre, in := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := e.uc.Registrar(ctx, in, nil, "ventanilla")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := e.uc.Registrar(ctx, dto.EntregaRequest{ExpedienteID: e.id, TipoRecogida: entity.RecogidaTitular, DNIRecoge: "41234567"}, pdf("x"), "ventanilla")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el titular no adjunta autorización")
}

func TestRegistrar_ArchivoNoPDF(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	archivo := &entrega.Archivo{Nombre: "foto.png", Size: 8, Reader: strings.NewReader("\x89PNG....")}
	_, err := e.uc.Registrar(context.Background(), dto.EntregaRequest{
		ExpedienteID: e.id, TipoRecogida: entity.RecogidaTercero, NombreAutorizado: "Luis", DNIAutorizado: "47654321",
	}, archivo, "ventanilla")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, e.bucket.objetos)
}

func TestRegistrar_ArchivoMuyGrande(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	archivo := pdf("")
	archivo.Size = 2 * 1024 * 1024
	_, err := e.uc.Registrar(context.Background(), dto.EntregaRequest{
		ExpedienteID: e.id, TipoRecogida: entity.RecogidaTercero, NombreAutorizado: "Luis", DNIAutorizado: "47654321",
	}, archivo, "ventanilla")
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestRegistrar_SinAlmacenamiento(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	cal := &plazo.Calendario{Zona: time.UTC, Ahora: func() time.Time { return ahoraFijo }}
	uc := entrega.NewUseCase(e.store.Expedientes(), e.store.Entregas(), e.tx, nil, 0, cal, nil)

	_, err := uc.Registrar(context.Background(), dto.EntregaRequest{
		ExpedienteID: e.id, TipoRecogida: entity.RecogidaTercero, NombreAutorizado: "Luis", DNIAutorizado: "47654321",
	}, pdf("x"), "ventanilla")
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
}

func TestRegistrar_NoListo(t *testing.T) {
	e := preparar(t, entity.EstadoEnProceso)
	_, err := e.uc.Registrar(context.Background(), dto.EntregaRequest{ExpedienteID: e.id, TipoRecogida: entity.RecogidaTitular, DNIRecoge: "41234567"}, nil, "ventanilla")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRegistrar_FallaTransaccion_BorraDocumento(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	e.tx.Fail = errors.New("conexión cerrada")

	_, err := e.uc.Registrar(context.Background(), dto.EntregaRequest{
		ExpedienteID: e.id, TipoRecogida: entity.RecogidaTercero, NombreAutorizado: "Luis", DNIAutorizado: "47654321",
	}, pdf("x"), "ventanilla")
	require.Error(t, err)
	require.Len(t, e.bucket.borrados, 1)
	assert.Empty(t, e.bucket.objetos)
}

func TestRegistrar_Duplicada(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	ctx := context.Background()
	require.NoError(t, e.store.Entregas().Create(ctx, &entity.Entrega{ExpedienteID: e.id, TipoRecogida: entity.RecogidaTitular, DNIRecoge: "41234567"}))

	_, err := e.uc.Registrar(ctx, dto.EntregaRequest{ExpedienteID: e.id, TipoRecogida: entity.RecogidaTitular, DNIRecoge: "41234567"}, nil, "ventanilla")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	exp, err := e.store.Expedientes().GetByID(ctx, e.id)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoListoEntrega, exp.Estado)
}

func TestRegistrar_TiempoAtencionComoElActa(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	ctx := context.Background()
	// Recepción cargada con fecha posterior a la entrega: el tiempo no puede ser negativo.
	exp, err := e.store.Expedientes().GetByID(ctx, e.id)
	require.NoError(t, err)
	exp.FechaRecepcion = "2026-10-20"
	require.NoError(t, e.store.Expedientes().Update(ctx, exp))

	res, err := e.uc.Registrar(ctx, dto.EntregaRequest{ExpedienteID: e.id, TipoRecogida: entity.RecogidaTitular, DNIRecoge: "41234567"}, nil, "ventanilla")
	require.NoError(t, err)
	assert.Equal(t, 0, res.TiempoAtencion)

	acta, err := e.uc.GetByExpediente(ctx, e.id)
	require.NoError(t, err)
	assert.Equal(t, acta.TiempoAtencion, res.TiempoAtencion)
}

func TestGetByExpediente_SinEntrega(t *testing.T) {
	e := preparar(t, entity.EstadoListoEntrega)
	_, err := e.uc.GetByExpediente(context.Background(), e.id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiasAtencion_UsaZonaDeLaOficina(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	cal := &plazo.Calendario{Zona: lima}

	// 03:00 UTC del 16/10 todavía es 15/10 en Lima.
	entregado := time.Date(2026, time.October, 16, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, entrega.DiasAtencion("2026-10-10", entregado, cal))
	assert.Equal(t, 0, entrega.DiasAtencion("2026-10-20", entregado, cal))
	assert.Equal(t, 0, entrega.DiasAtencion("basura", entregado, cal))
}
