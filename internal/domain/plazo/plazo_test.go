package plazo_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var hoyFijo = plazo.Fecha{Anio: 2026, Mes: time.October, Dia: 15}

func mustZona(t *testing.T, nombre string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(nombre)
	require.NoError(t, err)
	return loc
}

// ──────────────────────────────────────────────────────────────────────────────
// Días transcurridos
// ──────────────────────────────────────────────────────────────────────────────

func TestDiasTranscurridos_MismoDia_EsCero(t *testing.T) {
	dias, err := plazo.DiasTranscurridos("2026-10-15", hoyFijo)
	require.NoError(t, err)
	assert.Equal(t, 0, dias)
}

func TestDiasTranscurridos_NDiasAtras(t *testing.T) {
	for _, n := range []int{0, 1, 5, 9, 10, 11, 30, 400} {
		fecha := hoyFijo.AgregarDias(-n).String()
		dias, err := plazo.DiasTranscurridos(fecha, hoyFijo)
		require.NoError(t, err)
		assert.Equal(t, n, dias, "fecha %s", fecha)
	}
}

func TestDiasTranscurridos_IgnoraComponenteHora(t *testing.T) {
	casos := []string{
		"2026-10-05",
		"2026-10-05T00:00:00",
		"2026-10-05T23:59:59.999Z",
		"2026-10-05T03:00:00-05:00",
		"2026-10-05 23:59:59+00",
	}
	for _, c := range casos {
		dias, err := plazo.DiasTranscurridos(c, hoyFijo)
		require.NoError(t, err, c)
		assert.Equal(t, 10, dias, c)
	}
}

func TestDiasTranscurridos_FechaFuturaNoSeRecorta(t *testing.T) {
	dias, err := plazo.DiasTranscurridos("2026-10-17", hoyFijo)
	require.NoError(t, err)
	assert.Equal(t, -2, dias)
	assert.Equal(t, 0, plazo.SinNegativos(dias), "la consulta pública recorta a cero")
}

func TestDiasTranscurridos_FechaVaciaEsCero(t *testing.T) {
	dias, err := plazo.DiasTranscurridos("  ", hoyFijo)
	require.NoError(t, err)
	assert.Equal(t, 0, dias)
}

func TestDiasTranscurridos_FechaInvalida(t *testing.T) {
	for _, c := range []string{"15/10/2026", "2026-02-30", "2026-13-01", "abc", "2026-10"} {
		_, err := plazo.DiasTranscurridos(c, hoyFijo)
		assert.ErrorIs(t, err, plazo.ErrFechaInvalida, c)
	}
}

// El mismo instante expresado en distintas zonas produce el mismo "hoy" de la
// oficina: 23:30 en Lima ya es el día siguiente en UTC.
func TestHoy_InvarianteAZonaDelInstante(t *testing.T) {
	lima := mustZona(t, "America/Lima")
	instante := time.Date(2026, time.October, 15, 23, 30, 0, 0, lima)

	for _, repr := range []time.Time{instante, instante.UTC(), instante.In(mustZona(t, "Asia/Tokyo"))} {
		hoy := plazo.Hoy(repr, lima)
		assert.Equal(t, hoyFijo, hoy)
		dias, err := plazo.DiasTranscurridos("2026-10-05", hoy)
		require.NoError(t, err)
		assert.Equal(t, 10, dias)
	}
}

// Un día de 23 horas (inicio de horario de verano) no debe restar un día.
func TestDiasTranscurridos_CruzaCambioDeHorario(t *testing.T) {
	ny := mustZona(t, "America/New_York")
	ahora := time.Date(2026, time.March, 9, 0, 10, 0, 0, ny)
	dias, err := plazo.DiasTranscurridos("2026-03-07", plazo.Hoy(ahora, ny))
	require.NoError(t, err)
	assert.Equal(t, 2, dias)
}

func TestCalendario_HoyUsaRelojInyectado(t *testing.T) {
	cal, err := plazo.NuevoCalendario("America/Lima")
	require.NoError(t, err)
	cal.Ahora = func() time.Time { return time.Date(2026, time.October, 16, 4, 30, 0, 0, time.UTC) }
	assert.Equal(t, hoyFijo, cal.Hoy())
}

func TestNuevoCalendario_ZonaInvalida(t *testing.T) {
	_, err := plazo.NuevoCalendario("Marte/Olympus")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Semáforo y límite
// ──────────────────────────────────────────────────────────────────────────────

func TestClasificarUrgencia_Fronteras(t *testing.T) {
	casos := []struct {
		dias     int
		nivel    plazo.Nivel
		etiqueta string
	}{
		{-3, plazo.NivelEnPlazo, "Dentro del plazo"},
		{0, plazo.NivelEnPlazo, "Dentro del plazo"},
		{5, plazo.NivelEnPlazo, "Dentro del plazo"},
		{6, plazo.NivelCercaLimite, "Cerca del límite"},
		{8, plazo.NivelCercaLimite, "Cerca del límite"},
		{9, plazo.NivelUrgente, "Urgente"},
		{10, plazo.NivelUrgente, "Urgente"},
		{11, plazo.NivelVencido, "VENCIDO"},
		{45, plazo.NivelVencido, "VENCIDO"},
	}
	for _, c := range casos {
		u := plazo.ClasificarUrgencia(c.dias)
		assert.Equal(t, c.nivel, u.Nivel, "dias=%d", c.dias)
		assert.Equal(t, c.etiqueta, u.Etiqueta, "dias=%d", c.dias)
	}
	assert.Equal(t, "#10b981", plazo.ClasificarUrgencia(5).Color)
	assert.Equal(t, "#f59e0b", plazo.ClasificarUrgencia(6).Color)
	assert.Equal(t, "#dc2626", plazo.ClasificarUrgencia(9).Color)
}

func TestLimiteAlcanzado_IndependienteDelSemaforo(t *testing.T) {
	assert.False(t, plazo.LimiteAlcanzado(9))
	assert.True(t, plazo.LimiteAlcanzado(10))
	// 10 días: límite alcanzado pero el semáforo todavía dice "Urgente", no "VENCIDO".
	assert.Equal(t, plazo.NivelUrgente, plazo.ClasificarUrgencia(10).Nivel)
}

func TestProximoAVencer(t *testing.T) {
	assert.False(t, plazo.ProximoAVencer(7))
	assert.True(t, plazo.ProximoAVencer(8))
}

func TestProgreso(t *testing.T) {
	assert.Equal(t, 0.0, plazo.Progreso(-1))
	assert.Equal(t, 50.0, plazo.Progreso(5))
	assert.Equal(t, 100.0, plazo.Progreso(10))
	assert.Equal(t, 100.0, plazo.Progreso(14))
}

func TestEvaluar(t *testing.T) {
	ev, err := plazo.Evaluar("2026-10-05T10:00:00", hoyFijo)
	require.NoError(t, err)
	assert.Equal(t, 10, ev.Dias)
	assert.True(t, ev.LimiteAlcanzado)
	assert.Equal(t, plazo.NivelUrgente, ev.Urgencia.Nivel)
	assert.Equal(t, 100.0, ev.Progreso)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fecha límite en días hábiles (cargo de recepción)
// ──────────────────────────────────────────────────────────────────────────────

func TestFechaLimiteHabil_LunesTerminaLunesDosSemanasDespues(t *testing.T) {
	lunes := plazo.Fecha{Anio: 2026, Mes: time.October, Dia: 12}
	require.Equal(t, time.Monday, lunes.DiaSemana())

	limite := plazo.FechaLimiteHabil(lunes, plazo.DiasHabilesPlazo)
	assert.Equal(t, plazo.Fecha{Anio: 2026, Mes: time.October, Dia: 26}, limite)
	assert.Equal(t, time.Monday, limite.DiaSemana())
	// 14 días calendario: 10 hábiles + 4 de fin de semana.
	assert.Equal(t, 14, plazo.DiasEntre(lunes, limite))
}

func TestFechaLimiteHabil_ViernesSaltaFinDeSemana(t *testing.T) {
	viernes := plazo.Fecha{Anio: 2026, Mes: time.October, Dia: 16}
	assert.Equal(t, plazo.Fecha{Anio: 2026, Mes: time.October, Dia: 19}, plazo.FechaLimiteHabil(viernes, 1))
}

func TestFechaLimiteHabil_RecepcionEnSabado(t *testing.T) {
	sabado := plazo.Fecha{Anio: 2026, Mes: time.October, Dia: 17}
	assert.Equal(t, plazo.Fecha{Anio: 2026, Mes: time.October, Dia: 30}, plazo.FechaLimiteHabil(sabado, 10))
}

// ──────────────────────────────────────────────────────────────────────────────
// Formato DD/MM/YYYY
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatearFecha_ConYSinHora(t *testing.T) {
	casos := map[string]string{
		"2026-01-31":                "31/01/2026",
		"2026-01-31T00:00:00.000Z":  "31/01/2026",
		"2026-01-31T23:59:59-05:00": "31/01/2026",
		"2026-01-31 18:00:00":       "31/01/2026",
	}
	for entrada, esperado := range casos {
		got, err := plazo.FormatearFecha(entrada)
		require.NoError(t, err, entrada)
		assert.Equal(t, esperado, got, entrada)
	}
}

func TestFormatearFecha_RespetaComponentesAlmacenados(t *testing.T) {
	got, err := plazo.FormatearFecha("2026-1-5")
	require.NoError(t, err)
	assert.Equal(t, "5/1/2026", got, "no re-interpreta ni rellena lo almacenado")
}

func TestFormatearFecha_Invalida(t *testing.T) {
	_, err := plazo.FormatearFecha("31/01/2026")
	assert.ErrorIs(t, err, plazo.ErrFechaInvalida)
}

func TestFecha_StringYFormatear(t *testing.T) {
	f, err := plazo.ParseFecha("2026-03-09T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", f.String())
	assert.Equal(t, "09/03/2026", f.Formatear())
}
