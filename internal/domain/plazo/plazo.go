// Package plazo concentra la política de plazos de atención de expedientes:
// días transcurridos desde la recepción, semáforo de urgencia, fecha límite
// en días hábiles para el cargo de recepción y formato DD/MM/YYYY.
//
// Las fechas de recepción son fechas de calendario (sin hora). Nunca pasan por
// un parser con zona horaria: un expediente recibido el día 5 no puede
// aparecer como recibido el 4 por un desfase UTC/local.
package plazo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DiasLimite plazo legal de atención en días calendario.
	DiasLimite = 10
	// DiasHabilesPlazo días hábiles (lunes a viernes) para la fecha límite del cargo.
	DiasHabilesPlazo = 10
	// DiasAviso a partir de este día un expediente observado se notifica como próximo a vencer.
	DiasAviso = 8
)

// ErrFechaInvalida la cadena no contiene una fecha YYYY-MM-DD válida.
var ErrFechaInvalida = errors.New("fecha inválida")

// Fecha es un día de calendario, sin hora ni zona horaria.
type Fecha struct {
	Anio int
	Mes  time.Month
	Dia  int
}

// soloFecha descarta la hora: corta en el separador ISO ('T') o en el espacio
// con que PostgreSQL serializa timestamps.
func soloFecha(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}

// ParseFecha lee año, mes y día directamente de la cadena (YYYY-MM-DD, con o sin hora).
func ParseFecha(s string) (Fecha, error) {
	partes := strings.Split(soloFecha(s), "-")
	if len(partes) != 3 {
		return Fecha{}, fmt.Errorf("%w: %q", ErrFechaInvalida, s)
	}
	anio, errA := strconv.Atoi(partes[0])
	mes, errM := strconv.Atoi(partes[1])
	dia, errD := strconv.Atoi(partes[2])
	if errA != nil || errM != nil || errD != nil || mes < 1 || mes > 12 || dia < 1 || dia > 31 {
		return Fecha{}, fmt.Errorf("%w: %q", ErrFechaInvalida, s)
	}
	// time.Date normaliza 2024-02-30 a marzo; si cambia, el día no existe.
	t := time.Date(anio, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(mes) || t.Day() != dia {
		return Fecha{}, fmt.Errorf("%w: %q", ErrFechaInvalida, s)
	}
	return Fecha{Anio: anio, Mes: time.Month(mes), Dia: dia}, nil
}

// DesdeTime toma el día de calendario de t en su propia zona.
func DesdeTime(t time.Time) Fecha {
	return Fecha{Anio: t.Year(), Mes: t.Month(), Dia: t.Day()}
}

// Hoy devuelve la fecha de calendario de now en la zona de la oficina.
func Hoy(now time.Time, loc *time.Location) Fecha {
	if loc == nil {
		loc = time.Local
	}
	return DesdeTime(now.In(loc))
}

// String formato de almacenamiento YYYY-MM-DD.
func (f Fecha) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", f.Anio, int(f.Mes), f.Dia)
}

// Formatear formato de presentación DD/MM/YYYY.
func (f Fecha) Formatear() string {
	return fmt.Sprintf("%02d/%02d/%04d", f.Dia, int(f.Mes), f.Anio)
}

// IsZero indica si la fecha no fue inicializada.
func (f Fecha) IsZero() bool {
	return f.Anio == 0 && f.Mes == 0 && f.Dia == 0
}

// Medianoche devuelve la medianoche local del día en loc.
func (f Fecha) Medianoche(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(f.Anio, f.Mes, f.Dia, 0, 0, 0, 0, loc)
}

// AgregarDias suma n días de calendario (n puede ser negativo).
func (f Fecha) AgregarDias(n int) Fecha {
	return DesdeTime(f.utc().AddDate(0, 0, n))
}

// DiaSemana día de la semana de la fecha.
func (f Fecha) DiaSemana() time.Weekday {
	return f.utc().Weekday()
}

// Antes indica si f es anterior a otra.
func (f Fecha) Antes(otra Fecha) bool {
	return f.ordinal() < otra.ordinal()
}

// utc ancla la fecha en UTC: sin horario de verano, todos los días duran 24h.
func (f Fecha) utc() time.Time {
	return time.Date(f.Anio, f.Mes, f.Dia, 0, 0, 0, 0, time.UTC)
}

func (f Fecha) ordinal() int64 {
	return f.utc().Unix() / 86400
}

// DiasEntre días de calendario desde "desde" hasta "hasta"; negativo si hasta es anterior.
func DiasEntre(desde, hasta Fecha) int {
	return int(hasta.ordinal() - desde.ordinal())
}

// DiasTranscurridos días de calendario entre la fecha de recepción y hoy.
// No recorta negativos: una fecha futura devuelve un valor negativo.
// Una fecha vacía cuenta como 0.
func DiasTranscurridos(fechaRecepcion string, hoy Fecha) (int, error) {
	if strings.TrimSpace(fechaRecepcion) == "" {
		return 0, nil
	}
	f, err := ParseFecha(fechaRecepcion)
	if err != nil {
		return 0, err
	}
	return DiasEntre(f, hoy), nil
}

// SinNegativos recorta a cero; lo usa la consulta pública.
func SinNegativos(dias int) int {
	if dias < 0 {
		return 0
	}
	return dias
}

// Nivel de urgencia de un expediente según los días transcurridos.
type Nivel string

const (
	NivelEnPlazo     Nivel = "EN_PLAZO"
	NivelCercaLimite Nivel = "CERCA_LIMITE"
	NivelUrgente     Nivel = "URGENTE"
	NivelVencido     Nivel = "VENCIDO"
)

const (
	colorVerde = "#10b981"
	colorAmbar = "#f59e0b"
	colorRojo  = "#dc2626"
)

// Urgencia semáforo que muestran las pantallas de atención.
type Urgencia struct {
	Nivel    Nivel
	Etiqueta string
	Color    string
}

// ClasificarUrgencia: ≤5 dentro del plazo, 6–8 cerca del límite, 9–10 urgente, >10 vencido.
func ClasificarUrgencia(dias int) Urgencia {
	switch {
	case dias <= 5:
		return Urgencia{Nivel: NivelEnPlazo, Etiqueta: "Dentro del plazo", Color: colorVerde}
	case dias <= 8:
		return Urgencia{Nivel: NivelCercaLimite, Etiqueta: "Cerca del límite", Color: colorAmbar}
	case dias <= DiasLimite:
		return Urgencia{Nivel: NivelUrgente, Etiqueta: "Urgente", Color: colorRojo}
	default:
		return Urgencia{Nivel: NivelVencido, Etiqueta: "VENCIDO", Color: colorRojo}
	}
}

// LimiteAlcanzado marca de las tablas de gestión (independiente del semáforo).
func LimiteAlcanzado(dias int) bool {
	return dias >= DiasLimite
}

// ProximoAVencer umbral de notificación de observados.
func ProximoAVencer(dias int) bool {
	return dias >= DiasAviso
}

// Progreso porcentaje consumido del plazo (0–100) para la barra de la consulta.
func Progreso(dias int) float64 {
	if dias <= 0 {
		return 0
	}
	p := float64(dias) / float64(DiasLimite) * 100
	if p > 100 {
		return 100
	}
	return p
}

// FechaLimiteHabil suma días hábiles saltando sábados y domingos (sin feriados).
// Solo la usa el cargo de recepción; el resto del sistema cuenta días calendario.
func FechaLimiteHabil(recepcion Fecha, diasHabiles int) Fecha {
	f := recepcion
	for agregados := 0; agregados < diasHabiles; {
		f = f.AgregarDias(1)
		if d := f.DiaSemana(); d != time.Saturday && d != time.Sunday {
			agregados++
		}
	}
	return f
}

// FormatearFecha convierte YYYY-MM-DD[Thh:mm...] en DD/MM/YYYY reusando los
// componentes tal como están almacenados.
func FormatearFecha(s string) (string, error) {
	partes := strings.Split(soloFecha(s), "-")
	if len(partes) != 3 || partes[0] == "" || partes[1] == "" || partes[2] == "" {
		return "", fmt.Errorf("%w: %q", ErrFechaInvalida, s)
	}
	return partes[2] + "/" + partes[1] + "/" + partes[0], nil
}

// Evaluacion resultado agregado de la política para un expediente.
type Evaluacion struct {
	Dias            int
	Urgencia        Urgencia
	LimiteAlcanzado bool
	Progreso        float64
}

// Evaluar calcula días, semáforo, marca de límite y progreso en una sola pasada.
func Evaluar(fechaRecepcion string, hoy Fecha) (Evaluacion, error) {
	dias, err := DiasTranscurridos(fechaRecepcion, hoy)
	if err != nil {
		return Evaluacion{}, err
	}
	return Evaluacion{
		Dias:            dias,
		Urgencia:        ClasificarUrgencia(dias),
		LimiteAlcanzado: LimiteAlcanzado(dias),
		Progreso:        Progreso(dias),
	}, nil
}

// Calendario fija la zona horaria de la oficina y la fuente de "ahora".
type Calendario struct {
	Zona  *time.Location
	Ahora func() time.Time
}

// NuevoCalendario carga la zona IANA (ej. America/Lima) y usa time.Now.
func NuevoCalendario(zona string) (*Calendario, error) {
	loc := time.Local
	if zona != "" {
		l, err := time.LoadLocation(zona)
		if err != nil {
			return nil, fmt.Errorf("plazo: cargar zona %q: %w", zona, err)
		}
		loc = l
	}
	return &Calendario{Zona: loc, Ahora: time.Now}, nil
}

// Hoy fecha de calendario actual en la zona de la oficina.
func (c *Calendario) Hoy() Fecha {
	if c == nil {
		return Hoy(time.Now(), time.Local)
	}
	now := time.Now
	if c.Ahora != nil {
		now = c.Ahora
	}
	return Hoy(now(), c.Zona)
}
