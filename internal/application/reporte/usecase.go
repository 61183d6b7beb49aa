package reporte

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/entrega"
	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
)

const (
	topAsuntos          = 5
	masAntiguos         = 10
	umbralCuelloBotella = 80.0
)

// Niveles de urgencia del reporte de observados.
const (
	UrgenciaAlta  = "alta"
	UrgenciaMedia = "media"
	UrgenciaBaja  = "baja"
)

// UseCase reportes gerenciales de solo lectura y su exportación a Excel.
type UseCase struct {
	expedientes repository.ExpedienteRepository
	entregas    repository.EntregaRepository
	usuarios    repository.UsuarioRepository
	reportes    repository.ReporteRepository
	excel       ports.ExcelExporter
	cal         *plazo.Calendario
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	expedientes repository.ExpedienteRepository,
	entregas repository.EntregaRepository,
	usuarios repository.UsuarioRepository,
	reportes repository.ReporteRepository,
	excel ports.ExcelExporter,
	cal *plazo.Calendario,
) *UseCase {
	return &UseCase{
		expedientes: expedientes,
		entregas:    entregas,
		usuarios:    usuarios,
		reportes:    reportes,
		excel:       excel,
		cal:         cal,
	}
}

func validarRango(in dto.ReporteRequest) (desde, hasta string, err error) {
	desde, hasta = strings.TrimSpace(in.FechaInicio), strings.TrimSpace(in.FechaFin)
	var fd, fh plazo.Fecha
	if desde != "" {
		if fd, err = plazo.ParseFecha(desde); err != nil {
			return "", "", fmt.Errorf("%w: fecha_inicio inválida", domain.ErrInvalidInput)
		}
	}
	if hasta != "" {
		if fh, err = plazo.ParseFecha(hasta); err != nil {
			return "", "", fmt.Errorf("%w: fecha_fin inválida", domain.ErrInvalidInput)
		}
	}
	if desde != "" && hasta != "" && fh.Antes(fd) {
		return "", "", fmt.Errorf("%w: fecha_inicio posterior a fecha_fin", domain.ErrInvalidInput)
	}
	if desde != "" {
		desde = fd.String()
	}
	if hasta != "" {
		hasta = fh.String()
	}
	return desde, hasta, nil
}

// diasAtencion días hasta la entrega si se entregó, si no hasta hoy.
func (uc *UseCase) diasAtencion(e *entity.Expediente, entregados map[int64]time.Time, hoy plazo.Fecha) int {
	if t, ok := entregados[e.ID]; ok {
		return entrega.DiasAtencion(e.FechaRecepcion, t, uc.cal)
	}
	d, err := plazo.DiasTranscurridos(e.FechaRecepcion, hoy)
	if err != nil {
		return 0
	}
	return d
}

func (uc *UseCase) fechasEntrega(ctx context.Context, desde string) (map[int64]time.Time, error) {
	list, err := uc.entregas.List(ctx, repository.EntregaFilter{FechaDesde: desde})
	if err != nil {
		return nil, fmt.Errorf("reporte: entregas: %w", err)
	}
	out := make(map[int64]time.Time, len(list))
	for _, r := range list {
		out[r.Entrega.ExpedienteID] = r.Entrega.FechaEntrega
	}
	return out, nil
}

func fila(e *entity.Expediente, dias int) dto.ExpedienteFila {
	f := dto.ExpedienteFila{
		ID:                e.ID,
		NumExpediente:     e.NumExpediente,
		FirmaRuta:         e.FirmaRuta,
		FechaRecepcion:    e.FechaRecepcion,
		Estado:            e.Estado,
		DiasTranscurridos: dias,
		Observaciones:     e.Observaciones,
	}
	if fr, err := plazo.FormatearFecha(e.FechaRecepcion); err == nil {
		f.FechaRecepcion = fr
	}
	if e.Solicitante != nil {
		f.Solicitante = e.Solicitante.NombreSolicitante
	}
	if e.Asunto != nil {
		f.Asunto = e.Asunto.NombreAsunto
	}
	return f
}

func nombreAsunto(e *entity.Expediente) string {
	if e.Asunto == nil {
		return "Sin asunto"
	}
	return e.Asunto.NombreAsunto
}

// ExpedientesPeriodo recibidos en el rango, con resumen y asuntos más frecuentes.
func (uc *UseCase) ExpedientesPeriodo(ctx context.Context, in dto.ReporteRequest) (*dto.ReportePeriodoResponse, error) {
	desde, hasta, err := validarRango(in)
	if err != nil {
		return nil, err
	}
	hoy := uc.cal.Hoy()
	if desde == "" && hasta == "" {
		desde = plazo.Fecha{Anio: hoy.Anio, Mes: hoy.Mes, Dia: 1}.String()
	}
	estado := strings.TrimSpace(in.Estado)
	if estado == "Todos" {
		estado = ""
	}
	if estado != "" && !entity.EstadoValido(estado) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, estado)
	}
	list, err := uc.expedientes.List(ctx, repository.ExpedienteFilter{
		Estado:      estado,
		DocumentoID: in.DocumentoID,
		FechaDesde:  desde,
		FechaHasta:  hasta,
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: expedientes: %w", err)
	}
	entregados, err := uc.fechasEntrega(ctx, desde)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportePeriodoResponse{Expedientes: make([]dto.ExpedienteFila, 0, len(list))}
	porAsunto := map[string]int{}
	sumaDias, enPlazo := 0, 0
	for _, e := range list {
		dias := uc.diasAtencion(e, entregados, hoy)
		resp.Expedientes = append(resp.Expedientes, fila(e, dias))
		porAsunto[nombreAsunto(e)]++
		sumaDias += dias
		if dias <= plazo.DiasLimite {
			enPlazo++
		}
		switch e.Estado {
		case entity.EstadoListoEntrega, entity.EstadoEntregado:
			resp.Resumen.TotalAtendidos++
		case entity.EstadoObservado:
			resp.Resumen.TotalObservados++
		case entity.EstadoEnProceso:
			resp.Resumen.TotalEnProceso++
		}
	}
	total := len(list)
	resp.Resumen.TotalRecibidos = total
	resp.Resumen.TiempoPromedioDias = promedio(sumaDias, total)
	resp.Resumen.PorcentajeDentroPlazo = porcentaje(enPlazo, total)
	resp.TopAsuntos = top(porAsunto, total, topAsuntos)
	return resp, nil
}

// EstadosActuales conteo por estado y los expedientes abiertos más antiguos.
func (uc *UseCase) EstadosActuales(ctx context.Context) (*dto.ReporteEstadosResponse, error) {
	conteo, err := uc.reportes.ConteoPorEstado(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: estados: %w", err)
	}
	resp := &dto.ReporteEstadosResponse{}
	for _, n := range conteo {
		resp.Total += n
	}
	for _, estado := range entity.Estados {
		n := conteo[estado]
		resp.PorEstado = append(resp.PorEstado, dto.ConteoItem{Estado: estado, Cantidad: n, Porcentaje: porcentaje(n, resp.Total)})
	}

	abiertos, err := uc.expedientes.List(ctx, repository.ExpedienteFilter{EstadoExcluir: entity.EstadoEntregado})
	if err != nil {
		return nil, fmt.Errorf("reporte: expedientes abiertos: %w", err)
	}
	hoy := uc.cal.Hoy()
	filas := make([]dto.ExpedienteFila, 0, len(abiertos))
	for _, e := range abiertos {
		d, _ := plazo.DiasTranscurridos(e.FechaRecepcion, hoy)
		filas = append(filas, fila(e, d))
	}
	ordenarFilas(filas)
	if len(filas) > masAntiguos {
		filas = filas[:masAntiguos]
	}
	resp.ExpedientesMasAntiguos = filas
	return resp, nil
}

// PorColaborador atenciones y entregas por funcionario en el rango.
func (uc *UseCase) PorColaborador(ctx context.Context, in dto.ReporteRequest) (*dto.ReporteColaboradorResponse, error) {
	desde, hasta, err := validarRango(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportes.PorColaborador(ctx, desde, hasta, strings.TrimSpace(in.Usuario))
	if err != nil {
		return nil, fmt.Errorf("reporte: por colaborador: %w", err)
	}
	usuarios, err := uc.usuarios.List(ctx, repository.UsuarioFilter{})
	if err != nil {
		return nil, fmt.Errorf("reporte: usuarios: %w", err)
	}
	nombres := make(map[string]string, len(usuarios))
	for _, u := range usuarios {
		nombres[u.Usuario] = u.NombreCompleto
	}

	resp := &dto.ReporteColaboradorResponse{Estadisticas: make([]dto.ColaboradorItem, 0, len(rows))}
	for _, r := range rows {
		nombre := nombres[r.Usuario]
		if nombre == "" {
			nombre = r.Usuario
		}
		resp.Estadisticas = append(resp.Estadisticas, dto.ColaboradorItem{
			Usuario:         r.Usuario,
			NombreCompleto:  nombre,
			TotalAtenciones: r.TotalAtenciones,
			EnProceso:       r.EnProceso,
			Observados:      r.Observados,
			ListosEntrega:   r.ListosEntrega,
			Entregas:        r.Entregas,
		})
	}
	sort.SliceStable(resp.Estadisticas, func(i, j int) bool {
		return resp.Estadisticas[i].TotalAtenciones > resp.Estadisticas[j].TotalAtenciones
	})
	resp.TotalUsuarios = len(resp.Estadisticas)
	return resp, nil
}

// TiemposAtencion promedio, mínimo y máximo de días por asunto, y los asuntos
// que cumplen el plazo en menos del 80% de los casos.
func (uc *UseCase) TiemposAtencion(ctx context.Context, in dto.ReporteRequest) (*dto.ReporteTiemposResponse, error) {
	desde, hasta, err := validarRango(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.expedientes.List(ctx, repository.ExpedienteFilter{FechaDesde: desde, FechaHasta: hasta})
	if err != nil {
		return nil, fmt.Errorf("reporte: expedientes: %w", err)
	}
	entregados, err := uc.fechasEntrega(ctx, desde)
	if err != nil {
		return nil, err
	}
	hoy := uc.cal.Hoy()

	type acumulado struct {
		n, suma, min, max, enPlazo int
	}
	porAsunto := map[string]*acumulado{}
	for _, e := range list {
		d := plazo.SinNegativos(uc.diasAtencion(e, entregados, hoy))
		nombre := nombreAsunto(e)
		a, ok := porAsunto[nombre]
		if !ok {
			a = &acumulado{min: d, max: d}
			porAsunto[nombre] = a
		}
		a.n++
		a.suma += d
		a.min = min(a.min, d)
		a.max = max(a.max, d)
		if d <= plazo.DiasLimite {
			a.enPlazo++
		}
	}

	resp := &dto.ReporteTiemposResponse{
		TiemposPorAsunto: make([]dto.TiempoAsuntoItem, 0, len(porAsunto)),
		CuellosBotella:   []dto.TiempoAsuntoItem{},
	}
	for nombre, a := range porAsunto {
		item := dto.TiempoAsuntoItem{
			Asunto:                nombre,
			Cantidad:              a.n,
			PromedioDias:          promedio(a.suma, a.n),
			MinimoDias:            a.min,
			MaximoDias:            a.max,
			PorcentajeDentroPlazo: porcentaje(a.enPlazo, a.n),
		}
		resp.TiemposPorAsunto = append(resp.TiemposPorAsunto, item)
		if item.PorcentajeDentroPlazo < umbralCuelloBotella {
			resp.CuellosBotella = append(resp.CuellosBotella, item)
		}
	}
	sort.Slice(resp.TiemposPorAsunto, func(i, j int) bool {
		a, b := resp.TiemposPorAsunto[i], resp.TiemposPorAsunto[j]
		if a.PromedioDias != b.PromedioDias {
			return a.PromedioDias > b.PromedioDias
		}
		return a.Asunto < b.Asunto
	})
	sort.Slice(resp.CuellosBotella, func(i, j int) bool {
		a, b := resp.CuellosBotella[i], resp.CuellosBotella[j]
		if a.PorcentajeDentroPlazo != b.PorcentajeDentroPlazo {
			return a.PorcentajeDentroPlazo < b.PorcentajeDentroPlazo
		}
		return a.Asunto < b.Asunto
	})
	return resp, nil
}

// NivelObservado alta desde 9 días (urgente o vencido), media de 6 a 8, baja el resto.
func NivelObservado(dias int) string {
	switch plazo.ClasificarUrgencia(dias).Nivel {
	case plazo.NivelUrgente, plazo.NivelVencido:
		return UrgenciaAlta
	case plazo.NivelCercaLimite:
		return UrgenciaMedia
	default:
		return UrgenciaBaja
	}
}

// ExpedientesObservados observados por días descendente con su nivel de urgencia.
func (uc *UseCase) ExpedientesObservados(ctx context.Context) (*dto.ReporteObservadosResponse, error) {
	list, err := uc.expedientes.List(ctx, repository.ExpedienteFilter{Estado: entity.EstadoObservado})
	if err != nil {
		return nil, fmt.Errorf("reporte: observados: %w", err)
	}
	hoy := uc.cal.Hoy()
	resp := &dto.ReporteObservadosResponse{Expedientes: make([]dto.ExpedienteFila, 0, len(list))}
	suma := 0
	for _, e := range list {
		d, _ := plazo.DiasTranscurridos(e.FechaRecepcion, hoy)
		f := fila(e, d)
		f.Urgencia = NivelObservado(d)
		switch f.Urgencia {
		case UrgenciaAlta:
			resp.Estadisticas.UrgenciaAlta++
		case UrgenciaMedia:
			resp.Estadisticas.UrgenciaMedia++
		}
		suma += d
		resp.Expedientes = append(resp.Expedientes, f)
	}
	ordenarFilas(resp.Expedientes)
	resp.Estadisticas.Total = len(list)
	resp.Estadisticas.PromedioDias = promedio(suma, len(list))
	return resp, nil
}

// Entregas actas del rango con los días que tomó cada atención.
func (uc *UseCase) Entregas(ctx context.Context, in dto.ReporteRequest) (*dto.ReporteEntregasResponse, error) {
	desde, hasta, err := validarRango(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.entregas.List(ctx, repository.EntregaFilter{FechaDesde: desde, FechaHasta: hasta})
	if err != nil {
		return nil, fmt.Errorf("reporte: entregas: %w", err)
	}
	resp := &dto.ReporteEntregasResponse{Entregas: make([]dto.EntregaFila, 0, len(list))}
	suma := 0
	for _, r := range list {
		dias := entrega.DiasAtencion(r.Expediente.FechaRecepcion, r.Entrega.FechaEntrega, uc.cal)
		f := dto.EntregaFila{
			ID: r.Entrega.ID,
			Expediente: dto.EntregaExpediente{
				NumExpediente: r.Expediente.NumExpediente,
				FirmaRuta:     r.Expediente.FirmaRuta,
			},
			TipoRecogida:     r.Entrega.TipoRecogida,
			NombreAutorizado: r.Entrega.NombreAutorizado,
			FechaEntrega:     r.Entrega.FechaEntrega,
			DiasAtencion:     dias,
			EntregadoPor:     r.Entrega.EntregadoPor,
		}
		if r.Expediente.Solicitante != nil {
			f.Expediente.Solicitante.NombreSolicitante = r.Expediente.Solicitante.NombreSolicitante
		}
		switch r.Entrega.TipoRecogida {
		case entity.RecogidaTitular:
			resp.Estadisticas.EntregaTitular++
		case entity.RecogidaTercero:
			resp.Estadisticas.EntregaTercero++
		}
		suma += dias
		resp.Entregas = append(resp.Entregas, f)
	}
	resp.Estadisticas.TotalEntregas = len(list)
	resp.Estadisticas.TiempoPromedio = promedio(suma, len(list))
	return resp, nil
}

// ordenarFilas días descendente; empate por número de expediente.
func ordenarFilas(filas []dto.ExpedienteFila) {
	sort.SliceStable(filas, func(i, j int) bool {
		if filas[i].DiasTranscurridos != filas[j].DiasTranscurridos {
			return filas[i].DiasTranscurridos > filas[j].DiasTranscurridos
		}
		return filas[i].NumExpediente < filas[j].NumExpediente
	})
}

func top(conteo map[string]int, total, n int) []dto.ConteoItem {
	out := make([]dto.ConteoItem, 0, len(conteo))
	for k, v := range conteo {
		out = append(out, dto.ConteoItem{Asunto: k, Cantidad: v, Porcentaje: porcentaje(v, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Asunto < out[j].Asunto
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func promedio(suma, n int) float64 {
	if n == 0 {
		return 0
	}
	return redondear(float64(suma) / float64(n))
}

func porcentaje(parte, total int) float64 {
	if total == 0 {
		return 0
	}
	return redondear(float64(parte) / float64(total) * 100)
}

// redondear a un decimal.
func redondear(v float64) float64 {
	return math.Round(v*10) / 10
}
