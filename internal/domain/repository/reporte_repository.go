package repository

import "context"

// ColaboradorResult atenciones y entregas agregadas por funcionario.
type ColaboradorResult struct {
	Usuario         string
	TotalAtenciones int
	EnProceso       int
	Observados      int
	ListosEntrega   int
	Entregas        int
}

// ReporteRepository consultas agregadas de solo lectura.
type ReporteRepository interface {
	// ConteoPorEstado cantidad actual de expedientes por estado.
	ConteoPorEstado(ctx context.Context) (map[string]int, error)
	// PorColaborador agrega atenciones y entregas en el rango (fechas YYYY-MM-DD, vacías = sin límite).
	PorColaborador(ctx context.Context, desde, hasta, usuario string) ([]ColaboradorResult, error)
}
