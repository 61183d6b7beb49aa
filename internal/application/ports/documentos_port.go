package ports

import (
	"context"
	"io"
	"time"

	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
)

// CargoPDF datos del cargo de recepción que se entrega al ciudadano.
type CargoPDF struct {
	Expediente  *entity.Expediente
	FechaLimite plazo.Fecha // recepción + días hábiles
	URLConsulta string      // destino del QR; vacío = solo el código
}

// HistorialPDF datos del reporte de seguimiento de un expediente.
type HistorialPDF struct {
	Expediente *entity.Expediente
	Historial  []*entity.Historial
	Dias       int
	Generado   time.Time
}

// PDFGenerator genera los documentos imprimibles (puerto; adaptador Maroto en infrastructure/pdf).
type PDFGenerator interface {
	GenerateCargoPDF(ctx context.Context, data CargoPDF) ([]byte, error)
	GenerateHistorialPDF(ctx context.Context, data HistorialPDF) ([]byte, error)
}

// Columna encabezado de una hoja y ruta del valor en cada fila (admite "expediente.num_expediente").
type Columna struct {
	Titulo string
	Campo  string
	Ancho  float64
}

// ExcelExporter arma un libro .xlsx con una hoja (adaptador excelize en infrastructure/excel).
type ExcelExporter interface {
	Export(ctx context.Context, hoja string, columnas []Columna, filas []map[string]any) ([]byte, error)
}

// FileStorage almacenamiento de objetos para los documentos de autorización (adaptador MinIO).
type FileStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
