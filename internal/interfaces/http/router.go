package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ugelsanta/expedientes-api/internal/application/atencion"
	"github.com/ugelsanta/expedientes-api/internal/application/auth"
	"github.com/ugelsanta/expedientes-api/internal/application/consulta"
	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/entrega"
	"github.com/ugelsanta/expedientes-api/internal/application/expediente"
	"github.com/ugelsanta/expedientes-api/internal/application/notificacion"
	"github.com/ugelsanta/expedientes-api/internal/application/reporte"
	"github.com/ugelsanta/expedientes-api/internal/application/usecase"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ExpedienteUC   *expediente.UseCase
	DocumentosUC   *expediente.DocumentosUseCase
	AtencionUC     *atencion.UseCase
	EntregaUC      *entrega.UseCase
	SolicitanteUC  *usecase.SolicitanteUseCase
	CatalogoUC     *usecase.CatalogoUseCase
	UsuarioUC      *usecase.UsuarioUseCase
	ReporteUC      *reporte.UseCase
	NotificacionUC *notificacion.UseCase
	ConsultaUC     *consulta.UseCase
	JWTSecret      string
	ConsultaRPM    int // peticiones por minuto e IP en la consulta pública
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Consulta ciudadana (pública, con límite por IP)
	rpm := deps.ConsultaRPM
	if rpm <= 0 {
		rpm = 30
	}
	consultaHandler := NewConsultaHandler(deps.ConsultaUC)
	api.Get("/consulta/:codigo", limiter.New(limiter.Config{
		Max:        rpm,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas consultas, intente en un minuto",
			})
		},
	}), consultaHandler.Consultar)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RolAdministrador)

	protected.Get("/auth/me", authHandler.Me)

	// Expedientes
	expHandler := NewExpedienteHandler(deps.ExpedienteUC, deps.DocumentosUC, deps.AtencionUC)
	entregaHandler := NewEntregaHandler(deps.EntregaUC)
	expedientes := protected.Group("/expedientes")
	expedientes.Get("/", expHandler.List)
	expedientes.Post("/", expHandler.Create)
	expedientes.Get("/observados", expHandler.Observados)
	expedientes.Get("/exportar-observados", expHandler.ExportarObservados)
	expedientes.Get("/:id", expHandler.GetByID)
	expedientes.Put("/:id", expHandler.Update)
	expedientes.Delete("/:id", soloAdmin, expHandler.Delete)
	expedientes.Post("/:id/corregir", expHandler.Corregir)
	expedientes.Get("/:id/historial", expHandler.Historial)
	expedientes.Get("/:id/historial/pdf", expHandler.HistorialPDF)
	expedientes.Get("/:id/cargo", expHandler.Cargo)
	expedientes.Get("/:id/atenciones", expHandler.Atenciones)
	expedientes.Get("/:id/entrega", entregaHandler.GetByExpediente)

	// Atenciones y entregas
	atencionHandler := NewAtencionHandler(deps.AtencionUC)
	protected.Post("/atenciones", atencionHandler.Registrar)
	protected.Get("/entregas/buscar/:codigo", entregaHandler.Buscar)
	protected.Post("/entregas", entregaHandler.Registrar)

	// Solicitantes
	solHandler := NewSolicitanteHandler(deps.SolicitanteUC)
	solicitantes := protected.Group("/solicitantes")
	solicitantes.Get("/", solHandler.List)
	solicitantes.Post("/", solHandler.Create)
	solicitantes.Get("/:id", solHandler.GetByID)

	// Catálogo: lectura para todos, escritura solo administradores
	catHandler := NewCatalogoHandler(deps.CatalogoUC)
	protected.Get("/documentos", catHandler.ListDocumentos)
	asuntos := protected.Group("/asuntos")
	asuntos.Get("/", catHandler.ListAsuntos)
	asuntos.Get("/:id", catHandler.GetAsunto)
	asuntos.Post("/", soloAdmin, catHandler.CreateAsunto)
	asuntos.Put("/:id", soloAdmin, catHandler.UpdateAsunto)
	asuntos.Delete("/:id", soloAdmin, catHandler.DeleteAsunto)

	// Usuarios (solo administradores)
	usrHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios := protected.Group("/usuarios", soloAdmin)
	usuarios.Get("/", usrHandler.List)
	usuarios.Post("/", usrHandler.Create)
	usuarios.Get("/estadisticas", usrHandler.Estadisticas)
	usuarios.Get("/:id", usrHandler.GetByID)
	usuarios.Put("/:id", usrHandler.Update)
	usuarios.Patch("/:id/estado", usrHandler.CambiarEstado)
	usuarios.Delete("/:id", usrHandler.Delete)

	// Reportes
	repHandler := NewReporteHandler(deps.ReporteUC)
	reportes := protected.Group("/reportes")
	reportes.Get("/expedientes-periodo", repHandler.ExpedientesPeriodo)
	reportes.Get("/estados-actuales", repHandler.EstadosActuales)
	reportes.Get("/por-colaborador", repHandler.PorColaborador)
	reportes.Get("/tiempos-atencion", repHandler.TiemposAtencion)
	reportes.Get("/expedientes-observados", repHandler.ExpedientesObservados)
	reportes.Get("/entregas", repHandler.Entregas)
	reportes.Post("/exportar-excel", repHandler.ExportarExcel)

	// Notificaciones
	notifHandler := NewNotificacionHandler(deps.NotificacionUC)
	protected.Post("/notificaciones/vencimientos", notifHandler.Vencimientos)
}
