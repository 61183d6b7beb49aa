package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ugelsanta/expedientes-api/internal/application/atencion"
	"github.com/ugelsanta/expedientes-api/internal/application/auth"
	"github.com/ugelsanta/expedientes-api/internal/application/consulta"
	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/entrega"
	"github.com/ugelsanta/expedientes-api/internal/application/expediente"
	"github.com/ugelsanta/expedientes-api/internal/application/notificacion"
	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/internal/application/reporte"
	"github.com/ugelsanta/expedientes-api/internal/application/usecase"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
	"github.com/ugelsanta/expedientes-api/internal/domain/repository"
	infraexcel "github.com/ugelsanta/expedientes-api/internal/infrastructure/excel"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/memory"
	infrapdf "github.com/ugelsanta/expedientes-api/internal/infrastructure/pdf"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/postgres"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/storage"
	httpRouter "github.com/ugelsanta/expedientes-api/internal/interfaces/http"
	"github.com/ugelsanta/expedientes-api/pkg/config"
	"github.com/ugelsanta/expedientes-api/pkg/logger"
)

// repositorios implementación elegida por DB_DRIVER.
type repositorios struct {
	expedientes    repository.ExpedienteRepository
	historial      repository.HistorialRepository
	atenciones     repository.AtencionRepository
	entregas       repository.EntregaRepository
	notificaciones repository.NotificacionRepository
	documentos     repository.DocumentoRepository
	asuntos        repository.AsuntoRepository
	solicitantes   repository.SolicitanteRepository
	usuarios       repository.UsuarioRepository
	reportes       repository.ReporteRepository
	tx             repository.TxRunner
	cerrar         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	cal, err := plazo.NuevoCalendario(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	repos, err := abrirRepositorios(ctx, cfg, cal, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer repos.cerrar()

	// Almacenamiento de autorizaciones: sin endpoint la entrega a terceros no admite archivo.
	var archivos ports.FileStorage
	if cfg.Storage.Enabled() {
		minio, err := storage.NewMinioStorage(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente MinIO")
		}
		if err := minio.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("bucket de documentos")
		}
		archivos = minio
	} else {
		log.Warn().Msg("almacenamiento deshabilitado: MINIO_ENDPOINT vacío")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	excelExporter := infraexcel.NewExcelizeExporter()

	expedienteUC := expediente.NewUseCase(repos.expedientes, repos.historial, repos.solicitantes, repos.asuntos, repos.tx, cal, log)
	documentosUC := expediente.NewDocumentosUseCase(expedienteUC, pdfGenerator, excelExporter, cfg.App.URLConsulta)
	atencionUC := atencion.NewUseCase(repos.expedientes, repos.atenciones, repos.tx, cal, log)
	entregaUC := entrega.NewUseCase(repos.expedientes, repos.entregas, repos.tx, archivos, cfg.Storage.MaxUploadBytes(), cal, log)
	reporteUC := reporte.NewUseCase(repos.expedientes, repos.entregas, repos.usuarios, repos.reportes, excelExporter, cal)
	notificacionUC := notificacion.NewUseCase(repos.expedientes, repos.notificaciones, cal, log)
	consultaUC := consulta.NewUseCase(repos.expedientes, cal)
	solicitanteUC := usecase.NewSolicitanteUseCase(repos.solicitantes)
	catalogoUC := usecase.NewCatalogoUseCase(repos.documentos, repos.asuntos)
	usuarioUC := usecase.NewUsuarioUseCase(repos.usuarios, log)
	authUC := auth.NewAuthUseCase(repos.usuarios, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Admin.Usuario != "" {
		creado, err := usuarioUC.EnsureAdmin(ctx, dto.CreateUsuarioRequest{
			NombreCompleto: cfg.Admin.Nombre,
			DNI:            cfg.Admin.DNI,
			Usuario:        cfg.Admin.Usuario,
			Correo:         cfg.Admin.Correo,
			Contrasena:     cfg.Admin.Password,
			Rol:            entity.RolAdministrador,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("alta del administrador inicial")
		}
		if creado {
			log.Info().Str("usuario", cfg.Admin.Usuario).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Storage.MaxUploadBytes()) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.TrimSpace(cfg.HTTP.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Expedientes UGEL Santa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ExpedienteUC:   expedienteUC,
		DocumentosUC:   documentosUC,
		AtencionUC:     atencionUC,
		EntregaUC:      entregaUC,
		SolicitanteUC:  solicitanteUC,
		CatalogoUC:     catalogoUC,
		UsuarioUC:      usuarioUC,
		ReporteUC:      reporteUC,
		NotificacionUC: notificacionUC,
		ConsultaUC:     consultaUC,
		JWTSecret:      cfg.JWT.Secret,
		ConsultaRPM:    cfg.HTTP.ConsultaRPM,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// abrirRepositorios conecta PostgreSQL (con migraciones) o arma el almacén en memoria.
func abrirRepositorios(ctx context.Context, cfg *config.Config, cal *plazo.Calendario, log *logger.Logger) (*repositorios, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		store.Zona = cal.Zona
		return &repositorios{
			expedientes:    store.Expedientes(),
			historial:      store.Historial(),
			atenciones:     store.Atenciones(),
			entregas:       store.Entregas(),
			notificaciones: store.Notificaciones(),
			documentos:     store.Documentos(),
			asuntos:        store.Asuntos(),
			solicitantes:   store.Solicitantes(),
			usuarios:       store.Usuarios(),
			reportes:       store.Reportes(),
			tx:             memory.NewTxRunner(store),
			cerrar:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Timezone)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool, log.Component("migrate").Zerolog()); err != nil {
		pool.Close()
		return nil, err
	}
	return &repositorios{
		expedientes:    postgres.NewExpedienteRepository(pool),
		historial:      postgres.NewHistorialRepository(pool),
		atenciones:     postgres.NewAtencionRepository(pool),
		entregas:       postgres.NewEntregaRepository(pool),
		notificaciones: postgres.NewNotificacionRepository(pool),
		documentos:     postgres.NewDocumentoRepository(pool),
		asuntos:        postgres.NewAsuntoRepository(pool),
		solicitantes:   postgres.NewSolicitanteRepository(pool),
		usuarios:       postgres.NewUsuarioRepository(pool),
		reportes:       postgres.NewReporteRepository(pool),
		tx:             postgres.NewTxRunner(pool),
		cerrar:         pool.Close,
	}, nil
}
