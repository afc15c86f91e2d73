package router

import (
	"time"

	"cobranza/internal/config"
	"cobranza/internal/handler"
	"cobranza/internal/middleware"
	"cobranza/internal/repository"
	"cobranza/internal/service"
	"cobranza/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps exposes the wired services the process root needs outside HTTP
// (background workers share them with the handlers).
type Deps struct {
	UsuarioRepo repository.UsuarioRepository
	CajaSvc     service.CajaService
	MovSvc      service.MovimientoService
	Disponible  service.DisponibleService
	Dispatcher  *worker.Dispatcher
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *Deps) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	prestamoRepo := repository.NewPrestamoRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	auditSvc := service.NewAuditService(auditRepo)
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	movSvc := service.NewMovimientoService(movimientoRepo, auditSvc, cfg)
	cajaSvc := service.NewCajaService(cajaRepo, movimientoRepo, auditSvc, cfg)
	disponibleSvc := service.NewDisponibleService(clienteRepo, auditSvc)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	prestamoSvc := service.NewPrestamoService(prestamoRepo, clienteRepo, movSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cajaH := handler.NewCajaHandler(cajaSvc, cfg.TimezoneDefecto)
	movH := handler.NewMovimientosHandler(movSvc, cfg.TimezoneDefecto)
	prestamosH := handler.NewPrestamosHandler(prestamoSvc, disponibleSvc)
	reportesH := handler.NewReporteHandler(movSvc, cajaRepo, cfg.TimezoneDefecto, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("cobrador", "admin", "superadmin")
	v1 := r.Group("/v1", jwtMW)
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", todos, cajaH.Abrir)
			caja.GET("/estado", todos, cajaH.Estado)
			// The closing sweep also runs from the cron; the endpoint lets an
			// admin force it after fixing data.
			caja.POST("/reconciliar", middleware.RequireRole("admin", "superadmin"), cajaH.Reconciliar)
		}

		movimientos := v1.Group("/movimientos", todos)
		{
			movimientos.POST("", movH.Registrar)
			movimientos.GET("", movH.Reporte)
			movimientos.GET("/resumen", movH.Resumen)
		}

		prestamos := v1.Group("/prestamos", todos)
		{
			prestamos.POST("", prestamosH.Crear)
			prestamos.DELETE("/:id", prestamosH.Eliminar)
		}
		v1.GET("/clientes/:cliente_id/disponible", todos, prestamosH.Disponible)

		v1.GET("/reportes/caja/pdf", todos, reportesH.CajaPDF)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("superadmin"))
		{
			usuarios.POST("", authH.Crear)
			usuarios.GET("", authH.Listar)
			usuarios.DELETE("/:id", authH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	deps := &Deps{
		UsuarioRepo: usuarioRepo,
		CajaSvc:     cajaSvc,
		MovSvc:      movSvc,
		Disponible:  disponibleSvc,
		Dispatcher:  dispatcher,
	}
	return r, deps
}
