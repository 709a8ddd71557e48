package router

import (
	"time"

	"gasolinera/internal/config"
	"gasolinera/internal/handler"
	"gasolinera/internal/infra"
	"gasolinera/internal/middleware"
	"gasolinera/internal/repository"
	"gasolinera/internal/service"
	"gasolinera/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the Gin engine plus the worker
// handlers the caller hands to the worker pool.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, worker.Handlers) {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	carritoStore := infra.NewRedisCarritoStore(rdb, time.Duration(cfg.CarritoTTLMinutes)*time.Minute)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	tipoRepo := repository.NewTipoCombustibleRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	pipaRepo := repository.NewPipaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	ventaCombRepo := repository.NewVentaCombustibleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	inventarioSvc := service.NewInventarioService(inventarioRepo, tipoRepo)
	productoSvc := service.NewProductoService(productoRepo)
	pipaSvc := service.NewPipaService(pipaRepo, tipoRepo)
	catalogoSvc := service.NewCatalogoService(tipoRepo, clienteRepo)
	carritoSvc := service.NewCarritoService(carritoStore, productoRepo, clienteRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, carritoStore)
	ventaCombSvc := service.NewVentaCombustibleService(ventaCombRepo, clienteRepo, tipoRepo, inventarioSvc)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	reporteSvc := service.NewReporteService(inventarioRepo, ventaRepo, ventaCombRepo, productoRepo, dispatcher, cfg.ReportStoragePath)
	estadisticasSvc := service.NewEstadisticasService(inventarioRepo, ventaRepo, ventaCombRepo, inventarioSvc, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	pipasH := handler.NewPipasHandler(pipaSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	ventasH := handler.NewVentasHandler(carritoSvc, ventaSvc)
	ventasCombH := handler.NewVentasCombustibleHandler(ventaCombSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	estadisticasH := handler.NewEstadisticasHandler(estadisticasSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: encargado, admin — declared per-endpoint
		v1.POST("/auth/usuarios", middleware.RequireRole("admin"), authH.CrearUsuario)

		inv := v1.Group("/inventario", middleware.RequireRole("admin", "encargado"))
		{
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.PUT("/movimientos/:id", inventarioH.EditarMovimiento)
			inv.DELETE("/movimientos/:id", inventarioH.EliminarMovimiento)
			inv.GET("/saldos", inventarioH.SaldosConsolidados)
			inv.GET("/saldos/:tipo_id", inventarioH.SaldoActual)
		}

		v1.GET("/productos", middleware.RequireRole("admin", "encargado"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("admin", "encargado"), productosH.Obtener)
		prods := v1.Group("/productos", middleware.RequireRole("admin"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		pipas := v1.Group("/pipas", middleware.RequireRole("admin", "encargado"))
		{
			pipas.GET("", pipasH.Listar)
			pipas.GET("/:id", pipasH.Obtener)
			pipas.POST("", pipasH.Crear)
			pipas.PUT("/:id", pipasH.Actualizar)
			pipas.DELETE("/:id", middleware.RequireRole("admin"), pipasH.Eliminar)
		}

		v1.GET("/tipos-combustible", middleware.RequireRole("admin", "encargado"), catalogoH.ListarTiposCombustible)
		v1.GET("/clientes", middleware.RequireRole("admin", "encargado"), catalogoH.ListarClientes)
		v1.POST("/clientes", middleware.RequireRole("admin", "encargado"), catalogoH.CrearCliente)

		carrito := v1.Group("/carrito", middleware.RequireRole("admin", "encargado"))
		{
			carrito.GET("", ventasH.VerCarrito)
			carrito.PUT("", ventasH.ActualizarCarrito)
			carrito.DELETE("", ventasH.CancelarCarrito)
			carrito.POST("/items", ventasH.AgregarItem)
			carrito.PUT("/items/:producto_id", ventasH.ActualizarItem)
			carrito.DELETE("/items/:producto_id", ventasH.QuitarItem)
		}

		ventas := v1.Group("/ventas", middleware.RequireRole("admin", "encargado"))
		{
			ventas.POST("", ventasH.FinalizarVenta)
			ventas.GET("", ventasH.ListarVentas)
			ventas.GET("/:id", ventasH.ObtenerVenta)
		}

		ventasComb := v1.Group("/ventas-combustible", middleware.RequireRole("admin", "encargado"))
		{
			ventasComb.POST("", ventasCombH.Registrar)
			ventasComb.GET("", ventasCombH.Listar)
			ventasComb.GET("/:id", ventasCombH.Obtener)
		}

		reportes := v1.Group("/reportes", middleware.RequireRole("admin", "encargado"))
		{
			reportes.GET("/:tipo", reportesH.Descargar)
			reportes.POST("/enviar", reportesH.Enviar)
		}

		estadisticas := v1.Group("/estadisticas", middleware.RequireRole("admin", "encargado"))
		{
			estadisticas.GET("/dashboard", estadisticasH.Dashboard)
			estadisticas.GET("/ventas-combustible", estadisticasH.VentasCombustible)
			estadisticas.GET("/top-productos", estadisticasH.TopProductos)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	reporteWorker := worker.NewReporteWorker(reporteSvc, mailer)
	return r, worker.Handlers{Reporte: reporteWorker}
}
