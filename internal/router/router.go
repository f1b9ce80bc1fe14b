package router

import (
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/config"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/handler"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/infra"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/middleware"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/service"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, sapClient *infra.SAPClient) *gin.Engine {
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
	masaRepo := repository.NewMasaRepository(db)
	faseRepo := repository.NewFaseRepository(db)
	productoRepo := repository.NewProductoMasaRepository(db)
	ingredienteRepo := repository.NewIngredienteRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	registroRepo := repository.NewRegistroRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	configuracionSvc := service.NewConfiguracionService(configuracionRepo, cfg)
	fasesSvc := service.NewFasesService(masaRepo, faseRepo)
	masaSvc := service.NewMasaService(masaRepo, faseRepo, productoRepo)
	pesajeSvc := service.NewPesajeService(masaRepo, ingredienteRepo, faseRepo, productoRepo, notificacionRepo, fasesSvc, configuracionSvc, dispatcher)
	formadoSvc := service.NewFormadoService(masaRepo, faseRepo, registroRepo, catalogoRepo, productoRepo, fasesSvc)
	fermentacionSvc := service.NewFermentacionService(masaRepo, faseRepo, registroRepo, catalogoRepo, fasesSvc)
	horneadoSvc := service.NewHorneadoService(masaRepo, faseRepo, registroRepo, catalogoRepo, fasesSvc)
	sapSyncSvc := service.NewSAPSyncService(sapClient, masaRepo, faseRepo, productoRepo, ingredienteRepo, catalogoRepo, configuracionSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	masasH := handler.NewMasasHandler(masaSvc)
	fasesH := handler.NewFasesHandler(fasesSvc)
	pesajeH := handler.NewPesajeHandler(pesajeSvc)
	formadoH := handler.NewFormadoHandler(formadoSvc)
	fermentacionH := handler.NewFermentacionHandler(fermentacionSvc)
	horneadoH := handler.NewHorneadoHandler(horneadoSvc)
	sapH := handler.NewSAPHandler(sapSyncSvc)
	configuracionH := handler.NewConfiguracionHandler(configuracionSvc)

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
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, supervisor, administrador — declared per-endpoint
		planta := middleware.RequireRole("operador", "supervisor", "administrador")

		// Tablero de producción
		v1.GET("/masas", planta, masasH.Listar)
		v1.GET("/masas/:masaId", planta, masasH.Detalle)
		v1.PATCH("/masas/:masaId/productos/:productoId", middleware.RequireRole("supervisor", "administrador"), masasH.ActualizarProducto)

		// Motor de fases
		v1.GET("/masas/:masaId/fases", planta, fasesH.Progreso)
		v1.PUT("/masas/:masaId/fases/:fase", planta, fasesH.Actualizar)
		v1.PUT("/masas/:masaId/fases/:fase/completar", planta, fasesH.Completar)

		// Estación de pesaje
		pesaje := v1.Group("/pesaje", planta)
		{
			pesaje.GET("/:masaId", pesajeH.Checklist)
			pesaje.PATCH("/:masaId/ingredientes/:ingredienteId", pesajeH.ActualizarIngrediente)
			pesaje.POST("/:masaId/confirmar", pesajeH.Confirmar)
			pesaje.POST("/:masaId/enviar-correo", pesajeH.EnviarCorreo)
		}

		// Estación de formado
		formado := v1.Group("/formado", planta)
		{
			formado.GET("/:masaId", formadoH.Info)
			formado.POST("/:masaId/iniciar", formadoH.Iniciar)
			formado.POST("/:masaId/completar", formadoH.Completar)
		}

		// Estación de fermentación
		fermentacion := v1.Group("/fermentacion", planta)
		{
			fermentacion.GET("/:masaId", fermentacionH.Info)
			fermentacion.POST("/:masaId/entrada-camara", fermentacionH.EntradaCamara)
			fermentacion.POST("/:masaId/salida-camara", fermentacionH.SalidaCamara)
			fermentacion.POST("/:masaId/entrada-frio", fermentacionH.EntradaFrio)
			fermentacion.POST("/:masaId/salida-frio", fermentacionH.SalidaFrio)
		}

		// Estación de horneado + catálogos de hornos
		horneado := v1.Group("/horneado", planta)
		{
			horneado.GET("/:masaId", horneadoH.Info)
			horneado.POST("/:masaId/iniciar", horneadoH.Iniciar)
			horneado.PATCH("/:masaId/temperaturas", horneadoH.ActualizarTemperaturas)
			horneado.PATCH("/:masaId/damper", horneadoH.ActualizarDamper)
			horneado.POST("/:masaId/completar", horneadoH.Completar)
		}
		v1.GET("/hornos", planta, horneadoH.Hornos)
		v1.GET("/programas-horneo", planta, horneadoH.Programas)

		// Sincronización de órdenes SAP
		v1.POST("/sap/sincronizar", middleware.RequireRole("supervisor", "administrador"), sapH.Sincronizar)

		// Configuración del sistema — lectura abierta, escritura administrador
		v1.GET("/configuracion/factor-absorcion", planta, configuracionH.FactorAbsorcion)
		v1.PUT("/configuracion/factor-absorcion", middleware.RequireRole("administrador"), configuracionH.ActualizarFactorAbsorcion)
		v1.GET("/configuracion/correos-empaque", planta, configuracionH.CorreosEmpaque)
		v1.PUT("/configuracion/correos-empaque", middleware.RequireRole("administrador"), configuracionH.ActualizarCorreosEmpaque)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	return r
}
