package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bauhaus-reports-api/internal/backend"
	"bauhaus-reports-api/internal/config"
	"bauhaus-reports-api/internal/handlers"
	"bauhaus-reports-api/internal/logging"
	"bauhaus-reports-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.Server.Environment, cfg.Server.LogLevel)

	client := backend.NewClient(cfg.Backend, log)

	authHandler := handlers.NewAuthHandler(cfg, log)
	userHandler := handlers.NewUserHandler(client, log)
	reportsHandler := handlers.NewReportsHandler(client, log)
	tanksHandler := handlers.NewTanksHandler(client, log)
	fleetHandler := handlers.NewFleetHandler(client, log)
	dashboardHandler := handlers.NewDashboardHandler(client, tanksHandler.Niveles, log)

	// Background tank poll, cancelled on shutdown so no refresh outlives
	// the server.
	pollCtx, stopPoll := context.WithCancel(context.Background())
	defer stopPoll()
	go tanksHandler.Niveles.Poll(pollCtx, cfg.Tanques.PollInterval, func(err error) {
		log.Warn().Err(err).Msg("fallo el sondeo de tanques")
	})

	router := setupRouter(cfg, authHandler, userHandler, reportsHandler, tanksHandler, fleetHandler, dashboardHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  300 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("puerto", cfg.Server.Port).Msg("servidor iniciado")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("el servidor no pudo iniciar")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando el servidor")

	stopPoll()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("apagado forzado")
	}

	log.Info().Msg("servidor detenido")
}

func setupRouter(cfg *config.Config, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler, reportsHandler *handlers.ReportsHandler, tanksHandler *handlers.TanksHandler, fleetHandler *handlers.FleetHandler, dashboardHandler *handlers.DashboardHandler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" || cfg.Server.Environment == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthRequired(cfg.JWT.Secret), authHandler.Logout)
		auth.GET("/validate", middleware.AuthRequired(cfg.JWT.Secret), authHandler.ValidateToken)
	}

	// Dashboard route (authenticated users)
	router.GET("/api/dashboard", middleware.AuthRequired(cfg.JWT.Secret), dashboardHandler.GetDashboard)

	// Report routes (authenticated users)
	reportes := router.Group("/api/reportes")
	reportes.Use(middleware.AuthRequired(cfg.JWT.Secret))
	{
		reportes.GET("/subdiario", reportsHandler.GetSubdiario)
		reportes.GET("/subdiario/export", reportsHandler.ExportSubdiario)
		reportes.GET("/consumos", reportsHandler.GetConsumos)
		reportes.GET("/ventas-diarias", reportsHandler.GetVentasDiarias)
		reportes.GET("/cuentas-corrientes", reportsHandler.GetCuentasCorrientes)
		reportes.GET("/facturas-proveedores", reportsHandler.GetFacturasProveedores)
	}

	// Tank routes (authenticated users)
	tanques := router.Group("/api/tanques")
	tanques.Use(middleware.AuthRequired(cfg.JWT.Secret))
	{
		tanques.GET("", tanksHandler.GetTanques)
		tanques.PUT("/:id/estado", tanksHandler.CambiarEstado)
	}

	// Fleet routes (authenticated users)
	router.GET("/api/flota/posiciones", middleware.AuthRequired(cfg.JWT.Secret), fleetHandler.GetPosiciones)

	// User management routes (admin only)
	usuarios := router.Group("/api/usuarios")
	usuarios.Use(middleware.AuthRequired(cfg.JWT.Secret))
	usuarios.Use(middleware.RequireAdmin())
	{
		usuarios.GET("", userHandler.GetUsuarios)
		usuarios.GET("/:id", userHandler.GetUsuarioByID)
		usuarios.POST("", userHandler.CreateUsuario)
		usuarios.PUT("/:id", userHandler.UpdateUsuario)
		usuarios.POST("/:id/permisos", userHandler.AddPermiso)
		usuarios.DELETE("/:id/permisos/:permisoId", userHandler.RemovePermiso)
	}

	return router
}
