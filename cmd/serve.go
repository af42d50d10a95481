package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laohotel/config"
	"laohotel/handlers"
	"laohotel/middleware"
	"laohotel/routes"
	"laohotel/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const healthInterval = 60 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides APP_PORT)")
}

func newRouter(app *application) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(app.logger))
	router.Use(middleware.RateLimitMiddleware(app.cfg.MaxRequestsPerMin))

	chatHandler := handlers.NewChatHandler(app.orchestrator)
	roomHandler := handlers.NewRoomHandler(app.rooms)
	historyHandler := handlers.NewHistoryHandler(app.history)

	handlerBundle := &handlers.HandlerBundle{
		// Chat endpoints.
		AskHandler:          chatHandler.AskHandler,
		ClearSessionHandler: chatHandler.ClearSessionHandler,

		// Room endpoints.
		ListRoomsHandler: roomHandler.ListRoomsHandler,

		// History endpoints.
		SessionHistoryHandler: historyHandler.SessionHistoryHandler,
		FirstMessagesHandler:  historyHandler.FirstMessagesHandler,
		AllContentHandler:     historyHandler.AllContentHandler,

		HealthHandler:  handlers.NewHealthHandler(app.health),
		MetricsHandler: gin.WrapH(app.metrics.Handler()),
	}
	routes.RegisterRoutes(router, handlerBundle)
	return router
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := utils.GetLogger()
	cfg := config.AppConfig
	if servePort != "" {
		cfg.AppPort = servePort
	}

	app, err := newApplication(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer app.Close()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	app.health.StartHealthMonitor(monitorCtx, healthInterval)

	port := cfg.AppPort
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: newRouter(app),
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("serve: server failed to start: %w", err)
	case <-quit:
	}
	logger.Sugar().Info("serve: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("serve: server forced to shutdown: %w", err)
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}
