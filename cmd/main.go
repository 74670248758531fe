package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pellet_panel/internal/handlers"
	"pellet_panel/internal/logger"
	"pellet_panel/internal/repository"
	"pellet_panel/internal/repository/db"
	"pellet_panel/internal/server"
	"pellet_panel/internal/service"
	"pellet_panel/internal/stove"

	"github.com/spf13/viper"
)

const (
	defaultSchedulerTick = 30 * time.Second
	defaultStoveTimeout  = 5 * time.Second
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	gateway := newStoveGateway()
	services := service.NewService(repos, gateway, viper.GetString("auth.signing_key"))
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the scheduler loop (via composed service)
	go services.Scheduler.Run(ctx, schedulerTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "panel.db")
		dbPath = "panel.db"
	}
	return db.InitDB(dbPath)
}

// newStoveGateway builds the vendor cloud client from configuration.
func newStoveGateway() stove.Gateway {
	timeout := viper.GetDuration("stove.timeout")
	if timeout <= 0 {
		timeout = defaultStoveTimeout
	}
	return stove.NewClient(
		viper.GetString("stove.base_url"),
		viper.GetString("stove.api_key"),
		timeout,
	)
}

func schedulerTick() time.Duration {
	if tick := viper.GetDuration("scheduler.tick"); tick > 0 {
		return tick
	}
	return defaultSchedulerTick
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
