package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/config"
	"github.com/mrlokans/booknotes/internal/database"
	"github.com/mrlokans/booknotes/internal/database/books"
	"github.com/mrlokans/booknotes/internal/demo"
	http_controllers "github.com/mrlokans/booknotes/internal/http"
	"github.com/mrlokans/booknotes/internal/metrics"
	"github.com/mrlokans/booknotes/internal/scheduler"
	"github.com/mrlokans/booknotes/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired components of the server. Optional components are nil
// when disabled by configuration.
type App struct {
	DB        *database.Database
	Catalog   *books.Repository
	Metrics   *metrics.Collector
	Tasks     *tasks.Client
	Scheduler *scheduler.ContentCleanupScheduler
	Router    *gin.Engine

	cancelBackground context.CancelFunc
}

// Build opens the database and wires every component described by cfg.
// Background workers are not started; see Start.
func Build(cfg *config.Config, version string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{DB: db}
	app.Catalog = books.NewRepository(db.DB, catalog.NewValidator(cfg.Catalog.StrictGenres), cfg.Catalog.SearchMode)
	log.Printf("Catalog search mode: %s, strict genres: %t", app.Catalog.SearchMode(), cfg.Catalog.StrictGenres)

	// Interfaces stay nil (not typed nil) when a component is disabled
	var taskObserver tasks.Observer
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.New()
		app.Catalog.SetObserver(app.Metrics)
		taskObserver = app.Metrics
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:  app.Catalog,
		Database: db,
		Cleaner:  app.Catalog,
		Metrics:  app.Metrics,
		Version:  version,
	}

	if cfg.Tasks.Enabled {
		app.Tasks, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks.Register(tasks.NewCleanupOrphanContentQueue(app.Catalog, taskObserver))

		routerCfg.CleanupQueue = app.Tasks
		routerCfg.Tasks = app.Tasks

		if cfg.ContentCleanup.Enabled {
			app.Scheduler = scheduler.NewContentCleanupScheduler(app.Tasks, cfg.ContentCleanup.Schedule)
		}
	}

	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		routerCfg.DemoMiddleware = demo.NewMiddleware(true)
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Start launches the task workers and the cleanup scheduler.
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelBackground = cancel

	if a.Tasks != nil {
		a.Tasks.Start(ctx)
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start content cleanup scheduler: %w", err)
		}
	}
	return nil
}

// Shutdown stops the scheduler first so no task is enqueued while the
// workers drain.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
	}
	if a.cancelBackground != nil {
		a.cancelBackground()
	}
}

// Close releases the task and catalog databases. Call after Shutdown.
func (a *App) Close() {
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Booknotes v%s", version)

	app, err := Build(cfg, version)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer app.Close()

	if err := app.Start(); err != nil {
		app.Shutdown(context.Background())
		app.Close()
		log.Fatalf("Failed to start: %v", err)
	}

	Serve(app.Router, cfg, app.Shutdown)
}
