package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/devlog/internal/api/handlers"
	"github.com/donaldgifford/devlog/internal/api/middleware"
	"github.com/donaldgifford/devlog/internal/auth"
	"github.com/donaldgifford/devlog/internal/config"
	"github.com/donaldgifford/devlog/internal/jobs"
	"github.com/donaldgifford/devlog/internal/listing"
	"github.com/donaldgifford/devlog/internal/store"
	"github.com/donaldgifford/devlog/internal/web"
	"github.com/donaldgifford/devlog/pkg/logger"
	"github.com/donaldgifford/devlog/pkg/markdown"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server and draft purge scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	s, err := store.NewPostgresStore(connectCtx, cfg.Database.DSN(), cfg.Database.PoolSize)
	if err == nil {
		err = s.Migrate(connectCtx)
	}
	cancel()
	if err != nil {
		return fmt.Errorf("preparing database: %w", err)
	}
	defer s.Close()

	sched, err := jobs.NewScheduler(s, cfg.Drafts.TTL, cfg.Drafts.PurgeInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	e, err := newServer(cfg, s, sched, log)
	if err != nil {
		return err
	}

	sched.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	<-sched.Stop().Done()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newServer wires the HTTP surface: middleware, probes, metrics, the JSON
// API with its OpenAPI document, and the HTML pages.
func newServer(
	cfg *config.Config,
	s store.Store,
	sched handlers.JobRunner,
	log *slog.Logger,
) (*echo.Echo, error) {
	sessions, err := auth.NewSessions(
		[]byte(cfg.Session.Secret), cfg.Session.Name, cfg.Session.MaxAge, cfg.Session.Secure,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session store: %w", err)
	}

	builder := listing.NewBuilder(cfg.Blog.PageSize)

	pages, err := web.New(web.Config{
		Blog:         cfg.Blog.Title,
		Store:        s,
		Builder:      builder,
		Auth:         auth.NewService(s, cfg.Auth.MinPasswordLength),
		Sessions:     sessions,
		LoginLimiter: middleware.NewClientLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst),
		Markdown:     markdown.NewRenderer(),
		Log:          log,
	})
	if err != nil {
		return nil, fmt.Errorf("creating web handler: %w", err)
	}

	ipExtractor, err := middleware.ClientIPExtractor(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = ipExtractor
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.HTTPErrorHandler = pages.ErrorHandler

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(s))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaCfg := huma.DefaultConfig("DevLog API", Version)
	humaCfg.Info.Description = "Read-only access to DevLog posts and categories, the editor's Markdown helpers, and maintenance jobs."
	api := humaecho.New(e, humaCfg)

	handlers.RegisterPostRoutes(api, handlers.NewPostsHandler(s, builder))
	handlers.RegisterCategoryRoutes(api, handlers.NewCategoriesHandler(s))
	handlers.RegisterEditorRoutes(api)
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(sched))

	pages.Register(e)

	return e, nil
}
