package http

import (
	"context"
	"os/signal"
	"syscall"

	"screen_navigator/internal/adaptors"
	"screen_navigator/internal/application/config"
	"screen_navigator/internal/pkg/errors"
	"screen_navigator/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// searchWorkers bounds concurrent backend calls of one multi-query search.
const searchWorkers = 4

type Router struct {
	httpRouter *chi.Mux
	log        *log.Logger
}

// Dependencies are the services the api routes are built from.
type Dependencies struct {
	Artifacts  *adaptors.MemoryArtifactStore
	Dispatcher *service.Dispatcher
}

func NewDependencies(appCfg *config.AppConfig, log *log.Logger) (*Dependencies, error) {
	vision, err := adaptors.NewVisionModel(appCfg, log)
	if err != nil {
		return nil, errors.Wrap(err, `failed to create vision model`)
	}
	searcher, err := adaptors.NewSearcher(appCfg, log)
	if err != nil {
		return nil, errors.Wrap(err, `failed to create searcher`)
	}

	analyzer := service.NewScreenshotAnalyzer(log, vision, appCfg.VisionModel, appCfg.VisionMaxDimension)
	dispatcher := service.NewDispatcher(service.DefaultAgents(), log,
		service.NewScreenshotTool(analyzer),
		service.NewSearchTool(searcher, searchWorkers, log),
	)

	return &Dependencies{
		Artifacts:  adaptors.NewMemoryArtifactStore(appCfg.ArtifactMaxBytes, log),
		Dispatcher: dispatcher,
	}, nil
}

func Init(ctx context.Context, log *log.Logger, appCfg *config.AppConfig) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := appCfg.ValidateServer(); err != nil {
		log.WithError(err).Fatal(`Invalid server config`)
	}

	cfg, err := NewHTTPServerConfig()
	if err != nil {
		log.Fatalf(`Failed to load config: %v`, err)
	}

	deps, err := NewDependencies(appCfg, log)
	if err != nil {
		log.WithError(err).Fatal(`Failed to build dependencies`)
	}

	router := &Router{
		httpRouter: chi.NewRouter(),
		log:        log,
	}
	initRoutes(ctx, router, deps, appCfg.ArtifactMaxBytes)

	servers := []*Server{
		NewHttpServer(ctx, cfg, router.httpRouter, log),
		NewMetricsServer(appCfg.MetricsHost, cfg.Timeouts.ShutdownWait, log),
		NewPprofServer(appCfg.PprofHost, cfg.Timeouts.ShutdownWait, log),
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(s.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info(`shutdown signal received`)
		var firstErr error
		for _, s := range servers {
			if err := s.Stop(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal(`server exited with error`)
	}
}
