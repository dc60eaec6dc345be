package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"limban-server-go/internal/domain/content"
	"limban-server-go/internal/domain/image"
	"limban-server-go/internal/domain/image/cache"
	"limban-server-go/internal/domain/review"
	"limban-server-go/internal/domain/search"
	platformconfig "limban-server-go/internal/platform/config"
	platformerrors "limban-server-go/internal/platform/errors"
	platformlogging "limban-server-go/internal/platform/logging"
	platformstorage "limban-server-go/internal/platform/storage"
	httptransport "limban-server-go/internal/transport/http"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config     *platformconfig.Config
	configPath string
	logger     *platformlogging.Logger
	db         *gorm.DB
	cacheStore cache.Store
	imageSvc   *image.Service
	contentSvc *content.Service
	searchSvc  *search.Service
	reviewSvc  *review.Service
	router     *httptransport.Router
}

// Run drives the whole server lifecycle: staged initialisation, serving and
// graceful shutdown on SIGINT/SIGTERM.
func Run(ctx context.Context, configPath string) error {
	state := &appState{configPath: configPath}

	if err := executeInitSteps(ctx, InitGraph(), state); err != nil {
		return err
	}

	cfg := state.config
	logger := state.logger
	if cfg == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}
	defer logger.Close()
	defer func() {
		if state.cacheStore != nil {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := state.cacheStore.Close(closeCtx); err != nil {
				logger.Warn("[Bootstrap] cache store did not close cleanly: %v", err)
			}
		}
	}()

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: state.router.Engine,
	}

	group, groupCtx := errgroup.WithContext(signalCtx)
	group.Go(func() error {
		logger.Info("[Bootstrap] http server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return platformerrors.Wrap(platformerrors.KindTransport, "http.serve", "server stopped", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("[Bootstrap] shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("[Bootstrap] stopped")
	return nil
}

// InitGraph lists the initialisation steps in execution order. Each step's
// dependencies must appear earlier in the list.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init",
			Title:     "Initialise logging",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "storage:init",
			Title:     "Open database and migrate",
			DependsOn: []string{"config:load", "logging:init"},
			Kind:      platformerrors.KindStorage,
			Execute:   initStorageStep,
		},
		{
			ID:        "cache:init",
			Title:     "Create cache store",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initCacheStep,
		},
		{
			ID:        "services:init",
			Title:     "Wire domain services",
			DependsOn: []string{"storage:init", "cache:init"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initServicesStep,
		},
		{
			ID:        "http:init",
			Title:     "Build HTTP router",
			DependsOn: []string{"services:init"},
			Kind:      platformerrors.KindTransport,
			Execute:   initRouterStep,
		},
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(platformerrors.KindBootstrap, "execute init steps", "nil bootstrap state")
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(platformerrors.KindBootstrap, step.ID, "missing execute function")
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if stderrors.As(err, &typed) {
				return err
			}
			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

func loadConfigStep(_ context.Context, state *appState) error {
	result, err := platformconfig.NewLoader().WithPath(state.configPath).Load()
	if err != nil {
		return err
	}
	state.config = result.Config
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return err
	}
	state.logger = logger
	logger.Info("[Bootstrap] configuration loaded")
	return nil
}

func initStorageStep(_ context.Context, state *appState) error {
	db, err := platformstorage.Open(state.config.Database.DSN)
	if err != nil {
		return err
	}
	state.db = db
	return nil
}

func initCacheStep(_ context.Context, state *appState) error {
	cacheCfg := cache.Config{
		Driver:   state.config.Cache.Driver,
		Capacity: state.config.Cache.Capacity,
		TTL:      state.config.Cache.TTL,
	}
	if state.config.Cache.Redis.Addr != "" {
		cacheCfg.Redis = &cache.RedisConfig{
			Addr:     state.config.Cache.Redis.Addr,
			Username: state.config.Cache.Redis.Username,
			Password: state.config.Cache.Redis.Password,
			DB:       state.config.Cache.Redis.DB,
			Prefix:   state.config.Cache.Redis.Prefix,
		}
	}
	store, err := cache.New(cacheCfg)
	if err != nil {
		return err
	}
	state.cacheStore = store
	return nil
}

func initServicesStep(_ context.Context, state *appState) error {
	mapping, err := image.LoadMapping(state.config.Pipeline.MappingPath)
	if err != nil {
		return err
	}
	state.imageSvc = image.NewService(mapping, state.cacheStore, state.config.Pipeline.Extension, state.logger)
	if state.config.CMS.Endpoint != "" {
		client := content.NewClient(state.config.CMS.Endpoint, state.config.CMS.Timeout, state.logger)
		state.contentSvc = content.NewService(client, state.logger)
	} else {
		state.logger.Warn("[CMS] no endpoint configured, content routes disabled")
	}
	state.searchSvc = search.NewService(platformstorage.NewSearchRepository(state.db), state.logger)
	state.reviewSvc = review.NewService(platformstorage.NewReviewRepository(state.db), state.logger)
	return nil
}

func initRouterStep(_ context.Context, state *appState) error {
	opts := httptransport.Options{
		Config:  state.config,
		Logger:  state.logger,
		Search:  state.searchSvc,
		Reviews: state.reviewSvc,
		Images:  state.imageSvc,
	}
	if state.contentSvc != nil {
		opts.Content = state.contentSvc
	}
	router, err := httptransport.Build(opts)
	if err != nil {
		return err
	}
	state.router = router
	return nil
}
