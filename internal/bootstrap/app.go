// Package bootstrap builds the labeling engine and its collaborators from configuration.
package bootstrap

import (
	"fmt"

	"github.com/ecoyoung/packform/config"
	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/infrastructure/cache"
	"github.com/ecoyoung/packform/internal/infrastructure/metrics"
	"github.com/ecoyoung/packform/internal/logger"
	"github.com/ecoyoung/packform/internal/taxonomy"
	"github.com/ecoyoung/packform/internal/usecase"
)

// App is the assembled object graph shared by the HTTP service and the CLI.
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Taxonomy *taxonomy.Taxonomy
	Detector domain.Detector
	Metrics  *metrics.Recorder // nil when metrics are disabled
	Service  *usecase.LabelingService

	closers []func()
}

// CreateLogger builds the logger described by the logging section.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
}

// New assembles the application with a logger built from cfg.
func New(cfg *config.Config) (*App, error) {
	log, err := CreateLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return NewWithLogger(cfg, log)
}

// NewWithLogger assembles the application around an existing logger.
func NewWithLogger(cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}

	tax, err := taxonomy.Load(cfg.Labeler.TaxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	if cfg.Labeler.TaxonomyFile != "" {
		log.Info("Taxonomy extensions loaded", logger.String("file", cfg.Labeler.TaxonomyFile))
	}

	app := &App{Config: cfg, Logger: log, Taxonomy: tax}

	var recorder domain.BatchRecorder
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewRecorder()
		recorder = app.Metrics
	}

	app.Detector = app.setupDetector()

	app.Service = usecase.NewLabelingService(
		usecase.NewStandardizer(tax),
		app.Detector,
		recorder,
		log,
		usecase.LabelingConfig{
			Fields: domain.Fields{
				Label: cfg.Labeler.LabelField,
				Text:  cfg.Labeler.TextField,
			},
			ExampleLimit: cfg.Labeler.ExampleLimit,
		},
	)

	return app, nil
}

func (a *App) setupDetector() domain.Detector {
	detector := usecase.NewPatternDetector(a.Taxonomy, a.Logger, usecase.DetectorConfig{
		Debug: a.Config.Labeler.Debug,
	})

	if a.Config.Cache.Type != "memory" {
		a.Logger.Info("Detection cache disabled")
		return detector
	}

	memoryCache := cache.NewMemoryCache(a.Config.Cache.MaxEntries)
	a.closers = append(a.closers, memoryCache.Close)
	if a.Metrics != nil {
		a.Metrics.ObserveCacheSize(memoryCache.Size)
	}
	a.Logger.Info("Detection cache enabled",
		logger.Duration("ttl", a.Config.Cache.TTL),
		logger.Int("max_entries", a.Config.Cache.MaxEntries),
	)
	return usecase.NewCachedDetector(detector, memoryCache, a.Config.Cache.TTL, a.Logger)
}

// Close releases background resources. It does not sync the logger.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
