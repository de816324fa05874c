// Package nlsql converts a constrained subset of English stock questions
// ("how many phones in stock", "show low stock") into parameterized SQL
// SELECT statements and serves them over a small REST API.
package nlsql

import (
	"context"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/samuelhany-cpu/NL-TO-SQL/internal/handlers"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/nlquery"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/observability"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/storage"
)

// ServiceConfig controls optional service behaviours.
type ServiceConfig struct {
	// Logger is used for structured logging throughout the service.
	// Defaults to slog.Default().
	Logger *slog.Logger
	// Vocabulary replaces the default correction vocabulary.
	Vocabulary *nlquery.Vocabulary
	// PredicateTable replaces the default product predicate table.
	PredicateTable nlquery.PredicateTable
	// Observability configures tracing, metrics and server timing.
	Observability []observability.Option
	// CacheSize sets the segment cache capacity; 0 keeps the default.
	CacheSize int
}

// Service wires the query pipeline, the stock store and the HTTP handlers.
// Every component is constructed explicitly from its static configuration;
// there are no package-level singletons.
type Service struct {
	store    *storage.Manager
	pipeline *nlquery.Pipeline
	handler  *handlers.Handler
	logger   *slog.Logger
	obs      *observability.Config
	mux      http.Handler
}

// NewService creates a service over an open gorm connection.
func NewService(db *gorm.DB) (*Service, error) {
	return NewServiceWithConfig(db, ServiceConfig{})
}

// NewServiceWithConfig creates a service with additional configuration.
func NewServiceWithConfig(db *gorm.DB, cfg ServiceConfig) (*Service, error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := observability.NewConfig(cfg.Observability...)

	pipelineOpts := []nlquery.PipelineOption{
		nlquery.WithLogger(logger),
		nlquery.WithTracer(obs.Tracer()),
	}
	if cfg.Vocabulary != nil {
		pipelineOpts = append(pipelineOpts, nlquery.WithVocabulary(cfg.Vocabulary))
	}
	if cfg.PredicateTable != nil {
		pipelineOpts = append(pipelineOpts, nlquery.WithPredicateTable(cfg.PredicateTable))
	}
	if cfg.CacheSize > 0 {
		pipelineOpts = append(pipelineOpts, nlquery.WithCacheSize(cfg.CacheSize))
	}

	s := &Service{
		store:    storage.NewManager(db, logger, obs),
		pipeline: nlquery.NewPipeline(pipelineOpts...),
		logger:   logger,
		obs:      obs,
	}
	s.handler = handlers.New(s.pipeline, s.store, logger, obs)
	s.mux = s.buildMux()
	return s, nil
}

// Initialize migrates and seeds the stock database.
func (s *Service) Initialize(ctx context.Context) error {
	return s.store.Initialize(ctx)
}

// Parse runs the pipeline on one query without touching HTTP. Statements
// execute against the stock database when execute is true.
func (s *Service) Parse(ctx context.Context, query string, execute bool) *nlquery.Result {
	var exec nlquery.Executor
	if execute {
		exec = s.store
	}
	return s.pipeline.Run(ctx, query, exec)
}

// Store returns the stock storage manager.
func (s *Service) Store() *storage.Manager {
	return s.store
}

// Pipeline returns the query pipeline.
func (s *Service) Pipeline() *nlquery.Pipeline {
	return s.pipeline
}

// ListenAndServe starts an HTTP server for the service on addr.
func (s *Service) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	return http.ListenAndServe(addr, s)
}
