// Package wire provides dependency injection for the autofix application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"

	"github.com/example/autofix/internal/adapters/designapi"
	"github.com/example/autofix/internal/adapters/sqlite"
	"github.com/example/autofix/internal/app"
	"github.com/example/autofix/internal/config"
	"github.com/example/autofix/internal/core/fix"
	"github.com/example/autofix/internal/db"
	"github.com/example/autofix/internal/logging"
	"github.com/example/autofix/internal/ports/primary"
)

var (
	autofixService primary.AutofixService
	cfg            *config.Config
	once           sync.Once
)

// AutofixService returns the singleton AutofixService instance.
func AutofixService() primary.AutofixService {
	once.Do(initServices)
	return autofixService
}

// Configuration returns the loaded configuration.
func Configuration() *config.Config {
	once.Do(initServices)
	return cfg
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to determine working directory: %v", err)
	}
	cfg, err = config.LoadConfig(cwd)
	if err != nil {
		log.Fatalf("no configuration found; run `autofix init` first: %v", err)
	}

	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dbPath, err = db.DefaultPath()
		if err != nil {
			log.Fatalf("failed to resolve database path: %v", err)
		}
	}
	database, err := db.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logger, err := logging.New(os.Getenv("AUTOFIX_DEBUG") != "")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	violationRepo := sqlite.NewViolationRepository(database)
	historyRepo := sqlite.NewHistoryRepository(database)

	// Remote oracles (secondary ports) - HTTP clients against the design service
	mutationClient := designapi.NewMutationClient(cfg.DesignAPIBaseURL)
	scoreClient := designapi.NewScoreClient(cfg.ScoreAPIBaseURL)

	// Create service (primary port implementation)
	autofixService = app.NewAutofixService(
		violationRepo, historyRepo, scoreClient, mutationClient,
		fix.DefaultCatalog(), app.NewBatchLocks(), logger, cfg.Parallelism,
	)
}
