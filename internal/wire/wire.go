// Package wire provides dependency injection for the shiftplan application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/shiftplan/internal/adapters/cli"
	"github.com/example/shiftplan/internal/adapters/filesystem"
	"github.com/example/shiftplan/internal/adapters/sqlite"
	"github.com/example/shiftplan/internal/adapters/tabular"
	"github.com/example/shiftplan/internal/app"
	"github.com/example/shiftplan/internal/config"
	"github.com/example/shiftplan/internal/core/allocation"
	"github.com/example/shiftplan/internal/db"
	"github.com/example/shiftplan/internal/logging"
	"github.com/example/shiftplan/internal/metrics"
	"github.com/example/shiftplan/internal/ports/primary"
	"github.com/example/shiftplan/internal/ports/secondary"
)

var (
	cfg             *config.Config
	logger          logging.Logger
	scheduleService primary.ScheduleService
	catalogService  primary.CatalogService
	once            sync.Once
	configOnce      sync.Once
	configDir       = "."
)

// SetConfigDir sets the directory searched first for shiftplan.yaml.
// It must be called before any service is requested.
func SetConfigDir(dir string) {
	if dir != "" {
		configDir = dir
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	configOnce.Do(loadConfig)
	return cfg
}

func loadConfig() {
	loaded, err := config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = loaded
}

// Logger returns the singleton structured logger.
func Logger() logging.Logger {
	once.Do(initServices)
	return logger
}

// ScheduleService returns the singleton ScheduleService instance.
func ScheduleService() primary.ScheduleService {
	once.Do(initServices)
	return scheduleService
}

// CatalogService returns the singleton CatalogService instance.
func CatalogService() primary.CatalogService {
	once.Do(initServices)
	return catalogService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	slogger, err := logging.New(c.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	logger = slogger

	rounds, err := c.Rounds()
	if err != nil {
		log.Fatalf("failed to configure allocation: %v", err)
	}

	// Get database connection
	database, err := db.GetDB(c.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	catalogRepo := sqlite.NewCatalogRepository(database)
	assignmentRepo := sqlite.NewAssignmentRepository(database)
	runRepo := sqlite.NewRunRepository(database)
	csvAdapter := tabular.NewCSVAdapter()
	documents := filesystem.NewDocumentAdapter(c.OutputDir)

	var recorder secondary.MetricsRecorder = metrics.NewNop()
	if c.MetricsTextfile != "" {
		recorder = metrics.NewCollector(c.MetricsTextfile)
	}

	// Create services (primary ports implementation)
	catalogService = app.NewCatalogService(catalogRepo, csvAdapter, logger, c.ProfessionList())
	scheduleService = app.NewScheduleService(catalogRepo, assignmentRepo, runRepo, documents, csvAdapter, recorder, logger,
		app.ScheduleOptions{
			Professions:   c.ProfessionList(),
			VacancyMarker: c.VacancyMarker,
			Engine:        allocation.NewEngine(allocation.WithRounds(rounds)),
		})
}

// ScheduleAdapter returns a new ScheduleAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ScheduleAdapter() *cliadapter.ScheduleAdapter {
	return ScheduleAdapterWithOutput(os.Stdout)
}

// ScheduleAdapterWithOutput returns a new ScheduleAdapter writing to the given output.
func ScheduleAdapterWithOutput(out io.Writer) *cliadapter.ScheduleAdapter {
	once.Do(initServices)
	return cliadapter.NewScheduleAdapter(scheduleService, out)
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
func CatalogAdapter() *cliadapter.CatalogAdapter {
	return CatalogAdapterWithOutput(os.Stdout)
}

// CatalogAdapterWithOutput returns a new CatalogAdapter writing to the given output.
func CatalogAdapterWithOutput(out io.Writer) *cliadapter.CatalogAdapter {
	once.Do(initServices)
	return cliadapter.NewCatalogAdapter(catalogService, out)
}
