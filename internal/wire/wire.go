// Package wire provides dependency injection for the stackarch application.
// It creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"

	cliadapter "github.com/example/stackarch/internal/adapters/cli"
	"github.com/example/stackarch/internal/adapters/filesystem"
	"github.com/example/stackarch/internal/adapters/sqlite"
	"github.com/example/stackarch/internal/app"
	"github.com/example/stackarch/internal/config"
	"github.com/example/stackarch/internal/db"
	"github.com/example/stackarch/internal/logger"
	"github.com/example/stackarch/internal/ports/primary"
	"github.com/example/stackarch/internal/report"
)

// Options are command-line overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	LogLevel   string
	Color      string
}

var (
	cfg                 *config.Config
	consoleLog          logger.Logger = logger.Discard()
	configuratorService primary.ConfiguratorService
	once                sync.Once
)

// Init loads configuration and sets up logging. It must run before the first
// service is requested; later calls replace the configuration only if no
// service has been built yet.
func Init(opts Options) error {
	path, err := config.ResolvePath(opts.ConfigPath)
	if err != nil {
		return err
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		loaded.LogLevel = opts.LogLevel
	}
	if opts.Color != "" {
		loaded.Color = opts.Color
		if err := loaded.Validate(); err != nil {
			return err
		}
	}

	color.NoColor = !logger.UseColor(os.Stdout, loaded.Color)
	cfg = loaded
	consoleLog = logger.NewConsoleLogger(os.Stderr, loaded.LogLevel, loaded.Color)
	db.SetPath(loaded.DBPath)
	consoleLog.Debugf("loaded config from %s", path)
	return nil
}

// Config returns the loaded configuration, or defaults when Init was not called.
func Config() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// Logger returns the console logger.
func Logger() logger.Logger {
	return consoleLog
}

// ConfiguratorService returns the singleton ConfiguratorService instance.
func ConfiguratorService() primary.ConfiguratorService {
	once.Do(initServices)
	return configuratorService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		log.Fatalf("failed to load report templates: %v", err)
	}

	// Secondary adapters
	snapshotRepo := sqlite.NewSnapshotRepository(database)
	editLogRepo := sqlite.NewEditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(editLogRepo)
	archive := filesystem.NewArchiveAdapter()

	executor := app.NewEffectExecutor(snapshotRepo, logWriter, consoleLog)

	configuratorService = app.NewConfiguratorService(snapshotRepo, editLogRepo, archive, executor, renderer, app.ConfiguratorSettings{
		DefaultSlot:     c.DefaultSlot,
		LauncherPackage: c.LauncherPackage,
		UserPresets:     c.UserPresets(),
	})
}

// Close releases the database connection.
func Close() {
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database: %v\n", err)
	}
}

// ConfiguratorAdapter returns a new ConfiguratorAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ConfiguratorAdapter() *cliadapter.ConfiguratorAdapter {
	return ConfiguratorAdapterWithOutput(os.Stdout)
}

// ConfiguratorAdapterWithOutput returns a new ConfiguratorAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ConfiguratorAdapterWithOutput(out io.Writer) *cliadapter.ConfiguratorAdapter {
	once.Do(initServices)
	return cliadapter.NewConfiguratorAdapter(configuratorService, out)
}
