package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xvierd/pomotray/internal/adapters/git"
	"github.com/xvierd/pomotray/internal/adapters/notification"
	"github.com/xvierd/pomotray/internal/adapters/storage"
	"github.com/xvierd/pomotray/internal/config"
	"github.com/xvierd/pomotray/internal/logging"
	"github.com/xvierd/pomotray/internal/ports"
	"github.com/xvierd/pomotray/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config      *config.Config
	logger      *slog.Logger
	logFile     io.Closer
	settingsRep *storage.SettingsFile
	settings    *services.SettingsStore
	historyRepo ports.HistoryRepository
	history     *services.HistoryService
	notifier    *notification.Notifier
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	app = appDeps{}

	var err error
	if configPath != "" {
		app.config, err = config.LoadFrom(configPath)
	} else {
		app.config, err = config.Load()
	}
	configErr := err
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
		if app.config.Storage.DataDir, err = defaultDataDir(); err != nil {
			return err
		}
	}

	app.logger, app.logFile, err = logging.OpenFile(config.GetLogPath(app.config), app.config.Log.Level)
	if err != nil {
		app.logger = logging.Discard()
	}
	if configErr != nil {
		app.logger.Warn("using default configuration", "error", configErr)
	}

	app.notifier = notification.New(&app.config.Notifications)

	path, err := resolveSettingsPath()
	if err != nil {
		return err
	}
	app.settingsRep = storage.NewSettingsFile(path)
	app.settings = services.NewSettingsStore(app.settingsRep, app.logger)

	if app.config.History.Enabled && !noHistory {
		if err := initializeHistory(); err != nil {
			return err
		}
	}

	return nil
}

func initializeHistory() error {
	dbPath := config.GetDBPath(app.config)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := storage.NewHistory(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	app.historyRepo = repo

	var detector ports.GitDetector
	workingDir := ""
	if app.config.History.GitContext {
		detector = git.NewDetector()
		workingDir, _ = os.Getwd()
	}
	app.history = services.NewHistoryService(repo, detector, workingDir, app.logger)
	return nil
}

// resolveSettingsPath picks the settings file: --settings flag, then the
// config file, then next to the executable.
func resolveSettingsPath() (string, error) {
	if settingsPath != "" {
		return settingsPath, nil
	}
	if app.config.Settings.Path != "" {
		return app.config.Settings.Path, nil
	}
	path, err := storage.DefaultSettingsPath()
	if err != nil {
		return "", fmt.Errorf("failed to locate settings file: %w", err)
	}
	return path, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".pomotray"), nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.historyRepo != nil {
		err = app.historyRepo.Close()
		app.historyRepo = nil
	}
	if app.logFile != nil {
		app.logFile.Close()
		app.logFile = nil
	}
	return err
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
