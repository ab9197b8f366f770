package app

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"syscall"
	"time"

	"github.com/andy/rebancariza/internal/config"
	"github.com/andy/rebancariza/internal/crypto"
	"github.com/andy/rebancariza/internal/db"
	"github.com/andy/rebancariza/internal/logger"
	"github.com/andy/rebancariza/internal/repository"
	"github.com/andy/rebancariza/internal/service"
	"github.com/andy/rebancariza/internal/storage"
	"github.com/andy/rebancariza/internal/view"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Store is the persistence the app needs: the roster plus the theme.
type Store interface {
	service.ClientStore
	LoadTheme(ctx context.Context) (string, error)
	SaveTheme(ctx context.Context, theme string) error
	Clear(ctx context.Context) error
}

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string // where SaveConfig writes
	DB         *db.DB
	Log        zerolog.Logger
	Store      Store

	// Services
	Clients service.ClientService
	Alerts  service.AlertEngine
	Balance service.BalanceGenerator

	Format view.Format
	Now    func() time.Time

	mu        sync.Mutex
	state     State
	series    []service.BalancePoint
	seriesDay string
	logCloser io.Closer
}

// Options are the command-line overrides applied on startup
type Options struct {
	ConfigPath string
	Verbose    bool // mirror log lines to stderr
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening database
// 4. Running migrations
// 5. Loading the stored roster and theme
func New(ctx context.Context, opts Options) (*App, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a, err := NewWithConfig(ctx, cfg, opts.Verbose)
	if err != nil {
		return nil, err
	}
	if opts.ConfigPath != "" {
		a.ConfigPath = opts.ConfigPath
	}
	return a, nil
}

// NewWithConfig creates an App with a provided config
func NewWithConfig(ctx context.Context, cfg *config.Config, verbose bool) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log, logCloser, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		Path:    cfg.Logging.Path,
		Console: verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	password, err := encryptionKey(log)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	// Open the database with encryption
	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations to ensure schema is up to date
	version, err := database.RunMigrations(ctx)
	if err != nil {
		database.Close()
		logCloser.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Debug().Int("schema_version", version).Str("path", cfg.Database.Path).Msg("database ready")

	a, err := Assemble(ctx, cfg, storage.NewGateway(database, log), log)
	if err != nil {
		database.Close()
		logCloser.Close()
		return nil, err
	}
	a.DB = database
	a.logCloser = logCloser
	return a, nil
}

// Assemble wires the services over store and loads the persisted state.
func Assemble(ctx context.Context, cfg *config.Config, store Store, log zerolog.Logger) (*App, error) {
	clients := service.NewClientService(repository.NewClientRepo(), store, log)
	if err := clients.Load(ctx); err != nil {
		return nil, err
	}

	theme, err := store.LoadTheme(ctx)
	if err != nil {
		log.Warn().Err(err).Str("fallback", cfg.Display.Theme).Msg("could not read stored theme")
		theme = cfg.Display.Theme
	}

	a := &App{
		Config:     cfg,
		ConfigPath: config.DefaultConfigPath(),
		Log:        log,
		Store:      store,
		Clients:    clients,
		Alerts:     service.AlertEngine{DueSoonDays: cfg.Alerts.DueSoonDays},
		Balance:    service.BalanceGenerator{Days: cfg.Chart.HistoryDays, Rand: chartRand(cfg.Chart)},
		Format: view.Format{
			CurrencySymbol: cfg.Display.CurrencySymbol,
			DateLayout:     cfg.Display.DateFormat,
		},
		Now: time.Now,
		state: State{
			ChartWindow: cfg.Chart.WindowDays,
			Theme:       theme,
		},
		logCloser: nopCloser{},
	}
	return a, nil
}

// chartRand returns the perturbation source, nil when jitter is off.
func chartRand(c config.ChartConfig) *rand.Rand {
	if !c.Jitter {
		return nil
	}
	seed := uint64(c.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var dbErr error
	if a.DB != nil {
		dbErr = a.DB.Close()
	}
	if err := a.logCloser.Close(); err != nil && dbErr == nil {
		return err
	}
	return dbErr
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Config.Save(a.ConfigPath)
}

// encryptionKey returns the stored database key, prompting for a new one
// on first run
func encryptionKey(log zerolog.Logger) (string, error) {
	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err == nil {
		return password, nil
	}
	log.Info().Err(err).Msg("no stored encryption key, prompting")

	// No key exists, prompt user to set one
	fmt.Println("Setting up database encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	// Store the key in keyring
	if err := keyring.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	return password, nil
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your client records will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
