package app

import (
	"context"
	"fmt"

	"github.com/oshokin/boombim-admin/internal/config"
	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/repository/storage"
	"github.com/oshokin/boombim-admin/internal/service/alarm"
	"github.com/oshokin/boombim-admin/internal/service/auth"
	"github.com/oshokin/boombim-admin/internal/service/common"
	"github.com/oshokin/boombim-admin/internal/session"
)

// Options selects the settings and overrides shared by every command.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// BaseURL overrides the API base URL from config when specified.
	BaseURL string
	// SessionFile overrides the session file from config when specified.
	SessionFile string
	// LogLevel overrides the log level from config when specified.
	LogLevel string
	// Navigator is called after every logout, forced or not.
	Navigator auth.Navigator
}

// App holds the wired components of the console.
type App struct {
	Config  *config.Config
	Session *session.Store
	Client  *common.Client
	Auth    *auth.Flow
	Alarms  *alarm.Flow
}

// New builds the application from opts.
func New(ctx context.Context, opts *Options) (*App, error) {
	if opts == nil {
		opts = new(Options)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	if opts.SessionFile != "" {
		cfg.SessionFile = opts.SessionFile
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	store := session.NewStore(storage.NewFileRepository(cfg.SessionFile))

	client, err := common.New(cfg.BaseURL, store, common.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	logger.DebugKV(ctx, "Console configured", "base_url", cfg.BaseURL, "session_file", cfg.SessionFile)

	return &App{
		Config:  cfg,
		Session: store,
		Client:  client,
		Auth:    auth.NewFlow(client, store, opts.Navigator),
		Alarms:  alarm.NewFlow(client),
	}, nil
}

// Close detaches the flows from the client.
func (a *App) Close() {
	if a == nil || a.Auth == nil {
		return
	}

	a.Auth.Close()
}
