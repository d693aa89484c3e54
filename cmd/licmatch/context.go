package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"licmatch/internal/config"
	"licmatch/internal/logging"
	"licmatch/internal/store"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	sessionID  string
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor returns the session logger, building it on first use. A logger
// that cannot be built falls back to a no-op so commands still run.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		c.sessionID = uuid.NewString()
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// commandCtx returns the command's context tagged with the session id and
// carrying the session logger.
func (c *commandContext) commandCtx(cmd *cobra.Command) context.Context {
	logger := c.loggerFor(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithSession(ctx, c.sessionID)
	return logging.ContextWithLogger(ctx, logger)
}

// loadStore opens the catalog database and reads it into memory.
func (c *commandContext) loadStore(ctx context.Context, logger *slog.Logger) (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(cfg.Paths.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open license store: %w", err)
	}
	defer db.Close()

	s, err := db.Load(ctx, store.WithWorkers(cfg.Scan.Workers), store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("load license store: %w", err)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("license store %s is empty; run `licmatch store build` first", cfg.Paths.StorePath)
	}
	return s, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
