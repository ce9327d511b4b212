// app.go wires the shared application context used by every command:
// config, credential store, event log, session controller, API client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alprnalcri/dyslexia-cli/internal/analyze"
	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/config"
	"github.com/alprnalcri/dyslexia-cli/internal/log"
	"github.com/alprnalcri/dyslexia-cli/internal/session"
	"github.com/alprnalcri/dyslexia-cli/internal/store"
)

// appContext bundles the long-lived pieces a command needs.
type appContext struct {
	home    string
	cfg     *config.Config
	store   *store.Store
	logger  *log.Logger
	session *session.Controller
	api     *api.Client
	runner  *analyze.Runner
}

// openApp builds the application context, installs the session
// invalidation hook, and bootstraps auth state from the stored
// credential.
func openApp(ctx context.Context) (*appContext, error) {
	home, err := config.Home()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, fmt.Errorf("creating app directory: %w", err)
	}

	cfg, err := config.ReadConfig(home)
	if err != nil {
		// No config yet; run with defaults until "dyslexia init".
		cfg = config.DefaultConfig()
	}

	st, err := store.Open(filepath.Join(home, "dyslexia.db"))
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	logger, err := log.NewLogger(home)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	ctrl := session.NewController(st)
	session.Activate(ctrl)

	client := api.NewClient(
		cfg.Server.URL,
		time.Duration(cfg.Server.Timeout)*time.Second,
		st,
		func(ctx context.Context) error {
			if err := session.Invalidate(ctx, st); err != nil {
				return err
			}
			return logger.Append(log.LogEvent{Event: log.EventSessionInvalidated})
		},
	)

	if err := ctrl.Bootstrap(ctx); err != nil {
		session.Deactivate(ctrl)
		_ = st.Close()
		return nil, fmt.Errorf("bootstrapping session: %w", err)
	}

	return &appContext{
		home:    home,
		cfg:     cfg,
		store:   st,
		logger:  logger,
		session: ctrl,
		api:     client,
		runner:  analyze.NewRunner(client, logger),
	}, nil
}

// Close tears down the context and releases the invalidation hook.
func (a *appContext) Close() {
	session.Deactivate(a.session)
	_ = a.store.Close()
}

// friendlyErr rewrites gateway errors into actionable messages.
func friendlyErr(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("session expired; run 'dyslexia login' to sign in again")
	}

	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && !Verbose() {
		if reqErr.Status == 0 {
			return fmt.Errorf("cannot reach the analysis service; is it running?")
		}
	}

	return err
}
