package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tturner/autoclick/internal/app"
	"github.com/tturner/autoclick/internal/config"
	"github.com/tturner/autoclick/internal/errors"
	"github.com/tturner/autoclick/internal/hotkey"
	"github.com/tturner/autoclick/internal/input"
	"github.com/tturner/autoclick/internal/logging"
	"github.com/tturner/autoclick/internal/prefs"
	"github.com/tturner/autoclick/internal/profile"
	"github.com/tturner/autoclick/internal/tui"
)

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.prefsPath != "" {
		cfg.PrefsPath = flags.prefsPath
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Logging.File = flags.logFile
	}
	if flags.noGlobalHotkey {
		cfg.Hotkey.Disabled = true
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(level, cfg.Logging.File)
}

// openPrefs opens the prefs file. A broken file is reported and replaced by
// an in-memory store so the session still works.
func openPrefs(path string, logger *logging.Logger) prefs.Store {
	store, err := prefs.OpenFile(path)
	if err != nil {
		logger.Error("%v", errors.WrapPrefsError(err, path))
		return prefs.NewMemoryStore()
	}
	return store
}

func writeDefaultConfig(cmd *cobra.Command, flags *rootFlags) error {
	if flags.configPath == "" {
		return fmt.Errorf("--write-default-config requires --config")
	}
	if err := config.WriteDefaultConfig(flags.configPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", flags.configPath)
	return nil
}

func runUI(ctx context.Context, flags *rootFlags) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	debounce := time.Duration(cfg.Hotkey.DebounceMs) * time.Millisecond
	logger.LogStartup(cfg.PrefsPath, cfg.Hotkey.Global, cfg.Hotkey.Local, debounce)

	injector := input.NewInjector()
	if _, ok := injector.Location(); !ok {
		logger.Error("%v", errors.WrapInputError(fmt.Errorf("no active display"), "pointer location"))
	}

	store := profile.NewStore(openPrefs(cfg.PrefsPath, logger))
	ctrl := app.NewController(store, injector, logger)
	ctrl.Load()
	defer ctrl.Close()

	dispatcher := hotkey.NewDispatcher(debounce, ctrl.HandleHotkey)
	defer func() {
		fired, suppressed := dispatcher.Stats()
		logger.LogShutdown(fired, suppressed)
	}()

	local, err := hotkey.ParseCombo(cfg.Hotkey.Local)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	globalHotkey := ""
	if !cfg.Hotkey.Disabled {
		combo, err := hotkey.ParseCombo(cfg.Hotkey.Global)
		if err != nil {
			return err
		}
		globalHotkey = combo.String()
		listener := hotkey.NewGlobalListener(combo, dispatcher)
		go func() {
			if err := listener.Run(ctx); err != nil {
				if stderrors.Is(err, hotkey.ErrUnavailable) {
					logger.Info("global hotkey disabled: %v", err)
					return
				}
				logger.Error("global hotkey: %v", err)
			}
		}()
	}

	// The screen owns the terminal from here on.
	logger.SetConsole(false)
	defer logger.SetConsole(true)

	return tui.Run(ctx, tui.Options{
		Controller:   ctrl,
		Dispatcher:   dispatcher,
		LocalHotkey:  local.String(),
		GlobalHotkey: globalHotkey,
	})
}
