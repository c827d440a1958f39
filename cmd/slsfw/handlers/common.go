package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/logging"
	"github.com/imamik/slsfw/internal/metrics"
	"github.com/imamik/slsfw/internal/platform/component"
	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/state"
)

// Factory function variables - can be replaced in tests.
var (
	// stdout receives command results.
	stdout io.Writer = os.Stdout

	// loadSettings merges flags, environment and defaults.
	loadSettings = func(flags config.Settings) (*config.Settings, error) {
		return config.LoadSettings(flags, nil)
	}

	// newLogger creates the CLI logger.
	newLogger = func(s config.LogSettings) (zerolog.Logger, error) {
		return logging.New(logging.Options{Level: s.Level, Format: s.Format})
	}

	// openStore opens the configured state backend.
	openStore = state.Open

	// newComponents creates the component runtime collaborators.
	newComponents = func(s *config.Settings, instance string, logger zerolog.Logger) (provisioning.Components, error) {
		client, err := component.NewClient(component.Options{
			Endpoint: s.Component.Endpoint,
			Token:    s.Component.Token,
			Instance: instance,
			Timeout:  s.Component.Timeout,
			Retries:  s.Component.RetryCount(),
			Logger:   logging.Logr(logger),
		})
		if err != nil {
			return provisioning.Components{}, err
		}
		return provisioning.Components{Function: client, Gateway: client, DNS: client}, nil
	}

	// newRecorder creates the metrics recorder of a run.
	newRecorder = metrics.NewRecorder
)

// session is what every command needs.
type session struct {
	settings *config.Settings
	logger   zerolog.Logger
	store    state.Store
	recorder *metrics.Recorder
	inputs   *node.Node
	// stateName names the state record and the component instance.
	stateName string
}

// newSession loads settings, the logger, the state store and the inputs.
// Missing inputs are an error only when required is set.
func newSession(ctx context.Context, flags config.Settings, required bool) (*session, error) {
	settings, err := loadSettings(flags)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(settings.Log)
	if err != nil {
		return nil, err
	}

	in, err := loadInputs(settings, required)
	if err != nil {
		return nil, err
	}

	// The inputs name the framework the state is kept under.
	if fw, ok := in.Get("framework").AsString(); ok && fw != "" {
		settings.Framework = fw
	}

	store, err := openStore(ctx, settings.State)
	if err != nil {
		return nil, fmt.Errorf("failed to open state: %w", err)
	}

	return &session{
		settings:  settings,
		logger:    logger,
		store:     store,
		recorder:  newRecorder(),
		inputs:    in,
		stateName: settings.StateName(),
	}, nil
}

// loadInputs reads the inputs file. Without an explicit file the work dir
// is searched.
func loadInputs(s *config.Settings, required bool) (*node.Node, error) {
	path := s.InputFile
	if path == "" {
		found, err := config.FindInputFile(s.WorkDir)
		if err != nil {
			if !required && errors.Is(err, config.ErrInputNotFound) {
				return node.Mapping(), nil
			}
			return nil, err
		}
		path = found
	}

	in, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load inputs: %w", err)
	}
	return in, nil
}

// finish records the command result and writes the metrics file.
func (s *session) finish(command string, err error) error {
	s.recorder.RecordCommand(command, err)
	if werr := s.recorder.WriteTextfile(s.settings.MetricsFile); werr != nil {
		s.logger.Warn().Err(werr).Msg("metrics not written")
	}
	return err
}
