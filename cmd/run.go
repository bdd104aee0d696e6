package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sustainlab/materiality/internal/app"
	"github.com/sustainlab/materiality/internal/config"
	"github.com/sustainlab/materiality/internal/export"
	"github.com/sustainlab/materiality/internal/logging"
	"github.com/sustainlab/materiality/internal/session"
)

// environment is what every front-end needs: the resolved config, a logger
// and a fresh session.
type environment struct {
	cfg     *config.Config
	logger  zerolog.Logger
	session *session.Session
	closer  io.Closer
}

func (e *environment) Close() error {
	return e.closer.Close()
}

func setup(cmd *cobra.Command, frontend string) (*environment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	writers, err := export.Writers(cfg.Formats)
	if err != nil {
		return nil, closeOnError(err, closer)
	}

	logger = logger.With().Str("frontend", frontend).Str("version", version).Logger()
	logger.Info().Strs("formats", cfg.Formats).Str("export_dir", cfg.StartDir()).Msg("starting")

	return &environment{
		cfg:     cfg,
		logger:  logger,
		session: session.New(session.Options{Logger: logger, Writers: writers}),
		closer:  closer,
	}, nil
}

// closeOnError closes c after a setup failure and reports both errors.
func closeOnError(err error, c io.Closer) error {
	if cerr := c.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("close log: %w", cerr))
	}
	return err
}

// runApp resolves configuration, opens the log and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := setup(cmd, "tui")
	if err != nil {
		return err
	}
	defer env.Close()

	err = app.Run(app.Options{
		Session:  env.session,
		StartDir: env.cfg.StartDir(),
	})
	if err != nil {
		env.logger.Error().Err(err).Msg("terminal UI exited with error")
		return err
	}
	env.logger.Info().Str("phase", env.session.Phase().String()).Msg("exiting")
	return nil
}
