package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/cfpa-team/langpack/pkg/cli/config"
	"github.com/cfpa-team/langpack/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		layoutCfg config.Layout
		dir       string
		logger    *slog.Logger
	)

	app := cmdPack(&dir, &layoutCfg)
	app.Name = "langpack"
	app.Usage = "Package the localization tree and publish it"
	app.Version = types.Version
	app.Writer = os.Stdout
	app.Flags = append(app.Flags, loggerCfg.Flags()...)
	app.Flags = append(app.Flags, sentryCfg.Flags()...)
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		var err error
		logger, err = loggerCfg.Configure()
		if err != nil {
			return nil, err
		}
		if err := sentryCfg.Configure(); err != nil {
			return nil, err
		}

		logger = logger.With(slog.String("run_id", uuid.NewString()))
		slog.SetDefault(logger)
		ctx = ctxlog.With(ctx, logger)
		return ctx, nil
	}
	app.Commands = []*cli.Command{
		cmdList(&dir, &layoutCfg),
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentryCfg.Report(err)
		return err
	}

	return nil
}
