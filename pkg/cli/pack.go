package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cfpa-team/langpack/pkg/cli/config"
	"github.com/cfpa-team/langpack/pkg/usecase"
	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func dirFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "dir",
		Usage:       "Directory to start searching for the repository root from",
		Value:       ".",
		Destination: dst,
		Sources:     cli.EnvVars("LANGPACK_DIR"),
	}
}

// cmdPack runs the whole pipeline. dir and layoutCfg are shared with subcommands.
func cmdPack(dir *string, layoutCfg *config.Layout) *cli.Command {
	var (
		githubCfg  config.GitHub
		storageCfg config.Storage
	)

	flags := []cli.Flag{dirFlag(dir)}
	flags = append(flags, layoutCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			layout, err := layoutCfg.Load()
			if err != nil {
				return err
			}

			logger.Debug("Loaded configuration",
				slog.Any("layout", layout),
				slog.Any("github", githubCfg),
				slog.Any("storage", storageCfg),
			)

			var opts []usecase.PackOption

			if githubCfg.Enabled() {
				if err := githubCfg.Validate(); err != nil {
					return err
				}
				githubClient, err := githubCfg.NewClient()
				if err != nil {
					return goerr.Wrap(err, "failed to create GitHub client")
				}
				opts = append(opts, usecase.WithRelease(usecase.NewRelease(githubClient, githubCfg.Target())))
			}

			if err := storageCfg.Validate(); err != nil {
				return err
			}
			if storageCfg.Enabled() {
				store, err := storageCfg.NewObjectStore(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to create object store", goerr.V("backend", storageCfg.Backend))
				}
				if closer, ok := store.(io.Closer); ok {
					defer func() {
						if err := closer.Close(); err != nil {
							logger.Warn("Failed to close object store", "error", err)
						}
					}()
				}
				opts = append(opts, usecase.WithCDN(usecase.NewCDN(store, storageCfg.Key, storageCfg.RefreshTarget())))
			}

			result, err := usecase.NewPack(layout, opts...).Run(ctx, *dir)
			if err != nil {
				return err
			}

			summary := color.New(color.FgGreen, color.Bold)
			_, _ = summary.Fprintf(c.Root().Writer, "Packed %d files into %s in %s\n",
				len(result.Archive.Entries), result.Archive.Path, result.Elapsed)
			if result.Release != nil {
				_, _ = summary.Fprintf(c.Root().Writer, "Released %s\n", result.Release.Release.HTMLURL)
			}
			if result.CDN != nil {
				_, _ = summary.Fprintf(c.Root().Writer, "Uploaded %s\n", result.CDN.Key)
			}

			return nil
		},
	}
}

func cmdList(dir *string, layoutCfg *config.Layout) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Print the files that would be archived without writing anything",
		Action: func(ctx context.Context, c *cli.Command) error {
			layout, err := layoutCfg.Load()
			if err != nil {
				return err
			}

			root, entries, err := usecase.NewPack(layout).List(ctx, *dir)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			dest := color.New(color.FgCyan)
			_, _ = fmt.Fprintf(w, "root: %s\n", root)
			for _, e := range entries {
				_, _ = dest.Fprint(w, e.Dest)
				_, _ = fmt.Fprintf(w, "\t%s\n", e.Source)
			}
			_, _ = fmt.Fprintf(w, "%d files\n", len(entries))

			return nil
		},
	}
}
