package config

import (
	"os"

	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Layout holds the location of the layout file
type Layout struct {
	File string
}

// Flags returns CLI flags for layout configuration
func (c *Layout) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "layout",
			Usage:       "TOML file overriding the repository layout",
			Destination: &c.File,
			Sources:     cli.EnvVars("LANGPACK_LAYOUT"),
		},
	}
}

// Load returns the default layout with fields set in the layout file applied on top.
// Extras listed in the file replace the default extras entirely.
func (c *Layout) Load() (*model.Layout, error) {
	layout := model.DefaultLayout()
	if c.File == "" {
		return layout, nil
	}

	raw, err := os.ReadFile(c.File)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read layout file", goerr.V("path", c.File))
	}

	var override model.Layout
	if err := toml.Unmarshal(raw, &override); err != nil {
		return nil, goerr.Wrap(err, "failed to parse layout file", goerr.V("path", c.File))
	}

	if override.Marker != "" {
		layout.Marker = override.Marker
	}
	if override.ContentDir != "" {
		layout.ContentDir = override.ContentDir
	}
	if override.Suffix != "" {
		layout.Suffix = override.Suffix
	}
	if override.ArchiveName != "" {
		layout.ArchiveName = override.ArchiveName
	}
	if override.Extras != nil {
		layout.Extras = override.Extras
	}

	return layout, nil
}
