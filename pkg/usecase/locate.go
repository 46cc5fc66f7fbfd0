package usecase

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// ErrMarkerNotFound is returned when no ancestor directory contains the marker
var ErrMarkerNotFound = goerr.New("marker directory not found in any parent")

// FindRoot walks up from start and returns the first directory containing marker as a subdirectory
func FindRoot(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve start directory", goerr.V("start", start))
	}

	for {
		info, err := os.Stat(filepath.Join(dir, marker))
		switch {
		case err == nil && info.IsDir():
			return dir, nil
		case err != nil && !os.IsNotExist(err):
			return "", goerr.Wrap(err, "failed to stat marker", goerr.V("dir", dir), goerr.V("marker", marker))
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", goerr.Wrap(ErrMarkerNotFound, "reached filesystem root",
				goerr.V("start", start),
				goerr.V("marker", marker),
			)
		}
		dir = parent
	}
}
