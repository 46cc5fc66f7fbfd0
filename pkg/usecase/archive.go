package usecase

import (
	"archive/zip"
	"compress/flate"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// WriteArchive replaces dest with a zip holding every entry at maximum compression.
// The first failing entry aborts the write and the partial archive stays on disk.
func WriteArchive(ctx context.Context, dest string, entries []model.SourcePathEntry) (*model.ArchiveResult, error) {
	logger := ctxlog.From(ctx)

	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return nil, goerr.Wrap(err, "failed to remove previous archive", goerr.V("path", dest))
	}

	out, err := os.Create(dest)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create archive", goerr.V("path", dest))
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})
	defer zw.Close()

	result := &model.ArchiveResult{
		Path: dest,
		Name: filepath.Base(dest),
	}

	for _, entry := range entries {
		n, err := addEntry(zw, entry)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to add archive entry",
				goerr.V("source", entry.Source),
				goerr.V("dest", entry.Dest),
			)
		}

		result.Entries = append(result.Entries, entry.Dest)
		result.RawSize += n
		logger.Info("Added file", "dest", entry.Dest, "size_bytes", n)
	}

	if err := zw.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize archive", goerr.V("path", dest))
	}
	if err := out.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close archive", goerr.V("path", dest))
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat archive", goerr.V("path", dest))
	}
	result.Size = info.Size()

	return result, nil
}

// addEntry streams one source file into a new deflated entry
func addEntry(zw *zip.Writer, entry model.SourcePathEntry) (int64, error) {
	src, err := os.Open(entry.Source)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open source file")
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to stat source file")
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build entry header")
	}
	header.Name = entry.Dest
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create entry")
	}

	n, err := io.Copy(w, src)
	if err != nil {
		return n, goerr.Wrap(err, "failed to copy file content")
	}

	return n, nil
}
