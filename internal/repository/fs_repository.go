package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"pong-web/internal/models"
	"strings"
	"syscall"
)

// FSRepository implements AssetRepository on top of an fs.FS
type FSRepository struct {
	fsys fs.FS
}

// NewFSRepository creates a repository reading from fsys
func NewFSRepository(fsys fs.FS) *FSRepository {
	return &FSRepository{fsys: fsys}
}

// NewDirRepository creates a repository rooted at a directory on disk
func NewDirRepository(dir string) (*FSRepository, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat asset root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", dir)
	}
	return NewFSRepository(os.DirFS(dir)), nil
}

// Open resolves name inside the root and opens it for reading
func (r *FSRepository) Open(ctx context.Context, name string) (*models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	f, err := r.fsys.Open(clean)
	if err != nil {
		return nil, mapOpenError(clean, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", clean, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrAssetNotFound
	}

	if rs, ok := f.(io.ReadSeeker); ok {
		return models.NewAsset(info.Name(), info.Size(), info.ModTime(), rs, f), nil
	}

	// Not every fs.FS hands out seekable files; buffer those.
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", clean, err)
	}
	return models.NewAsset(info.Name(), int64(len(data)), info.ModTime(), bytes.NewReader(data), nil), nil
}

// cleanName turns a URL-ish name into an fs.FS path, rejecting anything that
// would climb out of the root.
func cleanName(name string) (string, error) {
	if strings.ContainsAny(name, "\\\x00") {
		return "", &ErrInvalidPath{Path: name}
	}

	trimmed := strings.TrimLeft(name, "/")
	if trimmed == "" {
		return "", ErrAssetNotFound
	}

	clean := path.Clean(trimmed)
	if clean == "." {
		return "", ErrAssetNotFound
	}
	if !fs.ValidPath(clean) {
		return "", &ErrInvalidPath{Path: name}
	}
	return clean, nil
}

func mapOpenError(name string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrAssetNotFound
	case errors.Is(err, fs.ErrInvalid):
		return &ErrInvalidPath{Path: name}
	}

	// a path component is a regular file
	if errors.Is(err, syscall.ENOTDIR) {
		return ErrAssetNotFound
	}
	return fmt.Errorf("failed to open %s: %w", name, err)
}
