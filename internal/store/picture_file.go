package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-blog/internal/logger"
)

// localPictureStorage keeps profile pictures in a directory that is served
// as static content under urlPrefix.
type localPictureStorage struct {
	dir       string
	urlPrefix string
	logger    *logger.Logger
}

// NewLocalPictureStorage constructs a [PictureStorage] writing into dir,
// creating the directory when missing.
func NewLocalPictureStorage(dir, urlPrefix string, logger *logger.Logger) (PictureStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create picture directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("creating local picture storage")

	return &localPictureStorage{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    logger,
	}, nil
}

// SavePicture writes data under name. The file is written to a temporary
// name first and renamed, so readers never see a partial picture.
func (s *localPictureStorage) SavePicture(ctx context.Context, name, contentType string, data []byte) error {
	log := logger.FromContext(ctx)

	if !validPictureName(name) {
		return fmt.Errorf("%w: invalid picture name %q", ErrPictureNotSaved, name)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*localPictureStorage.SavePicture").Msg("failed to create temp file")
		return fmt.Errorf("%w: %w", ErrPictureNotSaved, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		log.Err(err).Str("func", "*localPictureStorage.SavePicture").Msg("failed to write picture")
		return fmt.Errorf("%w: %w", ErrPictureNotSaved, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPictureNotSaved, err)
	}

	target := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, target); err != nil {
		log.Err(err).Str("func", "*localPictureStorage.SavePicture").Msg("failed to move picture into place")
		return fmt.Errorf("%w: %w", ErrPictureNotSaved, err)
	}

	log.Debug().
		Str("func", "*localPictureStorage.SavePicture").
		Str("path", target).
		Str("content_type", contentType).
		Int("size", len(data)).
		Msg("stored picture")

	return nil
}

// DeletePicture removes name from the directory. A missing file is not an
// error.
func (s *localPictureStorage) DeletePicture(ctx context.Context, name string) error {
	if !validPictureName(name) {
		return fmt.Errorf("%w: invalid picture name %q", ErrPictureNotDeleted, name)
	}

	target := filepath.Join(s.dir, name)
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*localPictureStorage.DeletePicture").Msg("failed to remove picture")
		return fmt.Errorf("%w: %w", ErrPictureNotDeleted, err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*localPictureStorage.DeletePicture").Str("path", target).Msg("removed picture")
	return nil
}

func validPictureName(name string) bool {
	return name == filepath.Base(name) && name != "." && name != ".."
}

// PictureURL returns the public URL of name.
func (s *localPictureStorage) PictureURL(name string) string {
	return path.Join(s.urlPrefix, name)
}
