package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
)

// Storages aggregates every persistence component the service layer needs.
type Storages struct {
	UserRepository UserRepository
	PostRepository PostRepository
	PictureStorage PictureStorage

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories together with the picture storage.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	var pictures PictureStorage
	if cfg.Pictures.S3Enabled() {
		pictures, err = NewS3PictureStorage(ctx, cfg.Pictures, log)
	} else {
		pictures, err = NewLocalPictureStorage(cfg.Pictures.Dir, cfg.Pictures.URLPrefix, log)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating picture storage: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		PostRepository: NewPostRepository(db, log),
		PictureStorage: pictures,
		db:             db,
	}, nil
}

// Ping reports whether the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
