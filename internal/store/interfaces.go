package store

import (
	"context"

	"github.com/MKhiriev/go-blog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts. Username and email are unique.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// PostRepository persists posts. Listings are ordered newest first.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, update models.PostUpdate) (models.Post, error)
	DeletePost(ctx context.Context, postID, authorID int64) error
}

// PictureStorage stores profile pictures and knows their public URLs.
type PictureStorage interface {
	SavePicture(ctx context.Context, name, contentType string, data []byte) error
	DeletePicture(ctx context.Context, name string) error
	PictureURL(name string) string
}
