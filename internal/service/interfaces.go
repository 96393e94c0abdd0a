package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-blog/models"
)

// AuthService manages accounts and password checks.
type AuthService interface {
	RegisterUser(ctx context.Context, form models.RegistrationForm) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Reauthenticate(ctx context.Context, userID int64, password string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
}

// SessionService issues and resolves the signed session cookie value.
type SessionService interface {
	CreateSession(ctx context.Context, user models.User, remember bool) (models.Token, error)
	LoadPrincipal(ctx context.Context, token string) (models.Principal, error)
	Refresh(ctx context.Context, principal models.Principal) (models.Token, error)
}

// ResetService implements the stateless password reset flow.
type ResetService interface {
	IssueToken(user models.User, ttl time.Duration) (string, error)
	VerifyToken(ctx context.Context, token string) (models.User, error)
	RequestReset(ctx context.Context, email, linkBase string) error
	ResetPassword(ctx context.Context, user models.User, raw string) error
}

// PostService exposes posts with ownership enforced on every mutation.
type PostService interface {
	Create(ctx context.Context, principal *models.Principal, title, content string) (models.Post, error)
	Get(ctx context.Context, postID int64) (models.Post, error)
	ListRecent(ctx context.Context, page int) (models.PostsPage, error)
	ListByAuthor(ctx context.Context, author models.User, page int) (models.PostsPage, error)
	Update(ctx context.Context, principal *models.Principal, update models.PostUpdate) (models.Post, error)
	Delete(ctx context.Context, principal *models.Principal, postID int64) error
}

// PictureService turns uploads into stored profile pictures.
type PictureService interface {
	SaveProfilePicture(ctx context.Context, filename string, r io.Reader) (string, error)
	DeleteProfilePicture(ctx context.Context, name string) error
	PictureURL(name string) string
}
