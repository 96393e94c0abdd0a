package http

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-blog/models"
)

// ---- AuthService ----

type mockAuthService struct {
	registerFn       func(ctx context.Context, form models.RegistrationForm) (models.User, error)
	loginFn          func(ctx context.Context, email, password string) (models.User, error)
	reauthenticateFn func(ctx context.Context, userID int64, password string) (models.User, error)
	getByIDFn        func(ctx context.Context, userID int64) (models.User, error)
	getByUsernameFn  func(ctx context.Context, username string) (models.User, error)
	updateProfileFn  func(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, form models.RegistrationForm) (models.User, error) {
	return m.registerFn(ctx, form)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) Reauthenticate(ctx context.Context, userID int64, password string) (models.User, error) {
	return m.reauthenticateFn(ctx, userID, password)
}

func (m *mockAuthService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return m.getByIDFn(ctx, userID)
}

func (m *mockAuthService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	return m.updateProfileFn(ctx, userID, update)
}

// ---- SessionService ----

type mockSessionService struct {
	createFn  func(ctx context.Context, user models.User, remember bool) (models.Token, error)
	loadFn    func(ctx context.Context, token string) (models.Principal, error)
	refreshFn func(ctx context.Context, principal models.Principal) (models.Token, error)
}

func (m *mockSessionService) CreateSession(ctx context.Context, user models.User, remember bool) (models.Token, error) {
	return m.createFn(ctx, user, remember)
}

func (m *mockSessionService) LoadPrincipal(ctx context.Context, token string) (models.Principal, error) {
	return m.loadFn(ctx, token)
}

func (m *mockSessionService) Refresh(ctx context.Context, principal models.Principal) (models.Token, error) {
	return m.refreshFn(ctx, principal)
}

// ---- ResetService ----

type mockResetService struct {
	issueFn         func(user models.User, ttl time.Duration) (string, error)
	verifyFn        func(ctx context.Context, token string) (models.User, error)
	requestResetFn  func(ctx context.Context, email, linkBase string) error
	resetPasswordFn func(ctx context.Context, user models.User, raw string) error
}

func (m *mockResetService) IssueToken(user models.User, ttl time.Duration) (string, error) {
	return m.issueFn(user, ttl)
}

func (m *mockResetService) VerifyToken(ctx context.Context, token string) (models.User, error) {
	return m.verifyFn(ctx, token)
}

func (m *mockResetService) RequestReset(ctx context.Context, email, linkBase string) error {
	return m.requestResetFn(ctx, email, linkBase)
}

func (m *mockResetService) ResetPassword(ctx context.Context, user models.User, raw string) error {
	return m.resetPasswordFn(ctx, user, raw)
}

// ---- PostService ----

type mockPostService struct {
	createFn       func(ctx context.Context, principal *models.Principal, title, content string) (models.Post, error)
	getFn          func(ctx context.Context, postID int64) (models.Post, error)
	listRecentFn   func(ctx context.Context, page int) (models.PostsPage, error)
	listByAuthorFn func(ctx context.Context, author models.User, page int) (models.PostsPage, error)
	updateFn       func(ctx context.Context, principal *models.Principal, update models.PostUpdate) (models.Post, error)
	deleteFn       func(ctx context.Context, principal *models.Principal, postID int64) error
}

func (m *mockPostService) Create(ctx context.Context, principal *models.Principal, title, content string) (models.Post, error) {
	return m.createFn(ctx, principal, title, content)
}

func (m *mockPostService) Get(ctx context.Context, postID int64) (models.Post, error) {
	return m.getFn(ctx, postID)
}

func (m *mockPostService) ListRecent(ctx context.Context, page int) (models.PostsPage, error) {
	return m.listRecentFn(ctx, page)
}

func (m *mockPostService) ListByAuthor(ctx context.Context, author models.User, page int) (models.PostsPage, error) {
	return m.listByAuthorFn(ctx, author, page)
}

func (m *mockPostService) Update(ctx context.Context, principal *models.Principal, update models.PostUpdate) (models.Post, error) {
	return m.updateFn(ctx, principal, update)
}

func (m *mockPostService) Delete(ctx context.Context, principal *models.Principal, postID int64) error {
	return m.deleteFn(ctx, principal, postID)
}

// ---- PictureService ----

type mockPictureService struct {
	saveFn   func(ctx context.Context, filename string, r io.Reader) (string, error)
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockPictureService) SaveProfilePicture(ctx context.Context, filename string, r io.Reader) (string, error) {
	return m.saveFn(ctx, filename, r)
}

func (m *mockPictureService) DeleteProfilePicture(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

func (m *mockPictureService) PictureURL(name string) string {
	return "/static/profile_pics/" + name
}
