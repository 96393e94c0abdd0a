package service

import (
	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
	ResetService   ResetService
	PostService    PostService
	PictureService PictureService
}

func NewServices(storages *store.Storages, mailer adapter.Mailer, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		SessionService: NewSessionService(storages.UserRepository, cfg.App, logger),
		ResetService:   NewResetService(storages.UserRepository, mailer, cfg.App, logger),
		PostService:    NewPostService(storages.PostRepository, cfg.App, logger),
		PictureService: NewPictureService(storages.PictureStorage, logger),
	}
}
