package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      "go-blog",
			SessionDuration:  24 * time.Hour,
			RememberDuration: 365 * 24 * time.Hour,
			FreshDuration:    30 * time.Minute,
			ResetTokenTTL:    30 * time.Minute,
			BcryptCost:       bcrypt.DefaultCost,
			PostsPerPage:     5,
			LogLevel:         "info",
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
				DSN:    "site.db",
			},
			Pictures: Pictures{
				Dir:       "static/profile_pics",
				URLPrefix: "/static/profile_pics",
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:5000",
			RequestTimeout: 30 * time.Second,
			StaticDir:      "static",
		},
		Mail: Mail{
			Server: "smtp.googlemail.com",
			Port:   587,
		},
	}
}
