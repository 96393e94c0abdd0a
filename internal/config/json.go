package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration file.
type StructuredJSONConfig struct {
	App struct {
		SecretKey        string   `json:"secret_key"`
		TokenIssuer      string   `json:"token_issuer"`
		SessionDuration  Duration `json:"session_duration"`
		RememberDuration Duration `json:"remember_duration"`
		FreshDuration    Duration `json:"fresh_duration"`
		ResetTokenTTL    Duration `json:"reset_token_ttl"`
		BcryptCost       int      `json:"bcrypt_cost"`
		PostsPerPage     int      `json:"posts_per_page"`
		CookieSecure     bool     `json:"cookie_secure"`
		LogLevel         string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Pictures struct {
			Dir         string `json:"dir"`
			URLPrefix   string `json:"url_prefix"`
			S3Bucket    string `json:"s3_bucket"`
			S3Region    string `json:"s3_region"`
			S3Endpoint  string `json:"s3_endpoint"`
			S3AccessKey string `json:"s3_access_key"`
			S3SecretKey string `json:"s3_secret_key"`
			S3PublicURL string `json:"s3_public_url"`
		} `json:"pictures,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		StaticDir      string   `json:"static_dir"`
		ExternalURL    string   `json:"external_url"`
	} `json:"server,omitempty"`

	Mail struct {
		Server   string `json:"server"`
		Port     int    `json:"port"`
		UseTLS   *bool  `json:"use_tls"`
		Username string `json:"username"`
		Password string `json:"password"`
		Sender   string `json:"sender"`
	} `json:"mail,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SecretKey:        jsonCfg.App.SecretKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			SessionDuration:  time.Duration(jsonCfg.App.SessionDuration),
			RememberDuration: time.Duration(jsonCfg.App.RememberDuration),
			FreshDuration:    time.Duration(jsonCfg.App.FreshDuration),
			ResetTokenTTL:    time.Duration(jsonCfg.App.ResetTokenTTL),
			BcryptCost:       jsonCfg.App.BcryptCost,
			PostsPerPage:     jsonCfg.App.PostsPerPage,
			CookieSecure:     jsonCfg.App.CookieSecure,
			LogLevel:         jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Pictures: Pictures{
				Dir:         jsonCfg.Storage.Pictures.Dir,
				URLPrefix:   jsonCfg.Storage.Pictures.URLPrefix,
				S3Bucket:    jsonCfg.Storage.Pictures.S3Bucket,
				S3Region:    jsonCfg.Storage.Pictures.S3Region,
				S3Endpoint:  jsonCfg.Storage.Pictures.S3Endpoint,
				S3AccessKey: jsonCfg.Storage.Pictures.S3AccessKey,
				S3SecretKey: jsonCfg.Storage.Pictures.S3SecretKey,
				S3PublicURL: jsonCfg.Storage.Pictures.S3PublicURL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			StaticDir:      jsonCfg.Server.StaticDir,
			ExternalURL:    jsonCfg.Server.ExternalURL,
		},
		Mail: Mail{
			Server:   jsonCfg.Mail.Server,
			Port:     jsonCfg.Mail.Port,
			UseTLS:   jsonCfg.Mail.UseTLS,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			Sender:   jsonCfg.Mail.Sender,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
