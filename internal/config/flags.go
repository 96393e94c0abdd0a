package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (sqlite3 or pgx)
//	-c/-config json file path with configs
//	-secret-key session and reset token signing key
//	-token-issuer token issuer name
//	-session-duration session duration (e.g., "24h")
//	-fresh-duration session freshness window (e.g., "30m")
//	-reset-token-ttl password reset token lifetime (e.g., "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-pictures-dir local profile picture directory
//	-static-dir directory served under /static/
//	-external-url public base URL used in mailed links
//	-log-level minimum log level (debug, info, warn, error)
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("blog", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var secretKey, tokenIssuer string
	var sessionDuration, freshDuration, resetTokenTTL time.Duration
	var requestTimeout time.Duration
	var picturesDir, staticDir, externalURL string
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (sqlite3 or pgx)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Session and reset token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&sessionDuration, "session-duration", 0, "Session duration (e.g., 24h)")
	fs.DurationVar(&freshDuration, "fresh-duration", 0, "Session freshness window (e.g., 30m)")
	fs.DurationVar(&resetTokenTTL, "reset-token-ttl", 0, "Password reset token lifetime (e.g., 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&picturesDir, "pictures-dir", "", "Profile picture directory")
	fs.StringVar(&staticDir, "static-dir", "", "Static files directory")
	fs.StringVar(&externalURL, "external-url", "", "Public base URL for mailed links")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SecretKey:       secretKey,
			TokenIssuer:     tokenIssuer,
			SessionDuration: sessionDuration,
			FreshDuration:   freshDuration,
			ResetTokenTTL:   resetTokenTTL,
			LogLevel:        logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Pictures: Pictures{
				Dir: picturesDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			StaticDir:      staticDir,
			ExternalURL:    externalURL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
