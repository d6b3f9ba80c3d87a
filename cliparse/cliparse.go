package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	DefaultPort     = 3318
	DefaultMailFrom = "Braiding Studio <onboarding@resend.dev>"
	DefaultTimezone = "America/New_York"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	SessionSecret   string
	SuperAdminEmail string
	SetupKey        string
	ResendAPIKey    string
	MailFrom        string
	StorageURL      string
	Timezone        string
	SeedFile        string
	StudioPhone     string
	StudioEmail     string
}

// Location returns the studio timezone, falling back to UTC if it cannot be loaded
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseFlags loads .env, then validates flags with env fallback
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// A missing .env is normal in production
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	fs := flag.NewFlagSet("braiding-studio", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Bearer token signing secret (prefer env)")
	fs.StringVar(&cfg.SetupKey, "setup-key", "", "Key required to provision admins (prefer env)")
	fs.StringVar(&cfg.ResendAPIKey, "resend-key", "", "Resend API key (prefer env)")

	// Studio settings
	fs.StringVar(&cfg.SuperAdminEmail, "super-admin", "", "Email of the admin allowed to edit other admins")
	fs.StringVar(&cfg.MailFrom, "mail-from", "", "Sender address for outgoing mail")
	fs.StringVar(&cfg.StorageURL, "storage-url", "", "Public base URL of the image storage bucket")
	fs.StringVar(&cfg.Timezone, "timezone", "", "Studio timezone (IANA name)")
	fs.StringVar(&cfg.SeedFile, "seed", "", "YAML file with the services catalog")
	fs.StringVar(&cfg.StudioPhone, "studio-phone", "", "Contact phone shown in emails")
	fs.StringVar(&cfg.StudioEmail, "studio-email", "", "Contact email shown in emails")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	envFallback(&cfg.DatabaseURL, "DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	envFallback(&cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	envFallback(&cfg.SessionSecret, "SESSION_SECRET", "")
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	envFallback(&cfg.SetupKey, "ADMIN_SETUP_KEY", "")
	envFallback(&cfg.ResendAPIKey, "RESEND_API_KEY", "")
	envFallback(&cfg.SuperAdminEmail, "SUPER_ADMIN_EMAIL", "")
	envFallback(&cfg.MailFrom, "MAIL_FROM", DefaultMailFrom)
	envFallback(&cfg.StorageURL, "STORAGE_PUBLIC_URL", "")
	envFallback(&cfg.SeedFile, "SERVICES_SEED_FILE", "")
	envFallback(&cfg.StudioPhone, "STUDIO_PHONE", "(503) 555-0123")
	envFallback(&cfg.StudioEmail, "STUDIO_EMAIL", "info@braidingstudio.com")

	envFallback(&cfg.Timezone, "STUDIO_TIMEZONE", DefaultTimezone)
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

func envFallback(field *string, key, def string) {
	if *field != "" {
		return
	}
	*field = os.Getenv(key)
	if *field == "" {
		*field = def
	}
}
