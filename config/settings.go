package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/toqaosama/portfolio-backend/errs"
)

// Settings is the typed view of the environment the service runs with.
type Settings struct {
	Env     string
	Server  ServerSettings
	Store   StoreSettings
	Storage StorageSettings
	Email   EmailSettings
	SMS     SMSSettings
	Auth    AuthSettings
	Site    SiteSettings
	Tasks   TaskSettings
}

type ServerSettings struct {
	Port            string
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StoreSettings locates the hosted Postgres. Either DatabaseURL or the
// discrete SUPABASE_DB_* values must be present.
type StoreSettings struct {
	ProjectURL  string // SUPABASE_URL, used to derive public storage URLs
	DatabaseURL string
	ReplicaURL  string
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
}

type StorageSettings struct {
	Driver    string // s3, minio or none
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PublicURL string
}

type EmailSettings struct {
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	ResendAPIKey      string
	From              string
	NotifyTo          string
}

type SMSSettings struct {
	AccountSID string
	AuthToken  string
	From       string
	NotifyTo   string
}

type AuthSettings struct {
	JWTSecret    string
	TokenTTL     time.Duration
	AllowSignup  bool
	CookieSecure bool
}

type SiteSettings struct {
	Content              string // auto, static or dynamic
	PageSize             int
	ContactRatePerMinute int
	ContactBurst         int
}

// TaskSettings are one-shot maintenance switches run at startup.
type TaskSettings struct {
	Migrate         bool
	SchemaReport    bool
	GenerateQueries string // output path; empty disables generation
	SeedContent     bool
}

const (
	StorageS3    = "s3"
	StorageMinIO = "minio"
	StorageNone  = "none"

	ContentAuto    = "auto"
	ContentStatic  = "static"
	ContentDynamic = "dynamic"
)

// Load builds Settings from an env map produced by New.
func Load(c map[string]string) Settings {
	s := Settings{
		Env: GetString(c, "APP_ENV", "development"),
		Server: ServerSettings{
			Port:            GetString(c, "PORT", "8080"),
			AllowedOrigins:  GetList(c, "ACCEPTED_ORIGINS"),
			ReadTimeout:     time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
			WriteTimeout:    time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
			IdleTimeout:     time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
			ShutdownTimeout: GetDuration(c, "SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreSettings{
			ProjectURL:  strings.TrimRight(GetString(c, "SUPABASE_URL", ""), "/"),
			DatabaseURL: GetString(c, "DATABASE_URL", ""),
			ReplicaURL:  GetString(c, "DATABASE_REPLICA_URL", ""),
			Host:        GetString(c, "SUPABASE_DB_HOST", ""),
			User:        GetString(c, "SUPABASE_DB_USER", ""),
			Password:    GetString(c, "SUPABASE_DB_PASSWORD", ""),
			Name:        GetString(c, "SUPABASE_DB_NAME", ""),
			Port:        GetString(c, "SUPABASE_DB_PORT", "5432"),
			SSLMode:     GetString(c, "SUPABASE_DB_SSLMODE", "require"),
		},
		Storage: StorageSettings{
			Driver:    strings.ToLower(GetString(c, "STORAGE_DRIVER", "")),
			Endpoint:  GetString(c, "STORAGE_ENDPOINT", ""),
			Region:    GetString(c, "STORAGE_REGION", "us-east-1"),
			Bucket:    GetString(c, "STORAGE_BUCKET", "project-images"),
			AccessKey: GetString(c, "STORAGE_ACCESS_KEY", ""),
			SecretKey: GetString(c, "STORAGE_SECRET_KEY", ""),
			UseSSL:    GetBool(c, "STORAGE_USE_SSL", true),
			PublicURL: strings.TrimRight(GetString(c, "STORAGE_PUBLIC_URL", ""), "/"),
		},
		Email: EmailSettings{
			EmailJSServiceID:  GetString(c, "EMAILJS_SERVICE_ID", ""),
			EmailJSTemplateID: GetString(c, "EMAILJS_TEMPLATE_ID", ""),
			EmailJSPublicKey:  GetString(c, "EMAILJS_PUBLIC_KEY", ""),
			EmailJSPrivateKey: GetString(c, "EMAILJS_PRIVATE_KEY", ""),
			ResendAPIKey:      GetString(c, "RESEND_API_KEY", ""),
			From:              GetString(c, "EMAIL_FROM", ""),
			NotifyTo:          GetString(c, "CONTACT_NOTIFY_EMAIL", ""),
		},
		SMS: SMSSettings{
			AccountSID: GetString(c, "TWILIO_ACCOUNT_SID", ""),
			AuthToken:  GetString(c, "TWILIO_AUTH_TOKEN", ""),
			From:       GetString(c, "TWILIO_FROM", ""),
			NotifyTo:   GetString(c, "CONTACT_NOTIFY_PHONE", ""),
		},
		Auth: AuthSettings{
			JWTSecret:    GetString(c, "AUTH_JWT_SECRET", ""),
			TokenTTL:     GetDuration(c, "AUTH_TOKEN_TTL", 24*time.Hour),
			AllowSignup:  GetBool(c, "AUTH_ALLOW_SIGNUP", false),
			CookieSecure: GetBool(c, "AUTH_COOKIE_SECURE", true),
		},
		Site: SiteSettings{
			Content:              strings.ToLower(GetString(c, "SITE_CONTENT", ContentAuto)),
			PageSize:             GetInt(c, "SITE_PAGE_SIZE", 6),
			ContactRatePerMinute: GetInt(c, "CONTACT_RATE_PER_MINUTE", 5),
			ContactBurst:         GetInt(c, "CONTACT_RATE_BURST", 3),
		},
		Tasks: TaskSettings{
			Migrate:         GetBool(c, "AUTO_MIGRATE", false),
			SchemaReport:    GetBool(c, "SCHEMA_REPORT", false),
			GenerateQueries: GetString(c, "GENERATE_QUERIES", ""),
			SeedContent:     GetBool(c, "SEED_CONTENT", false),
		},
	}

	if s.Storage.Driver == "" {
		switch {
		case s.Storage.Endpoint != "" && s.Storage.AccessKey != "":
			s.Storage.Driver = StorageS3
		default:
			s.Storage.Driver = StorageNone
		}
	}
	if s.Storage.PublicURL == "" && s.Store.ProjectURL != "" {
		s.Storage.PublicURL = fmt.Sprintf("%s/storage/v1/object/public/%s", s.Store.ProjectURL, s.Storage.Bucket)
	}
	if s.Site.PageSize <= 0 {
		s.Site.PageSize = 6
	}

	return s
}

func (s Settings) Development() bool {
	return s.Env == "development"
}

// Validate reports which store settings are absent. It never touches the
// network.
func (s StoreSettings) Validate() error {
	if s.DatabaseURL != "" {
		return nil
	}
	var missing []string
	for _, kv := range [][2]string{
		{"SUPABASE_DB_HOST", s.Host},
		{"SUPABASE_DB_USER", s.User},
		{"SUPABASE_DB_PASSWORD", s.Password},
		{"SUPABASE_DB_NAME", s.Name},
	} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errs.NewConfigError("store", "DATABASE_URL or "+strings.Join(missing, ", "))
}

func (s StoreSettings) Configured() bool {
	return s.Validate() == nil
}

// DSN returns the primary connection string.
func (s StoreSettings) DSN() string {
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		s.Host, s.User, s.Password, s.Name, s.Port, s.SSLMode)
}

func (s StorageSettings) Enabled() bool {
	return s.Driver == StorageS3 || s.Driver == StorageMinIO
}

// Validate checks the settings needed by the selected driver.
func (s StorageSettings) Validate() error {
	if !s.Enabled() {
		return nil
	}
	var missing []string
	if s.Bucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}
	if s.PublicURL == "" {
		missing = append(missing, "STORAGE_PUBLIC_URL")
	}
	if s.Driver == StorageMinIO {
		if s.Endpoint == "" {
			missing = append(missing, "STORAGE_ENDPOINT")
		}
		if s.AccessKey == "" || s.SecretKey == "" {
			missing = append(missing, "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY")
		}
	}
	if len(missing) > 0 {
		return errs.NewConfigError("storage", missing...)
	}
	if _, err := url.Parse(s.PublicURL); err != nil {
		return errs.NewInvalidFieldError("STORAGE_PUBLIC_URL", err.Error())
	}
	return nil
}

func (e EmailSettings) EmailJSConfigured() bool {
	return e.EmailJSServiceID != "" && e.EmailJSTemplateID != "" && e.EmailJSPublicKey != ""
}

func (e EmailSettings) ResendConfigured() bool {
	return e.ResendAPIKey != "" && e.From != "" && e.NotifyTo != ""
}

func (s SMSSettings) Configured() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.From != "" && s.NotifyTo != ""
}

// Validate requires a signing secret for session tokens.
func (a AuthSettings) Validate() error {
	if len(a.JWTSecret) < 32 {
		return errs.NewEnvironmentVariableError("AUTH_JWT_SECRET")
	}
	return nil
}

// DynamicContent reports whether public sections are read from the store.
func (s Settings) DynamicContent() bool {
	switch s.Site.Content {
	case ContentStatic:
		return false
	case ContentDynamic:
		return true
	default:
		return s.Store.Configured()
	}
}
