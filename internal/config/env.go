package config

import (
	"github.com/testersconnect/site/internal/events"
	"github.com/testersconnect/site/pkg/database"
	"github.com/testersconnect/site/pkg/logging"
	"github.com/testersconnect/site/pkg/mail"
	"github.com/testersconnect/site/pkg/middleware"
	"github.com/testersconnect/site/pkg/openapi"
	"github.com/testersconnect/site/pkg/pagination"
	"github.com/testersconnect/site/pkg/storage"
	"github.com/testersconnect/site/pkg/uploads"
)

var databaseEnv = &database.Env{
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	SSLMode:         "DATABASE_SSL_MODE",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

var storageEnv = &storage.Env{
	Provider:        "STORAGE_PROVIDER",
	BasePath:        "STORAGE_BASE_PATH",
	PublicBaseURL:   "STORAGE_PUBLIC_BASE_URL",
	Endpoint:        "STORAGE_ENDPOINT",
	Region:          "STORAGE_REGION",
	AccessKeyID:     "STORAGE_ACCESS_KEY_ID",
	SecretAccessKey: "STORAGE_SECRET_ACCESS_KEY",
	UsePathStyle:    "STORAGE_USE_PATH_STYLE",
}

var mailEnv = &mail.Env{
	Provider:  "MAIL_PROVIDER",
	APIKey:    "SENDGRID_API_KEY",
	FromName:  "MAIL_FROM_NAME",
	FromEmail: "MAIL_FROM_EMAIL",
	AdminTo:   "MAIL_ADMIN_TO",
}

var uploadsEnv = &uploads.Env{
	PDFMaxSize:   "UPLOADS_PDF_MAX_SIZE",
	CoverMaxSize: "UPLOADS_COVER_MAX_SIZE",
}

var eventsEnv = &events.Env{
	Timezone: "EVENTS_TIMEZONE",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
	Servers:     "API_OPENAPI_SERVERS",
}

var paginationEnv = &pagination.Env{
	DefaultPageSize: "API_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "API_PAGINATION_MAX_PAGE_SIZE",
}
