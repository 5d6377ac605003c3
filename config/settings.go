package config

import (
	"strings"
	"time"
)

// Settings holds the process-wide configuration. It is built once in main
// from the environment snapshot and passed by value into the token service
// and database initializer; nothing reads the environment after startup.
type Settings struct {
	AppName  string
	Port     string
	Database string // Postgres DSN

	SecretKey string
	TokenTTL  time.Duration

	AllowedOrigins []string

	// Debug turns on verbose SQL logging.
	Debug bool
}

// Load assembles Settings from an environment snapshot produced by New.
func Load(c map[string]string) Settings {
	origins := strings.Split(GetString(c, "ALLOWED_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Settings{
		AppName:        GetString(c, "APP_NAME", "Blog API"),
		Port:           GetString(c, "PORT", "8080"),
		Database:       GetString(c, "DATABASE_URL", ""),
		SecretKey:      GetString(c, "SECRET_KEY", ""),
		TokenTTL:       time.Duration(GetInt(c, "ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		AllowedOrigins: origins,
		Debug:          GetBool(c, "DEBUG", false),
	}
}
