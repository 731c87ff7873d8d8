// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Configuration holds everything the server needs at startup.
type Configuration struct {
	Address string `env:"ADDRESS" envDefault:":8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	JwtSecret string        `env:"JWT_SECRET,required"`
	JwtTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	MongoURI      string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"MONGODB_DATABASE" envDefault:"marketplace"`
	MongoTimeout  time.Duration `env:"MONGODB_TIMEOUT" envDefault:"10s"`

	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	StorageBucket           string `env:"STORAGE_BUCKET,required"`
	StoragePublicBaseURL    string `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"https://storage.googleapis.com"`

	UploadMaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"5242880"` // 5 MiB
	ProductPageSize   int64 `env:"PRODUCT_PAGE_SIZE" envDefault:"15"`

	CorsOrigins          string `env:"CORS_ORIGINS" envDefault:"*"` // comma separated, * = all
	CorsAllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`

	Log LogConfig
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"text"`   // text, json
	Output     string `env:"LOG_OUTPUT" envDefault:"stdout"` // stdout, file, both
	File       string `env:"LOG_FILE" envDefault:"./logs/app.log"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"` // days
	Compress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

// Load reads the optional env files (".env" when none given) and parses the environment.
func Load(files ...string) (*Configuration, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.UploadMaxFileSize <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_FILE_SIZE must be positive, got %d", cfg.UploadMaxFileSize)
	}
	if cfg.ProductPageSize <= 0 {
		return nil, fmt.Errorf("PRODUCT_PAGE_SIZE must be positive, got %d", cfg.ProductPageSize)
	}
	return &cfg, nil
}

// Origins splits CorsOrigins into the list gin-contrib/cors expects.
func (c *Configuration) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
