package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultWeatherURL = "https://f-api.github.io/f-api/weather.json"
	minSecretLength   = 32
)

// Config holds every environment driven setting of the API process.
type Config struct {
	Port   int
	AppEnv string

	DB DBConfig

	JWTSecret []byte
	JWTTTL    time.Duration

	WeatherURL     string
	WeatherTimeout time.Duration
}

type DBConfig struct {
	Host        string
	Port        string
	Username    string
	Password    string
	Database    string
	SSLMode     string
	AutoMigrate bool
}

// DSN renders the connection string understood by the postgres GORM driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, c.SSLMode)
}

// IsLocal reports whether the process runs in a developer environment.
func (c Config) IsLocal() bool {
	return c.AppEnv == "local"
}

// Load reads the configuration from the process environment. A .env file in
// the working directory is loaded beforehand by godotenv. Missing and invalid
// values are reported together.
func Load() (Config, error) {
	cfg := Config{
		Port:   8080,
		AppEnv: "production",
		DB: DBConfig{
			Host:        "localhost",
			Port:        "5432",
			SSLMode:     "disable",
			AutoMigrate: true,
		},
		JWTTTL:         60 * time.Minute,
		WeatherURL:     defaultWeatherURL,
		WeatherTimeout: 5 * time.Second,
	}

	var missing, invalid []string

	if v := env("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PORT")
		} else {
			cfg.Port = port
		}
	}
	if v := env("APP_ENV"); v != "" {
		cfg.AppEnv = strings.ToLower(v)
	}

	if v := env("DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := env("DB_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			invalid = append(invalid, "DB_PORT")
		} else {
			cfg.DB.Port = v
		}
	}
	if cfg.DB.Username = env("DB_USERNAME"); cfg.DB.Username == "" {
		missing = append(missing, "DB_USERNAME")
	}
	cfg.DB.Password = os.Getenv("DB_PASSWORD")
	if cfg.DB.Database = env("DB_DATABASE"); cfg.DB.Database == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if v := env("DB_SSLMODE"); v != "" {
		cfg.DB.SSLMode = v
	}
	if v := env("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, "DB_AUTO_MIGRATE")
		} else {
			cfg.DB.AutoMigrate = b
		}
	}

	if v := env("JWT_SECRET_KEY"); v == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	} else if secret := decodeSecret(v); len(secret) < minSecretLength {
		invalid = append(invalid, "JWT_SECRET_KEY")
	} else {
		cfg.JWTSecret = secret
	}
	if v := env("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "JWT_TTL")
		} else {
			cfg.JWTTTL = ttl
		}
	}

	if v := env("WEATHER_API_URL"); v != "" {
		cfg.WeatherURL = v
	}
	if v := env("WEATHER_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "WEATHER_TIMEOUT")
		} else {
			cfg.WeatherTimeout = timeout
		}
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// decodeSecret accepts either a base64 encoded key or the raw key bytes.
func decodeSecret(v string) []byte {
	if b, err := base64.StdEncoding.DecodeString(v); err == nil && len(b) >= minSecretLength {
		return b
	}
	return []byte(v)
}
