package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Clinic    ClinicConfig
	SlotCache SlotCacheConfig
}

// AppConfig holds process-level settings. An empty CORSAllowedOrigins allows any origin.
type AppConfig struct {
	Port               string
	Env                string
	LogLevel           string
	AutoMigrate        bool
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ClinicConfig describes the wall clock availability is entered and displayed in.
type ClinicConfig struct {
	UTCOffset string
	OpenTime  string
	CloseTime string
	SlotStep  time.Duration
}

type SlotCacheConfig struct {
	Cron      string
	BatchSize int
}

// IsDevelopment reports whether the app runs with APP_ENV=development.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_AUTO", false)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("CLINIC_UTC_OFFSET", "-03:00")
	viper.SetDefault("CLINIC_OPEN_TIME", "05:00")
	viper.SetDefault("CLINIC_CLOSE_TIME", "22:00")
	viper.SetDefault("SLOT_CACHE_CRON", "0 0 * * *")
	viper.SetDefault("SLOT_CACHE_BATCH_SIZE", 500)

	config := &Config{
		App: AppConfig{
			Port:               viper.GetString("APP_PORT"),
			Env:                viper.GetString("APP_ENV"),
			LogLevel:           viper.GetString("LOG_LEVEL"),
			AutoMigrate:        viper.GetBool("MIGRATIONS_AUTO"),
			ShutdownTimeout:    durationOr("SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  durationOr("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: durationOr("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Clinic: ClinicConfig{
			UTCOffset: viper.GetString("CLINIC_UTC_OFFSET"),
			OpenTime:  viper.GetString("CLINIC_OPEN_TIME"),
			CloseTime: viper.GetString("CLINIC_CLOSE_TIME"),
			SlotStep:  durationOr("SLOT_STEP", 30*time.Minute),
		},
		SlotCache: SlotCacheConfig{
			Cron:      viper.GetString("SLOT_CACHE_CRON"),
			BatchSize: viper.GetInt("SLOT_CACHE_BATCH_SIZE"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
