package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Booking   BookingConfig
	Generator GeneratorConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// CORSConfig lists the origins allowed to call the API from a browser.
// "*" allows everyone, which is the default for local development.
type CORSConfig struct {
	AllowedOrigins []string
}

// BookingConfig holds the default working-hours window used when a caller
// asks for a trainer's available slots without overriding them.
type BookingConfig struct {
	DayStart     string // "09:00"
	DayEnd       string // "17:00"
	SlotDuration time.Duration
}

// GeneratorConfig controls the recurring-schedule expansion window used by
// the batch entry point.
type GeneratorConfig struct {
	LookaheadDays int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment variables alone are enough in container deployments.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	slotDuration, err := time.ParseDuration(viper.GetString("BOOKING_SLOT_DURATION"))
	if err != nil {
		slotDuration = time.Hour
	}

	dayStart := viper.GetString("BOOKING_DAY_START")
	if dayStart == "" {
		dayStart = "09:00"
	}

	dayEnd := viper.GetString("BOOKING_DAY_END")
	if dayEnd == "" {
		dayEnd = "17:00"
	}

	var corsOrigins []string
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			corsOrigins = append(corsOrigins, origin)
		}
	}
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	lookaheadDays := viper.GetInt("GENERATOR_LOOKAHEAD_DAYS")
	if lookaheadDays <= 0 {
		lookaheadDays = 30
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Booking: BookingConfig{
			DayStart:     dayStart,
			DayEnd:       dayEnd,
			SlotDuration: slotDuration,
		},
		Generator: GeneratorConfig{
			LookaheadDays: lookaheadDays,
		},
	}

	return config, nil
}
