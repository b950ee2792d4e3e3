// Package config loads runtime configuration from the environment.
// A .env file, if present, is loaded by the caller via godotenv before
// Load runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	Env      string
	HTTPAddr string

	DBURI string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	AWSRegion string
	AWSBucket string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	OTPTTL time.Duration

	// SocketOpTimeout bounds storage and upload calls made while handling
	// a single socket event.
	SocketOpTimeout time.Duration

	// PresenceOfflineOnDisconnect marks a session OFFLINE when its
	// transport drops, instead of waiting for an explicit logout.
	PresenceOfflineOnDisconnect bool
}

// Load reads the environment, applying defaults for everything except the
// credentials that have no sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DBURI: getenv("DB_URI",
			"host=localhost user=matchpoint password=matchpoint dbname=matchpoint port=5432 sslmode=disable"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AWSRegion: getenv("AWS_REGION", "us-east-1"),
		AWSBucket: os.Getenv("AWS_BUCKET"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	var err error
	if cfg.RedisDB, err = getint("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.OTPTTL, err = getduration("OTP_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SocketOpTimeout, err = getduration("SOCKET_OP_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.PresenceOfflineOnDisconnect, err = getbool("PRESENCE_OFFLINE_ON_DISCONNECT", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getbool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getduration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
