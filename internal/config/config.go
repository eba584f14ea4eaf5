package config

import (
	"encoding/json"
	"os"
	"time"
)

// Config is an application configuration struct.
type Config struct {
	HTTP      *HTTP      `json:"http"`
	Mongo     *Mongo     `json:"mongo"`
	Auth      *Auth      `json:"auth"`
	Ratelimit *Ratelimit `json:"ratelimit"`
	Sentry    string     `json:"sentry"`
}

// HTTP stores the listen address and the origins allowed to send
// credentialed requests.
type HTTP struct {
	Addr        string   `json:"addr"`
	Playground  bool     `json:"playground"`
	CORSOrigins []string `json:"cors_origins"`
}

// Mongo stores Mongo connection configuration. Required.
type Mongo struct {
	URI      string `json:"uri"`
	Database string `json:"default_db"`
}

// Auth stores the token signing secret and session lifetime. Secret is
// required; TokenTTL defaults to 24 hours.
type Auth struct {
	Secret   string `json:"secret"`
	TokenTTL string `json:"token_ttl"`
}

// Ratelimit stores throttling configuration. Supported types: "memory",
// "redis". RedisURI is not required for in-memory counters. A zero Limit
// disables throttling.
type Ratelimit struct {
	Type     string `json:"type"`
	RedisURI string `json:"redis_uri"`
	Limit    int64  `json:"limit"`
	Window   string `json:"window"`
}

func FromFile(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (a *Auth) TTL() time.Duration {
	if a == nil || a.TokenTTL == "" {
		return 24 * time.Hour
	}

	ttl, err := time.ParseDuration(a.TokenTTL)
	if err != nil {
		return 24 * time.Hour
	}

	return ttl
}

func (r *Ratelimit) WindowDuration() time.Duration {
	if r == nil || r.Window == "" {
		return time.Minute
	}

	window, err := time.ParseDuration(r.Window)
	if err != nil {
		return time.Minute
	}

	return window
}
