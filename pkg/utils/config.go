package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is loaded from an optional TOML file; secrets and deploy-specific
// values can be overridden via DUNGEONHUB_* environment variables.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Sync     SyncConfig     `toml:"sync"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`
	Forge    ForgeConfig    `toml:"forge"`
}

type ServerConfig struct {
	Addr    string `toml:"addr"`
	TCPAddr string `toml:"tcp_addr"` // NDJSON event feed for terminal observers
}

type UpstreamConfig struct {
	ActionURL      string `toml:"action_url"`
	AuthURL        string `toml:"auth_url"`
	RequestDelayMS int    `toml:"request_delay_ms"`
}

type SyncConfig struct {
	MinIntervalMinutes int `toml:"min_interval_minutes"`
}

type StorageConfig struct {
	// Backend selects the community blob store: "file" or "s3".
	Backend string   `toml:"backend"`
	Path    string   `toml:"path"` // file backend
	S3      S3Config `toml:"s3"`
}

type S3Config struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	Endpoint  string `toml:"endpoint"` // optional, for S3-compatible providers
	ObjectKey string `toml:"object_key"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
	TTLHours  int    `toml:"ttl_hours"`
}

type ForgeConfig struct {
	DataPath string `toml:"data_path"`
}

// LoadConfig reads the TOML file at path when it exists, fills defaults for
// anything unset, then applies environment overrides. A missing file is not
// an error: defaults plus env are enough for local use.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
				return nil, fmt.Errorf("decode config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("open config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.TCPAddr == "" {
		c.Server.TCPAddr = ":7070"
	}
	if c.Upstream.ActionURL == "" {
		c.Upstream.ActionURL = "https://api.dungeoncities.com/api/game/action"
	}
	if c.Upstream.AuthURL == "" {
		c.Upstream.AuthURL = "https://api.dungeoncities.com/api/user/authenticate"
	}
	if c.Upstream.RequestDelayMS <= 0 {
		c.Upstream.RequestDelayMS = 1000
	}
	if c.Sync.MinIntervalMinutes <= 0 {
		c.Sync.MinIntervalMinutes = 60
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/combined.json"
	}
	if c.Storage.S3.ObjectKey == "" {
		c.Storage.S3.ObjectKey = "monster-data/combined.json"
	}
	if c.Auth.JWTSecret == "" {
		// dev default (override for production)
		c.Auth.JWTSecret = "dev-secret-change-me"
	}
	if c.Auth.JWTIssuer == "" {
		c.Auth.JWTIssuer = "dungeonhub"
	}
	if c.Auth.TTLHours <= 0 {
		c.Auth.TTLHours = 24
	}
	if c.Forge.DataPath == "" {
		c.Forge.DataPath = "data/forge_recipes.json"
	}
}

func (c *Config) applyEnv() {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setStr(&c.Server.Addr, "DUNGEONHUB_ADDR")
	setStr(&c.Server.TCPAddr, "DUNGEONHUB_TCP_ADDR")
	setStr(&c.Upstream.ActionURL, "DUNGEONHUB_UPSTREAM_ACTION_URL")
	setStr(&c.Upstream.AuthURL, "DUNGEONHUB_UPSTREAM_AUTH_URL")
	setInt(&c.Upstream.RequestDelayMS, "DUNGEONHUB_REQUEST_DELAY_MS")
	setInt(&c.Sync.MinIntervalMinutes, "DUNGEONHUB_SYNC_INTERVAL_MINUTES")
	setStr(&c.Storage.Backend, "DUNGEONHUB_STORAGE_BACKEND")
	setStr(&c.Storage.Path, "DUNGEONHUB_STORAGE_PATH")
	setStr(&c.Storage.S3.Key, "DUNGEONHUB_S3_KEY")
	setStr(&c.Storage.S3.Secret, "DUNGEONHUB_S3_SECRET")
	setStr(&c.Storage.S3.Region, "DUNGEONHUB_S3_REGION")
	setStr(&c.Storage.S3.Bucket, "DUNGEONHUB_S3_BUCKET")
	setStr(&c.Storage.S3.Endpoint, "DUNGEONHUB_S3_ENDPOINT")
	setStr(&c.Auth.JWTSecret, "DUNGEONHUB_JWT_SECRET")
	setStr(&c.Auth.JWTIssuer, "DUNGEONHUB_JWT_ISSUER")
	setInt(&c.Auth.TTLHours, "DUNGEONHUB_JWT_TTL_HOURS")
	setStr(&c.Forge.DataPath, "DUNGEONHUB_FORGE_DATA")
}

// RequestDelay returns the pacing delay between monster-detail fetches.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Upstream.RequestDelayMS) * time.Millisecond
}

// SyncInterval returns the advisory minimum interval between syncs.
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.MinIntervalMinutes) * time.Minute
}

// JWTDuration returns the session token lifetime.
func (c *Config) JWTDuration() time.Duration {
	return time.Duration(c.Auth.TTLHours) * time.Hour
}
