package config

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

func TestParseDefaults(t *testing.T) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.HTTPPort != "8080" || cfg.GRPCPort != "9090" {
		t.Errorf("Unexpected ports %s/%s", cfg.HTTPPort, cfg.GRPCPort)
	}
	if cfg.AvatarStorage != StorageFS || cfg.AvatarDir != "var/avatars" {
		t.Errorf("Unexpected storage %s %s", cfg.AvatarStorage, cfg.AvatarDir)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to be valid, got %v", err)
	}
}

func TestParseFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("AVATAR_STORAGE", "sftp")
	t.Setenv("SFTP_HOST", "files.internal")
	t.Setenv("SFTP_USER", "avatars")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DB_PASSWORD", "p@ss word")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.HTTPPort != "8181" || cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.SFTP.Addr() != "files.internal:22" {
		t.Errorf("Unexpected sftp addr %s", cfg.SFTP.Addr())
	}
	if dsn := cfg.DB.DSN(); !strings.Contains(dsn, "p%40ss%20word") || !strings.HasSuffix(dsn, "sslmode=disable") {
		t.Errorf("Unexpected dsn %s", dsn)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"postgres storage", func(c *Config) { c.AvatarStorage = StoragePostgres }, false},
		{"unknown storage", func(c *Config) { c.AvatarStorage = "s3" }, true},
		{"sftp without host", func(c *Config) { c.AvatarStorage = StorageSFTP }, true},
		{"fs without dir", func(c *Config) { c.AvatarDir = "" }, true},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			if err := env.Parse(&cfg); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
