package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "HS256")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.AccessTokenExpireMinutes != 30 {
		t.Fatalf("unexpected default expiry: %d", cfg.AccessTokenExpireMinutes)
	}
	if cfg.AccessTokenTTL() != 30*time.Minute {
		t.Fatalf("unexpected TTL: %s", cfg.AccessTokenTTL())
	}
	if cfg.Mongo.Database != "auth_service" {
		t.Fatalf("unexpected default database: %s", cfg.Mongo.Database)
	}
}

func TestLoad_MissingSecretPanics(t *testing.T) {
	// t.Setenv registers the restore; unset to simulate a missing variable.
	t.Setenv("SECRET_KEY", "placeholder")
	os.Unsetenv("SECRET_KEY")
	t.Setenv("ALGORITHM", "HS256")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when SECRET_KEY is missing")
		}
	}()
	Load()
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "HS512")
	t.Setenv("PORT", "9000")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")

	cfg := Load()

	if cfg.Algorithm != "HS512" {
		t.Fatalf("unexpected algorithm: %s", cfg.Algorithm)
	}
	if cfg.Port != "9000" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.AccessTokenTTL() != 5*time.Minute {
		t.Fatalf("unexpected TTL: %s", cfg.AccessTokenTTL())
	}
}
