package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Log.Level)
	}
	if cfg.Bridge.Timeout.Duration() != 10*time.Second {
		t.Errorf("default timeout = %v", cfg.Bridge.Timeout.Duration())
	}
	if cfg.Bridge.TokenFile == "" || cfg.Cache.Path == "" {
		t.Error("token file and cache path should default to the config dir")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
bridge:
  address: 192.168.1.10
  token: secret
  timeout: 3s
cache:
  lights_ttl: 1m
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Bridge.Address != "192.168.1.10" {
		t.Errorf("address = %q", cfg.Bridge.Address)
	}
	if cfg.Bridge.Timeout.Duration() != 3*time.Second {
		t.Errorf("timeout = %v", cfg.Bridge.Timeout.Duration())
	}
	if cfg.Cache.LightsTTL.Duration() != time.Minute {
		t.Errorf("lights ttl = %v", cfg.Cache.LightsTTL.Duration())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}

	token, err := cfg.ResolveToken()
	if err != nil || token != "secret" {
		t.Errorf("ResolveToken = (%q, %v)", token, err)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("HUECTL_TEST_BRIDGE", "10.0.0.2")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "bridge:\n  address: ${HUECTL_TEST_BRIDGE}\n  token: ${HUECTL_TEST_MISSING:fallback}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bridge.Address != "10.0.0.2" {
		t.Errorf("address = %q, want expanded env value", cfg.Bridge.Address)
	}
	if cfg.Bridge.Token != "fallback" {
		t.Errorf("token = %q, want default fallback", cfg.Bridge.Token)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := &Config{}
	cfg.Bridge.TokenFile = filepath.Join(t.TempDir(), "token")

	if err := cfg.SaveToken("abc123"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	token, err := cfg.ResolveToken()
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want abc123", token)
	}
}
