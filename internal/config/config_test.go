package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDecode(t *testing.T) {
	cfg := Default()
	err := Decode([]byte(`
[log]
level = "debug"

[cache]
backend = "redis"
ttl = "90m"
redis_addr = "cache:6379"
redis_db = 2

[render]
detailed = true
rankdir = "LR"
`), &cfg)
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache.TTL = %v, want 90m", cfg.Cache.TTL.Duration)
	}
	if !cfg.Render.Detailed || cfg.Render.RankDir != "LR" {
		t.Errorf("Render = %+v", cfg.Render)
	}
	// Untouched sections keep their defaults.
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Serve.Addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		wantErr string
	}{
		{"syntax", "[log\nlevel = 1", ""},
		{"unknown key", "[log]\ncolour = true", "unknown key"},
		{"bad level", "[log]\nlevel = \"loud\"", "log.level"},
		{"bad backend", "[cache]\nbackend = \"memcached\"", "cache.backend"},
		{"bad ttl", "[cache]\nttl = \"soon\"", ""},
		{"negative ttl", "[cache]\nttl = \"-1h\"", "cache.ttl"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"\"", "cache.redis_addr"},
		{"bad rankdir", "[render]\nrankdir = \"up\"", "render.rankdir"},
		{"bad max body", "[serve]\nmax_body = 0", "serve.max_body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Decode([]byte(tt.toml), &cfg)
			if err == nil {
				t.Fatal("Decode() = nil, want error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Decode() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without file = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() without file = %+v, want defaults", cfg)
	}

	path := filepath.Join(dir, "gml", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[serve]\naddr = \":9000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q, want :9000", cfg.Serve.Addr)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() of an explicit missing file should fail")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg := Default()
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "gml") {
		t.Errorf("CacheDir() = %q", dir)
	}

	cfg.Cache.Dir = "/srv/gml-cache"
	if dir, _ := cfg.CacheDir(); dir != "/srv/gml-cache" {
		t.Errorf("CacheDir() with override = %q", dir)
	}
}
