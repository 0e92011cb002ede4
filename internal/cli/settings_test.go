package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := loadSettings(filepath.Join(t.TempDir(), "absent.toml"), log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Graph != "graph.json" || s.Store.Backend != backendFile || s.Server.Addr != ":8080" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	path := writeTOML(t, `
log_level = "debug"
graph = "work.yaml"
colour = "blue"

[store]
backend = "redis"
redis_addr = "cache:6379"
namespace = "team"
ttl = "90m"
`)
	var logs bytes.Buffer
	s, err := loadSettings(path, log.New(&logs))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Graph != "work.yaml" || s.LogLevel != "debug" {
		t.Errorf("top level = %+v", s)
	}
	if s.Store.Backend != backendRedis || s.Store.RedisAddr != "cache:6379" || s.Store.Namespace != "team" {
		t.Errorf("store = %+v", s.Store)
	}
	if ttl, _ := s.Store.ttl(); ttl != 90*time.Minute {
		t.Errorf("ttl = %v, want 90m", ttl)
	}
	if s.Server.Addr != ":8080" {
		t.Errorf("server addr should keep its default, got %q", s.Server.Addr)
	}
	if !strings.Contains(logs.String(), "colour") {
		t.Errorf("unknown key should be logged, got %q", logs.String())
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := map[string]string{
		"backend":   "[store]\nbackend = \"s3\"\n",
		"ttl":       "[store]\nttl = \"soon\"\n",
		"log level": "log_level = \"loud\"\n",
		"syntax":    "graph = \n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loadSettings(writeTOML(t, body), log.New(&bytes.Buffer{})); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := defaultSettings()
	want.Store.Namespace = "ns"
	if err := writeSettings(path, want); err != nil {
		t.Fatalf("writeSettings: %v", err)
	}
	got, err := loadSettings(path, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestSettingsLogLevelOnlyLowers(t *testing.T) {
	path := writeTOML(t, "log_level = \"error\"\n")
	c := New(&bytes.Buffer{}, log.DebugLevel)
	c.settingsPath = path
	if err := c.loadSettings(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug to be kept", c.Logger.GetLevel())
	}

	c = New(&bytes.Buffer{}, log.InfoLevel)
	c.settingsPath = writeTOML(t, "log_level = \"debug\"\n")
	if err := c.loadSettings(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestOpenStoreBackends(t *testing.T) {
	isolate(t)
	c := New(&bytes.Buffer{}, log.InfoLevel)

	s, err := c.openStore()
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	s.Close()

	c.settings.Store.Backend = backendNone
	c.settings.Store.Namespace = "team"
	if s, err = c.openStore(); err != nil {
		t.Fatalf("openStore none: %v", err)
	}
	s.Close()
}
