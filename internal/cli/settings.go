package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Settings is the user configuration read from config.toml.
//
//	log_level = "info"
//	graph     = "graph.json"
//
//	[store]
//	backend    = "file"   # file, redis or none
//	dir        = "~/.local/share/xformgraph/library"
//	namespace  = ""
//	redis_addr = "localhost:6379"
//	ttl        = "0s"
//
//	[server]
//	addr = ":8080"
type Settings struct {
	LogLevel string         `toml:"log_level"`
	Graph    string         `toml:"graph"`
	Store    StoreSettings  `toml:"store"`
	Server   ServerSettings `toml:"server"`
}

// StoreSettings selects and configures the graph library backend.
type StoreSettings struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	Namespace     string `toml:"namespace"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTL           string `toml:"ttl"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `toml:"addr"`
}

// Store backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

func defaultSettings() *Settings {
	return &Settings{
		LogLevel: "info",
		Graph:    "graph.json",
		Store: StoreSettings{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerSettings{Addr: ":8080"},
	}
}

// loadSettings reads path over the defaults. A missing file is not an
// error; unknown keys are logged and ignored.
func loadSettings(path string, logger *log.Logger) (*Settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("no settings file", "path", path)
		return s, nil
	}
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown settings key", "key", key.String(), "path", path)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.Store.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("unknown store backend %q", s.Store.Backend)
	}
	if _, err := s.Store.ttl(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func (s StoreSettings) ttl() (time.Duration, error) {
	if s.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.TTL)
	if err != nil {
		return 0, fmt.Errorf("store ttl: %w", err)
	}
	return d, nil
}

// writeSettings saves s as TOML, creating parent directories.
func writeSettings(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("encode settings: %w", err)
	}
	return f.Close()
}
