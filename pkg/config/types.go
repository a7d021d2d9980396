package config

import (
	"time"

	"github.com/getmockd/wirestub/pkg/server"
	"github.com/getmockd/wirestub/pkg/wire"
)

// Value sources.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Config holds server and logging settings.
type Config struct {
	Port            int
	Host            string
	Workers         int
	MaxBindAttempts int
	BodyMode        string
	AvailableWindow time.Duration

	// Stub is an inline response. Bare LF line endings are converted to
	// CRLF when StubCRLF is set.
	Stub     string
	StubFile string
	StubCRLF bool

	// Watch reloads StubFile into the running server when it changes.
	Watch bool

	Log LogConfig

	// Sources maps keys to the layer that last set them.
	Sources map[string]string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:            server.DefaultPort,
		Workers:         server.DefaultWorkers,
		BodyMode:        wire.BodyAvailable.String(),
		AvailableWindow: wire.DefaultAvailableWindow,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Sources: map[string]string{},
	}
}

// Source returns the layer that set key, or SourceDefault.
func (c *Config) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Set records that key was set by source.
func (c *Config) Set(key, source string) {
	if c.Sources == nil {
		c.Sources = map[string]string{}
	}
	c.Sources[key] = source
}
