package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvConfig          = "WIRESTUB_CONFIG"
	EnvPort            = "WIRESTUB_PORT"
	EnvHost            = "WIRESTUB_HOST"
	EnvWorkers         = "WIRESTUB_WORKERS"
	EnvMaxBindAttempts = "WIRESTUB_MAX_BIND_ATTEMPTS"
	EnvBodyMode        = "WIRESTUB_BODY_MODE"
	EnvAvailableWindow = "WIRESTUB_AVAILABLE_WINDOW"
	EnvStubFile        = "WIRESTUB_STUB_FILE"
	EnvWatch           = "WIRESTUB_WATCH"
	EnvLogLevel        = "WIRESTUB_LOG_LEVEL"
	EnvLogFormat       = "WIRESTUB_LOG_FORMAT"
	EnvLogFile         = "WIRESTUB_LOG_FILE"
)

// ApplyEnv overlays WIRESTUB_* variables onto c. Only variables that are
// set and non-empty are applied.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	ints := []struct {
		env, key string
		dst      *int
	}{
		{EnvPort, "port", &c.Port},
		{EnvWorkers, "workers", &c.Workers},
		{EnvMaxBindAttempts, "maxBindAttempts", &c.MaxBindAttempts},
	}
	for _, v := range ints {
		raw := getenv(v.env)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, v.env, raw)
		}
		*v.dst = n
		c.Set(v.key, SourceEnv)
	}

	strs := []struct {
		env, key string
		dst      *string
	}{
		{EnvHost, "host", &c.Host},
		{EnvBodyMode, "bodyMode", &c.BodyMode},
		{EnvStubFile, "stubFile", &c.StubFile},
		{EnvLogLevel, "log.level", &c.Log.Level},
		{EnvLogFormat, "log.format", &c.Log.Format},
		{EnvLogFile, "log.file", &c.Log.File},
	}
	for _, v := range strs {
		if raw := getenv(v.env); raw != "" {
			*v.dst = raw
			c.Set(v.key, SourceEnv)
		}
	}

	if raw := getenv(EnvAvailableWindow); raw != "" {
		d, err := ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvAvailableWindow, err)
		}
		c.AvailableWindow = d
		c.Set("availableWindow", SourceEnv)
	}

	if raw := getenv(EnvWatch); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvWatch, raw)
		}
		c.Watch = b
		c.Set("watch", SourceEnv)
	}
	return nil
}

// ParseDuration accepts Go durations ("5ms", "1s") and bare integers,
// which are milliseconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}
