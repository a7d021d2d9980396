package config

import (
	"errors"
	"fmt"

	"github.com/getmockd/wirestub/pkg/logging"
	"github.com/getmockd/wirestub/pkg/wire"
)

// Validate reports every invalid setting at once, wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 0-65535", c.Port))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.MaxBindAttempts < 0 {
		errs = append(errs, fmt.Errorf("maxBindAttempts must not be negative, got %d", c.MaxBindAttempts))
	}
	if _, err := wire.ParseBodyMode(c.BodyMode); err != nil {
		errs = append(errs, err)
	}
	if c.AvailableWindow < 0 {
		errs = append(errs, fmt.Errorf("availableWindow must not be negative, got %s", c.AvailableWindow))
	}
	if c.Stub != "" && c.StubFile != "" {
		errs = append(errs, errors.New("stub and stubFile are mutually exclusive"))
	}
	if c.Watch && c.StubFile == "" {
		errs = append(errs, errors.New("watch requires stubFile"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// BodyModeValue returns the parsed BodyMode. Call Validate first.
func (c *Config) BodyModeValue() wire.BodyMode {
	m, _ := wire.ParseBodyMode(c.BodyMode)
	return m
}

// LoggingConfig converts the log settings. Call Validate first.
func (c *Config) LoggingConfig() logging.Config {
	level, _ := logging.ParseLevel(c.Log.Level)
	format, _ := logging.ParseFormat(c.Log.Format)
	return logging.Config{Level: level, Format: format, File: c.Log.File}
}
