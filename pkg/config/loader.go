package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loading errors.
var (
	ErrFileNotFound  = errors.New("configuration file not found")
	ErrInvalidYAML   = errors.New("invalid YAML syntax")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// fileConfig mirrors Config with pointers so unset keys can be told apart
// from zero values.
type fileConfig struct {
	Port            *int    `yaml:"port"`
	Host            *string `yaml:"host"`
	Workers         *int    `yaml:"workers"`
	MaxBindAttempts *int    `yaml:"maxBindAttempts"`
	BodyMode        *string `yaml:"bodyMode"`
	AvailableWindow *string `yaml:"availableWindow"`
	Stub            *string `yaml:"stub"`
	StubFile        *string `yaml:"stubFile"`
	StubCRLF        *bool   `yaml:"stubCRLF"`
	Watch           *bool   `yaml:"watch"`
	Log             *struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
		File   *string `yaml:"file"`
	} `yaml:"log"`
}

// LoadFile overlays the YAML file at path onto c. Unknown keys are
// rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return c.LoadYAML(data)
}

// LoadYAML overlays YAML data onto c.
func (c *Config) LoadYAML(data []byte) error {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	setInt(c, "port", &c.Port, fc.Port)
	setString(c, "host", &c.Host, fc.Host)
	setInt(c, "workers", &c.Workers, fc.Workers)
	setInt(c, "maxBindAttempts", &c.MaxBindAttempts, fc.MaxBindAttempts)
	setString(c, "bodyMode", &c.BodyMode, fc.BodyMode)
	if fc.AvailableWindow != nil {
		d, err := ParseDuration(*fc.AvailableWindow)
		if err != nil {
			return fmt.Errorf("%w: availableWindow: %v", ErrInvalidConfig, err)
		}
		c.AvailableWindow = d
		c.Set("availableWindow", SourceFile)
	}
	setString(c, "stub", &c.Stub, fc.Stub)
	setString(c, "stubFile", &c.StubFile, fc.StubFile)
	setBool(c, "stubCRLF", &c.StubCRLF, fc.StubCRLF)
	setBool(c, "watch", &c.Watch, fc.Watch)
	if fc.Log != nil {
		setString(c, "log.level", &c.Log.Level, fc.Log.Level)
		setString(c, "log.format", &c.Log.Format, fc.Log.Format)
		setString(c, "log.file", &c.Log.File, fc.Log.File)
	}
	return nil
}

func setInt(c *Config, key string, dst *int, v *int) {
	if v != nil {
		*dst = *v
		c.Set(key, SourceFile)
	}
}

func setString(c *Config, key string, dst *string, v *string) {
	if v != nil {
		*dst = *v
		c.Set(key, SourceFile)
	}
}

func setBool(c *Config, key string, dst *bool, v *bool) {
	if v != nil {
		*dst = *v
		c.Set(key, SourceFile)
	}
}

// StubBytes returns the configured stub: the contents of StubFile, else
// Stub. It returns nil when neither is set.
func (c *Config) StubBytes() ([]byte, error) {
	var data []byte
	switch {
	case c.StubFile != "":
		b, err := os.ReadFile(c.StubFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read stub file: %w", err)
		}
		data = b
	case c.Stub != "":
		data = []byte(c.Stub)
	default:
		return nil, nil
	}
	if c.StubCRLF {
		data = ToCRLF(data)
	}
	return data, nil
}

// ToCRLF converts bare LF line endings to CRLF.
func ToCRLF(b []byte) []byte {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}
