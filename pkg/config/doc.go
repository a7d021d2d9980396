// Package config loads wirestub settings.
//
// Values are layered: Default, then a YAML file (LoadFile), then
// WIRESTUB_* environment variables (ApplyEnv), then command-line flags set
// by the caller. Sources records which layer last set each key.
//
//	cfg := config.Default()
//	if err := cfg.LoadFile("wirestub.yaml"); err != nil { ... }
//	if err := cfg.ApplyEnv(); err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
package config
