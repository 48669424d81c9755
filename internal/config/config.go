// Package config loads and validates the panetile configuration file.
package config

import (
	"fmt"
	"time"
)

// GapConfig mirrors the gaps section of the config file. All values are
// pixels.
type GapConfig struct {
	Left     int `yaml:"left"`
	Right    int `yaml:"right"`
	Top      int `yaml:"top"`
	Bottom   int `yaml:"bottom"`
	Internal int `yaml:"internal"`
}

// AnimationConfig controls the resize crossfade.
type AnimationConfig struct {
	DurationMs int `yaml:"duration_ms"`
}

// Config is the effective daemon configuration after defaults and file
// overrides are merged.
type Config struct {
	Gaps                GapConfig       `yaml:"gaps"`
	Animation           AnimationConfig `yaml:"animation"`
	Split               string          `yaml:"split"`
	ReconcileIntervalMs int             `yaml:"reconcile_interval_ms"`
	IgnoreClasses       []string        `yaml:"ignore_classes"`
	LogLevel            string          `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Gaps:                GapConfig{},
		Animation:           AnimationConfig{DurationMs: 200},
		Split:               "horizontal",
		ReconcileIntervalMs: 2000,
		IgnoreClasses:       []string{},
		LogLevel:            "info",
	}
}

// AnimationDuration returns the crossfade duration as a time.Duration.
func (c *Config) AnimationDuration() time.Duration {
	return time.Duration(c.Animation.DurationMs) * time.Millisecond
}

// ReconcileInterval returns the daemon reconcile period.
func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalMs) * time.Millisecond
}

// Ignored reports whether windows of the given class are excluded from
// tiling.
func (c *Config) Ignored(class string) bool {
	for _, ignored := range c.IgnoreClasses {
		if ignored == class {
			return true
		}
	}
	return false
}

// ValidationError reports an invalid config value together with the file
// position it came from, when known.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Gaps.Left < 0 || c.Gaps.Right < 0 || c.Gaps.Top < 0 || c.Gaps.Bottom < 0 {
		return &ValidationError{Path: "gaps", Err: fmt.Errorf("gap values must be >= 0")}
	}
	if c.Gaps.Internal < 0 {
		return &ValidationError{Path: "gaps.internal", Err: fmt.Errorf("internal gap must be >= 0")}
	}
	if c.Animation.DurationMs < 0 {
		return &ValidationError{Path: "animation.duration_ms", Err: fmt.Errorf("duration must be >= 0")}
	}
	if c.Split != "horizontal" && c.Split != "vertical" {
		return &ValidationError{Path: "split", Err: fmt.Errorf("split must be one of: horizontal, vertical")}
	}
	if c.ReconcileIntervalMs <= 0 {
		return &ValidationError{Path: "reconcile_interval_ms", Err: fmt.Errorf("reconcile interval must be > 0")}
	}
	for i, class := range c.IgnoreClasses {
		if class == "" {
			return &ValidationError{Path: fmt.Sprintf("ignore_classes[%d]", i), Err: fmt.Errorf("class name must not be empty")}
		}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// rawConfig holds the file contents before merging with defaults.
// Pointers distinguish "absent" from zero values.
type rawConfig struct {
	Gaps                *rawGaps      `yaml:"gaps"`
	Animation           *rawAnimation `yaml:"animation"`
	Split               *string       `yaml:"split"`
	ReconcileIntervalMs *int          `yaml:"reconcile_interval_ms"`
	IgnoreClasses       *[]string     `yaml:"ignore_classes"`
	LogLevel            *string       `yaml:"log_level"`
}

type rawGaps struct {
	Left     *int `yaml:"left"`
	Right    *int `yaml:"right"`
	Top      *int `yaml:"top"`
	Bottom   *int `yaml:"bottom"`
	Internal *int `yaml:"internal"`
}

type rawAnimation struct {
	DurationMs *int `yaml:"duration_ms"`
}

func buildEffectiveConfig(raw rawConfig) *Config {
	cfg := DefaultConfig()
	if raw.Gaps != nil {
		applyInt(&cfg.Gaps.Left, raw.Gaps.Left)
		applyInt(&cfg.Gaps.Right, raw.Gaps.Right)
		applyInt(&cfg.Gaps.Top, raw.Gaps.Top)
		applyInt(&cfg.Gaps.Bottom, raw.Gaps.Bottom)
		applyInt(&cfg.Gaps.Internal, raw.Gaps.Internal)
	}
	if raw.Animation != nil {
		applyInt(&cfg.Animation.DurationMs, raw.Animation.DurationMs)
	}
	if raw.Split != nil {
		cfg.Split = *raw.Split
	}
	applyInt(&cfg.ReconcileIntervalMs, raw.ReconcileIntervalMs)
	if raw.IgnoreClasses != nil {
		cfg.IgnoreClasses = *raw.IgnoreClasses
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	return cfg
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
