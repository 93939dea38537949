// Package config loads compiler settings from bfc.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/tinyrange/bfc/internal/codegen"
	"github.com/tinyrange/bfc/internal/toolchain"
)

const Filename = "bfc.yaml"

type Config struct {
	Arch        string `yaml:"arch"`
	TapeSize    int    `yaml:"tape_size"`
	BoundsCheck *bool  `yaml:"bounds_check,omitempty"`
	PreambleDir string `yaml:"preamble_dir,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
	Output      string `yaml:"output,omitempty"`

	Toolchain ToolchainConfig `yaml:"toolchain"`
}

type ToolchainConfig struct {
	// Prefix overrides the architecture's tool prefix when set. An empty
	// string uses the host's as and ld.
	Prefix            *string  `yaml:"prefix,omitempty"`
	ASFlags           []string `yaml:"as_flags,omitempty"`
	LDFlags           []string `yaml:"ld_flags,omitempty"`
	KeepIntermediates bool     `yaml:"keep_intermediates,omitempty"`
}

// Default returns the settings used when neither a file nor the environment
// says otherwise.
func Default() Config {
	var c Config
	c.normalize()
	return c
}

func hostArch() string {
	if runtime.GOARCH == "arm" {
		return string(codegen.ArchitectureARMHF)
	}
	return string(codegen.ArchitectureX86_64)
}

func (c *Config) normalize() {
	if c.Arch == "" {
		c.Arch = hostArch()
	}
	if c.TapeSize == 0 {
		c.TapeSize = codegen.DefaultTapeSize
	}
	if c.BoundsCheck == nil {
		on := true
		c.BoundsCheck = &on
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Output == "" {
		c.Output = toolchain.DefaultOutput
	}
}

// Load reads path, applies environment overrides and fills defaults. A
// missing file is only an error when path was given explicitly; an empty
// path looks for Filename in the working directory.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = Filename
	}

	var c Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	c.applyEnv()
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	c.Arch = env.Str("BFC_ARCH", c.Arch)
	c.TapeSize = env.Int("BFC_TAPE_SIZE", c.TapeSize)
	c.LogLevel = env.Str("BFC_LOG_LEVEL", c.LogLevel)
	if env.Has("BFC_TOOLCHAIN_PREFIX") {
		prefix := env.Str("BFC_TOOLCHAIN_PREFIX")
		c.Toolchain.Prefix = &prefix
	}
	if env.Has("BFC_KEEP_INTERMEDIATES") {
		c.Toolchain.KeepIntermediates = env.Bool("BFC_KEEP_INTERMEDIATES")
	}
	if env.Has("BFC_BOUNDS_CHECK") {
		on := env.Bool("BFC_BOUNDS_CHECK")
		c.BoundsCheck = &on
	}
}

func (c Config) Validate() error {
	if _, err := codegen.ParseArchitecture(c.Arch); err != nil {
		return err
	}
	if c.TapeSize <= 0 || c.TapeSize > codegen.MaxTapeSize {
		return fmt.Errorf("tape_size %d out of range (1..%d)", c.TapeSize, codegen.MaxTapeSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) Architecture() (codegen.Architecture, error) {
	return codegen.ParseArchitecture(c.Arch)
}

func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c Config) CodegenOptions() codegen.Options {
	return codegen.Options{
		TapeSize:    c.TapeSize,
		BoundsCheck: c.BoundsCheck == nil || *c.BoundsCheck,
		PreambleDir: c.PreambleDir,
	}
}

func (c Config) ToolchainOptions() toolchain.Options {
	return toolchain.Options{
		Prefix:            c.Toolchain.Prefix,
		ASFlags:           c.Toolchain.ASFlags,
		LDFlags:           c.Toolchain.LDFlags,
		KeepIntermediates: c.Toolchain.KeepIntermediates,
	}
}

// WriteTemplate writes c, with defaults filled in, to path.
func WriteTemplate(path string, c Config) error {
	c.normalize()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
