// Package config loads fluent-gen.yaml through viper. Environment variables
// prefixed with FLUENTGEN_ override file values, with dots in keys replaced
// by underscores (FLUENTGEN_GENERATOR_MAXDEPTH).
package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"fluent-gen/internal/diagnostic"
	"fluent-gen/internal/generics"
	"fluent-gen/internal/logger"
	"fluent-gen/internal/transform"
)

const (
	EnvPrefix = "FLUENTGEN"
	FileName  = "fluent-gen.yaml"
)

const (
	CodeBadMergeStrategy = "CONFIG_MERGE_STRATEGY"
	CodeBadMaxDepth      = "CONFIG_MAX_DEPTH"
	CodeBadTypeName      = "CONFIG_TYPE_NAME"
	CodeBadHostVersion   = "CONFIG_HOST_VERSION"
	CodeBadLogLevel      = "CONFIG_LOG_LEVEL"
)

type Generator struct {
	BuilderTypeName     string `mapstructure:"builderTypeName"`
	ContextTypeName     string `mapstructure:"contextTypeName"`
	IncludeBuilderTypes bool   `mapstructure:"includeBuilderTypes"`
	// MaxDepth caps rendering depth. Zero means unlimited.
	MaxDepth            int    `mapstructure:"maxDepth"`
}

type Generics struct {
	MergeStrategy string `mapstructure:"mergeStrategy"`
}

type Plugins struct {
	// HostVersion is the version plugin constraints are checked against.
	// Empty disables the check.
	HostVersion string `mapstructure:"hostVersion"`
}

type Config struct {
	Generator Generator     `mapstructure:"generator"`
	Generics  Generics      `mapstructure:"generics"`
	Plugins   Plugins       `mapstructure:"plugins"`
	Log       logger.Config `mapstructure:"log"`
}

// Default mirrors the renderer defaults.
func Default() Config {
	return Config{
		Generator: Generator{
			BuilderTypeName: transform.DefaultBuilderTypeName,
			ContextTypeName: transform.DefaultContextTypeName,
		},
		Generics: Generics{MergeStrategy: string(generics.KeepExisting)},
		Log:      logger.Config{Level: "info"},
	}
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("generator.builderTypeName", cfg.Generator.BuilderTypeName)
	v.SetDefault("generator.contextTypeName", cfg.Generator.ContextTypeName)
	v.SetDefault("generator.includeBuilderTypes", cfg.Generator.IncludeBuilderTypes)
	v.SetDefault("generator.maxDepth", cfg.Generator.MaxDepth)
	v.SetDefault("generics.mergeStrategy", cfg.Generics.MergeStrategy)
	v.SetDefault("plugins.hostVersion", cfg.Plugins.HostVersion)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.json", cfg.Log.JSON)
}

// NewViper returns a viper instance with defaults and environment binding,
// reading path when it is non-empty.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	return v, nil
}

// Load reads path (optional) and the environment on top of Default, then
// validates the result.
func Load(path string) (Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return Config{}, err
	}

	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	diags := c.Check()
	return diags.Err()
}

// Check collects one diagnostic per invalid setting.
func (c Config) Check() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if _, err := generics.ParseMergeStrategy(c.Generics.MergeStrategy); err != nil {
		diags.AddError(CodeBadMergeStrategy, err.Error(), c.Generics.MergeStrategy, "generics.mergeStrategy")
	}

	if c.Generator.MaxDepth < 0 {
		diags.AddError(CodeBadMaxDepth, "maxDepth must not be negative", "", "generator.maxDepth")
	}

	if strings.TrimSpace(c.Generator.BuilderTypeName) == "" {
		diags.AddError(CodeBadTypeName, "type name is empty", "", "generator.builderTypeName")
	}

	if strings.TrimSpace(c.Generator.ContextTypeName) == "" {
		diags.AddError(CodeBadTypeName, "type name is empty", "", "generator.contextTypeName")
	}

	if c.Plugins.HostVersion != "" {
		if _, err := semver.NewVersion(c.Plugins.HostVersion); err != nil {
			diags.AddError(CodeBadHostVersion, "host version is not semver", c.Plugins.HostVersion, "plugins.hostVersion")
		}
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		diags.AddError(CodeBadLogLevel, "unknown log level", c.Log.Level, "log.level")
	}

	return diags
}

// RenderOptions converts the generator section for the renderer.
func (c Config) RenderOptions() transform.Options {
	return transform.Options{
		IncludeBuilderTypes: c.Generator.IncludeBuilderTypes,
		BuilderTypeName:     c.Generator.BuilderTypeName,
		ContextTypeName:     c.Generator.ContextTypeName,
		MaxDepth:            c.Generator.MaxDepth,
	}
}

// Strategy returns the parsed merge strategy. Call it on validated configs.
func (c Config) Strategy() generics.MergeStrategy {
	s, err := generics.ParseMergeStrategy(c.Generics.MergeStrategy)
	if err != nil {
		return generics.KeepExisting
	}

	return s
}
