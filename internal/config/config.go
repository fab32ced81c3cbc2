// Package config provides configuration management for totpctl using Viper.
//
// Values are resolved in order of precedence: command-line flags, TOTPCTL_
// environment variables, the config file, then built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-totp/pkg/hmacalg"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TOTPCTL"

// Config holds all configuration for totpctl.
type Config struct {
	Token  TokenConfig  `mapstructure:"token"`
	Secret SecretConfig `mapstructure:"secret"`
	Logger LoggerConfig `mapstructure:"logging"`
}

// TokenConfig holds the defaults applied to tokens built from a bare secret.
type TokenConfig struct {
	Period      uint32        `mapstructure:"period" validate:"min=1"`
	Digits      uint32        `mapstructure:"digits" validate:"lte=10"`
	Algorithm   string        `mapstructure:"algorithm" validate:"required,hmacalg"`
	Output      string        `mapstructure:"output" validate:"oneof=standard rfc steam"`
	ExtraGap    uint32        `mapstructure:"extra_gap" validate:"lte=10"`
	Issuer      string        `mapstructure:"issuer"`
	Label       string        `mapstructure:"label"`
	ClockOffset time.Duration `mapstructure:"clock_offset"`
}

// SecretConfig holds secret generation settings.
type SecretConfig struct {
	Bits uint32 `mapstructure:"bits" validate:"lte=4096"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"period":       "token.period",
	"digits":       "token.digits",
	"algorithm":    "token.algorithm",
	"output":       "token.output",
	"extra-gap":    "token.extra_gap",
	"issuer":       "token.issuer",
	"label":        "token.label",
	"clock-offset": "token.clock_offset",
	"bits":         "secret.bits",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

// RegisterFlags adds the flags understood by Load to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (default: ./totpctl.yaml or $HOME/.config/totpctl/totpctl.yaml)")
	fs.Uint32("period", totp.DefaultPeriod, "time step in seconds")
	fs.Uint32("digits", totp.DefaultDigits, "code length, 0 for a 5 character Steam code")
	fs.String("algorithm", totp.DefaultAlgorithm.Short(), "HMAC algorithm (MD5, SHA1, SHA256, SHA384, SHA512, SM3)")
	fs.String("output", totp.OutputStandard.String(), "code alphabet: standard or steam")
	fs.Uint32("extra-gap", totp.DefaultExtraGap, "number of earlier periods accepted by verify")
	fs.String("issuer", "", "issuer written to provisioning URIs")
	fs.String("label", "", "account label written to provisioning URIs")
	fs.Duration("clock-offset", 0, "correction added to the system clock")
	fs.Uint32("bits", totp.DefaultSecretBits, "minimum secret size in bits")
	fs.String("log-level", "warn", "log level")
	fs.String("log-format", "console", "log format: json or console")
}

// Load reads configuration from the config file, the environment and fs.
// fs may be nil, in which case flags are ignored.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("totpctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/totpctl")
	}

	// Config file is optional unless named explicitly
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, fs); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Token defaults
	v.SetDefault("token.period", totp.DefaultPeriod)
	v.SetDefault("token.digits", totp.DefaultDigits)
	v.SetDefault("token.algorithm", totp.DefaultAlgorithm.Short())
	v.SetDefault("token.output", totp.OutputStandard.String())
	v.SetDefault("token.extra_gap", totp.DefaultExtraGap)
	v.SetDefault("token.issuer", "")
	v.SetDefault("token.label", "")
	v.SetDefault("token.clock_offset", time.Duration(0))

	// Secret defaults
	v.SetDefault("secret.bits", totp.DefaultSecretBits)

	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks the configuration and returns a ValidationError listing
// every invalid field.
func (c *Config) Validate() error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	return v.Validate(c)
}

// TOTP builds a token configuration carrying the configured defaults. The
// secret is left unset.
func (c TokenConfig) TOTP() (*totp.Config, error) {
	algorithm, err := hmacalg.Parse(c.Algorithm)
	if err != nil {
		return nil, err
	}
	output, err := totp.ParseOutputType(c.Output)
	if err != nil {
		return nil, err
	}

	cfg := totp.NewConfig()
	cfg.Period = c.Period
	cfg.Digits = c.Digits
	cfg.Algorithm = algorithm
	cfg.OutputType = output
	cfg.ExtraGap = c.ExtraGap
	cfg.Label = c.Label
	if c.Issuer != "" {
		cfg.SetIssuer(c.Issuer)
	}
	return cfg, nil
}
