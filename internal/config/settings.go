package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. TAXCALC_LOCALE
const EnvPrefix = "TAXCALC"

// Settings keys
const (
	KeyConfigDir = "config_dir"
	KeyLocale    = "locale"
	KeyFormat    = "format"
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
)

// Settings are the operator-facing options of the CLI
type Settings struct {
	ConfigDir string      `mapstructure:"config_dir"`
	Locale    string      `mapstructure:"locale"`
	Format    string      `mapstructure:"format"`
	Log       LogSettings `mapstructure:"log"`
}

// LogSettings select the logger level and encoding
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewViper returns a viper instance with defaults and environment overrides applied
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyConfigDir, "")
	v.SetDefault(KeyLocale, "el")
	v.SetDefault(KeyFormat, "table")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds command flags to their settings keys. Flags not defined on the set are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// LoadSettings reads an optional settings file and resolves the final settings
func LoadSettings(v *viper.Viper, settingsFile string) (*Settings, error) {
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file, %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings, %w", err)
	}
	if !SupportedLocales[s.Locale] {
		return nil, fmt.Errorf("unsupported locale %q", s.Locale)
	}
	return &s, nil
}
