package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// EnvPrefix prefixes every environment override, e.g. PYRX_SERVER_ADDR
const EnvPrefix = "PYRX"

// ConfigEnvVar names an explicit settings file
const ConfigEnvVar = "PYRX_CONFIG"

// UserConfigPath returns ~/.config/pyrx/config.yaml
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pyrx", "config.yaml")
}

// SettingsPath returns the settings file that ReadSettings would use: the
// PYRX_CONFIG file, else .pyrx.yaml in the working directory, else the user
// config file. It returns "" when none exists.
func SettingsPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	for _, p := range []string{ConfigFileName, UserConfigPath()} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ReadSettings loads settings from defaults, the settings file and PYRX_*
// environment variables, in increasing precedence
func ReadSettings() (*models.Settings, error) {
	return ReadSettingsFrom(SettingsPath())
}

// ReadSettingsFrom is ReadSettings with an explicit file. An empty path reads
// defaults and environment only.
func ReadSettingsFrom(path string) (*models.Settings, error) {
	v := viper.New()
	setDefaults(v, models.DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
			}
		}
	}

	var s models.Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper, d *models.Settings) {
	v.SetDefault("layout.path", d.Layout.Path)
	v.SetDefault("extension.default_name", d.Extension.DefaultName)
	v.SetDefault("icons.source", d.Icons.Source)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.autosave", d.Server.Autosave)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// WriteSettings writes settings as YAML to path
func WriteSettings(path string, settings *models.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// SettingKeys lists the keys SetSetting accepts
var SettingKeys = []string{
	"layout.path",
	"extension.default_name",
	"icons.source",
	"export.dir",
	"server.addr",
	"server.autosave",
	"log.level",
	"log.format",
}

// SetSetting writes one key into the settings file at path, keeping the
// other keys in it. Environment overrides are not persisted.
func SetSetting(path, key, value string) error {
	if !slices.Contains(SettingKeys, key) {
		return fmt.Errorf("unknown setting %q (must be one of: %s)", key, strings.Join(SettingKeys, ", "))
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	var typed any = value
	if key == "server.autosave" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		typed = b
	}
	v.Set(key, typed)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}
