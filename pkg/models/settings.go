package models

// Settings represents the application configuration
type Settings struct {
	Layout    LayoutSettings    `yaml:"layout" mapstructure:"layout"`
	Extension ExtensionSettings `yaml:"extension" mapstructure:"extension"`
	Icons     IconSettings      `yaml:"icons" mapstructure:"icons"`
	Export    ExportSettings    `yaml:"export" mapstructure:"export"`
	Server    ServerSettings    `yaml:"server" mapstructure:"server"`
	Log       LogSettings       `yaml:"log" mapstructure:"log"`
}

// LayoutSettings controls where the layout document lives
type LayoutSettings struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ExtensionSettings holds defaults for new layouts
type ExtensionSettings struct {
	DefaultName string `yaml:"default_name" mapstructure:"default_name"`
}

// IconSettings controls where shared default icons are fetched from.
// Source is a directory or an http(s) base URL; empty means built-in pixel.
type IconSettings struct {
	Source string `yaml:"source" mapstructure:"source"`
}

// ExportSettings controls archive output
type ExportSettings struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerSettings controls the browser backend
type ServerSettings struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Autosave bool   `yaml:"autosave" mapstructure:"autosave"`
}

// LogSettings controls diagnostics
type LogSettings struct {
	Level  string `yaml:"level" mapstructure:"level"`  // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Layout: LayoutSettings{
			Path: "layout.json",
		},
		Extension: ExtensionSettings{
			DefaultName: "MyExtension",
		},
		Icons: IconSettings{
			Source: "",
		},
		Export: ExportSettings{
			Dir: "./",
		},
		Server: ServerSettings{
			Addr:     "127.0.0.1:8080",
			Autosave: true,
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
		},
	}
}
