package domain

import "path/filepath"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// DeskhubDirName is the name of the per-directory deskhub state directory.
const DeskhubDirName = ".deskhub"

// DeskhubDir returns the deskhub state directory under root.
func DeskhubDir(root string) string {
	return filepath.Join(root, DeskhubDirName)
}

// DataDir returns the default data directory under a deskhub directory.
func DataDir(deskhubDir string) string {
	return filepath.Join(deskhubDir, "data")
}

// GlobalDeskhubDir returns the global config directory under configHome.
func GlobalDeskhubDir(configHome string) string {
	return filepath.Join(configHome, "deskhub")
}

// NewDefaultConfig returns the configuration used when no file is present.
func NewDefaultConfig() *Config {
	return &Config{
		Users: make(map[string]User),
		Server: ServerConfig{
			Addr:     ":8000",
			TokenTTL: "1h",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
