// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/deskhub/deskhub/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	deskhubDir    string // Path to the local .deskhub directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/deskhub)
}

// NewLoader creates a new Loader.
func NewLoader(deskhubDir string) *Loader {
	return &Loader{
		deskhubDir:    deskhubDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(deskhubDir, globalConfDir string) *Loader {
	return &Loader{
		deskhubDir:    deskhubDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDeskhubDir(configHome)
}

// Load returns the merged configuration (local + global).
// Local config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	localPath := filepath.Join(l.deskhubDir, domain.ConfigFileName)
	local, err := l.loadFile(localPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global == nil && local == nil {
		return base, nil
	}

	// Merge: default <- global <- local (later takes precedence)
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{
		Users: make(map[string]domain.User),
	}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "server":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "addr":
						if s, ok := v.(string); ok {
							res.Server.Addr = s
						}
					case "token_ttl":
						if s, ok := v.(string); ok {
							res.Server.TokenTTL = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		case "storage":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "dir":
						if s, ok := v.(string); ok {
							res.Storage.Dir = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [storage]: %s", k))
					}
				}
			}
		case "users":
			if m, ok := value.(map[string]any); ok {
				users, unknowns := parseUsersSection(m)
				res.Users = users
				warnings = append(warnings, unknowns...)
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseUsersSection parses the raw [users] map into per-user definitions.
func parseUsersSection(raw map[string]any) (map[string]domain.User, []string) {
	users := make(map[string]domain.User)
	var warnings []string

	for id, value := range raw {
		subMap, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key in [users]: %s", id))
			continue
		}

		var u domain.User
		for k, v := range subMap {
			switch k {
			case "name":
				if s, ok := v.(string); ok {
					u.Name = s
				}
			case "email":
				if s, ok := v.(string); ok {
					u.Email = s
				}
			case "role":
				if s, ok := v.(string); ok {
					u.Role = s
				}
			case "password":
				if s, ok := v.(string); ok {
					u.Password = s
				}
			default:
				warnings = append(warnings, fmt.Sprintf("unknown key in [users.%s]: %s", id, k))
			}
		}
		users[id] = u
	}

	return users, warnings
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Server:   base.Server,
		Log:      base.Log,
		Storage:  base.Storage,
		Users:    make(map[string]domain.User),
		Warnings: append([]string{}, base.Warnings...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)

	for id, u := range base.Users {
		result.Users[id] = u
	}

	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.TokenTTL != "" {
		result.Server.TokenTTL = override.Server.TokenTTL
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Storage.Dir != "" {
		result.Storage.Dir = override.Storage.Dir
	}

	// Merge users: override individual fields, not the entire user.
	for id, overrideUser := range override.Users {
		baseUser := result.Users[id]
		if overrideUser.Name != "" {
			baseUser.Name = overrideUser.Name
		}
		if overrideUser.Email != "" {
			baseUser.Email = overrideUser.Email
		}
		if overrideUser.Role != "" {
			baseUser.Role = overrideUser.Role
		}
		if overrideUser.Password != "" {
			baseUser.Password = overrideUser.Password
		}
		result.Users[id] = baseUser
	}

	return result
}
