package keybinds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the keybinding override file inside the config directory
const FileName = "keybinds.yaml"

// Config is the user's keybinding overrides: context -> action -> keys.
// Keys are comma separated; an empty value unbinds the action.
type Config map[Context]map[Action]string

// LoadConfig loads keybinding configuration from a YAML file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", filepath.Base(path), err)
	}

	return config, nil
}

// ApplyConfig applies user configuration to a registry.
// For each overridden action the default keys in that context are removed first.
func ApplyConfig(registry *Registry, config Config) error {
	validator := NewValidator()

	for context, actions := range config {
		if !isKnownContext(context) {
			return fmt.Errorf("unknown keybinding context %q", context)
		}
		for action, keyList := range actions {
			if !IsKnownAction(action) {
				return fmt.Errorf("unknown action %q in context %q", action, context)
			}

			for _, key := range registry.GetBinding(context, action) {
				if a, _ := registry.Match(context, key); a == action {
					registry.Unregister(context, key)
				}
			}

			for _, key := range splitKeys(keyList) {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("context %q action %q: %w", context, action, err)
				}
				registry.Register(context, key, action)
			}
		}
	}

	result := validator.ValidateRegistry(registry)
	if result.HasErrors() {
		return errors.New(strings.TrimSpace(result.String()))
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err != nil {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", FileName, err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func isKnownContext(context Context) bool {
	for _, c := range AllContexts {
		if c == context {
			return true
		}
	}
	return false
}
