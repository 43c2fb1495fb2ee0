package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCrazyRobot loads the Crazy Robot configuration.
// Search order: customPath -> ~/.quest/configs/crazyrobot.yaml ->
// ./configs/crazyrobot.yaml -> embedded default.
func LoadCrazyRobot(customPath string) (CrazyRobotConfig, error) {
	var cfg CrazyRobotConfig
	if err := load(customPath, "crazyrobot.yaml", defaultCrazyRobotYAML, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Player.Speed == 0 {
		cfg = DefaultCrazyRobotConfig()
	}
	return cfg, nil
}

// LoadSideQuest loads the Side Quest configuration.
// Search order: customPath -> ~/.quest/configs/sidequest.yaml ->
// ./configs/sidequest.yaml -> embedded default.
func LoadSideQuest(customPath string) (SideQuestConfig, error) {
	var cfg SideQuestConfig
	if err := load(customPath, "sidequest.yaml", defaultSideQuestYAML, &cfg); err != nil {
		return cfg, err
	}
	if cfg.TileSize == 0 {
		cfg = DefaultSideQuestConfig()
	}
	return cfg, nil
}

// load resolves one config file through the common search order.
// An explicit customPath must exist and parse; the fallback locations are
// best-effort and fall through to the embedded default.
func load(customPath, name string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	if userPath := userConfigPath(name); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", name)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	return yaml.Unmarshal(embedded, out)
}

// userConfigPath returns the per-user config location, or "" if the home
// directory cannot be resolved.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quest", "configs", name)
}
