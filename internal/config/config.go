// Package config provides YAML-based game configuration loading and
// difficulty management for the quest platform. Configs supply the static
// per-kind sizing and speed constants the games resolve before their loop
// starts.
package config

// Size is a per-kind bounding box in screen cells.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Mover is a sized entity with a base movement speed in cells per step.
type Mover struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Speed  int `yaml:"speed"`
}

// CrazyRobotConfig contains all configuration for the Crazy Robot game.
type CrazyRobotConfig struct {
	Player     Mover            `yaml:"player"`
	Robot      Mover            `yaml:"robot"`
	Item       Size             `yaml:"item"`
	Goal       Size             `yaml:"goal"`
	Robots     int              `yaml:"robots"` // number of robots spawned
	Items      int              `yaml:"items"`  // number of diamonds spawned
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SideQuestPlayer defines the player parameters for Side Quest.
type SideQuestPlayer struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Speed         int     `yaml:"speed"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	Gravity       float64 `yaml:"gravity"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	SoftEdgeWidth int     `yaml:"soft_edge_width"` // scroll trigger distance from the screen edge
}

// NpcConfig defines a friendly NPC: its size and dialogue script.
type NpcConfig struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Dialogue []string `yaml:"dialogue"`
}

// SideQuestConfig contains all configuration for the Side Quest game.
type SideQuestConfig struct {
	TileSize   int              `yaml:"tile_size"`
	WorldWidth int              `yaml:"world_width"` // world width in cells, beyond one screen
	Player     SideQuestPlayer  `yaml:"player"`
	Robot      Mover            `yaml:"robot"`
	Item       Size             `yaml:"item"`
	Npc        NpcConfig        `yaml:"npc"`
	Goal       Size             `yaml:"goal"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // extra hazard speed at max difficulty
}

// DifficultyPreset is a named difficulty level selectable from the CLI.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset reports whether the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
