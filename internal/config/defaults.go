package config

import (
	_ "embed"
)

//go:embed defaults/crazyrobot.yaml
var defaultCrazyRobotYAML []byte

//go:embed defaults/sidequest.yaml
var defaultSideQuestYAML []byte

// DefaultCrazyRobotConfig returns the default Crazy Robot configuration.
func DefaultCrazyRobotConfig() CrazyRobotConfig {
	return CrazyRobotConfig{
		Player: Mover{Width: 2, Height: 1, Speed: 2},
		Robot:  Mover{Width: 2, Height: 1, Speed: 1},
		Item:   Size{Width: 1, Height: 1},
		Goal:   Size{Width: 3, Height: 2},
		Robots: 6,
		Items:  6,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 6,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultSideQuestConfig returns the default Side Quest configuration.
func DefaultSideQuestConfig() SideQuestConfig {
	return SideQuestConfig{
		TileSize:   2,
		WorldWidth: 240,
		Player: SideQuestPlayer{
			Width:         2,
			Height:        2,
			Speed:         1,
			JumpImpulse:   -1.6,
			Gravity:       0.25,
			MaxFallSpeed:  2.0,
			SoftEdgeWidth: 12,
		},
		Robot: Mover{Width: 2, Height: 1, Speed: 1},
		Item:  Size{Width: 1, Height: 1},
		Npc: NpcConfig{
			Width:  2,
			Height: 3,
			Dialogue: []string{
				"Hello, traveler!",
				"The gate lies far to the east.",
				"Collect every diamond you can on the way.",
				"Good luck!",
			},
		},
		Goal: Size{Width: 2, Height: 4},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type: "none",
			},
		},
	}
}
