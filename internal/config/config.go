package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the game looks for its config file when
// SPACESHIP_CONFIG is not set.
const DefaultPath = "config/spaceship.toml"

// Config holds every tunable of the game and its servers.
type Config struct {
	Game    GameConfig    `toml:"game"`
	Levels  []Level       `toml:"levels"`
	Logging LoggingConfig `toml:"logging"`
	SSH     SSHConfig     `toml:"ssh"`
	Web     WebConfig     `toml:"web"`
	Scores  ScoresConfig  `toml:"scores"`
	Audio   AudioConfig   `toml:"audio"`
}

// Level describes one wave of enemies.
type Level struct {
	EnemySpeed float64 `toml:"enemy_speed"`
	Scouts     int     `toml:"scouts"`
	Fighters   int     `toml:"fighters"`
	SpawnRate  float64 `toml:"spawn_rate"` // enemies per second
}

type GameConfig struct {
	Lives            int           `toml:"lives"`
	LevelStartDelay  time.Duration `toml:"level_start_delay"`
	FirstSpawnDelay  time.Duration `toml:"first_spawn_delay"`
	ScorePerKill     int           `toml:"score_per_kill"`
	SpeedStep        float64       `toml:"speed_step"` // added per level past the last defined one
	PlayerSpeed      float64       `toml:"player_speed"`
	PlayerRecharge   time.Duration `toml:"player_recharge"`
	PlayerShotSpeed  float64       `toml:"player_shot_speed"`
	FighterRecharge  time.Duration `toml:"fighter_recharge"`
	FighterShotSpeed float64       `toml:"fighter_shot_speed"`
	FighterRow       float64       `toml:"fighter_row"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text", "json" or "logfmt"
	File   string `toml:"file"`   // local game only; empty discards output
}

type SSHConfig struct {
	Host            string        `toml:"host"`
	Port            string        `toml:"port"`
	HostKeyPath     string        `toml:"host_key_path"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type WebConfig struct {
	Host           string `toml:"host"`
	Port           string `toml:"port"`
	SSHDisplayHost string `toml:"ssh_display_host"`
}

type ScoresConfig struct {
	Path string `toml:"path"` // sqlite database file; empty disables the leaderboard
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0 - 1.0
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error: the defaults are returned as is.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by SPACESHIP_CONFIG and applies the
// environment overrides the servers have always honoured.
func LoadFromEnv() (*Config, error) {
	cfg, err := Load(GetEnv("SPACESHIP_CONFIG", DefaultPath))
	if err != nil {
		return nil, err
	}
	cfg.SSH.Host = GetEnv("SSH_HOST", cfg.SSH.Host)
	cfg.SSH.Port = GetEnv("SSH_PORT", cfg.SSH.Port)
	cfg.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", cfg.SSH.HostKeyPath)
	cfg.Web.Host = GetEnv("WEB_HOST", cfg.Web.Host)
	cfg.Web.Port = GetEnv("WEB_PORT", cfg.Web.Port)
	cfg.Web.SSHDisplayHost = GetEnv("SSH_DISPLAY_HOST", cfg.Web.SSHDisplayHost)
	cfg.Scores.Path = GetEnv("SPACESHIP_DB", cfg.Scores.Path)
	cfg.Logging.Level = GetEnv("LOG_LEVEL", cfg.Logging.Level)
	return cfg, nil
}

// ErrNoLevels is returned when the level table is empty.
var ErrNoLevels = errors.New("at least one level is required")

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}
	for i, l := range c.Levels {
		if l.SpawnRate <= 0 {
			return fmt.Errorf("level %d: spawn_rate must be positive, got %v", i+1, l.SpawnRate)
		}
		if l.Scouts < 1 {
			return fmt.Errorf("level %d: at least one scout is required, got %d", i+1, l.Scouts)
		}
		if l.Fighters < 0 {
			return fmt.Errorf("level %d: fighters must not be negative, got %d", i+1, l.Fighters)
		}
		if l.EnemySpeed < 0 {
			return fmt.Errorf("level %d: enemy_speed must not be negative", i+1)
		}
	}
	if c.Game.Lives < 1 {
		return fmt.Errorf("game: lives must be at least 1, got %d", c.Game.Lives)
	}
	if c.Game.ScorePerKill < 1 {
		return fmt.Errorf("game: score_per_kill must be positive, got %d", c.Game.ScorePerKill)
	}
	for _, d := range []struct {
		key   string
		value time.Duration
	}{
		{"level_start_delay", c.Game.LevelStartDelay},
		{"first_spawn_delay", c.Game.FirstSpawnDelay},
		{"player_recharge", c.Game.PlayerRecharge},
		{"fighter_recharge", c.Game.FighterRecharge},
	} {
		if d.value < 0 {
			return fmt.Errorf("game: %s must not be negative, got %v", d.key, d.value)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio: volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	return nil
}

// DefaultLevels is the built-in wave table.
func DefaultLevels() []Level {
	return []Level{
		{EnemySpeed: 90, Scouts: 5, Fighters: 1, SpawnRate: 0.5},
		{EnemySpeed: 100, Scouts: 8, Fighters: 2, SpawnRate: 1.0},
		{EnemySpeed: 110, Scouts: 12, Fighters: 3, SpawnRate: 1.5},
	}
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			Lives:            3,
			LevelStartDelay:  2 * time.Second,
			FirstSpawnDelay:  3 * time.Second,
			ScorePerKill:     100,
			SpeedStep:        15,
			PlayerSpeed:      200,
			PlayerRecharge:   250 * time.Millisecond,
			PlayerShotSpeed:  400,
			FighterRecharge:  time.Second,
			FighterShotSpeed: 400,
			FighterRow:       300,
		},
		Levels: DefaultLevels(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		SSH: SSHConfig{
			Host:            "::",
			Port:            "2222",
			HostKeyPath:     "/app/keys/host_key",
			ShutdownTimeout: 15 * time.Second,
		},
		Web: WebConfig{
			Host:           "0.0.0.0",
			Port:           "8080",
			SSHDisplayHost: "your-server.com",
		},
		Scores: ScoresConfig{
			Path: "spaceship.db",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
	}
}
