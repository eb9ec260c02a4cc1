// Package config centralizes the fixed geometry and timing of the playfield.
// Tunables that players or operators may change live in internal/config.
package config

import "time"

// Playfield in world units. The origin is the centre of the screen,
// x grows to the right and y grows upwards.
const (
	FieldWidth  = 400
	FieldHeight = 800
	FieldHalfW  = FieldWidth / 2  // Enemies bounce at ±FieldHalfW
	FieldHalfH  = FieldHeight / 2 // Zigzag enemies bounce at ±FieldHalfH
)

// Player soft walls. The ship is clamped, never reflected.
const (
	PlayerBoundX = 180.0
	PlayerBoundY = 380.0
)

// Projectiles are despawned once they leave [-ProjectileBoundX, ProjectileBoundX)
// × [-ProjectileBoundY, ProjectileBoundY).
const (
	ProjectileBoundX = 205.0
	ProjectileBoundY = 405.0
)

// Hitbox half-extents.
const (
	PlayerHalfW     = 15.0
	PlayerHalfH     = 12.5
	EnemyHalfW      = 15.0
	EnemyHalfH      = 12.5
	ProjectileHalfW = 1.0
	ProjectileHalfH = 2.0
)

// Spawning
const (
	PlayerSpawnX = 0.0
	PlayerSpawnY = -300.0
	EnemySpawnY  = 410.0 // Scouts enter just above the top edge
)

// CollisionCellSize must be >= the largest enemy/projectile interaction
// distance (EnemyHalfW + ProjectileHalfW).
const CollisionCellSize = 32.0

// Effects
const (
	ExplosionFrames     = 6
	ExplosionFrameTime  = 50 * time.Millisecond
	LevelTextDuration   = 2500 * time.Millisecond
	BackgroundScroll    = 40.0 // World units per second
	BackgroundStarCount = 48
)

// MaxFrameDelta caps the simulated time of a single frame so a stalled
// terminal does not teleport ships through each other.
const MaxFrameDelta = 100 * time.Millisecond

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Max render resolution in terminal cells. The playfield is twice as tall as
// it is wide and each cell holds two vertical sub-pixels, so a square block
// of cells keeps the aspect ratio.
const (
	MaxTermHeight = 60
	HUDRows       = 1 // Row reserved above the playfield for score and lives
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Leaderboard
const (
	MaxUsernameLength  = 16
	LeaderboardSize    = 10
	LeaderboardRefresh = 5 * time.Second
)
