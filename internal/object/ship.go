package object

import (
	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// Ship outlines in world units relative to the ship centre.
var (
	playerShape = []physics.Vec2{
		{X: 0, Y: config.PlayerHalfH},
		{X: config.PlayerHalfW, Y: -config.PlayerHalfH},
		{X: 0, Y: -config.PlayerHalfH / 2},
		{X: -config.PlayerHalfW, Y: -config.PlayerHalfH},
	}
	scoutShape = []physics.Vec2{
		{X: 0, Y: -config.EnemyHalfH},
		{X: -config.EnemyHalfW, Y: config.EnemyHalfH},
		{X: config.EnemyHalfW, Y: config.EnemyHalfH},
	}
	fighterShape = []physics.Vec2{
		{X: 0, Y: -config.EnemyHalfH},
		{X: -config.EnemyHalfW, Y: 4},
		{X: -8, Y: config.EnemyHalfH},
		{X: 8, Y: config.EnemyHalfH},
		{X: config.EnemyHalfW, Y: 4},
	}
)

// Player is the ship controlled by the user. At most one exists at a time.
type Player struct {
	ID     EntityID
	Pos    physics.Vec2
	Speed  float64 // World units per second per held direction
	Weapon *Weapon
}

// Hitbox returns the player's collision box.
func (p *Player) Hitbox() physics.Box {
	return physics.BoxAt(p.Pos, physics.Vec2{X: config.PlayerHalfW, Y: config.PlayerHalfH})
}

// Draw renders the player as a filled arrowhead pointing up.
func (p *Player) Draw(ctx DrawContext) error {
	pts := offsetPoints(ctx.Canvas.BorrowPoints(len(playerShape)), p.Pos, playerShape)
	ctx.Canvas.DrawPolygon(pts, true, draw.ColorRed)
	return nil
}

// EnemyKind distinguishes the enemy variants.
type EnemyKind int

const (
	Scout   EnemyKind = iota // Zigzags across the screen, unarmed
	Fighter                  // Patrols a row and fires downwards
)

func (k EnemyKind) String() string {
	switch k {
	case Scout:
		return "scout"
	case Fighter:
		return "fighter"
	default:
		return "unknown"
	}
}

// EnemySpec is a pending spawn in the spawn queue.
type EnemySpec struct {
	Kind  EnemyKind
	Speed float64
}

// Enemy is a hostile ship created by the spawner.
type Enemy struct {
	ID      EntityID
	Kind    EnemyKind
	Pos     physics.Vec2
	Pattern MovementPattern
	Weapon  *Weapon // nil for unarmed enemies
}

// Hitbox returns the enemy's collision box.
func (e *Enemy) Hitbox() physics.Box {
	return physics.BoxAt(e.Pos, physics.Vec2{X: config.EnemyHalfW, Y: config.EnemyHalfH})
}

// Draw renders the enemy pointing down.
func (e *Enemy) Draw(ctx DrawContext) error {
	shape, color := scoutShape, draw.ColorGreen
	if e.Kind == Fighter {
		shape, color = fighterShape, draw.ColorMagenta
	}
	pts := offsetPoints(ctx.Canvas.BorrowPoints(len(shape)), e.Pos, shape)
	ctx.Canvas.DrawPolygon(pts, true, color)
	return nil
}
