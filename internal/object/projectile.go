package object

import (
	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// Projectile travels in a straight line until it leaves the screen or hits a ship.
type Projectile struct {
	ID     EntityID
	Pos    physics.Vec2
	Vel    physics.Vec2
	Player bool // Fired by the player; player shots never hit the player and vice versa
}

// Hitbox returns the projectile's collision box.
func (p *Projectile) Hitbox() physics.Box {
	return physics.BoxAt(p.Pos, physics.Vec2{X: config.ProjectileHalfW, Y: config.ProjectileHalfH})
}

// OnScreen reports whether the projectile is still inside the despawn rectangle.
func (p *Projectile) OnScreen() bool {
	return physics.Contains(
		physics.Vec2{X: -config.ProjectileBoundX, Y: -config.ProjectileBoundY},
		physics.Vec2{X: config.ProjectileBoundX, Y: config.ProjectileBoundY},
		p.Pos,
	)
}

// Draw renders the projectile as a short streak.
func (p *Projectile) Draw(ctx DrawContext) error {
	color := draw.ColorYellow
	if p.Player {
		color = draw.ColorCyan
	}
	top := ToCanvas(p.Pos.Add(physics.Vec2{X: -config.ProjectileHalfW, Y: config.ProjectileHalfH}))
	bottom := ToCanvas(p.Pos.Add(physics.Vec2{X: config.ProjectileHalfW, Y: -config.ProjectileHalfH}))
	ctx.Canvas.FillRect(top.X, top.Y, bottom.X, bottom.Y, color)
	return nil
}
