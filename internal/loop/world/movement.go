package world

import (
	"time"

	"github.com/tomz197/spaceship/internal/input"
	loopconfig "github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// movePlayer applies the held direction keys and clamps the ship to its soft walls.
func (w *World) movePlayer(dt time.Duration, in input.Input) {
	p := w.player
	if p == nil {
		return
	}

	var dir physics.Vec2
	if in.Up {
		dir.Y++
	}
	if in.Down {
		dir.Y--
	}
	if in.Right {
		dir.X++
	}
	if in.Left {
		dir.X--
	}

	p.Pos = p.Pos.Add(dir.Scale(p.Speed * dt.Seconds()))
	p.Pos.X = physics.Clamp(p.Pos.X, -loopconfig.PlayerBoundX, loopconfig.PlayerBoundX)
	p.Pos.Y = physics.Clamp(p.Pos.Y, -loopconfig.PlayerBoundY, loopconfig.PlayerBoundY)
}

// moveEnemies advances every enemy along its pattern. Edges are checked after
// moving, so the reflection applies from the next tick.
func (w *World) moveEnemies(dt time.Duration) {
	secs := dt.Seconds()
	for _, e := range w.enemies {
		switch pat := e.Pattern.(type) {
		case *object.Zigzag:
			e.Pos = e.Pos.Add(pat.Velocity.Scale(secs))
			pat.Velocity.X = bounce(e.Pos.X, pat.Velocity.X, loopconfig.FieldHalfW)
			pat.Velocity.Y = bounce(e.Pos.Y, pat.Velocity.Y, loopconfig.FieldHalfH)
		case *object.LeftRight:
			e.Pos.X += pat.VX * secs
			pat.VX = bounce(e.Pos.X, pat.VX, loopconfig.FieldHalfW)
		}
	}
}

// bounce returns v reflected if pos has passed ±limit while moving outwards.
func bounce(pos, v, limit float64) float64 {
	if (v > 0 && pos > limit) || (v < 0 && pos < -limit) {
		return -v
	}
	return v
}
