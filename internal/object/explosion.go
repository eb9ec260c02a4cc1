package object

import (
	"math"

	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// Explosion is a short death animation that cycles through
// config.ExplosionFrames frames and then removes itself.
type Explosion struct {
	Pos   physics.Vec2
	Frame int
	timer Timer
}

// NewExplosion creates an explosion at pos, showing its first frame.
func NewExplosion(pos physics.Vec2) *Explosion {
	return &Explosion{
		Pos:   pos,
		timer: NewTimer(config.ExplosionFrameTime, TimerRepeating),
	}
}

// Update advances the animation one frame per elapsed frame period.
func (e *Explosion) Update(ctx UpdateContext) (bool, error) {
	e.timer.Tick(ctx.Delta)
	e.Frame += e.timer.TimesFinishedThisTick()
	return e.Frame >= config.ExplosionFrames, nil
}

// Draw renders an expanding ring of debris.
func (e *Explosion) Draw(ctx DrawContext) error {
	radius := 4.0 + float64(e.Frame)*4.0
	color := draw.ColorYellow
	if e.Frame >= config.ExplosionFrames/2 {
		color = draw.ColorRed
	}

	const sparks = 10
	for i := 0; i < sparks; i++ {
		angle := float64(i) * 2 * math.Pi / sparks
		p := ToCanvas(e.Pos.Add(physics.Vec2{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}))
		ctx.Canvas.SetFloat(p.X, p.Y, color)
	}
	if e.Frame < 2 {
		c := ToCanvas(e.Pos)
		ctx.Canvas.FillRect(c.X-6, c.Y-6, c.X+6, c.Y+6, draw.ColorWhite)
	}
	return nil
}
