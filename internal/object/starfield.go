package object

import (
	"math/rand/v2"

	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// Starfield is the slowly scrolling background. Stars drift down and wrap
// from the bottom edge back to the top.
type Starfield struct {
	Stars []physics.Vec2
	Speed float64 // World units per second
}

// NewStarfield scatters count stars over the playfield using rng.
func NewStarfield(count int, rng *rand.Rand) *Starfield {
	stars := make([]physics.Vec2, count)
	for i := range stars {
		stars[i] = physics.Vec2{
			X: rng.Float64()*config.FieldWidth - config.FieldHalfW,
			Y: rng.Float64()*config.FieldHeight - config.FieldHalfH,
		}
	}
	return &Starfield{Stars: stars, Speed: config.BackgroundScroll}
}

// Update scrolls the stars. The background is never removed.
func (s *Starfield) Update(ctx UpdateContext) (bool, error) {
	dy := s.Speed * ctx.Delta.Seconds()
	for i := range s.Stars {
		s.Stars[i].Y -= dy
		if s.Stars[i].Y < -config.FieldHalfH {
			s.Stars[i].Y += config.FieldHeight
		}
	}
	return false, nil
}

// Draw renders each star as a single dim pixel.
func (s *Starfield) Draw(ctx DrawContext) error {
	for _, star := range s.Stars {
		p := ToCanvas(star)
		ctx.Canvas.SetFloat(p.X, p.Y, draw.ColorGray)
	}
	return nil
}
