package object

import "github.com/tomz197/spaceship/internal/physics"

// MovementPattern describes how an enemy moves. The only implementations are
// *Zigzag and *LeftRight; callers dispatch with a type switch.
type MovementPattern interface {
	movementPattern()
}

// Zigzag moves with a constant velocity and bounces off all four screen edges.
type Zigzag struct {
	Velocity physics.Vec2
}

// LeftRight moves horizontally and bounces off the left and right edges only.
type LeftRight struct {
	VX float64
}

func (*Zigzag) movementPattern()    {}
func (*LeftRight) movementPattern() {}
