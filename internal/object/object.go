// Package object defines the entities of the playfield and how they are drawn.
package object

import (
	"time"

	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// EntityID identifies a ship or projectile for the lifetime of a World.
// IDs are never reused, so a stale ID simply fails to resolve.
type EntityID uint64

// UpdateContext provides all the information an effect needs during update.
type UpdateContext struct {
	Delta time.Duration
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer *draw.ChunkWriter // Text overlays, offset to the canvas origin
}

// Drawable is anything that can paint itself onto the playfield.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Object is a self-updating visual effect (explosions, level text, background).
// Ships and projectiles are advanced by the simulation instead.
type Object interface {
	Drawable

	// Update advances the object. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)
}

// ToCanvas maps a world position (origin at the centre, y up) to canvas
// logical coordinates (origin top-left, y down).
func ToCanvas(pos physics.Vec2) draw.Point {
	return draw.Point{
		X: pos.X + config.FieldHalfW,
		Y: config.FieldHalfH - pos.Y,
	}
}

// offsetPoints fills dst with the canvas positions of shape translated to pos.
func offsetPoints(dst []draw.Point, pos physics.Vec2, shape []physics.Vec2) []draw.Point {
	for i, p := range shape {
		dst[i] = ToCanvas(pos.Add(p))
	}
	return dst
}
