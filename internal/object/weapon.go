package object

import (
	"time"

	"github.com/tomz197/spaceship/internal/physics"
)

// Weapon fires projectiles along Aim once its recharge timer has elapsed.
type Weapon struct {
	Aim      physics.Vec2 // Direction and speed of the projectiles
	recharge Timer
}

// NewWeapon creates a weapon that starts charging: the first shot is
// available after one full recharge period.
func NewWeapon(aim physics.Vec2, recharge time.Duration) *Weapon {
	return &Weapon{
		Aim:      aim,
		recharge: NewTimer(recharge, TimerOnce),
	}
}

// Charge advances the recharge timer.
func (w *Weapon) Charge(dt time.Duration) {
	w.recharge.Tick(dt)
}

// Ready reports whether the weapon may fire.
func (w *Weapon) Ready() bool {
	return w.recharge.Finished()
}

// TryFire restarts the recharge timer and returns true if the weapon was ready.
func (w *Weapon) TryFire() bool {
	if !w.recharge.Finished() {
		return false
	}
	w.recharge.Reset()
	return true
}

// RechargeElapsed returns how far the current recharge has progressed.
func (w *Weapon) RechargeElapsed() time.Duration {
	return w.recharge.Elapsed()
}
