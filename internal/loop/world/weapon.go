package world

import (
	"time"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// requestFire raises fire requests for the player (when the fire key is down)
// and for every armed enemy while there is a target.
func (w *World) requestFire(in input.Input) {
	if w.player == nil {
		return
	}
	if in.Fire {
		w.mail.weaponFire.Send(w.player.ID)
	}
	for _, e := range w.enemies {
		if e.Weapon != nil {
			w.mail.weaponFire.Send(e.ID)
		}
	}
}

// chargeWeapons advances every recharge timer.
func (w *World) chargeWeapons(dt time.Duration) {
	if w.player != nil {
		w.player.Weapon.Charge(dt)
	}
	for _, e := range w.enemies {
		if e.Weapon != nil {
			e.Weapon.Charge(dt)
		}
	}
}

// handleFire processes every fire request of the tick. Each request respects
// the firer's own recharge, so one entity yields at most one shot per tick.
func (w *World) handleFire() {
	for _, id := range w.mail.weaponFire.All() {
		weapon, pos, isPlayer, ok := w.armedEntity(id)
		if !ok {
			w.log.Warn("fire request for unarmed entity", "id", id)
			continue
		}
		if !weapon.TryFire() {
			continue
		}
		w.toSpawn = append(w.toSpawn, &object.Projectile{
			ID:     w.newID(),
			Pos:    pos,
			Vel:    weapon.Aim,
			Player: isPlayer,
		})
		if isPlayer {
			w.sound.Play(audio.Shoot)
		}
	}
}

// armedEntity looks up the weapon and position of a live entity.
func (w *World) armedEntity(id object.EntityID) (*object.Weapon, physics.Vec2, bool, bool) {
	if p := w.player; p != nil && p.ID == id {
		return p.Weapon, p.Pos, true, p.Weapon != nil
	}
	if i := w.enemyIndex(id); i >= 0 {
		e := w.enemies[i]
		return e.Weapon, e.Pos, false, e.Weapon != nil
	}
	return nil, physics.Vec2{}, false, false
}

// advanceProjectiles moves every projectile and despawns those that left the screen.
func (w *World) advanceProjectiles(dt time.Duration) {
	secs := dt.Seconds()
	kept := w.projectiles[:0]
	for _, p := range w.projectiles {
		p.Pos = p.Pos.Add(p.Vel.Scale(secs))
		if p.OnScreen() {
			kept = append(kept, p)
		}
	}
	clear(w.projectiles[len(kept):])
	w.projectiles = kept
}
