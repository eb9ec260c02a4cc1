package world

import (
	"github.com/tomz197/spaceship/internal/audio"
	loopconfig "github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// onPlayerDeath handles the latest player death of the tick. Duplicates raised
// by several hits in the same tick are ignored.
func (w *World) onPlayerDeath() {
	id, ok := w.mail.playerDeath.Latest()
	if !ok {
		return
	}
	p := w.player
	if p == nil || p.ID != id {
		return
	}

	w.effects = append(w.effects, object.NewExplosion(p.Pos))
	w.sound.Play(audio.PlayerExplosion)
	w.player = nil

	if w.lives > 0 {
		w.lives--
	}
	w.log.Info("player died", "lives", w.lives, "level", w.level.number+1)
	if w.lives == 0 && !w.gameOverSent {
		w.mail.gameOver.Send(signal{})
	}
	w.mail.levelRestart.Send(signal{})
}

// onEnemyDeath handles every enemy death of the tick.
func (w *World) onEnemyDeath() {
	for _, id := range w.mail.enemyDeath.All() {
		i := w.enemyIndex(id)
		if i < 0 {
			continue
		}
		e := w.enemies[i]
		w.effects = append(w.effects, object.NewExplosion(e.Pos))
		w.sound.Play(audio.EnemyExplosion)
		w.removeEnemyAt(i)

		w.score += w.cfg.ScorePerKill
		if w.spawner.remaining > 0 {
			w.spawner.remaining--
			if w.spawner.remaining == 0 {
				w.mail.levelEnd.Send(signal{})
			}
		}
		w.log.Debug("enemy destroyed", "kind", e.Kind, "score", w.score, "remaining", w.spawner.remaining)
	}
}

// onPlayerSpawn creates the player ship unless one is already alive.
func (w *World) onPlayerSpawn() {
	if !w.mail.playerSpawn.Pending() || w.player != nil {
		return
	}
	w.player = &object.Player{
		ID:     w.newID(),
		Pos:    physics.Vec2{X: loopconfig.PlayerSpawnX, Y: loopconfig.PlayerSpawnY},
		Speed:  w.cfg.PlayerSpeed,
		Weapon: object.NewWeapon(physics.Vec2{X: 0, Y: w.cfg.PlayerShotSpeed}, w.cfg.PlayerRecharge),
	}
	w.log.Debug("player spawned")
}
