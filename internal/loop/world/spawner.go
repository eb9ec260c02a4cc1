package world

import (
	"time"

	"github.com/tomz197/spaceship/internal/config"
	loopconfig "github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// spawner releases the level's enemies one at a time.
type spawner struct {
	queue     []object.EnemySpec // Consumed front to back, never regrows until reset
	rate      float64            // Enemies per second
	timer     object.Timer
	remaining int // Kills left before the level ends
}

func newSpawner() spawner {
	t := object.NewTimer(0, object.TimerOnce)
	t.Pause()
	return spawner{timer: t}
}

// buildQueue lays out a level's enemies: Scouts scouts with one fighter after
// every Scouts/Fighters-th scout. No more than Fighters fighters are placed.
func buildQueue(level config.Level) []object.EnemySpec {
	queue := make([]object.EnemySpec, 0, level.Scouts+level.Fighters)

	cadence := 0
	if level.Fighters > 0 {
		cadence = max(level.Scouts/level.Fighters, 1)
	}

	fighters := 0
	for i := 1; i <= level.Scouts; i++ {
		queue = append(queue, object.EnemySpec{Kind: object.Scout, Speed: level.EnemySpeed})
		if cadence > 0 && i%cadence == 0 && fighters < level.Fighters {
			queue = append(queue, object.EnemySpec{Kind: object.Fighter, Speed: level.EnemySpeed})
			fighters++
		}
	}
	return queue
}

// tickSpawner releases the next queued enemy once the spawn timer has
// finished, otherwise advances the timer.
func (w *World) tickSpawner(dt time.Duration) {
	s := &w.spawner
	if !s.timer.JustFinished() {
		s.timer.Tick(dt)
		return
	}
	if len(s.queue) == 0 {
		return
	}

	spec := s.queue[0]
	s.queue = s.queue[1:]
	s.timer = object.NewTimer(time.Duration(float64(time.Second)/s.rate), object.TimerOnce)
	w.spawnEnemy(spec)
}

// spawnEnemy instantiates a queued descriptor at the top of the playfield.
func (w *World) spawnEnemy(spec object.EnemySpec) {
	x := w.rng.Float64()*loopconfig.FieldWidth - loopconfig.FieldHalfW
	vx := spec.Speed
	if w.rng.IntN(2) == 0 {
		vx = -vx
	}

	e := &object.Enemy{ID: w.newID(), Kind: spec.Kind}
	switch spec.Kind {
	case object.Fighter:
		e.Pos = physics.Vec2{X: x, Y: w.cfg.FighterRow}
		e.Pattern = &object.LeftRight{VX: vx}
		e.Weapon = object.NewWeapon(physics.Vec2{X: 0, Y: -w.cfg.FighterShotSpeed}, w.cfg.FighterRecharge)
	default:
		e.Pos = physics.Vec2{X: x, Y: loopconfig.EnemySpawnY}
		e.Pattern = &object.Zigzag{Velocity: physics.Vec2{X: vx, Y: -spec.Speed}}
	}
	w.enemies = append(w.enemies, e)
	w.log.Debug("spawn enemy", "kind", spec.Kind, "x", x, "queued", len(w.spawner.queue))
}

// spawnerOnRestart stops spawning and removes every live enemy.
func (w *World) spawnerOnRestart() {
	if !w.mail.levelRestart.Pending() {
		return
	}
	w.spawner.queue = nil
	w.spawner.timer.Pause()
	clear(w.enemies)
	w.enemies = w.enemies[:0]
}

// spawnerOnReset rebuilds the queue for the latest level descriptor.
func (w *World) spawnerOnReset() {
	level, ok := w.mail.spawnerReset.Latest()
	if !ok {
		return
	}
	queue := buildQueue(level)
	w.spawner = spawner{
		queue:     queue,
		rate:      level.SpawnRate,
		timer:     object.NewTimer(w.cfg.FirstSpawnDelay, object.TimerOnce),
		remaining: len(queue),
	}
	w.log.Info("spawner reset", "enemies", len(queue), "speed", level.EnemySpeed, "rate", level.SpawnRate)
}
