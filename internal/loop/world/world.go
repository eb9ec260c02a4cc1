// Package world is the deterministic single-player simulation: spawning,
// movement, weapons, collisions and the level/lives/score state machine.
//
// A World is owned by one goroutine. Each Tick runs in two phases: detectors
// write notifications into per-tick mailboxes, then handlers drain them in a
// fixed order, so a death is always resolved in the tick it was detected.
package world

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/input"
	loopconfig "github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// Options configures optional collaborators of a World.
type Options struct {
	Logger *log.Logger
	Sound  audio.Sink
	Rand   *rand.Rand // Enemy spawn positions and directions
}

// World holds the complete state of one play session.
type World struct {
	cfg    config.GameConfig
	levels []config.Level
	log    *log.Logger
	sound  audio.Sink
	rng    *rand.Rand

	state        GameState
	lives        int
	score        int
	gameOverSent bool // at most one GameOver per play-through

	level   levelState
	spawner spawner

	nextID      object.EntityID
	player      *object.Player
	enemies     []*object.Enemy
	projectiles []*object.Projectile
	toSpawn     []*object.Projectile // Projectiles to add after the movement pass
	toRemove    map[*object.Projectile]struct{}
	queuedFire  []object.EntityID // Fire requests made between ticks

	effects    []object.Object
	background *object.Starfield
	grid       *physics.SpatialGrid

	mail mailboxes
}

// Outcome reports what happened during a Tick that the caller may act on.
type Outcome struct {
	GameOver bool
	Score    int // Final score when GameOver is set
	Level    int // 1-based level reached when GameOver is set
}

// Snapshot is a read-only view of the session counters.
type Snapshot struct {
	State          GameState
	Score          int
	Lives          int
	Level          int // 1-based
	LevelSpec      config.Level
	QueueLen       int // Enemies still waiting to spawn
	KillsRemaining int
	PlayerAlive    bool
	Enemies        int
	Projectiles    int
}

// New creates an idle world. levels must not be empty.
func New(cfg config.GameConfig, levels []config.Level, opts Options) *World {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.Nop{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := &World{
		cfg:      cfg,
		levels:   levels,
		log:      logger,
		sound:    sound,
		rng:      rng,
		state:    StateIdle,
		lives:    cfg.Lives,
		toRemove: make(map[*object.Projectile]struct{}),
		grid: physics.NewSpatialGrid(
			physics.Vec2{X: -loopconfig.FieldHalfW, Y: -loopconfig.FieldHalfH},
			physics.Vec2{X: loopconfig.FieldHalfW, Y: loopconfig.FieldHalfH},
			loopconfig.CollisionCellSize,
		),
		spawner: newSpawner(),
	}
	w.level = w.newLevel(0)
	w.background = object.NewStarfield(loopconfig.BackgroundStarCount, rng)
	return w
}

// Tick advances the simulation by dt using this frame's input.
// Start and pause are applied on every tick; a tick with dt <= 0 simulates
// nothing.
func (w *World) Tick(dt time.Duration, in input.Input) Outcome {
	var out Outcome
	w.handleControls(in)
	if dt <= 0 {
		return out
	}

	w.mail.reset()
	for _, id := range w.queuedFire {
		w.mail.weaponFire.Send(id)
	}
	w.queuedFire = w.queuedFire[:0]

	if w.state != StatePaused {
		w.updateEffects(dt)
	}
	if w.state != StatePlaying {
		return out
	}

	// Phase one: simulate and detect.
	w.tickLevel(dt)
	w.tickSpawner(dt)
	w.movePlayer(dt, in)
	w.moveEnemies(dt)
	w.requestFire(in)
	w.chargeWeapons(dt)
	w.handleFire()
	w.advanceProjectiles(dt)
	w.flushSpawned()
	w.detectCollisions()

	// Phase two: resolve notifications.
	w.onPlayerDeath()
	w.onEnemyDeath()
	w.onGameOver(&out)
	w.onLevelEnd()
	w.onLevelRestart()
	w.spawnerOnRestart()
	w.spawnerOnReset()
	w.onPlayerSpawn()
	w.onShowLevelText()

	return out
}

// Fire queues a fire request for the entity, honoured on the next Tick.
func (w *World) Fire(id object.EntityID) {
	w.queuedFire = append(w.queuedFire, id)
}

// handleControls applies the state machine transitions driven by input.
func (w *World) handleControls(in input.Input) {
	switch w.state {
	case StateIdle:
		if in.Start {
			w.startGame()
		}
	case StatePlaying:
		if in.Pause {
			w.state = StatePaused
			w.log.Debug("paused")
		}
	case StatePaused:
		if in.Pause {
			w.state = StatePlaying
			w.log.Debug("resumed")
		}
	}
}

// startGame resets the counters and begins the first level.
func (w *World) startGame() {
	w.lives = w.cfg.Lives
	w.score = 0
	w.gameOverSent = false
	w.level = w.newLevel(0)
	w.spawner = newSpawner()
	w.player = nil
	w.enemies = w.enemies[:0]
	w.projectiles = w.projectiles[:0]
	w.toSpawn = w.toSpawn[:0]
	w.queuedFire = w.queuedFire[:0]
	w.state = StatePlaying
	w.log.Info("game started", "lives", w.lives)
}

// updateEffects advances explosions, banners and the background, dropping finished ones.
func (w *World) updateEffects(dt time.Duration) {
	ctx := object.UpdateContext{Delta: dt}
	w.background.Update(ctx)

	kept := w.effects[:0]
	for _, e := range w.effects {
		remove, err := e.Update(ctx)
		if err != nil {
			w.log.Error("effect update failed", "err", err)
			continue
		}
		if !remove {
			kept = append(kept, e)
		}
	}
	clear(w.effects[len(kept):])
	w.effects = kept
}

// flushSpawned adds all queued projectiles to the world and clears the queue.
func (w *World) flushSpawned() {
	w.projectiles = append(w.projectiles, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

func (w *World) newID() object.EntityID {
	w.nextID++
	return w.nextID
}

// enemyIndex returns the index of the live enemy with the given ID, or -1.
func (w *World) enemyIndex(id object.EntityID) int {
	for i, e := range w.enemies {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// removeEnemyAt deletes the enemy at index i, preserving order.
func (w *World) removeEnemyAt(i int) {
	copy(w.enemies[i:], w.enemies[i+1:])
	w.enemies[len(w.enemies)-1] = nil
	w.enemies = w.enemies[:len(w.enemies)-1]
}

// State returns the current game state.
func (w *World) State() GameState {
	return w.state
}

// Player returns the live player ship, or nil.
func (w *World) Player() *object.Player {
	return w.player
}

// Enemies returns the live enemies. The slice must not be modified.
func (w *World) Enemies() []*object.Enemy {
	return w.enemies
}

// Projectiles returns the live projectiles. The slice must not be modified.
func (w *World) Projectiles() []*object.Projectile {
	return w.projectiles
}

// Snapshot returns the current counters.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		State:          w.state,
		Score:          w.score,
		Lives:          w.lives,
		Level:          w.level.number + 1,
		LevelSpec:      w.level.spec,
		QueueLen:       len(w.spawner.queue),
		KillsRemaining: w.spawner.remaining,
		PlayerAlive:    w.player != nil,
		Enemies:        len(w.enemies),
		Projectiles:    len(w.projectiles),
	}
}

// Draw paints the background, ships, projectiles and effects onto the canvas.
func (w *World) Draw(ctx object.DrawContext) error {
	if err := w.background.Draw(ctx); err != nil {
		return err
	}
	for _, e := range w.enemies {
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range w.projectiles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	if w.player != nil {
		if err := w.player.Draw(ctx); err != nil {
			return err
		}
	}
	for _, e := range w.effects {
		if _, overlay := e.(*object.LevelText); overlay {
			continue
		}
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DrawOverlays writes the text effects. Call it after the canvas has been
// rendered so the text ends up on top.
func (w *World) DrawOverlays(ctx object.DrawContext) error {
	for _, e := range w.effects {
		if t, ok := e.(*object.LevelText); ok {
			if err := t.Draw(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
