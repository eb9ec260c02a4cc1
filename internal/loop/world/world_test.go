package world

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

const frame = 16 * time.Millisecond

type recordingSink struct {
	played []audio.Effect
}

func (r *recordingSink) Play(e audio.Effect) {
	r.played = append(r.played, e)
}

func (r *recordingSink) count(e audio.Effect) int {
	n := 0
	for _, p := range r.played {
		if p == e {
			n++
		}
	}
	return n
}

func newTestWorld(t *testing.T, levels []config.Level) (*World, *recordingSink) {
	t.Helper()
	if levels == nil {
		levels = config.DefaultLevels()
	}
	sink := &recordingSink{}
	w := New(config.Defaults().Game, levels, Options{
		Sound: sink,
		Rand:  rand.New(rand.NewPCG(1, 2)),
	})
	return w, sink
}

// startPlaying starts a game and waits for the level start delay so the
// player and the spawn queue exist.
func startPlaying(t *testing.T, w *World) {
	t.Helper()
	w.Tick(time.Millisecond, input.Input{Start: true})
	w.Tick(w.cfg.LevelStartDelay, input.Input{})
	if w.player == nil {
		t.Fatal("player not spawned after the level start delay")
	}
}

// killPlayer drops an enemy projectile on the player and runs one tick.
func killPlayer(w *World) Outcome {
	w.projectiles = append(w.projectiles, &object.Projectile{ID: w.newID(), Pos: w.player.Pos})
	return w.Tick(frame, input.Input{})
}

func addScout(w *World, pos physics.Vec2) *object.Enemy {
	e := &object.Enemy{ID: w.newID(), Kind: object.Scout, Pos: pos, Pattern: &object.Zigzag{}}
	w.enemies = append(w.enemies, e)
	return e
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func kinds(q []object.EnemySpec) string {
	s := make([]byte, len(q))
	for i, e := range q {
		if e.Kind == object.Fighter {
			s[i] = 'F'
		} else {
			s[i] = 'S'
		}
	}
	return string(s)
}

func TestBuildQueue(t *testing.T) {
	tests := []struct {
		name  string
		level config.Level
		want  string
	}{
		{"first level", config.Level{EnemySpeed: 90, Scouts: 5, Fighters: 1, SpawnRate: 0.5}, "SSSSSF"},
		{"two fighters", config.Level{EnemySpeed: 100, Scouts: 8, Fighters: 2, SpawnRate: 1}, "SSSSFSSSSF"},
		{"three fighters", config.Level{EnemySpeed: 110, Scouts: 12, Fighters: 3, SpawnRate: 1.5}, "SSSSFSSSSFSSSSF"},
		{"no fighters", config.Level{EnemySpeed: 90, Scouts: 4, SpawnRate: 1}, "SSSS"},
		{"uneven cadence", config.Level{EnemySpeed: 90, Scouts: 7, Fighters: 2, SpawnRate: 1}, "SSSFSSSFS"},
		{"more fighters than scouts", config.Level{EnemySpeed: 90, Scouts: 2, Fighters: 3, SpawnRate: 1}, "SFSF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQueue(tt.level)
			if got := kinds(q); got != tt.want {
				t.Errorf("queue = %s, want %s", got, tt.want)
			}
			for _, e := range q {
				if e.Speed != tt.level.EnemySpeed {
					t.Errorf("spec speed = %v, want %v", e.Speed, tt.level.EnemySpeed)
				}
			}
		})
	}
}

func TestStartShowsLevelTextAndSpawnsPlayer(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	if w.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", w.State())
	}
	startPlaying(t, w)

	snap := w.Snapshot()
	if snap.State != StatePlaying || snap.Lives != 3 || snap.Score != 0 || snap.Level != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.QueueLen != 6 || snap.KillsRemaining != 6 {
		t.Errorf("queue = %d, remaining = %d, want 6 and 6", snap.QueueLen, snap.KillsRemaining)
	}
	if got := w.player.Pos; got != (physics.Vec2{X: 0, Y: -300}) {
		t.Errorf("player spawned at %+v", got)
	}

	var text string
	for _, e := range w.effects {
		if lt, ok := e.(*object.LevelText); ok {
			text = lt.Value
		}
	}
	if text != "LEVEL 1" {
		t.Errorf("level text = %q, want LEVEL 1", text)
	}
}

func TestZeroDeltaChangesNothing(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)
	e := addScout(w, physics.Vec2{X: 50, Y: 100})
	e.Pattern = &object.Zigzag{Velocity: physics.Vec2{X: 90, Y: -90}}

	before := w.Snapshot()
	pos := w.player.Pos
	recharge := w.player.Weapon.RechargeElapsed()
	levelElapsed := w.level.start.Elapsed()
	spawnElapsed := w.spawner.timer.Elapsed()

	for _, dt := range []time.Duration{0, -time.Second} {
		w.Tick(dt, input.Input{Up: true, Fire: true})
	}

	if got := w.Snapshot(); got != before {
		t.Errorf("snapshot changed: %+v -> %+v", before, got)
	}
	if w.player.Pos != pos {
		t.Errorf("player moved to %+v", w.player.Pos)
	}
	if e.Pos != (physics.Vec2{X: 50, Y: 100}) {
		t.Errorf("enemy moved to %+v", e.Pos)
	}
	if w.player.Weapon.RechargeElapsed() != recharge {
		t.Error("weapon timer advanced")
	}
	if w.level.start.Elapsed() != levelElapsed || w.spawner.timer.Elapsed() != spawnElapsed {
		t.Error("level or spawn timer advanced")
	}
}

func TestPlayerClampedToSoftWalls(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)

	w.Tick(5*time.Second, input.Input{Up: true, Right: true})
	if got := w.player.Pos; got.X != 180 || got.Y != 380 {
		t.Errorf("player at %+v, want (180, 380)", got)
	}

	w.player.Pos = physics.Vec2{}
	w.Tick(5*time.Second, input.Input{Down: true, Left: true})
	if got := w.player.Pos; got.X != -180 || got.Y != -380 {
		t.Errorf("player at %+v, want (-180, -380)", got)
	}
}

func TestLeftRightBouncesAfterCrossing(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	pat := &object.LeftRight{VX: 50}
	e := &object.Enemy{ID: w.newID(), Kind: object.Fighter, Pos: physics.Vec2{X: 199, Y: 300}, Pattern: pat}
	w.enemies = append(w.enemies, e)

	w.moveEnemies(100 * time.Millisecond)
	if !approx(e.Pos.X, 204) {
		t.Errorf("x = %v, want 204", e.Pos.X)
	}
	if pat.VX != -50 {
		t.Errorf("vx = %v, want -50 after crossing", pat.VX)
	}
	if e.Pos.Y != 300 {
		t.Errorf("y = %v, LeftRight must not move vertically", e.Pos.Y)
	}

	w.moveEnemies(100 * time.Millisecond)
	if !approx(e.Pos.X, 199) || pat.VX != -50 {
		t.Errorf("x = %v vx = %v, want 199 and -50", e.Pos.X, pat.VX)
	}

	w.moveEnemies(0)
	if pat.VX != -50 {
		t.Error("zero delta flipped the velocity again")
	}
}

func TestZigzagBouncesOnBothAxes(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	pat := &object.Zigzag{Velocity: physics.Vec2{X: -100, Y: -100}}
	e := &object.Enemy{ID: w.newID(), Pos: physics.Vec2{X: -195, Y: -395}, Pattern: pat}
	w.enemies = append(w.enemies, e)

	w.moveEnemies(100 * time.Millisecond)
	if pat.Velocity != (physics.Vec2{X: 100, Y: 100}) {
		t.Errorf("velocity = %+v, want reflected on both axes", pat.Velocity)
	}

	// Moving inwards past the edge must not reflect again.
	e.Pos = physics.Vec2{X: -250, Y: 0}
	w.moveEnemies(10 * time.Millisecond)
	if pat.Velocity.X != 100 {
		t.Errorf("vx = %v, want 100", pat.Velocity.X)
	}
}

func TestWeaponRechargeGate(t *testing.T) {
	w, sink := newTestWorld(t, nil)
	startPlaying(t, w)

	step := 50 * time.Millisecond
	for i := 0; i < 20; i++ {
		w.Tick(step, input.Input{Fire: true})
	}

	shots := 0
	for _, p := range w.projectiles {
		if p.Player {
			shots++
			if p.Vel != (physics.Vec2{X: 0, Y: 400}) {
				t.Errorf("projectile velocity = %+v", p.Vel)
			}
		}
	}
	// The weapon starts charging and recharges every 250ms: shots at 250, 500, 750 and 1000ms.
	if shots != 4 {
		t.Errorf("shots = %d, want 4", shots)
	}
	if got := sink.count(audio.Shoot); got != 4 {
		t.Errorf("shoot sounds = %d, want 4", got)
	}
}

func TestRepeatedFireRequestsYieldOneShot(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)
	w.player.Weapon.Charge(time.Second)

	id := w.player.ID
	w.Fire(id)
	w.Fire(id)
	w.Tick(frame, input.Input{Fire: true})

	if len(w.projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(w.projectiles))
	}
	p := w.projectiles[0]
	if !p.Player {
		t.Error("player shot not tagged as player-fired")
	}
	if p.Pos != w.player.Pos {
		t.Errorf("projectile spawned at %+v, want the player position %+v", p.Pos, w.player.Pos)
	}
}

func TestFireRequestForUnarmedEntityIgnored(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)
	scout := addScout(w, physics.Vec2{X: 100, Y: 200})

	w.Fire(scout.ID)
	w.Fire(12345)
	w.Tick(frame, input.Input{})

	if len(w.projectiles) != 0 {
		t.Errorf("projectiles = %d, want none", len(w.projectiles))
	}
}

func TestFighterFiresDownwards(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)
	w.spawnEnemy(object.EnemySpec{Kind: object.Fighter, Speed: 90})
	f := w.enemies[len(w.enemies)-1]
	if f.Pos.Y != 300 || f.Weapon == nil {
		t.Fatalf("fighter = %+v", f)
	}
	if _, ok := f.Pattern.(*object.LeftRight); !ok {
		t.Fatalf("fighter pattern = %T, want LeftRight", f.Pattern)
	}

	for i := 0; i < 11; i++ {
		w.Tick(100*time.Millisecond, input.Input{})
	}

	var shots int
	for _, p := range w.projectiles {
		if p.Player {
			t.Error("fighter shot tagged as player-fired")
		}
		if p.Vel != (physics.Vec2{X: 0, Y: -400}) {
			t.Errorf("fighter shot velocity = %+v", p.Vel)
		}
		shots++
	}
	if shots != 1 {
		t.Errorf("fighter shots = %d, want 1 after one recharge period", shots)
	}
}

func TestProjectilesDespawnOffScreen(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	w.projectiles = []*object.Projectile{
		{ID: 1, Pos: physics.Vec2{X: 0, Y: 404}, Vel: physics.Vec2{Y: 400}, Player: true},
		{ID: 2, Pos: physics.Vec2{X: 0, Y: 0}, Vel: physics.Vec2{Y: 400}, Player: true},
		{ID: 3, Pos: physics.Vec2{X: -204, Y: 0}, Vel: physics.Vec2{X: -400}},
	}

	w.advanceProjectiles(10 * time.Millisecond)
	if len(w.projectiles) != 1 || w.projectiles[0].ID != 2 {
		t.Errorf("remaining projectiles = %+v, want only #2", w.projectiles)
	}
}

func TestNoFriendlyFire(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)
	e := addScout(w, physics.Vec2{X: 100, Y: 100})

	w.mail.reset()
	w.projectiles = []*object.Projectile{
		{ID: w.newID(), Pos: w.player.Pos, Player: true},
		{ID: w.newID(), Pos: e.Pos},
	}
	w.detectCollisions()

	if w.mail.playerDeath.Pending() {
		t.Error("player-fired projectile killed the player")
	}
	if w.mail.enemyDeath.Pending() {
		t.Error("enemy projectile killed an enemy")
	}
	if len(w.projectiles) != 2 {
		t.Errorf("projectiles = %d, want both kept", len(w.projectiles))
	}
}

func TestPlayerProjectileKillsEnemy(t *testing.T) {
	w, sink := newTestWorld(t, nil)
	startPlaying(t, w)
	addScout(w, physics.Vec2{X: 0, Y: 0})
	w.projectiles = append(w.projectiles,
		&object.Projectile{ID: w.newID(), Pos: physics.Vec2{X: 0, Y: -5}, Player: true},
		&object.Projectile{ID: w.newID(), Pos: physics.Vec2{X: 5, Y: 5}, Player: true},
	)

	w.Tick(frame, input.Input{})

	snap := w.Snapshot()
	if snap.Score != 100 {
		t.Errorf("score = %d, want 100", snap.Score)
	}
	if snap.Enemies != 0 {
		t.Errorf("enemies = %d, want 0", snap.Enemies)
	}
	if snap.Projectiles != 1 {
		t.Errorf("projectiles = %d, want exactly one despawned", snap.Projectiles)
	}
	if snap.KillsRemaining != 5 {
		t.Errorf("kills remaining = %d, want 5", snap.KillsRemaining)
	}
	if got := sink.count(audio.EnemyExplosion); got != 1 {
		t.Errorf("enemy explosion sounds = %d, want 1", got)
	}

	explosions := 0
	for _, e := range w.effects {
		if _, ok := e.(*object.Explosion); ok {
			explosions++
		}
	}
	if explosions != 1 {
		t.Errorf("explosions = %d, want 1", explosions)
	}
}

func TestSeveralEnemiesDieInOneTick(t *testing.T) {
	w, sink := newTestWorld(t, nil)
	startPlaying(t, w)
	addScout(w, physics.Vec2{X: -100, Y: 0})
	addScout(w, physics.Vec2{X: 100, Y: 0})
	w.projectiles = append(w.projectiles,
		&object.Projectile{ID: w.newID(), Pos: physics.Vec2{X: -100, Y: 0}, Player: true},
		&object.Projectile{ID: w.newID(), Pos: physics.Vec2{X: 100, Y: 0}, Player: true},
	)

	w.Tick(frame, input.Input{})

	snap := w.Snapshot()
	if snap.Score != 200 || snap.Enemies != 0 || snap.Projectiles != 0 || snap.KillsRemaining != 4 {
		t.Errorf("snapshot = %+v, want score 200, no enemies or projectiles, 4 kills remaining", snap)
	}
	if got := sink.count(audio.EnemyExplosion); got != 2 {
		t.Errorf("enemy explosion sounds = %d, want 2", got)
	}
}

func TestControlsApplyOnZeroDelta(t *testing.T) {
	w, _ := newTestWorld(t, nil)

	w.Tick(0, input.Input{Start: true})
	if w.State() != StatePlaying {
		t.Fatalf("state = %v after start on a zero tick, want playing", w.State())
	}
	if w.level.start.Elapsed() != 0 || w.player != nil {
		t.Error("zero tick advanced the level start timer")
	}

	w.Tick(0, input.Input{Pause: true})
	if w.State() != StatePaused {
		t.Errorf("state = %v after pause on a zero tick, want paused", w.State())
	}
	w.Tick(-time.Second, input.Input{Pause: true})
	if w.State() != StatePlaying {
		t.Errorf("state = %v after resume on a negative tick, want playing", w.State())
	}
}

func TestEnemyShipRammingKillsBoth(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)
	addScout(w, w.player.Pos)
	w.projectiles = append(w.projectiles, &object.Projectile{ID: w.newID(), Pos: w.player.Pos})

	w.Tick(frame, input.Input{})

	snap := w.Snapshot()
	if snap.PlayerAlive {
		t.Error("player survived the collision")
	}
	if snap.Lives != 2 {
		t.Errorf("lives = %d, want one life lost for simultaneous hits", snap.Lives)
	}
	if snap.Score != 100 {
		t.Errorf("score = %d, want the rammed enemy scored", snap.Score)
	}
	if snap.Projectiles != 0 {
		t.Errorf("projectiles = %d, want the hitting shot despawned", snap.Projectiles)
	}
}

func TestLivesSaturateAndGameOverOnce(t *testing.T) {
	w, sink := newTestWorld(t, nil)
	startPlaying(t, w)

	gameOvers := 0
	for life := 3; life > 0; life-- {
		if out := killPlayer(w); out.GameOver {
			gameOvers++
			if out.Score != 0 || out.Level != 1 {
				t.Errorf("outcome = %+v", out)
			}
		}
		if life > 1 {
			w.Tick(w.cfg.LevelStartDelay, input.Input{})
			if w.player == nil {
				t.Fatalf("player not respawned with %d lives left", life-1)
			}
		}
	}

	if gameOvers != 1 {
		t.Errorf("game overs = %d, want 1", gameOvers)
	}
	if w.State() != StateIdle || w.Snapshot().Lives != 0 {
		t.Errorf("state = %v lives = %d, want idle with 0 lives", w.State(), w.Snapshot().Lives)
	}
	if got := sink.count(audio.PlayerExplosion); got != 3 {
		t.Errorf("player explosion sounds = %d, want 3", got)
	}

	// A further death at zero lives neither underflows nor repeats the game over.
	w.state = StatePlaying
	w.mail.reset()
	w.mail.playerSpawn.Send(signal{})
	w.onPlayerSpawn()
	if out := killPlayer(w); out.GameOver {
		t.Error("second game over in the same play-through")
	}
	if w.lives != 0 {
		t.Errorf("lives = %d, want saturated at 0", w.lives)
	}
}

func TestStartAfterGameOverResets(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	w.cfg.Lives = 1
	startPlaying(t, w)
	w.score = 700

	if out := killPlayer(w); !out.GameOver || out.Score != 700 {
		t.Fatalf("outcome = %+v, want game over with score 700", out)
	}
	startPlaying(t, w)

	snap := w.Snapshot()
	if snap.Score != 0 || snap.Lives != 1 || snap.Level != 1 || snap.State != StatePlaying {
		t.Errorf("snapshot after restart = %+v", snap)
	}
}

func TestLevelRestartStopsSpawningUntilReset(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)

	step := 100 * time.Millisecond
	prev := w.Snapshot().QueueLen
	for i := 0; i < 31; i++ {
		w.Tick(step, input.Input{})
		q := w.Snapshot().QueueLen
		if q > prev {
			t.Fatalf("queue grew from %d to %d", prev, q)
		}
		prev = q
	}
	if n := len(w.enemies); n != 1 {
		t.Fatalf("enemies = %d after the first spawn delay, want 1", n)
	}

	killPlayer(w)
	if snap := w.Snapshot(); snap.Enemies != 0 || snap.QueueLen != 0 {
		t.Fatalf("after restart: enemies = %d queue = %d, want 0 and 0", snap.Enemies, snap.QueueLen)
	}

	for i := 0; i < 19; i++ {
		w.Tick(step, input.Input{})
		if len(w.enemies) != 0 {
			t.Fatalf("enemy spawned %v after a restart", time.Duration(i+1)*step)
		}
	}
	if w.Snapshot().QueueLen != 0 {
		t.Fatal("queue refilled before the level start delay")
	}

	w.Tick(step, input.Input{})
	snap := w.Snapshot()
	if snap.QueueLen != 6 || snap.KillsRemaining != 6 || !snap.PlayerAlive || snap.Level != 1 {
		t.Errorf("after reset: %+v", snap)
	}
}

func TestLevelEndAdvancesLevel(t *testing.T) {
	levels := []config.Level{{EnemySpeed: 90, Scouts: 1, SpawnRate: 1}}
	w, _ := newTestWorld(t, levels)
	startPlaying(t, w)

	addScout(w, physics.Vec2{X: 0, Y: 0})
	w.projectiles = append(w.projectiles, &object.Projectile{ID: w.newID(), Player: true})
	w.Tick(frame, input.Input{})

	snap := w.Snapshot()
	if snap.Level != 2 {
		t.Fatalf("level = %d, want 2", snap.Level)
	}
	if snap.LevelSpec.EnemySpeed != 105 {
		t.Errorf("enemy speed = %v, want 105", snap.LevelSpec.EnemySpeed)
	}

	w.Tick(w.cfg.LevelStartDelay, input.Input{})
	if snap := w.Snapshot(); snap.QueueLen != 1 || snap.KillsRemaining != 1 {
		t.Errorf("next level queue = %d remaining = %d", snap.QueueLen, snap.KillsRemaining)
	}
	if w.spawner.queue[0].Speed != 105 {
		t.Errorf("queued speed = %v, want 105", w.spawner.queue[0].Speed)
	}
}

func TestNewLevelScalesPastLastDefined(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	tests := []struct {
		number int
		speed  float64
		scouts int
	}{
		{0, 90, 5},
		{1, 100, 8},
		{2, 110, 12},
		{3, 125, 12},
		{5, 155, 12},
	}
	for _, tt := range tests {
		l := w.newLevel(tt.number)
		if l.spec.EnemySpeed != tt.speed || l.spec.Scouts != tt.scouts {
			t.Errorf("newLevel(%d) = %+v, want speed %v scouts %d", tt.number, l.spec, tt.speed, tt.scouts)
		}
	}
	if w.levels[2].EnemySpeed != 110 {
		t.Error("level table mutated")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	startPlaying(t, w)

	w.Tick(frame, input.Input{Pause: true})
	if w.State() != StatePaused {
		t.Fatalf("state = %v, want paused", w.State())
	}
	pos := w.player.Pos
	spawn := w.spawner.timer.Elapsed()

	w.Tick(time.Second, input.Input{Up: true})
	if w.player.Pos != pos || w.spawner.timer.Elapsed() != spawn {
		t.Error("simulation advanced while paused")
	}

	w.Tick(frame, input.Input{Pause: true})
	if w.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", w.State())
	}
	w.Tick(frame, input.Input{Up: true})
	if w.player.Pos == pos {
		t.Error("player did not move after resuming")
	}
}
