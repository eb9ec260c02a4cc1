package world

import (
	"fmt"
	"time"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/object"
)

// levelState is the current level and the delay before it begins.
type levelState struct {
	number int // 0-based
	spec   config.Level
	start  object.Timer
}

// newLevel returns level number n. Past the last defined level the last
// descriptor is reused with its enemy speed raised by SpeedStep per extra level.
func (w *World) newLevel(n int) levelState {
	last := len(w.levels) - 1
	spec := w.levels[min(n, last)]
	if n > last {
		spec.EnemySpeed += float64(n-last) * w.cfg.SpeedStep
	}
	return levelState{
		number: n,
		spec:   spec,
		start:  object.NewTimer(w.cfg.LevelStartDelay, object.TimerOnce),
	}
}

// tickLevel starts the level once its start delay has passed.
func (w *World) tickLevel(dt time.Duration) {
	w.level.start.Tick(dt)
	if !w.level.start.JustFinished() {
		return
	}
	w.log.Info("start level", "level", w.level.number+1, "speed", w.level.spec.EnemySpeed)
	w.mail.showLevelText.Send(fmt.Sprintf("LEVEL %d", w.level.number+1))
	w.mail.playerSpawn.Send(signal{})
	w.mail.spawnerReset.Send(w.level.spec)
}

// onLevelEnd moves on to the next level.
func (w *World) onLevelEnd() {
	if !w.mail.levelEnd.Pending() {
		return
	}
	w.level = w.newLevel(w.level.number + 1)
	w.log.Info("level complete", "next", w.level.number+1, "score", w.score)
}

// onLevelRestart replays the current level's start delay. The level number
// is unchanged.
func (w *World) onLevelRestart() {
	if !w.mail.levelRestart.Pending() {
		return
	}
	w.level.start.Reset()
}

// onShowLevelText displays the latest level banner.
func (w *World) onShowLevelText() {
	text, ok := w.mail.showLevelText.Latest()
	if !ok {
		return
	}
	w.effects = append(w.effects, object.NewLevelText(text))
}

// onGameOver ends the play-through and returns to the title screen.
func (w *World) onGameOver(out *Outcome) {
	if !w.mail.gameOver.Pending() || w.gameOverSent {
		return
	}
	w.gameOverSent = true
	w.state = StateIdle
	clear(w.projectiles)
	w.projectiles = w.projectiles[:0]

	out.GameOver = true
	out.Score = w.score
	out.Level = w.level.number + 1
	w.log.Info("game over", "score", w.score, "level", w.level.number+1)
}
