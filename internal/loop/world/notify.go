package world

import (
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/event"
	"github.com/tomz197/spaceship/internal/object"
)

// signal is the payload of notifications that carry no data.
type signal struct{}

// mailboxes holds the notifications exchanged during one tick.
// Detectors write in phase one, handlers drain in phase two.
type mailboxes struct {
	spawnerReset  event.Mailbox[config.Level]
	playerSpawn   event.Mailbox[signal]
	playerDeath   event.Mailbox[object.EntityID]
	enemyDeath    event.Mailbox[object.EntityID]
	levelEnd      event.Mailbox[signal]
	levelRestart  event.Mailbox[signal]
	gameOver      event.Mailbox[signal]
	weaponFire    event.Mailbox[object.EntityID]
	showLevelText event.Mailbox[string]
}

func (m *mailboxes) reset() {
	m.spawnerReset.Reset()
	m.playerSpawn.Reset()
	m.playerDeath.Reset()
	m.enemyDeath.Reset()
	m.levelEnd.Reset()
	m.levelRestart.Reset()
	m.gameOver.Reset()
	m.weaponFire.Reset()
	m.showLevelText.Reset()
}
