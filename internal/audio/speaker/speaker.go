// Package speaker plays the game's effects on the local sound card. Only the local
// game imports it; servers use audio.Nop.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	beepspeaker "github.com/gopxl/beep/speaker"

	"github.com/tomz197/spaceship/internal/audio"
)

const sampleRate = beep.SampleRate(48000)

// Manager plays effects on the local speaker through a single mixer.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	initialized bool
}

// New creates a manager with the given linear gain in [0, 1].
func New(gain float64) *Manager {
	return &Manager{
		mixer: &beep.Mixer{},
		gain:  gain,
	}
}

// Initialize opens the sound device. Safe to call more than once.
func (sm *Manager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := beepspeaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	beepspeaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues the effect on the mixer. Effects requested before
// Initialize are dropped.
func (sm *Manager) Play(e audio.Effect) {
	sm.mu.Lock()
	ready := sm.initialized
	sm.mu.Unlock()
	if !ready {
		return
	}

	s := audio.Build(e, sampleRate, sm.gain)
	// The mixer is read by the speaker goroutine.
	beepspeaker.Lock()
	sm.mixer.Add(s)
	beepspeaker.Unlock()
}

// Close silences all pending effects and releases the sound device.
func (sm *Manager) Close() {
	sm.mu.Lock()
	wasInitialized := sm.initialized
	sm.initialized = false
	sm.mu.Unlock()

	if !wasInitialized {
		return
	}
	beepspeaker.Clear()
	beepspeaker.Close()
}

var _ audio.Sink = (*Manager)(nil)
