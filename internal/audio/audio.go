// Package audio synthesises the game's sound effects.
package audio

// Effect identifies a sound the simulation can request.
type Effect int

const (
	Shoot Effect = iota
	EnemyExplosion
	PlayerExplosion
)

func (e Effect) String() string {
	switch e {
	case Shoot:
		return "shoot"
	case EnemyExplosion:
		return "enemy_explosion"
	case PlayerExplosion:
		return "player_explosion"
	default:
		return "unknown"
	}
}

// Sink plays effects. Play must not block the caller.
type Sink interface {
	Play(e Effect)
}

// Nop is a Sink that discards every effect. Remote sessions use it since
// they have no speaker.
type Nop struct{}

func (Nop) Play(Effect) {}
