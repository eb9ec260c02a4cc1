package object

import (
	"unicode/utf8"

	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/physics"
)

// LevelText is a banner shown in the middle of the playfield that hides
// itself after config.LevelTextDuration.
type LevelText struct {
	Value string
	fade  Timer
}

// NewLevelText creates a banner with the given text.
func NewLevelText(value string) *LevelText {
	return &LevelText{
		Value: value,
		fade:  NewTimer(config.LevelTextDuration, TimerOnce),
	}
}

// Update counts down the banner's lifetime.
func (t *LevelText) Update(ctx UpdateContext) (bool, error) {
	t.fade.Tick(ctx.Delta)
	return t.fade.Finished(), nil
}

// Draw writes the banner centred on the playfield. It dims during the
// second half of its lifetime.
func (t *LevelText) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	center := ToCanvas(physics.Vec2{})
	col, row := ctx.Canvas.LogicalToTerminal(center.X, center.Y)
	n := utf8.RuneCountInString(t.Value)
	col -= n / 2
	if col < 1 {
		col = 1
	}

	style := draw.TextBold
	if t.fade.FractionRemaining() < 0.5 {
		style = draw.TextDim
	}
	ctx.Writer.WriteAt(col, row, style+t.Value+draw.ColorReset)
	ctx.Canvas.MarkTextDirty(col, row, n)
	return nil
}
