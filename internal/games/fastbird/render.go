package fastbird

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/fast-bird/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '▀'
	HeartFull    = '♥'
	HeartEmpty   = '♡'
	BirdColor    = core.ColorBrightYellow
	FoxColor     = core.ColorOrange
	GroundColor  = core.ColorGreen
	HeartColor   = core.ColorBrightRed
	OverlayColor = core.ColorBrightCyan
)

var (
	birdSprite = []string{
		" __",
		"(o>",
		"/_)",
	}
	foxRight = []string{
		"/\\_/\\",
		"(o.o)~",
	}
	foxLeft = []string{
		" /\\_/\\",
		"~(o.o)",
	}
)

// Render draws the current match into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.ctrl == nil {
		return
	}
	snap := g.snap

	ground := groundRow(dst.Height())
	dst.DrawHLine(0, ground, dst.Width(), GroundChar, GroundColor)

	if snap.FoxActive {
		sprite := foxRight
		if snap.FoxFacingLeft {
			sprite = foxLeft
		}
		drawSprite(dst, snap.Fox, sprite, FoxColor)
	}

	// The bird is hidden on the off half of each blink.
	if !snap.Blinking {
		drawSprite(dst, snap.Bird, birdSprite, BirdColor)
	}

	drawHUD(dst, snap)

	switch {
	case snap.Phase == PhaseWon:
		drawMessage(dst, "YOU WIN!", fmt.Sprintf("Score: %d  |  R retry  Esc back", snap.Score))
	case snap.Phase == PhaseLost:
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R retry  Esc back", snap.Score))
	case snap.Paused:
		drawMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawSprite places a sprite so its bottom row rests on the cell above pos
// and its columns are centered on pos.
func drawSprite(dst *core.Screen, pos core.Vec, sprite []string, c core.Color) {
	width := 0
	for _, line := range sprite {
		width = max(width, len([]rune(line)))
	}
	x := int(pos.X/CellW) - width/2
	bottom := int(pos.Y/CellH) - 1

	for i, line := range sprite {
		y := bottom - (len(sprite) - 1 - i)
		col := 0
		for _, r := range line {
			if r != ' ' {
				dst.SetWithColor(x+col, y, r, c)
			}
			col++
		}
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	left := fmt.Sprintf(" %s  Score: %d ", LevelName(snap.Level), snap.Score)
	dst.DrawText(0, 0, left)

	timer := fmt.Sprintf("Time: %s", formatRemaining(snap.TimeRemaining))
	dst.DrawTextCentered(0, timer)

	hearts := Hearts(snap.HeartsVisible, snap.InitialLives)
	dst.DrawTextColor(dst.Width()-len([]rune(hearts))-1, 0, hearts, HeartColor)
}

// Hearts renders filled hearts for remaining lives followed by empty ones.
func Hearts(visible, total int) string {
	visible = core.Clamp(visible, 0, total)
	return strings.Repeat(string(HeartFull), visible) + strings.Repeat(string(HeartEmpty), total-visible)
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// drawMessage draws a message box in the center of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColor(titleX, boxY+1, title, OverlayColor)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
