package ui

import (
	"image/color"
	"math"

	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/match"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MenuAction is what a menu click asks the game to do
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuStart
	MenuResume
	MenuRestart
	MenuQuitToMenu
	MenuExit
)

// MenuButton represents a clickable menu button
type MenuButton struct {
	X, Y, W, H int
	Text       string
	Disabled   bool
}

// Contains reports whether a screen point is on the button
func (b MenuButton) Contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

type menuEntry struct {
	MenuButton
	action MenuAction
}

// MenuSystem draws the full-screen menus: main menu, pause and the two
// end screens.
type MenuSystem struct {
	ScreenW int
	ScreenH int
	Tick    float64

	hoverIdx int
}

var (
	menuBG      = color.RGBA{8, 8, 16, 255}
	menuPanel   = color.RGBA{15, 15, 30, 230}
	menuBorder  = color.RGBA{0, 140, 200, 255}
	menuAccent  = color.RGBA{0, 200, 255, 255}
	menuBtnNorm = color.RGBA{25, 35, 55, 240}
	menuBtnHov  = color.RGBA{35, 55, 90, 255}
	menuText    = color.RGBA{200, 220, 255, 255}
	menuRed     = color.RGBA{220, 50, 50, 255}
	menuGreen   = color.RGBA{50, 220, 80, 255}
)

func NewMenuSystem(screenW, screenH int) *MenuSystem {
	return &MenuSystem{ScreenW: screenW, ScreenH: screenH, hoverIdx: -1}
}

// Resize updates the layout for a new window size
func (ms *MenuSystem) Resize(w, h int) {
	ms.ScreenW = w
	ms.ScreenH = h
}

// Update tracks hover and returns the action of a clicked button
func (ms *MenuSystem) Update(dt float64, state core.GameState, mx, my int, clicked bool) MenuAction {
	ms.Tick += dt
	entries := ms.entries(state)
	ms.hoverIdx = -1
	for i, e := range entries {
		if e.Contains(mx, my) && !e.Disabled {
			ms.hoverIdx = i
		}
	}
	if clicked && ms.hoverIdx >= 0 {
		return entries[ms.hoverIdx].action
	}
	return MenuNone
}

func (ms *MenuSystem) entries(state core.GameState) []menuEntry {
	type item struct {
		text   string
		action MenuAction
	}
	var items []item
	startY := ms.ScreenH/2 - 20
	switch state {
	case core.StateMainMenu:
		items = []item{{"START", MenuStart}, {"EXIT", MenuExit}}
	case core.StatePaused:
		items = []item{{"RESUME", MenuResume}, {"QUIT TO MENU", MenuQuitToMenu}}
	case core.StateVictory, core.StateGameOver:
		items = []item{{"PLAY AGAIN", MenuRestart}, {"MAIN MENU", MenuQuitToMenu}}
		startY = ms.ScreenH/2 + 90
	default:
		return nil
	}

	cx := ms.ScreenW / 2
	bw, bh, gap := 240, 36, 8
	out := make([]menuEntry, len(items))
	for i, it := range items {
		out[i] = menuEntry{
			MenuButton: MenuButton{X: cx - bw/2, Y: startY + i*(bh+gap), W: bw, H: bh, Text: it.text},
			action:     it.action,
		}
	}
	return out
}

// Draw renders the menu for state. summary is only read on end screens.
func (ms *MenuSystem) Draw(screen *ebiten.Image, state core.GameState, summary *match.Summary) {
	switch state {
	case core.StateMainMenu:
		screen.Fill(menuBG)
		ms.drawAnimatedBG(screen)
		ms.drawTitle(screen)
	case core.StatePaused:
		ms.drawPanel(screen, 300, 200)
		drawTextCentered(screen, "PAUSED", ms.ScreenW/2, ms.ScreenH/2-80, menuText)
	case core.StateVictory, core.StateGameOver:
		ms.drawEndScreen(screen, state, summary)
	default:
		return
	}
	for i, e := range ms.entries(state) {
		ms.drawMenuButton(screen, e.MenuButton, i == ms.hoverIdx)
	}
}

func (ms *MenuSystem) drawTitle(screen *ebiten.Image) {
	cx := ms.ScreenW / 2
	ty := ms.ScreenH/2 - 120
	title := "OUTPOST"
	subtitle := "Hold the line until extraction"

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			drawTextCentered(screen, title, cx+dx, ty+dy, menuText)
		}
	}
	pulse := 0.7 + 0.3*math.Sin(ms.Tick*2)
	lineY := float32(ty + 20)
	vector.DrawFilledRect(screen, float32(cx-120), lineY, 240, 2, menuAccent, false)
	vector.DrawFilledRect(screen, float32(cx-120), lineY-1, 240, 4, color.RGBA{0, 180, 255, uint8(40 * pulse)}, false)
	drawTextCentered(screen, subtitle, cx, ty+30, menuText)
}

func (ms *MenuSystem) drawAnimatedBG(screen *ebiten.Image) {
	t := ms.Tick
	gridClr := color.RGBA{0, 80, 120, 15}
	for i := 0; i < 20; i++ {
		x := float32(math.Mod(float64(i)*70+t*20, float64(ms.ScreenW)))
		vector.StrokeLine(screen, x, 0, x, float32(ms.ScreenH), 1, gridClr, false)
	}
	for i := 0; i < 12; i++ {
		y := float32(math.Mod(float64(i)*65+t*15, float64(ms.ScreenH)))
		vector.StrokeLine(screen, 0, y, float32(ms.ScreenW), y, 1, gridClr, false)
	}
	for i := 0; i < 30; i++ {
		px := float32(math.Mod(float64(i)*43.7+t*10+float64(i*i)*0.3, float64(ms.ScreenW)))
		py := float32(math.Mod(float64(i)*67.3+t*5+float64(i)*1.7, float64(ms.ScreenH)))
		alpha := uint8(20 + 20*math.Sin(t*2+float64(i)))
		vector.DrawFilledCircle(screen, px, py, 1.5, color.RGBA{0, 180, 255, alpha}, false)
	}
}

func (ms *MenuSystem) drawEndScreen(screen *ebiten.Image, state core.GameState, summary *match.Summary) {
	ms.drawPanel(screen, 420, 360)

	cx := ms.ScreenW / 2
	ty := ms.ScreenH/2 - 150
	resultClr := menuRed
	if state == core.StateVictory {
		resultClr = menuGreen
	}
	title := OutcomeTitle(state)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			drawTextCentered(screen, title, cx+dx, ty+dy, menuText)
		}
	}
	vector.DrawFilledRect(screen, float32(cx-80), float32(ty+18), 160, 3, resultClr, false)

	lines := SummaryLines(summary)
	for i, line := range lines {
		drawText(screen, line, cx-170, ty+40+i*22, menuText)
	}
}

func (ms *MenuSystem) drawPanel(screen *ebiten.Image, w, h int) {
	vector.DrawFilledRect(screen, 0, 0, float32(ms.ScreenW), float32(ms.ScreenH), color.RGBA{0, 0, 0, 160}, false)
	px := float32(ms.ScreenW/2 - w/2)
	py := float32(ms.ScreenH/2 - h/2)
	vector.DrawFilledRect(screen, px, py, float32(w), float32(h), menuPanel, false)
	vector.StrokeRect(screen, px, py, float32(w), float32(h), 2, menuBorder, false)
}

func (ms *MenuSystem) drawMenuButton(screen *ebiten.Image, b MenuButton, hovered bool) {
	clr := menuBtnNorm
	borderClr := color.RGBA{40, 70, 120, 200}
	if hovered {
		clr = menuBtnHov
		borderClr = menuAccent
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, borderClr, false)
	drawTextCentered(screen, b.Text, b.X+b.W/2, b.Y+b.H/2-LineHeight/2, menuText)
}
