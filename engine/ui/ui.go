package ui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/command"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
	"github.com/1siamBot/outpost/engine/match"
	"github.com/1siamBot/outpost/engine/notice"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	barBG       = color.RGBA{0, 0, 0, 180}
	sidebarBG   = color.RGBA{20, 20, 40, 220}
	btnNormal   = color.RGBA{60, 60, 100, 255}
	btnActive   = color.RGBA{100, 100, 200, 255}
	btnBorder   = color.RGBA{100, 100, 160, 255}
	textNormal  = color.RGBA{220, 230, 255, 255}
	textDim     = color.RGBA{120, 130, 150, 255}
	textWarning = color.RGBA{255, 120, 100, 255}
)

const (
	buttonH   = 36
	buttonGap = 4
	modeBtnH  = 24
)

var modeLabels = []struct {
	mode  command.Mode
	label string
}{
	{command.ModePanning, "Pan"},
	{command.ModeDestroying, "Demolish"},
	{command.ModeBuildingDefensive, "Defense"},
	{command.ModeBuildingResources, "Mining"},
}

// HUD is the in-match overlay: resource bar, countdown, build menu,
// inspection panel and notices.
type HUD struct {
	ScreenW, ScreenH int
	SidebarWidth     int
	TopBarHeight     int

	Catalog *catalog.Catalog
	Notices *notice.Board
}

func NewHUD(sw, sh int, cat *catalog.Catalog, notices *notice.Board) *HUD {
	return &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		SidebarWidth: 220,
		TopBarHeight: 28,
		Catalog:      cat,
		Notices:      notices,
	}
}

// Resize updates the layout for a new window size
func (h *HUD) Resize(w, hgt int) {
	h.ScreenW = w
	h.ScreenH = hgt
}

// Menu returns the templates listed for a mode
func (h *HUD) Menu(mode command.Mode) []*catalog.Template {
	switch mode {
	case command.ModeBuildingDefensive:
		return h.Catalog.Menu(catalog.Defensive)
	case command.ModeBuildingResources:
		return h.Catalog.Menu(catalog.Generator)
	}
	return nil
}

// ModeCommand switches to mode. Building modes start with the first
// template of their menu selected.
func (h *HUD) ModeCommand(mode command.Mode) (command.Command, bool) {
	cmd := command.Command{Type: command.SetMode, Mode: mode}
	if mode.Building() {
		menu := h.Menu(mode)
		if len(menu) == 0 {
			return command.Command{}, false
		}
		cmd.Template = menu[0].ID
	}
	return cmd, true
}

// SlotCommand picks the slot-th template of the current building menu
func (h *HUD) SlotCommand(mode command.Mode, slot int) (command.Command, bool) {
	menu := h.Menu(mode)
	if slot < 0 || slot >= len(menu) {
		return command.Command{}, false
	}
	return command.Command{Type: command.SetMode, Mode: mode, Template: menu[slot].ID}, true
}

type hudButton struct {
	MenuButton
	cmd command.Command
}

func (h *HUD) buttons(mode command.Mode) []hudButton {
	sx := h.ScreenW - h.SidebarWidth
	y := h.TopBarHeight + 10
	bw := (h.SidebarWidth - 20 - buttonGap) / 2

	var out []hudButton
	for i, ml := range modeLabels {
		cmd, ok := h.ModeCommand(ml.mode)
		if !ok {
			continue
		}
		out = append(out, hudButton{
			MenuButton: MenuButton{
				X: sx + 10 + (i%2)*(bw+buttonGap), Y: y + (i/2)*(modeBtnH+buttonGap),
				W: bw, H: modeBtnH, Text: ml.label,
			},
			cmd: cmd,
		})
	}

	y += 2*(modeBtnH+buttonGap) + 16
	for i, t := range h.Menu(mode) {
		out = append(out, hudButton{
			MenuButton: MenuButton{
				X: sx + 10, Y: y + i*(buttonH+buttonGap),
				W: h.SidebarWidth - 20, H: buttonH,
				Text: fmt.Sprintf("[%d] %s", i+1, t.Name),
			},
			cmd: command.Command{Type: command.SetMode, Mode: mode, Template: t.ID},
		})
	}
	return out
}

// HandleClick resolves a click on the HUD. consumed is true when the click
// landed on the HUD and must not reach the board; cmd is non-nil when a
// button was hit.
func (h *HUD) HandleClick(mx, my int, mode command.Mode) (cmd *command.Command, consumed bool) {
	for _, b := range h.buttons(mode) {
		if b.Contains(mx, my) {
			c := b.cmd
			return &c, true
		}
	}
	return nil, h.IsOverHUD(mx, my)
}

// IsOverHUD reports whether a screen point is covered by the top bar or
// the sidebar
func (h *HUD) IsOverHUD(mx, my int) bool {
	return my < h.TopBarHeight || mx >= h.ScreenW-h.SidebarWidth
}

// Draw renders the HUD for a running or paused match
func (h *HUD) Draw(screen *ebiten.Image, m *match.Match) {
	h.drawTopBar(screen, m)
	h.drawSidebar(screen, m)
	h.drawInspected(screen, m)
	h.drawNotices(screen)
}

func (h *HUD) drawTopBar(screen *ebiten.Image, m *match.Match) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), barBG, false)
	drawText(screen, ResourceLine(m.Economy.Holdings()), 10, 8, textNormal)

	cd := Countdown(m.Remaining())
	drawText(screen, cd, h.ScreenW-h.SidebarWidth-textWidth(cd)-10, 8, textNormal)
}

func (h *HUD) drawSidebar(screen *ebiten.Image, m *match.Match) {
	sx := float32(h.ScreenW - h.SidebarWidth)
	vector.DrawFilledRect(screen, sx, float32(h.TopBarHeight), float32(h.SidebarWidth), float32(h.ScreenH-h.TopBarHeight), sidebarBG, false)

	holdings := m.Economy.Holdings()
	bs := h.buttons(m.Mode)
	for _, b := range bs {
		isMode := b.H == modeBtnH
		active := b.cmd.Mode == m.Mode && (isMode || b.cmd.Template == m.Selected)
		clr := btnNormal
		if active {
			clr = btnActive
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, false)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, btnBorder, false)

		tpl, ok := h.Catalog.Get(b.cmd.Template)
		if isMode || !ok {
			drawTextCentered(screen, b.Text, b.X+b.W/2, b.Y+b.H/2-LineHeight/2, textNormal)
			continue
		}
		txtClr, costClr := textNormal, textDim
		if !holdings.Ge(tpl.Cost) {
			txtClr, costClr = textDim, textWarning
		}
		drawText(screen, b.Text, b.X+6, b.Y+4, txtClr)
		drawText(screen, tpl.Cost.String(), b.X+6, b.Y+4+LineHeight+2, costClr)
	}

	if tpl, ok := h.Catalog.Get(m.Selected); ok && m.Mode.Building() {
		last := bs[len(bs)-1]
		drawText(screen, tpl.Description, int(sx)+10, last.Y+last.H+12, textDim)
	}
	if m.Mode == command.ModeDestroying {
		drawText(screen, "Click a building to demolish it.", int(sx)+10, h.ScreenH-30, textDim)
		drawText(screen, "Half its cost is refunded.", int(sx)+10, h.ScreenH-30+LineHeight, textDim)
	}
}

func (h *HUD) drawInspected(screen *ebiten.Image, m *match.Match) {
	if m.Inspected == core.NoEntity || !core.IsAlive(m.World, m.Inspected) {
		return
	}
	bld := core.BuildingOf(m.World, m.Inspected)
	if bld == nil {
		return
	}
	name := bld.Template
	var lines []string
	if tpl, ok := h.Catalog.Get(bld.Template); ok {
		name = tpl.Name
		if tpl.Defensive != nil {
			lines = append(lines, fmt.Sprintf("Damage: %d every %s, range %.0f",
				tpl.Defensive.Damage, tpl.Defensive.Cooldown, tpl.Defensive.Range))
		}
		if g := tpl.Generator; g != nil {
			lines = append(lines, fmt.Sprintf("Produces: %s every %s",
				economy.Single(g.Kind, g.Amount), g.Period))
		}
	}
	lines = append([]string{name, HealthLine(core.HealthOf(m.World, m.Inspected))}, lines...)

	panelH := 12 + len(lines)*(LineHeight+4)
	py := h.ScreenH - panelH
	vector.DrawFilledRect(screen, 0, float32(py), 320, float32(panelH), barBG, false)
	for i, l := range lines {
		drawText(screen, l, 10, py+6+i*(LineHeight+4), textNormal)
	}
}

func (h *HUD) drawNotices(screen *ebiten.Image) {
	if h.Notices == nil {
		return
	}
	cx := (h.ScreenW - h.SidebarWidth) / 2
	y := h.TopBarHeight + 16
	for _, n := range h.Notices.Active() {
		w := textWidth(n.Text) + 20
		a := n.Alpha()
		vector.DrawFilledRect(screen, float32(cx-w/2), float32(y-4), float32(w), LineHeight+8, color.RGBA{0, 0, 0, uint8(160 * a)}, false)
		drawTextAlpha(screen, n.Text, cx-textWidth(n.Text)/2, y, textWarning, a)
		y += LineHeight + 12
	}
}
