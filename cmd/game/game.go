package main

import (
	"fmt"
	"time"

	"github.com/1siamBot/outpost/engine/audio"
	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/command"
	"github.com/1siamBot/outpost/engine/config"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/input"
	"github.com/1siamBot/outpost/engine/match"
	"github.com/1siamBot/outpost/engine/notice"
	"github.com/1siamBot/outpost/engine/render"
	"github.com/1siamBot/outpost/engine/ui"
	"github.com/1siamBot/outpost/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
)

const (
	clicksPerSecond = 8
	clickBurst      = 3
	minimapSize     = 160
	zoomStep        = 1.1
	maxFrame        = 250 * time.Millisecond
)

// Game implements ebiten.Game around one match
type Game struct {
	cfg   *config.Config
	match *match.Match
	loop  *core.GameLoop

	input   *input.InputState
	gate    *input.ClickGate
	camera  *render.Camera
	board   *render.Board
	minimap *render.Minimap
	hud     *ui.HUD
	menus   *ui.MenuSystem
	notices *notice.Board

	audio *audio.Manager
	sink  *audio.BeepSink

	lastFrame time.Time
	quit      bool
	debug     bool
	log       *logrus.Entry
}

func NewGame(cfg *config.Config, cat *catalog.Catalog, assets string) *Game {
	w, h := cfg.Window.Width, cfg.Window.Height
	g := &Game{
		cfg:       cfg,
		match:     match.New(cfg, cat),
		input:     input.NewInputState(),
		gate:      input.NewClickGate(clicksPerSecond, clickBurst),
		camera:    render.NewCamera(w, h),
		minimap:   render.NewMinimap(10, 38, minimapSize),
		menus:     ui.NewMenuSystem(w, h),
		notices:   notice.NewBoard(),
		lastFrame: time.Now(),
		log:       logger.Log.WithField("component", "game"),
	}
	g.loop = core.NewGameLoop(g.match, cfg.TickRate)
	g.board = render.NewBoard(g.camera, cat)
	g.board.Sprites = render.LoadSprites(assets, cat)
	g.hud = ui.NewHUD(w, h, cat, g.notices)

	var sink audio.Sink = audio.Silent{}
	g.sink = audio.NewBeepSink()
	if err := g.sink.Initialize(); err != nil {
		g.log.WithError(err).Warn("audio unavailable, continuing without sound")
		g.sink = nil
	} else {
		sink = g.sink
	}
	g.audio = audio.NewManager(sink, cfg.Volume)

	bus := g.match.Bus
	g.match.OnDeath(g.audio.OnDeath)
	bus.On(core.EvtGunFired, g.audio.OnGunFired)
	bus.On(core.EvtGunFired, g.board.OnGunFired)
	bus.On(core.EvtConstructionError, g.audio.OnConstructionError)
	bus.On(core.EvtConstructionError, g.notices.OnConstructionError)
	bus.On(core.EvtStateChanged, g.onStateChanged)
	return g
}

// Close releases the audio device
func (g *Game) Close() {
	if g.sink != nil {
		g.sink.Cleanup()
	}
}

func (g *Game) onStateChanged(e core.Event) {
	sc, ok := e.Payload.(core.StateChanged)
	if !ok {
		return
	}
	switch {
	case sc.To == core.StateInGame && sc.From == core.StateMainMenu:
		g.camera.CenterOn(g.match.Grid.BaseCenter())
	case sc.To.Terminal():
		g.board.Clear()
		g.notices.Clear()
		g.saveJournal()
	}
}

func (g *Game) saveJournal() {
	if g.cfg.Journal == "" || g.match.Journal == nil {
		return
	}
	if err := g.match.Journal.Save(g.cfg.Journal); err != nil {
		g.log.WithError(err).WithField("path", g.cfg.Journal).Error("save journal")
		return
	}
	g.log.WithFields(logrus.Fields{
		"path":     g.cfg.Journal,
		"commands": len(g.match.Journal.Commands),
	}).Info("journal saved")
}

func (g *Game) Update() error {
	now := time.Now()
	frame := now.Sub(g.lastFrame)
	g.lastFrame = now
	if frame > maxFrame {
		frame = maxFrame
	}

	g.input.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	state := g.match.State()
	if state == core.StateInGame {
		g.updatePlaying(now, frame)
	} else {
		g.loop.Resync()
		g.updateMenus(state, frame)
	}

	g.notices.Update(frame)
	g.board.Update(frame)
	g.audio.SetListener(g.camera.Listener())

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) updateMenus(state core.GameState, frame time.Duration) {
	for _, a := range g.input.Actions {
		switch {
		case a == input.ActPause && state == core.StatePaused:
			g.must(g.match.Resume())
			return
		case a == input.ActConfirm && state == core.StateMainMenu:
			g.must(g.match.StartMatch())
			return
		}
	}

	action := g.menus.Update(frame.Seconds(), state, g.input.MouseX, g.input.MouseY, g.input.LeftJustPressed)
	switch action {
	case ui.MenuStart:
		g.must(g.match.StartMatch())
	case ui.MenuResume:
		g.must(g.match.Resume())
	case ui.MenuRestart:
		g.must(g.match.ReturnToMenu())
		g.must(g.match.StartMatch())
	case ui.MenuQuitToMenu:
		g.must(g.match.ReturnToMenu())
	case ui.MenuExit:
		g.quit = true
	}
}

func (g *Game) updatePlaying(now time.Time, frame time.Duration) {
	m := g.match
	for _, a := range g.input.Actions {
		switch a {
		case input.ActPause:
			g.must(m.Pause())
			return
		case input.ActPan:
			g.submitMode(command.ModePanning)
		case input.ActDestroy:
			g.submitMode(command.ModeDestroying)
		case input.ActDefensiveMenu:
			g.submitMode(command.ModeBuildingDefensive)
		case input.ActResourceMenu:
			g.submitMode(command.ModeBuildingResources)
		default:
			if slot, ok := a.Slot(); ok {
				if cmd, ok := g.hud.SlotCommand(m.Mode, slot); ok {
					g.submit(cmd)
				}
			}
		}
	}

	g.updateCamera(frame)

	if g.input.Clicked() {
		mx, my := g.input.MouseX, g.input.MouseY
		switch {
		case g.minimap.Contains(mx, my):
			extent := g.minimap.Extent(m.Grid)
			g.camera.CenterOn(g.minimap.Unproject(mx, my, m.Grid.BaseCenter(), extent))
		default:
			cmd, consumed := g.hud.HandleClick(mx, my, m.Mode)
			if cmd != nil {
				g.submit(*cmd)
			} else if !consumed && g.gate.Allow(now) {
				if err := m.Click(g.camera.ScreenToWorld(mx, my)); err != nil {
					g.log.WithError(err).Debug("click rejected")
				}
			}
		}
	}

	g.loop.Update()
}

func (g *Game) updateCamera(frame time.Duration) {
	dx, dy := input.PanKeys()
	step := g.camera.Speed * frame.Seconds()
	g.camera.Pan(dx*step, dy*step)

	if g.input.RightPressed {
		g.camera.Pan(-float64(g.input.MouseDX), -float64(g.input.MouseDY))
	}
	if g.input.ScrollY > 0 {
		g.camera.ZoomAt(zoomStep, g.input.MouseX, g.input.MouseY)
	} else if g.input.ScrollY < 0 {
		g.camera.ZoomAt(1/zoomStep, g.input.MouseX, g.input.MouseY)
	}
}

func (g *Game) submitMode(mode command.Mode) {
	if cmd, ok := g.hud.ModeCommand(mode); ok {
		g.submit(cmd)
	}
}

func (g *Game) submit(cmd command.Command) {
	if err := g.match.Submit(cmd); err != nil {
		g.log.WithError(err).WithField("command", cmd.String()).Debug("command rejected")
	}
}

func (g *Game) must(err error) {
	if err != nil {
		g.log.WithError(err).Warn("state change refused")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	m := g.match
	state := m.State()

	if state == core.StateInGame || state == core.StatePaused {
		scene := render.Scene{World: m.World, Grid: m.Grid, Inspected: m.Inspected}
		if tpl, ok := m.Catalog.Get(m.Selected); ok && m.Mode.Building() {
			p := g.camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)
			scene.Hover = &p
			scene.HoverOK = !m.Grid.IsBlocked(p) && m.Economy.CanAfford(tpl.Cost)
		}
		g.board.Draw(screen, scene)
		g.minimap.Draw(screen, scene, g.camera)
		g.hud.Draw(screen, m)
	}
	if state != core.StateInGame {
		g.menus.Draw(screen, state, m.Summary)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  tick %d  entities %d  aliens %d  queued %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), m.Tick(), m.World.EntityCount(), m.Spawner.AlienCount, m.Queue.Len()),
			10, g.camera.ScreenH-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.camera.ScreenW || outsideHeight != g.camera.ScreenH {
		g.camera.Resize(outsideWidth, outsideHeight)
		g.hud.Resize(outsideWidth, outsideHeight)
		g.menus.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
