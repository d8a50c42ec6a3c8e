package match

import (
	"fmt"

	"github.com/1siamBot/outpost/engine/command"
	"github.com/1siamBot/outpost/engine/core"
)

// Submit hands a player command to the match. Commands that change the
// simulation wait in the queue for their tick; the rest apply at once.
func (m *Match) Submit(cmd command.Command) error {
	if cmd.Mutates() {
		if m.state != core.StateInGame {
			return ErrNotRunning
		}
		m.Queue.Schedule(m.tick, cmd)
		return nil
	}
	return m.Apply(cmd)
}

// Click turns a board click at p into the command the current mode calls
// for and submits it.
func (m *Match) Click(p core.Vec3) error {
	cmd := command.Command{X: p.X, Z: p.Z}
	switch {
	case m.Mode.Building() && m.Selected != "":
		cmd.Type = command.Construct
		cmd.Template = m.Selected
	case m.Mode == command.ModeDestroying:
		cmd.Type = command.Demolish
	default:
		cmd.Type = command.Select
	}
	return m.Submit(cmd)
}

// Apply executes a command immediately. Rejections are also raised as
// ConstructionError events by the builder.
func (m *Match) Apply(cmd command.Command) error {
	p := core.Vec3{X: cmd.X, Z: cmd.Z}
	switch cmd.Type {
	case command.Construct:
		if m.state != core.StateInGame {
			return ErrNotRunning
		}
		_, err := m.Builder.Construct(cmd.Template, p)
		return err
	case command.Demolish:
		if m.state != core.StateInGame {
			return ErrNotRunning
		}
		return m.Builder.DemolishAt(p)
	case command.Select:
		m.Inspected = core.NoEntity
		if e, ok := m.Grid.OccupantOf(p); ok && core.IsAlive(m.World, e) {
			m.Inspected = e
		}
		return nil
	case command.SetMode:
		m.Mode = cmd.Mode
		m.Selected = ""
		if cmd.Mode.Building() {
			if _, ok := m.Catalog.Get(cmd.Template); !ok {
				return fmt.Errorf("unknown building template %q", cmd.Template)
			}
			m.Selected = cmd.Template
		}
		return nil
	}
	return fmt.Errorf("unknown command type %s", cmd.Type)
}
