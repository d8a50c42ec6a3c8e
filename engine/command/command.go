// Package command carries player actions into the simulation. Commands are
// scheduled on fixed ticks so a recorded session replays identically.
package command

import "fmt"

// Type identifies a player command
type Type uint8

const (
	Construct Type = iota
	Demolish
	Select
	SetMode
)

var typeNames = [...]string{"construct", "demolish", "select", "set_mode"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("command(%d)", uint8(t))
}

// Mode is how a board click is interpreted
type Mode uint8

const (
	ModePanning Mode = iota
	ModeDestroying
	ModeBuildingDefensive
	ModeBuildingResources
)

var modeNames = [...]string{"panning", "destroying", "building_defensive", "building_resources"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Building reports whether clicks place the selected template
func (m Mode) Building() bool {
	return m == ModeBuildingDefensive || m == ModeBuildingResources
}

// Command is one player action. X and Z are the world point the player
// clicked; Template is set for Construct and SetMode.
type Command struct {
	Tick     uint64  `msgpack:"t"`
	Type     Type    `msgpack:"k"`
	Template string  `msgpack:"tpl,omitempty"`
	Mode     Mode    `msgpack:"m,omitempty"`
	X        float64 `msgpack:"x"`
	Z        float64 `msgpack:"z"`
}

// Mutates reports whether the command changes simulation state. Only
// those are journaled.
func (c Command) Mutates() bool {
	return c.Type == Construct || c.Type == Demolish
}

func (c Command) String() string {
	switch c.Type {
	case Construct:
		return fmt.Sprintf("%s %s at (%.1f, %.1f) @%d", c.Type, c.Template, c.X, c.Z, c.Tick)
	case SetMode:
		return fmt.Sprintf("%s %s %s", c.Type, c.Mode, c.Template)
	}
	return fmt.Sprintf("%s at (%.1f, %.1f) @%d", c.Type, c.X, c.Z, c.Tick)
}
