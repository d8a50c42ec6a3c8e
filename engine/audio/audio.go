// Package audio plays positional sound effects for simulation events.
// Volume falls off with the distance between the source and the listener
// (the camera); playback goes through a Sink so the simulation never
// depends on a sound device.
package audio

import (
	"math"

	"github.com/1siamBot/outpost/engine/core"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndExplosion  SoundID = "explosion"
	SndMachineGun SoundID = "machine_gun"
	SndLaser      SoundID = "laser"
	SndClaws      SoundID = "claws"
	SndError      SoundID = "error"
)

// MaxDistance is the furthest a positional sound can be heard
const MaxDistance = 45.0

// DefaultListener is where the listener sits when no camera exists
var DefaultListener = core.Vec3{Y: 15}

// Sink plays a sound at a volume in [0, 1]
type Sink interface {
	Play(id SoundID, volume float64)
}

// Silent discards everything. It stands in when no device is available.
type Silent struct{}

func (Silent) Play(SoundID, float64) {}

// Manager routes simulation events to a Sink
type Manager struct {
	MasterVolume float64
	Listener     core.Vec3
	sink         Sink
}

func NewManager(sink Sink, volume float64) *Manager {
	if sink == nil {
		sink = Silent{}
	}
	m := &Manager{Listener: DefaultListener, sink: sink}
	m.SetVolume(volume)
	return m
}

// SetListener updates the listener position for positional audio
func (m *Manager) SetListener(p core.Vec3) {
	m.Listener = p
}

// PlayAt plays a sound emitted at a world position and returns the volume
// it was played at. Out-of-earshot sounds are skipped and return 0.
func (m *Manager) PlayAt(id SoundID, p core.Vec3) float64 {
	vol := CalcVolume(m.Listener.Distance(p)) * m.MasterVolume
	if vol <= 0 {
		return 0
	}
	m.sink.Play(id, vol)
	return vol
}

// Play plays a non-positional sound such as UI feedback
func (m *Manager) Play(id SoundID) {
	if m.MasterVolume > 0 {
		m.sink.Play(id, m.MasterVolume)
	}
}

// OnDeath plays an explosion where the entity died. It is registered as a
// death hook, so it fires once per entity however many times Died arrives.
func (m *Manager) OnDeath(w *core.World, d core.Died) {
	tf := core.TransformOf(w, d.Entity)
	if tf == nil {
		return
	}
	m.PlayAt(SndExplosion, tf.Translation)
}

// OnGunFired plays the weapon's report at the shooter
func (m *Manager) OnGunFired(e core.Event) {
	gf, ok := e.Payload.(core.GunFired)
	if !ok {
		return
	}
	m.PlayAt(weaponSound(gf.Weapon), gf.Transform.Translation)
}

// OnConstructionError plays the rejection buzz
func (m *Manager) OnConstructionError(core.Event) {
	m.Play(SndError)
}

func weaponSound(wt core.WeaponType) SoundID {
	switch wt {
	case core.WeaponLaser:
		return SndLaser
	case core.WeaponClaws:
		return SndClaws
	}
	return SndMachineGun
}

// CalcVolume maps a listener distance to a volume. Sounds beyond
// MaxDistance are silent; closer ones fall off faster than linear.
func CalcVolume(dist float64) float64 {
	if dist > MaxDistance {
		return 0
	}
	vol := 1/math.Log2(dist*5) + 0.05
	return clamp01(vol)
}

// SetVolume sets master volume (0-1)
func (m *Manager) SetVolume(v float64) {
	m.MasterVolume = clamp01(v)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
