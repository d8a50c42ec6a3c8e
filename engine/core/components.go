package core

import (
	"fmt"
	"time"

	"github.com/1siamBot/outpost/engine/economy"
)

// DeathGrace is how long a dead entity lingers before it is despawned
const DeathGrace = time.Second

// Transform is the world-space placement of an entity
type Transform struct {
	Translation Vec3
	Facing      float64 // yaw in radians
}

func (t *Transform) Type() ComponentType { return CompTransform }

// DistanceTo returns the planar distance to another transform
func (t *Transform) DistanceTo(o *Transform) float64 {
	return t.Translation.PlanarDistance(o.Translation)
}

// Health tracks hit points and the post-death grace period
type Health struct {
	Max           int
	HP            int
	Grace         *Timer
	DeathNotified bool
}

// NewHealth creates full health with a paused grace timer
func NewHealth(max int) *Health {
	grace := NewTimer(DeathGrace, TimerOnce)
	grace.Pause()
	return &Health{Max: max, HP: max, Grace: grace}
}

func (h *Health) Type() ComponentType { return CompHealth }

// Alive reports whether the entity has hit points left and has not been
// declared dead. Demolished buildings die with hit points remaining.
func (h *Health) Alive() bool { return h.HP > 0 && !h.DeathNotified }

func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	if h.HP <= 0 {
		return 0
	}
	return float64(h.HP) / float64(h.Max)
}

// TargetSelecting holds a sticky reference to the current opponent
type TargetSelecting struct {
	Target EntityID
	Range  float64
}

func (t *TargetSelecting) Type() ComponentType { return CompTargetSelecting }

func (t *TargetSelecting) HasTarget() bool { return t.Target != NoEntity }

func (t *TargetSelecting) Clear() { t.Target = NoEntity }

// WeaponType is the cosmetic class of a weapon, used by VFX and audio
type WeaponType uint8

const (
	WeaponMachineGun WeaponType = iota
	WeaponMachineGunMk2
	WeaponLaser
	WeaponClaws
)

var weaponNames = map[WeaponType]string{
	WeaponMachineGun:    "machine_gun",
	WeaponMachineGunMk2: "machine_gun_mk2",
	WeaponLaser:         "laser",
	WeaponClaws:         "claws",
}

func (wt WeaponType) String() string {
	if n, ok := weaponNames[wt]; ok {
		return n
	}
	return fmt.Sprintf("weapon(%d)", uint8(wt))
}

// ParseWeaponType converts a catalog weapon name
func ParseWeaponType(s string) (WeaponType, error) {
	for wt, n := range weaponNames {
		if n == s {
			return wt, nil
		}
	}
	return 0, fmt.Errorf("unknown weapon type %q", s)
}

// DamageDealing fires once per cooldown period while a valid target exists
type DamageDealing struct {
	Damage   int
	Cooldown *Timer
	Weapon   WeaponType
}

// NewDamageDealing creates a weapon with a repeating cooldown
func NewDamageDealing(damage int, cooldown time.Duration, weapon WeaponType) *DamageDealing {
	return &DamageDealing{
		Damage:   damage,
		Cooldown: NewTimer(cooldown, TimerRepeating),
		Weapon:   weapon,
	}
}

func (d *DamageDealing) Type() ComponentType { return CompDamageDealing }

// AlienTarget marks a building that attracts aliens. Priority is stored
// but not read by acquisition.
type AlienTarget struct {
	Priority int
}

func (a *AlienTarget) Type() ComponentType { return CompAlienTarget }

// Alien marks a hostile walker
type Alien struct {
	Speed float64
}

func (a *Alien) Type() ComponentType { return CompAlien }

// Velocity is a planar velocity in world units per second
type Velocity struct {
	Linear Vec3
}

func (v *Velocity) Type() ComponentType { return CompVelocity }

// Collider is the round footprint handed to the physics collaborator
type Collider struct {
	Radius float64
}

func (c *Collider) Type() ComponentType { return CompCollider }

// Building links a constructed entity back to its template
type Building struct {
	Template string
	Cost     economy.ResourceSet // paid at construction, basis of the refund
}

func (b *Building) Type() ComponentType { return CompBuilding }

// ResourceGenerator credits Amount of Kind every time Timer completes
type ResourceGenerator struct {
	Kind   economy.Kind
	Amount uint16
	Timer  *Timer
}

func (g *ResourceGenerator) Type() ComponentType { return CompGenerator }

// MainBase marks the building whose loss ends the match
type MainBase struct{}

func (m *MainBase) Type() ComponentType { return CompMainBase }

// Camera marks the listener/viewpoint entity. It is never a combat
// candidate and survives board cleanup.
type Camera struct{}

func (c *Camera) Type() ComponentType { return CompCamera }

// Typed accessors. Each returns nil when the entity or component is missing.

func TransformOf(w *World, id EntityID) *Transform {
	if c, ok := w.Get(id, CompTransform).(*Transform); ok {
		return c
	}
	return nil
}

func HealthOf(w *World, id EntityID) *Health {
	if c, ok := w.Get(id, CompHealth).(*Health); ok {
		return c
	}
	return nil
}

func TargetingOf(w *World, id EntityID) *TargetSelecting {
	if c, ok := w.Get(id, CompTargetSelecting).(*TargetSelecting); ok {
		return c
	}
	return nil
}

func DamageOf(w *World, id EntityID) *DamageDealing {
	if c, ok := w.Get(id, CompDamageDealing).(*DamageDealing); ok {
		return c
	}
	return nil
}

func VelocityOf(w *World, id EntityID) *Velocity {
	if c, ok := w.Get(id, CompVelocity).(*Velocity); ok {
		return c
	}
	return nil
}

func BuildingOf(w *World, id EntityID) *Building {
	if c, ok := w.Get(id, CompBuilding).(*Building); ok {
		return c
	}
	return nil
}

// IsAlive reports whether the entity exists and is not dying
func IsAlive(w *World, id EntityID) bool {
	h := HealthOf(w, id)
	return h != nil && h.Alive()
}
