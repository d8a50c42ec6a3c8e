package core

import (
	"sort"
	"sync/atomic"
)

// EntityID is a unique identifier for game entities. Zero is never issued
// and stands for "no entity".
type EntityID uint64

// NoEntity is the zero EntityID.
const NoEntity EntityID = 0

var entityCounter uint64

// NewEntityID generates a unique entity ID
func NewEntityID() EntityID {
	return EntityID(atomic.AddUint64(&entityCounter, 1))
}

// Component is a marker interface for all components
type Component interface {
	Type() ComponentType
}

// ComponentType identifies the type of component
type ComponentType uint32

const (
	CompTransform ComponentType = iota
	CompHealth
	CompTargetSelecting
	CompDamageDealing
	CompAlienTarget
	CompAlien
	CompVelocity
	CompCollider
	CompBuilding
	CompGenerator
	CompMainBase
	CompCamera
	CompMax
)

// World holds all entities and their components
type World struct {
	entities  map[EntityID]map[ComponentType]Component
	systems   []System
	toRemove  []EntityID
	TickCount uint64
}

// System processes entities each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	return &World{
		entities: make(map[EntityID]map[ComponentType]Component),
	}
}

// Spawn creates a new entity and returns its ID
func (w *World) Spawn(comps ...Component) EntityID {
	id := NewEntityID()
	w.entities[id] = make(map[ComponentType]Component, len(comps))
	for _, c := range comps {
		w.entities[id][c.Type()] = c
	}
	return id
}

// Attach adds a component to an entity
func (w *World) Attach(id EntityID, c Component) {
	if comps, ok := w.entities[id]; ok {
		comps[c.Type()] = c
	}
}

// Get returns a component for an entity, or nil
func (w *World) Get(id EntityID, ct ComponentType) Component {
	if comps, ok := w.entities[id]; ok {
		return comps[ct]
	}
	return nil
}

// Has checks if an entity has a component
func (w *World) Has(id EntityID, ct ComponentType) bool {
	if comps, ok := w.entities[id]; ok {
		_, exists := comps[ct]
		return exists
	}
	return false
}

// Exists reports whether the entity is still in the world. Entities marked
// with Destroy exist until the end of the current tick.
func (w *World) Exists(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Destroy marks an entity for removal at the end of the tick
func (w *World) Destroy(id EntityID) {
	w.toRemove = append(w.toRemove, id)
}

// Despawn removes an entity immediately
func (w *World) Despawn(id EntityID) {
	delete(w.entities, id)
}

// Query returns all entity IDs that have ALL specified component types, in
// ascending ID (spawn) order.
func (w *World) Query(types ...ComponentType) []EntityID {
	var result []EntityID
	for id, comps := range w.entities {
		match := true
		for _, t := range types {
			if _, ok := comps[t]; !ok {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// DespawnAllExcept removes every entity that has none of the kept component
// types and returns how many were removed.
func (w *World) DespawnAllExcept(keep ...ComponentType) int {
	removed := 0
	for id, comps := range w.entities {
		kept := false
		for _, t := range keep {
			if _, ok := comps[t]; ok {
				kept = true
				break
			}
		}
		if !kept {
			delete(w.entities, id)
			removed++
		}
	}
	w.toRemove = w.toRemove[:0]
	return removed
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once
func (w *World) Tick(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	// Clean up destroyed entities
	for _, id := range w.toRemove {
		delete(w.entities, id)
	}
	w.toRemove = w.toRemove[:0]
	w.TickCount++
}

// EntityCount returns the number of alive entities
func (w *World) EntityCount() int {
	return len(w.entities)
}
