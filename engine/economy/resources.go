// Package economy holds the three-resource vector and the player's holdings.
package economy

import (
	"fmt"
	"math"
	"strings"
)

// Kind is one of the fixed resource kinds
type Kind uint8

const (
	Ore Kind = iota
	Gas
	Crystal
	NumKinds
)

var kindNames = [NumKinds]string{"Ore", "Gas", "Crystal"}

func (k Kind) String() string {
	if k < NumKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind accepts a kind name in any case
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown resource kind %q", s)
}

// ResourceSet is an ordered amount per kind. It is partially ordered:
// comparisons are component-wise and two sets with surpluses of different
// kinds are incomparable.
type ResourceSet [NumKinds]uint16

// Of builds a set in Ore, Gas, Crystal order
func Of(ore, gas, crystal uint16) ResourceSet {
	return ResourceSet{ore, gas, crystal}
}

// Single builds a set holding only one kind
func Single(k Kind, amount uint16) ResourceSet {
	var s ResourceSet
	s[k] = amount
	return s
}

func (s ResourceSet) Get(k Kind) uint16 { return s[k] }

// Add sums component-wise, saturating at the uint16 maximum
func (s ResourceSet) Add(o ResourceSet) ResourceSet {
	var r ResourceSet
	for i := range s {
		sum := uint32(s[i]) + uint32(o[i])
		if sum > math.MaxUint16 {
			sum = math.MaxUint16
		}
		r[i] = uint16(sum)
	}
	return r
}

// Sub subtracts component-wise. It panics unless s.Ge(o); amounts never go
// negative.
func (s ResourceSet) Sub(o ResourceSet) ResourceSet {
	if !s.Ge(o) {
		panic(fmt.Sprintf("economy: subtracting %v from %v would go negative", o, s))
	}
	var r ResourceSet
	for i := range s {
		r[i] = s[i] - o[i]
	}
	return r
}

// Half returns each component halved, rounding down
func (s ResourceSet) Half() ResourceSet {
	var r ResourceSet
	for i := range s {
		r[i] = s[i] / 2
	}
	return r
}

// Ge reports whether every component of s is >= the one in o
func (s ResourceSet) Ge(o ResourceSet) bool {
	for i := range s {
		if s[i] < o[i] {
			return false
		}
	}
	return true
}

// Le reports whether every component of s is <= the one in o
func (s ResourceSet) Le(o ResourceSet) bool { return o.Ge(s) }

// Gt reports whether every component of s is strictly greater
func (s ResourceSet) Gt(o ResourceSet) bool {
	for i := range s {
		if s[i] <= o[i] {
			return false
		}
	}
	return true
}

// Lt reports whether every component of s is strictly smaller
func (s ResourceSet) Lt(o ResourceSet) bool { return o.Gt(s) }

// Compare returns -1, 0 or 1 and ok=true when the sets are ordered, and
// ok=false when they are incomparable.
func (s ResourceSet) Compare(o ResourceSet) (int, bool) {
	switch {
	case s == o:
		return 0, true
	case s.Ge(o):
		return 1, true
	case s.Le(o):
		return -1, true
	}
	return 0, false
}

func (s ResourceSet) IsZero() bool { return s == ResourceSet{} }

// Entry is one (kind, amount) pair for display
type Entry struct {
	Kind   Kind
	Amount uint16
}

// Entries lists the set in kind order, optionally dropping zero amounts
func (s ResourceSet) Entries(skipZero bool) []Entry {
	out := make([]Entry, 0, NumKinds)
	for i, v := range s {
		if skipZero && v == 0 {
			continue
		}
		out = append(out, Entry{Kind: Kind(i), Amount: v})
	}
	return out
}

// String renders non-zero entries, e.g. "Ore: 50, Gas: 10"
func (s ResourceSet) String() string {
	parts := make([]string, 0, NumKinds)
	for _, e := range s.Entries(true) {
		parts = append(parts, fmt.Sprintf("%s: %d", e.Kind, e.Amount))
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, ", ")
}
