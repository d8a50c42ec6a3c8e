package economy

// DefaultGrant is what a player holds at the start of a match
var DefaultGrant = Of(100, 10, 0)

// Economy is the player's current holdings. Construction and demolition
// spend and refund; generators credit.
type Economy struct {
	initial  ResourceSet
	holdings ResourceSet
}

// New creates an economy holding DefaultGrant
func New() *Economy {
	return NewWith(DefaultGrant)
}

// NewWith creates an economy with a custom opening grant
func NewWith(initial ResourceSet) *Economy {
	return &Economy{initial: initial, holdings: initial}
}

// Reset restores the opening grant
func (e *Economy) Reset() {
	e.holdings = e.initial
}

// Holdings returns a copy of the current amounts
func (e *Economy) Holdings() ResourceSet { return e.holdings }

// CanAfford reports whether every held amount covers the cost
func (e *Economy) CanAfford(cost ResourceSet) bool {
	return e.holdings.Ge(cost)
}

// Spend subtracts cost. Callers must check CanAfford first; an unaffordable
// spend panics.
func (e *Economy) Spend(cost ResourceSet) {
	e.holdings = e.holdings.Sub(cost)
}

// Credit adds amount of one kind
func (e *Economy) Credit(amount uint16, k Kind) {
	e.holdings = e.holdings.Add(Single(k, amount))
}

// Refund returns half of a paid cost, rounded down per kind
func (e *Economy) Refund(paid ResourceSet) ResourceSet {
	back := paid.Half()
	e.holdings = e.holdings.Add(back)
	return back
}

// Entries lists holdings for the resource bar
func (e *Economy) Entries(skipZero bool) []Entry {
	return e.holdings.Entries(skipZero)
}
