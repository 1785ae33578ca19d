package aggregates

// ReferenceGuard names a parent table whose rows cannot be deleted while a
// dependent table still points at them.
type ReferenceGuard struct {
	Parent    string
	Dependent string
	Column    string
}

// Contract describes what an aggregate owns. Every write method of an
// aggregate with OwnsTx set opens its own transaction; callers never pass one in.
type Contract struct {
	Name   string
	OwnsTx bool
	Guards []ReferenceGuard
	Notes  string
}

// Aggregate is the common marker for all aggregate contracts.
type Aggregate interface {
	Contract() Contract
}

// GuardFor returns the guard protecting parent, if any.
func (c Contract) GuardFor(parent string) (ReferenceGuard, bool) {
	for _, g := range c.Guards {
		if g.Parent == parent {
			return g, true
		}
	}
	return ReferenceGuard{}, false
}
