package ecs

// ChangeKind classifies one entry of a store's change log.
type ChangeKind uint8

const (
	Inserted ChangeKind = iota
	Modified
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Change identifies one mutation of a component store slot.
type Change struct {
	Kind   ChangeKind
	Entity EntityID
}

// Cursor is a per-consumer read position into a store's change log. Create
// one with Store.Register; every cursor sees every change exactly once.
type Cursor struct {
	next uint64 // absolute log index of the next unread change
}
