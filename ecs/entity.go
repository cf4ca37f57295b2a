package ecs

import "strconv"

// EntityId is a stable handle to an entity. Ids are handed out sequentially by
// a Storage, are never reused, and stay valid while components are added to or
// removed from the entity.
type EntityId uint64

// NoEntity never refers to a live entity.
const NoEntity EntityId = 0

func (e EntityId) String() string {
	return "entity#" + strconv.FormatUint(uint64(e), 10)
}

// entityLocation is where an entity's components currently live.
type entityLocation struct {
	archetype *Archetype
	row       uint32
}
