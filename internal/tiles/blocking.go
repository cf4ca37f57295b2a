package tiles

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/tilequest/ecs"
)

// BlockingMap is the grid lookup table of blocking tiles, rebuilt every frame.
// Cells are keyed by the full X then the full Y, so any int64 coordinate is
// distinct.
type BlockingMap struct {
	rows  *intmap.Map[int64, *intmap.Map[int64, ecs.EntityId]]
	cells int
}

func NewBlockingMap() BlockingMap {
	return BlockingMap{rows: intmap.New[int64, *intmap.Map[int64, ecs.EntityId]](16)}
}

// Lookup returns the entity blocking the cell, if any.
func (m *BlockingMap) Lookup(c TileCoordinate) (ecs.EntityId, bool) {
	if m.rows == nil {
		return ecs.NoEntity, false
	}
	row, ok := m.rows.Get(c.X)
	if !ok {
		return ecs.NoEntity, false
	}
	return row.Get(c.Y)
}

// Set marks the cell as blocked by e.
func (m *BlockingMap) Set(c TileCoordinate, e ecs.EntityId) {
	if m.rows == nil {
		m.rows = intmap.New[int64, *intmap.Map[int64, ecs.EntityId]](16)
	}
	row, ok := m.rows.Get(c.X)
	if !ok {
		row = intmap.New[int64, ecs.EntityId](8)
		m.rows.Put(c.X, row)
	}
	if !row.Has(c.Y) {
		m.cells++
	}
	row.Put(c.Y, e)
}

// Clear empties the table.
func (m *BlockingMap) Clear() {
	if m.rows != nil {
		m.rows.Clear()
	}
	m.cells = 0
}

// Len returns the number of blocked cells.
func (m *BlockingMap) Len() int {
	return m.cells
}

// BlockingSystem rebuilds the BlockingMap from every BlockingTile.
type BlockingSystem struct {
	Blockers ecs.Query[struct {
		ecs.EntityId
		*TileCoordinate
		*BlockingTile
	}]
	Map ecs.Singleton[BlockingMap]
}

func (s *BlockingSystem) Execute(frame *ecs.UpdateFrame) {
	blocking := s.Map.Get()
	if blocking == nil {
		return
	}
	blocking.Clear()
	for blocker := range s.Blockers.Values() {
		blocking.Set(*blocker.TileCoordinate, blocker.EntityId)
	}
}
