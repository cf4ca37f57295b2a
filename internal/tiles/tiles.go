// Package tiles holds the grid coordinate, the world transform and the
// blocking lookup table shared by the gameplay plugins.
package tiles

import (
	"fmt"

	"github.com/plus3/tilequest/ecs"
)

const NAME = "tiles"

const (
	// SpriteDim is the edge of one sheet tile in pixels.
	SpriteDim = 16
	// SpriteScale is how much sprites are scaled up on screen.
	SpriteScale = 6.0
)

// TileCoordinate is a grid position. Z only orders drawing.
type TileCoordinate struct {
	X, Y, Z int64
}

// Eq2D compares the grid cell, ignoring draw order.
func (c TileCoordinate) Eq2D(o TileCoordinate) bool {
	return c.X == o.X && c.Y == o.Y
}

// Add returns the coordinate moved by dx, dy.
func (c TileCoordinate) Add(dx, dy int64) TileCoordinate {
	return TileCoordinate{X: c.X + dx, Y: c.Y + dy, Z: c.Z}
}

func (c TileCoordinate) String() string {
	return fmt.Sprintf("TileCoordinate: x: %d, y: %d, z: %d", c.X, c.Y, c.Z)
}

// Vec3 is a world-space position. Y grows upwards.
type Vec3 struct {
	X, Y, Z float64
}

// Lerp interpolates from v to o by t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// ToWorld maps the coordinate to world space for tiles of dim pixels drawn at scale.
func (c TileCoordinate) ToWorld(dim int, scale float64) Vec3 {
	step := float64(dim) * scale
	return Vec3{
		X: float64(c.X) * step,
		Y: float64(c.Y) * step,
		Z: float64(c.Z),
	}
}

// World is ToWorld with the game's sprite size and scale.
func (c TileCoordinate) World() Vec3 {
	return c.ToWorld(SpriteDim, SpriteScale)
}

// Transform places a sprite in world space. Scale multiplies SpriteScale,
// Rotation is in radians and Alpha in [0,1].
type Transform struct {
	Position Vec3
	Scale    float64
	Rotation float64
	Alpha    float64
}

// NewTransform returns an unrotated, opaque transform at the coordinate.
func NewTransform(c TileCoordinate) Transform {
	return Transform{Position: c.World(), Scale: 1, Alpha: 1}
}

// ResetEffects drops any scale, rotation or fade applied by an animation.
func (t *Transform) ResetEffects() {
	t.Scale = 1
	t.Rotation = 0
	t.Alpha = 1
}

// Tile marks every grid entity.
type Tile struct{}

// BlockingTile cannot be walked onto.
type BlockingTile struct{}

// DoorTile marks doors.
type DoorTile struct{}

// TriggerTile marks levers and other switches.
type TriggerTile struct{}

// InteractableTile marks tiles that react to an interaction.
type InteractableTile struct{}

// ExfilTile is a level exit.
type ExfilTile struct{}

// LevelTile belongs to the active level and is despawned with it.
type LevelTile struct{}

// Register adds the tile components to the app's registry.
func Register(app *ecs.App) {
	ecs.Register[TileCoordinate](app)
	ecs.Register[Transform](app)
	ecs.Register[Tile](app)
	ecs.Register[BlockingTile](app)
	ecs.Register[DoorTile](app)
	ecs.Register[TriggerTile](app)
	ecs.Register[InteractableTile](app)
	ecs.Register[ExfilTile](app)
	ecs.Register[LevelTile](app)
}
