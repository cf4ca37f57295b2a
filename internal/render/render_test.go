package render

import (
	"testing"

	"github.com/plus3/tilequest/internal/sprites"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/stretchr/testify/assert"
)

func TestSortItemsByZ(t *testing.T) {
	at := func(tile sprites.SpriteSheetTile, z int64) Item {
		return Item{
			Sprite:    sprites.Sprite{Tile: tile},
			Transform: tiles.NewTransform(tiles.TileCoordinate{Z: z}),
		}
	}
	items := []Item{at(sprites.LevelExit01, 3), at(sprites.Player01, 0), at(sprites.Wall, 0), at(sprites.Floor, -1)}
	SortItems(items)

	var order []sprites.SpriteSheetTile
	for _, item := range items {
		order = append(order, item.Sprite.Tile)
	}
	assert.Equal(t, []sprites.SpriteSheetTile{sprites.Floor, sprites.Player01, sprites.Wall, sprites.LevelExit01}, order)
}

func TestScreenSizeBeforeFirstFrame(t *testing.T) {
	var screen *Screen
	w, h := screen.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
}
