package sprites

import (
	"fmt"
	"image"
	"strings"
)

const (
	// SheetColumns and SheetRows describe the monochrome atlas.
	SheetColumns = 49
	SheetRows    = 22
	// Gap is the spacing between atlas tiles in pixels.
	Gap = 1
)

// SpriteSheetTile names an atlas tile.
type SpriteSheetTile uint8

const (
	Player01 SpriteSheetTile = iota
	LevelExit01
	OpenDoor1
	MechanicDoor
	BottomLeverLeft
	BottomLeverRight
	Heart
	GoldCoin
	Wall
	Floor
)

var sheetTiles = []struct {
	name     string
	row, col int
	glyph    string
}{
	Player01:         {"Player01", 9, 30, "@"},
	LevelExit01:      {"LevelExit01", 4, 35, ">"},
	OpenDoor1:        {"OpenDoor1", 9, 4, "/"},
	MechanicDoor:     {"MechanicDoor", 9, 3, "+"},
	BottomLeverLeft:  {"BottomLeverLeft", 10, 2, "\\"},
	BottomLeverRight: {"BottomLeverRight", 10, 3, "/"},
	Heart:            {"Heart", 10, 39, "h"},
	GoldCoin:         {"GoldCoin", 7, 41, "$"},
	Wall:             {"Wall", 13, 0, "#"},
	Floor:            {"Floor", 0, 1, "."},
}

func (t SpriteSheetTile) String() string {
	if int(t) < len(sheetTiles) {
		return sheetTiles[t].name
	}
	return "SpriteSheetTile(?)"
}

// Index is the row-major atlas index of the tile.
func (t SpriteSheetTile) Index() int {
	info := sheetTiles[t]
	return info.row*SheetColumns + info.col
}

// Glyph is drawn when no atlas image is available.
func (t SpriteSheetTile) Glyph() string {
	return sheetTiles[t].glyph
}

// SourceRect is the pixel rectangle of atlas index i for tiles of dim pixels.
func SourceRect(i, dim int) image.Rectangle {
	col, row := i%SheetColumns, i/SheetColumns
	x, y := col*(dim+Gap), row*(dim+Gap)
	return image.Rect(x, y, x+dim, y+dim)
}

// ParseTile looks a tile up by name, ignoring case.
func ParseTile(name string) (SpriteSheetTile, error) {
	for i, info := range sheetTiles {
		if strings.EqualFold(info.name, name) {
			return SpriteSheetTile(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sprite tile %q", name)
}

// Tiles lists every named tile.
func Tiles() []SpriteSheetTile {
	out := make([]SpriteSheetTile, len(sheetTiles))
	for i := range sheetTiles {
		out[i] = SpriteSheetTile(i)
	}
	return out
}
