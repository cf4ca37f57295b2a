// Package render draws the sprites of the running level.
package render

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/camera"
	"github.com/plus3/tilequest/internal/sprites"
	"github.com/plus3/tilequest/internal/tiles"
)

const NAME = "render"

var Background = color.RGBA{R: 18, G: 18, B: 24, A: 255}

// Screen is the resource holding the image being drawn this frame.
type Screen struct {
	Image *ebiten.Image
}

// Size returns the screen size, or 0, 0 before the first frame.
func (s *Screen) Size() (int, int) {
	if s == nil || s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	ecs.NewSingleton(app.Storage, Screen{})
	app.AddSystems(ecs.Draw, &ClearSystem{})
	app.AddSystems(ecs.Draw, &SpriteSystem{}, ecs.InState(appstate.Running), ecs.ResourceExists[camera.GameCamera]())
}

// ClearSystem fills the screen with the background colour.
type ClearSystem struct {
	Screen ecs.Singleton[Screen]
}

func (s *ClearSystem) Execute(frame *ecs.UpdateFrame) {
	if screen := s.Screen.Get(); screen != nil && screen.Image != nil {
		screen.Image.Fill(Background)
	}
}

// Item is one sprite queued for drawing.
type Item struct {
	Sprite    sprites.Sprite
	Transform tiles.Transform
}

// SortItems orders items back to front by Z. Equal Z keeps query order.
func SortItems(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(a.Transform.Position.Z, b.Transform.Position.Z)
	})
}

// SpriteSystem draws every Sprite relative to the camera.
type SpriteSystem struct {
	Sprites ecs.Query[struct {
		*sprites.Sprite
		*tiles.Transform
	}]
	Sheet  ecs.Singleton[sprites.Spritesheet]
	Camera ecs.Singleton[camera.GameCamera]
	Screen ecs.Singleton[Screen]

	items []Item
}

func (s *SpriteSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	w, h := screen.Size()
	cam := *s.Camera.Get()

	s.items = s.items[:0]
	for sp := range s.Sprites.Values() {
		s.items = append(s.items, Item{Sprite: *sp.Sprite, Transform: *sp.Transform})
	}
	SortItems(s.items)

	sheet := s.Sheet.Get()
	for _, item := range s.items {
		x, y := cam.ToScreen(item.Transform.Position, w, h)
		if img := sheet.Tile(item.Sprite.Tile); img != nil {
			drawTile(screen.Image, img, item, x, y, cam.Zoom)
		} else {
			drawFallback(screen.Image, item, x, y, cam.Zoom)
		}
	}
}

func drawTile(dst, img *ebiten.Image, item Item, x, y, zoom float64) {
	half := float64(tiles.SpriteDim) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Scale(tiles.SpriteScale*item.Transform.Scale*zoom, tiles.SpriteScale*item.Transform.Scale*zoom)
	op.GeoM.Rotate(item.Transform.Rotation)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(item.Sprite.Color)
	op.ColorScale.ScaleAlpha(float32(item.Transform.Alpha))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}

func drawFallback(dst *ebiten.Image, item Item, x, y, zoom float64) {
	size := float32(tiles.SpriteDim * tiles.SpriteScale * item.Transform.Scale * zoom)
	if size <= 0 {
		return
	}
	c := item.Sprite.Color
	c.A = uint8(float64(c.A) * item.Transform.Alpha)
	vector.DrawFilledRect(dst, float32(x)-size/2, float32(y)-size/2, size, size, c, false)
	ebitenutil.DebugPrintAt(dst, item.Sprite.Tile.Glyph(), int(x)-3, int(y)-8)
}
