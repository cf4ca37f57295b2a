// Package sprites spawns tile entities from SpawnSprite events and owns the
// sprite atlas.
package sprites

import (
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/health"
	"github.com/plus3/tilequest/internal/interaction"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/plus3/tilequest/internal/tutorial"
	"github.com/rotisserie/eris"
)

const NAME = "sprites"

const (
	popupDuration = 250 * time.Millisecond

	playerHearts    = 1
	playerMaxHearts = 3
)

var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Sprite draws an atlas tile tinted by Color.
type Sprite struct {
	Tile  SpriteSheetTile
	Color color.RGBA
}

type InteractionRole uint8

const (
	NoInteraction InteractionRole = iota
	Source
	Target
)

// SpawnSprite asks for a tile entity. A zero Color means white. Coins and
// Hearts set the pickup value of coin and heart tiles, defaulting to 1.
type SpawnSprite struct {
	Coordinate tiles.TileCoordinate
	Tile       SpriteSheetTile
	Color      color.RGBA
	Tutorial   bool
	Role       InteractionRole
	Id         interaction.InteractionId
	Coins      int64
	Hearts     uint
	Popup      bool
}

// Spritesheet is the atlas resource. Image is nil when loading failed and
// the renderer draws the fallback.
type Spritesheet struct {
	Path  string
	Image *ebiten.Image
	cache map[SpriteSheetTile]*ebiten.Image
}

// Tile returns the atlas sub-image of t, or nil without an atlas.
func (s *Spritesheet) Tile(t SpriteSheetTile) *ebiten.Image {
	if s == nil || s.Image == nil {
		return nil
	}
	if img, ok := s.cache[t]; ok {
		return img
	}
	if s.cache == nil {
		s.cache = make(map[SpriteSheetTile]*ebiten.Image)
	}
	img := s.Image.SubImage(SourceRect(t.Index(), tiles.SpriteDim)).(*ebiten.Image)
	s.cache[t] = img
	return img
}

// LoadSpritesheet decodes the atlas at path and checks it covers the sheet grid.
func LoadSpritesheet(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load sprite sheet %s", path)
	}
	need := SourceRect(SheetColumns*SheetRows-1, tiles.SpriteDim).Max
	if size := img.Bounds().Size(); size.X < need.X || size.Y < need.Y {
		return nil, eris.Errorf("sprite sheet %s is %dx%d, expected at least %dx%d", path, size.X, size.Y, need.X, need.Y)
	}
	return img, nil
}

type Plugin struct {
	// SheetPath is the atlas image. Empty skips loading.
	SheetPath string
}

func (p Plugin) Build(app *ecs.App) {
	ecs.Register[Sprite](app)
	logger := logging.For(NAME)

	app.AddSystems(ecs.Startup, &loadSheetSystem{path: p.SheetPath, logger: logger})
	app.AddSystems(ecs.Update, &SpawnSystem{logger: logger}, ecs.InState(appstate.Running))
}

type loadSheetSystem struct {
	Sheet  ecs.Singleton[Spritesheet]
	path   string
	logger *log.Logger
}

func (s *loadSheetSystem) Execute(frame *ecs.UpdateFrame) {
	sheet := Spritesheet{Path: s.path}
	if s.path != "" {
		img, err := LoadSpritesheet(s.path)
		if err != nil {
			s.logger.Warn("drawing fallback tiles", "err", err)
		} else {
			sheet.Image = img
		}
	}
	s.Sheet.Set(sheet)
}

// SpawnSystem creates the entity for every SpawnSprite.
type SpawnSystem struct {
	Requests      ecs.EventReader[SpawnSprite]
	PlayerSpawned ecs.EventWriter[controls.PlayerSpawned]
	TutorialAdded ecs.EventWriter[tutorial.TutorialAdded]
	logger        *log.Logger
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	for req := range s.Requests.Read() {
		e := frame.Commands.Spawn(Components(req)...)
		s.logger.Debug("spawned sprite", "entity", e, "tile", req.Tile, "at", req.Coordinate)

		if req.Tile == Player01 {
			s.PlayerSpawned.Send(controls.PlayerSpawned{Entity: e})
		}
		if req.Tutorial {
			s.TutorialAdded.Send(tutorial.TutorialAdded{Entity: e})
		}
	}
}

// Components builds the component set for a spawn request, including the
// role components its tile implies.
func Components(req SpawnSprite) []any {
	c := req.Color
	if c == (color.RGBA{}) {
		c = White
	}
	transform := tiles.NewTransform(req.Coordinate)
	comps := []any{
		tiles.Tile{},
		tiles.LevelTile{},
		req.Coordinate,
		Sprite{Tile: req.Tile, Color: c},
	}

	switch req.Tile {
	case Player01:
		comps = append(comps, controls.PlayerControlled{}, health.Health{Hearts: playerHearts, Max: playerMaxHearts})
	case LevelExit01, OpenDoor1:
		comps = append(comps, tiles.ExfilTile{})
	case MechanicDoor:
		comps = append(comps, tiles.DoorTile{}, tiles.BlockingTile{}, tiles.InteractableTile{})
	case BottomLeverLeft, BottomLeverRight:
		comps = append(comps, tiles.TriggerTile{}, tiles.BlockingTile{})
	case Wall:
		comps = append(comps, tiles.BlockingTile{})
	case GoldCoin:
		comps = append(comps, gold.Gold{Coins: max(req.Coins, 1)})
	case Heart:
		comps = append(comps, health.Hearts(max(req.Hearts, 1)))
	}

	switch req.Role {
	case Source:
		comps = append(comps, interaction.InteractionSource{Id: req.Id})
	case Target:
		comps = append(comps, interaction.InteractionTarget{Id: req.Id})
	}
	if req.Tutorial {
		comps = append(comps, tutorial.Tutorial{})
	}
	if req.Popup {
		transform.Scale, transform.Alpha = 0, 0
		comps = append(comps, animation.New(animation.Popup, popupDuration, animation.BackOut))
	}
	return append(comps, transform)
}
