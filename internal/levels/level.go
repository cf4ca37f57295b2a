package levels

import (
	"embed"
	"image/color"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/plus3/tilequest/internal/interaction"
	"github.com/plus3/tilequest/internal/sprites"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// TileSpec is one tile of a level file.
type TileSpec struct {
	Tile     string    `yaml:"tile"`
	At       []int64   `yaml:"at"`
	Color    []float64 `yaml:"color,omitempty"`
	Tutorial bool      `yaml:"tutorial,omitempty"`
	Source   *int64    `yaml:"source,omitempty"`
	Target   *int64    `yaml:"target,omitempty"`
	Coins    int64     `yaml:"coins,omitempty"`
	Hearts   uint      `yaml:"hearts,omitempty"`
}

// InteractionSpec says what happens when the interaction fires: the target
// may be despawned and replacement tiles spawned.
type InteractionSpec struct {
	Id            int64      `yaml:"id"`
	DespawnTarget bool       `yaml:"despawn_target"`
	Spawn         []TileSpec `yaml:"spawn,omitempty"`
}

// Level is a parsed level file. An empty Next returns to the main menu.
type Level struct {
	Id           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Next         string            `yaml:"next,omitempty"`
	Tiles        []TileSpec        `yaml:"tiles"`
	Interactions []InteractionSpec `yaml:"interactions,omitempty"`
}

// Request turns the spec into a spawn request.
func (t TileSpec) Request() (sprites.SpawnSprite, error) {
	tile, err := sprites.ParseTile(t.Tile)
	if err != nil {
		return sprites.SpawnSprite{}, eris.Wrap(err, "bad tile")
	}

	var coord tiles.TileCoordinate
	switch len(t.At) {
	case 3:
		coord.Z = t.At[2]
		fallthrough
	case 2:
		coord.X, coord.Y = t.At[0], t.At[1]
	default:
		return sprites.SpawnSprite{}, eris.Errorf("tile %s: at needs 2 or 3 values, got %d", t.Tile, len(t.At))
	}

	req := sprites.SpawnSprite{
		Coordinate: coord,
		Tile:       tile,
		Tutorial:   t.Tutorial,
		Coins:      t.Coins,
		Hearts:     t.Hearts,
	}
	if req.Color, err = parseColor(t.Color); err != nil {
		return sprites.SpawnSprite{}, eris.Wrapf(err, "tile %s", t.Tile)
	}

	switch {
	case t.Source != nil && t.Target != nil:
		return sprites.SpawnSprite{}, eris.Errorf("tile %s: cannot be both source and target", t.Tile)
	case t.Source != nil:
		req.Role, req.Id = sprites.Source, interaction.InteractionId(*t.Source)
	case t.Target != nil:
		req.Role, req.Id = sprites.Target, interaction.InteractionId(*t.Target)
	}
	return req, nil
}

// parseColor reads linear [r, g, b] or [r, g, b, a] in [0,1].
func parseColor(c []float64) (color.RGBA, error) {
	if len(c) == 0 {
		return color.RGBA{}, nil
	}
	if len(c) != 3 && len(c) != 4 {
		return color.RGBA{}, eris.Errorf("color needs 3 or 4 values, got %d", len(c))
	}
	rgba := [4]float64{1, 1, 1, 1}
	for i, v := range c {
		if v < 0 || v > 1 {
			return color.RGBA{}, eris.Errorf("color component %v out of [0,1]", v)
		}
		rgba[i] = v
	}
	return color.RGBA{
		R: uint8(rgba[0] * 255),
		G: uint8(rgba[1] * 255),
		B: uint8(rgba[2] * 255),
		A: uint8(rgba[3] * 255),
	}, nil
}

// Requests returns the spawn requests of the level's tiles.
func (l *Level) Requests() ([]sprites.SpawnSprite, error) {
	out := make([]sprites.SpawnSprite, 0, len(l.Tiles))
	for _, t := range l.Tiles {
		req, err := t.Request()
		if err != nil {
			return nil, eris.Wrapf(err, "level %s", l.Id)
		}
		out = append(out, req)
	}
	return out, nil
}

// Interaction returns the spec for id, if the level has one.
func (l *Level) Interaction(id interaction.InteractionId) (InteractionSpec, bool) {
	for _, spec := range l.Interactions {
		if interaction.InteractionId(spec.Id) == id {
			return spec, true
		}
	}
	return InteractionSpec{}, false
}

func (l *Level) validate() error {
	if l.Id == "" {
		return eris.New("level without id")
	}
	requests, err := l.Requests()
	if err != nil {
		return err
	}
	players := 0
	for _, req := range requests {
		if req.Tile == sprites.Player01 {
			players++
		}
	}
	if players != 1 {
		return eris.Errorf("level %s has %d players, expected 1", l.Id, players)
	}
	for _, spec := range l.Interactions {
		for _, t := range spec.Spawn {
			if _, err := t.Request(); err != nil {
				return eris.Wrapf(err, "level %s interaction %d", l.Id, spec.Id)
			}
		}
	}
	return nil
}

// Parse reads and validates one level file.
func Parse(data []byte) (*Level, error) {
	var level Level
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, eris.Wrap(err, "failed to parse level")
	}
	if err := level.validate(); err != nil {
		return nil, err
	}
	return &level, nil
}

// Catalog holds levels by id in id order.
type Catalog struct {
	levels map[string]*Level
	order  []string
}

// Load parses the embedded levels.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, eris.Wrap(err, "embedded levels")
	}
	return LoadFS(sub)
}

// LoadFS parses every *.yaml file at the root of fsys and checks that each
// next level exists.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "failed to list levels")
	}

	c := &Catalog{levels: make(map[string]*Level)}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to read %s", name)
		}
		level, err := Parse(data)
		if err != nil {
			return nil, eris.Wrapf(err, "in %s", path.Base(name))
		}
		if _, dup := c.levels[level.Id]; dup {
			return nil, eris.Errorf("duplicate level id %s", level.Id)
		}
		c.levels[level.Id] = level
		c.order = append(c.order, level.Id)
	}
	slices.Sort(c.order)

	for _, id := range c.order {
		if next := c.levels[id].Next; next != "" && c.levels[next] == nil {
			return nil, eris.Errorf("level %s: next level %s does not exist", id, next)
		}
	}
	return c, nil
}

// Get looks a level up by id, ignoring case.
func (c *Catalog) Get(id string) (*Level, bool) {
	level, ok := c.levels[strings.ToLower(id)]
	return level, ok
}

// All returns the levels in id order.
func (c *Catalog) All() []*Level {
	out := make([]*Level, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.levels[id])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}
