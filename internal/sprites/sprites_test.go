package sprites

import (
	"image"
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/health"
	"github.com/plus3/tilequest/internal/interaction"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/plus3/tilequest/internal/tutorial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlasIndex(t *testing.T) {
	assert.Equal(t, 9*49+30, Player01.Index())
	assert.Equal(t, image.Rect(30*17, 9*17, 30*17+16, 9*17+16), SourceRect(Player01.Index(), 16))
	for _, tile := range Tiles() {
		assert.Less(t, tile.Index(), SheetColumns*SheetRows, tile.String())
	}
}

func TestParseTile(t *testing.T) {
	tile, err := ParseTile("mechanicdoor")
	require.NoError(t, err)
	assert.Equal(t, MechanicDoor, tile)

	_, err = ParseTile("dragon")
	assert.Error(t, err)
}

func newApp() *ecs.App {
	app := ecs.NewApp()
	app.AddPlugins(
		appstate.Plugin{Initial: appstate.Running},
		tiles.Plugin{},
		controls.Plugin{},
		animation.Plugin{},
		interaction.Plugin{},
		gold.Plugin{},
		health.Plugin{},
		tutorial.Plugin{},
		Plugin{},
	)
	return app
}

func TestSpawnAttachesRoles(t *testing.T) {
	app := newApp()
	spawned := ecs.NewEventReader[controls.PlayerSpawned](app.Storage)
	added := ecs.NewEventReader[tutorial.TutorialAdded](app.Storage)

	ecs.SendEvent(app.Storage, SpawnSprite{Tile: Player01})
	ecs.SendEvent(app.Storage, SpawnSprite{
		Coordinate: tiles.TileCoordinate{X: 2, Y: 1},
		Tile:       MechanicDoor,
		Tutorial:   true,
		Role:       Target,
		Id:         123,
	})
	app.Update(0)

	var players []ecs.EntityId
	for ev := range spawned.Read() {
		players = append(players, ev.Entity)
	}
	require.Len(t, players, 1)
	player := players[0]
	assert.True(t, ecs.Has[controls.PlayerControlled](app.Storage, player))
	assert.Equal(t, health.Health{Hearts: 1, Max: 3}, *ecs.ReadComponent[health.Health](app.Storage, player))
	assert.Equal(t, White, ecs.ReadComponent[Sprite](app.Storage, player).Color)

	var tutorials []ecs.EntityId
	for ev := range added.Read() {
		tutorials = append(tutorials, ev.Entity)
	}
	require.Len(t, tutorials, 1)
	door := tutorials[0]
	for _, has := range []bool{
		ecs.Has[tiles.DoorTile](app.Storage, door),
		ecs.Has[tiles.BlockingTile](app.Storage, door),
		ecs.Has[tiles.InteractableTile](app.Storage, door),
		ecs.Has[tiles.LevelTile](app.Storage, door),
		ecs.Has[tutorial.Tutorial](app.Storage, door),
	} {
		assert.True(t, has)
	}
	assert.Equal(t, interaction.InteractionTarget{Id: 123}, *ecs.ReadComponent[interaction.InteractionTarget](app.Storage, door))

	transform := ecs.ReadComponent[tiles.Transform](app.Storage, door)
	require.NotNil(t, transform)
	assert.Equal(t, tiles.TileCoordinate{X: 2, Y: 1}.World(), transform.Position)
}

func TestComponentsForPickups(t *testing.T) {
	comps := Components(SpawnSprite{Tile: GoldCoin, Coins: 4})
	assert.Contains(t, comps, gold.Gold{Coins: 4})

	comps = Components(SpawnSprite{Tile: Heart})
	assert.Contains(t, comps, health.Hearts(1))

	comps = Components(SpawnSprite{Tile: LevelExit01, Popup: true})
	assert.Contains(t, comps, tiles.ExfilTile{})
	assert.Contains(t, comps, animation.New(animation.Popup, popupDuration, animation.BackOut))
}

func TestSpritesheetWithoutImage(t *testing.T) {
	var sheet *Spritesheet
	assert.Nil(t, sheet.Tile(Heart))
	assert.Nil(t, (&Spritesheet{}).Tile(Heart))
}
