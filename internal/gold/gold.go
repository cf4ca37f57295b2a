// Package gold handles coin pickup and the gold bank of a run.
package gold

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/tiles"
)

const NAME = "gold"

// Gold is carried by coins and by the player.
type Gold struct {
	Coins int64
}

// PlayerGold is the bank of the current run. It carries gold across levels
// and only exists while Running.
type PlayerGold struct {
	Coins int64
}

// PlayerPickedUpGoldCoins is sent for every coin picked up.
type PlayerPickedUpGoldCoins struct {
	Player ecs.EntityId
	Coins  int64
	Total  int64
}

// FinalPlayerGoldAmount is sent when a run ends with the banked total.
type FinalPlayerGoldAmount struct {
	Coins int64
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	ecs.Register[Gold](app)
	logger := logging.For(NAME)

	ecs.OnEnter(app, appstate.Running, &openBankSystem{})
	ecs.OnExit(app, appstate.Running, &closeBankSystem{logger: logger})

	running := ecs.InState(appstate.Running)
	app.AddSystems(ecs.Update, &PlayerSpawnedSystem{}, running)
	app.AddSystems(ecs.Update, &CheckForGoldSystem{}, running)
	app.AddSystems(ecs.PostUpdate, &LogGoldSystem{logger: logger})
}

type openBankSystem struct {
	Bank ecs.Singleton[PlayerGold]
}

func (s *openBankSystem) Execute(frame *ecs.UpdateFrame) {
	s.Bank.Set(PlayerGold{})
}

type closeBankSystem struct {
	Bank   ecs.Singleton[PlayerGold]
	Final  ecs.EventWriter[FinalPlayerGoldAmount]
	logger *log.Logger
}

func (s *closeBankSystem) Execute(frame *ecs.UpdateFrame) {
	bank := s.Bank.Get()
	if bank == nil {
		return
	}
	s.logger.Info("run finished", "gold", bank.Coins)
	s.Final.Send(FinalPlayerGoldAmount{Coins: bank.Coins})
	ecs.RemoveSingleton[PlayerGold](frame.Storage)
}

// PlayerSpawnedSystem hands a new player the gold banked so far.
type PlayerSpawnedSystem struct {
	Spawned ecs.EventReader[controls.PlayerSpawned]
	Bank    ecs.Singleton[PlayerGold]
}

func (s *PlayerSpawnedSystem) Execute(frame *ecs.UpdateFrame) {
	var coins int64
	if bank := s.Bank.Get(); bank != nil {
		coins = bank.Coins
	}
	for ev := range s.Spawned.Read() {
		frame.Commands.AddComponent(ev.Entity, Gold{Coins: coins})
	}
}

// CheckForGoldSystem moves coins sharing a cell with a player into the
// player's purse and the bank.
type CheckForGoldSystem struct {
	Players ecs.Query[struct {
		ecs.EntityId
		*controls.PlayerControlled
		*tiles.TileCoordinate
		*Gold
	}]
	Coins ecs.Query[struct {
		ecs.EntityId
		*tiles.TileCoordinate
		*Gold
		Player *controls.PlayerControlled `ecs:"without"`
	}]
	Bank     ecs.Singleton[PlayerGold]
	PickedUp ecs.EventWriter[PlayerPickedUpGoldCoins]
}

func (s *CheckForGoldSystem) Execute(frame *ecs.UpdateFrame) {
	taken := map[ecs.EntityId]bool{}
	bank := s.Bank.Get()

	for player := range s.Players.Values() {
		for coin := range s.Coins.Values() {
			if taken[coin.EntityId] || !coin.TileCoordinate.Eq2D(*player.TileCoordinate) {
				continue
			}
			taken[coin.EntityId] = true

			player.Gold.Coins += coin.Gold.Coins
			if bank != nil {
				bank.Coins += coin.Gold.Coins
			}
			s.PickedUp.Send(PlayerPickedUpGoldCoins{
				Player: player.EntityId,
				Coins:  coin.Gold.Coins,
				Total:  player.Gold.Coins,
			})
			frame.Commands.Delete(coin.EntityId)
		}
	}
}

// LogGoldSystem reports every pickup.
type LogGoldSystem struct {
	PickedUp ecs.EventReader[PlayerPickedUpGoldCoins]
	logger   *log.Logger
}

func (s *LogGoldSystem) Execute(frame *ecs.UpdateFrame) {
	for ev := range s.PickedUp.Read() {
		s.logger.Info("picked up gold", "player", ev.Player, "coins", ev.Coins, "total", ev.Total)
	}
}
