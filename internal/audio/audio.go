// Package audio plays short synthesized effects for game events.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/health"
	"github.com/plus3/tilequest/internal/interaction"
	"github.com/plus3/tilequest/internal/levels"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/movement"
	"github.com/rotisserie/eris"
)

const NAME = "audio"

type Sound uint8

const (
	Coin Sound = iota
	Heart
	Blocked
	Interact
	LevelDone
)

func (s Sound) String() string {
	switch s {
	case Coin:
		return "Coin"
	case Heart:
		return "Heart"
	case Blocked:
		return "Blocked"
	case Interact:
		return "Interact"
	case LevelDone:
		return "LevelDone"
	default:
		return "Sound(?)"
	}
}

// SoundPlayer plays effects without blocking.
type SoundPlayer interface {
	Play(s Sound)
}

// Silent drops every sound.
type Silent struct{}

func (Silent) Play(Sound) {}

// Speaker mixes effects into the system audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	initialized bool
}

func NewSpeaker(volume float64) *Speaker {
	return &Speaker{mixer: &beep.Mixer{}, gain: max(0, min(1, volume)) * 0.3}
}

// Init opens the audio device. Calling it again is a no-op.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return eris.Wrap(err, "failed to open audio device")
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Speaker) Play(snd Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(Streamer(snd, sampleRate, s.gain))
	speaker.Unlock()
}

// Close silences the mixer and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// Audio is the resource systems play sounds through.
type Audio struct {
	Player SoundPlayer
}

type Plugin struct {
	Player SoundPlayer
}

func (p Plugin) Build(app *ecs.App) {
	player := p.Player
	if player == nil {
		player = Silent{}
	}
	ecs.NewSingleton(app.Storage, Audio{Player: player})
	app.AddSystems(ecs.PostUpdate, &SoundSystem{logger: logging.For(NAME)})
}

// SoundSystem maps game events to sound effects.
type SoundSystem struct {
	Coins    ecs.EventReader[gold.PlayerPickedUpGoldCoins]
	Hearts   ecs.EventReader[health.PickedUpHearts]
	Blocked  ecs.EventReader[movement.MovementBlocked]
	Interact ecs.EventReader[interaction.Interacted]
	Levels   ecs.EventReader[levels.LevelFinished]
	Audio    ecs.Singleton[Audio]
	logger   *log.Logger
}

func (s *SoundSystem) Execute(frame *ecs.UpdateFrame) {
	audio := s.Audio.Get()
	if audio == nil {
		return
	}
	play := func(snd Sound) {
		s.logger.Debug("play", "sound", snd)
		audio.Player.Play(snd)
	}

	for range s.Coins.Read() {
		play(Coin)
	}
	for range s.Hearts.Read() {
		play(Heart)
	}
	// One interaction sound replaces the bump for the same frame.
	interacted := !s.Interact.IsEmpty()
	s.Interact.Clear()
	blocked := !s.Blocked.IsEmpty()
	s.Blocked.Clear()
	switch {
	case interacted:
		play(Interact)
	case blocked:
		play(Blocked)
	}
	for ev := range s.Levels.Read() {
		if ev.Completed {
			play(LevelDone)
		}
	}
}
