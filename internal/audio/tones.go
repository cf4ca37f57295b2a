package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone of a sound effect. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var effects = map[Sound][]note{
	Coin:      {{988, 60 * time.Millisecond}, {1319, 120 * time.Millisecond}},
	Heart:     {{523, 80 * time.Millisecond}, {659, 80 * time.Millisecond}, {784, 120 * time.Millisecond}},
	Blocked:   {{110, 90 * time.Millisecond}},
	Interact:  {{392, 60 * time.Millisecond}, {0, 30 * time.Millisecond}, {392, 60 * time.Millisecond}},
	LevelDone: {{523, 100 * time.Millisecond}, {784, 100 * time.Millisecond}, {1047, 200 * time.Millisecond}},
}

// tone is a sine wave with a short linear attack and release so notes do
// not click.
type tone struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
	gain  float64
}

func newTone(sr beep.SampleRate, n note, gain float64) *tone {
	return &tone{sr: sr, freq: n.freq, total: sr.N(n.dur), gain: gain}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	ramp := max(t.sr.N(5*time.Millisecond), 1)
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		env := math.Min(1, math.Min(float64(t.pos)/float64(ramp), float64(t.total-t.pos)/float64(ramp)))
		v := 0.0
		if t.freq > 0 {
			v = t.gain * env * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.sr))
		}
		samples[i][0], samples[i][1] = v, v
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error {
	return nil
}

// Streamer returns the sound effect as a finite beep streamer.
func Streamer(s Sound, sr beep.SampleRate, gain float64) beep.Streamer {
	notes := effects[s]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, newTone(sr, n, gain))
	}
	return beep.Seq(parts...)
}
