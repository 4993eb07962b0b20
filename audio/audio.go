package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"gridsnake/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short sound effect
type Cue int

const (
	CueEat Cue = iota
	CuePowerUp
	CueGameOver
)

type tone struct {
	freq     float64
	duration time.Duration
}

var cues = map[Cue][]tone{
	CueEat:      {{freq: 880, duration: 50 * time.Millisecond}},
	CuePowerUp:  {{freq: 880, duration: 40 * time.Millisecond}, {freq: 1320, duration: 60 * time.Millisecond}},
	CueGameOver: {{freq: 330, duration: 120 * time.Millisecond}, {freq: 220, duration: 250 * time.Millisecond}},
}

// CueFor picks the sound for a tick, if any. Dying wins over eating.
func CueFor(report game.TickReport) (Cue, bool) {
	switch {
	case !report.Alive:
		return CueGameOver, true
	case report.Ate == game.AtePowerUp:
		return CuePowerUp, true
	case report.Ate == game.AteFood:
		return CueEat, true
	default:
		return 0, false
	}
}

// Player plays cues on the default output device. A disabled player is silent.
type Player struct {
	enabled bool
}

func Disabled() *Player {
	return &Player{}
}

// NewPlayer initialises the speaker. On failure it still returns a usable,
// silent player together with the error; the game can run without sound.
func NewPlayer() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return Disabled(), errors.Wrap(err, "initialising speaker")
	}
	return &Player{enabled: true}, nil
}

func (p *Player) Enabled() bool {
	return p.enabled
}

func (p *Player) Play(cue Cue) {
	if !p.enabled {
		return
	}

	tones := cues[cue]
	streams := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			continue
		}
		streams = append(streams, beep.Take(sampleRate.N(t.duration), sine))
	}
	if len(streams) > 0 {
		speaker.Play(beep.Seq(streams...))
	}
}

// PlayReport plays whatever the tick deserves
func (p *Player) PlayReport(report game.TickReport) {
	if cue, ok := CueFor(report); ok {
		p.Play(cue)
	}
}

func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}
