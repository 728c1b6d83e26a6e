// Package audio turns simulation events into synthesized sound with beep.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/starduel/internal/object"
)

const (
	sampleRate = beep.SampleRate(44100)

	// emptyClickInterval debounces the dry-fire click, which the
	// simulation reports every frame fire is held with no ammo.
	emptyClickInterval = 150 * time.Millisecond
)

// Player mixes one-shot effects and a per-player thrust rumble. It is
// safe to call Handle from the game loop while the speaker plays.
type Player struct {
	mu        sync.Mutex
	mixer     *beep.Mixer
	rumble    [object.PlayerCount]*beep.Ctrl
	lastEmpty [object.PlayerCount]time.Time
	volume    float64
	started   bool
	now       func() time.Time
	logger    *log.Logger
}

// New creates a player with the given master volume in [0, 1]. Nothing is
// audible until Start.
func New(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		now:    time.Now,
		logger: logger,
	}
	for i := range p.rumble {
		p.rumble[i] = &beep.Ctrl{Streamer: withVolume(newRumble(sampleRate, int64(i+1)), 0.2*volume), Paused: true}
		p.mixer.Add(p.rumble[i])
	}
	return p
}

// Start opens the audio device and begins playing the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	p.logger.Debug("audio started", "rate", int(sampleRate))
	return nil
}

// Close silences everything and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

// Handle reacts to one simulation event.
func (p *Player) Handle(ev object.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Type {
	case object.EventThrustStart, object.EventThrustStop:
		if ev.Player < 0 || ev.Player >= object.PlayerCount {
			return
		}
		p.locked(func() {
			p.rumble[ev.Player].Paused = ev.Type == object.EventThrustStop
		})
		return
	case object.EventTorpedoEmpty:
		if ev.Player < 0 || ev.Player >= object.PlayerCount {
			return
		}
		now := p.now()
		if now.Sub(p.lastEmpty[ev.Player]) < emptyClickInterval {
			return
		}
		p.lastEmpty[ev.Player] = now
	case object.EventRoundOver:
		p.locked(func() {
			for _, r := range p.rumble {
				r.Paused = true
			}
		})
	}

	sound := soundFor(ev.Type)
	if sound == SoundNone {
		return
	}
	s := build(sound, sampleRate)
	p.locked(func() { p.mixer.Add(withVolume(s, p.volume)) })
}

// Play queues a one-shot sound directly.
func (p *Player) Play(s Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := build(s, sampleRate)
	if st == nil {
		return
	}
	p.locked(func() { p.mixer.Add(withVolume(st, p.volume)) })
}

// locked runs f while the speaker is not pulling samples.
func (p *Player) locked(f func()) {
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	f()
}

// Active returns how many streamers the mixer is playing, rumbles included.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	p.locked(func() { n = p.mixer.Len() })
	return n
}

// Thrusting reports whether a player's rumble is audible.
func (p *Player) Thrusting(id object.PlayerID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	var on bool
	p.locked(func() { on = !p.rumble[id].Paused })
	return on
}
