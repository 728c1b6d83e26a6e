package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/starduel/internal/object"
)

// Sound is a one-shot effect.
type Sound int

const (
	SoundNone Sound = iota
	SoundFire
	SoundEmpty
	SoundHyperspaceIn
	SoundHyperspaceOut
	SoundExplosion
	SoundRoundCue
	SoundRoundStart
	SoundMatchOver
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundEmpty:
		return "empty"
	case SoundHyperspaceIn:
		return "hyperspace_in"
	case SoundHyperspaceOut:
		return "hyperspace_out"
	case SoundExplosion:
		return "explosion"
	case SoundRoundCue:
		return "round_cue"
	case SoundRoundStart:
		return "round_start"
	case SoundMatchOver:
		return "match_over"
	default:
		return "none"
	}
}

// soundFor maps a simulation event to its one-shot sound. Thrust events
// drive the looping rumble instead and map to SoundNone.
func soundFor(t object.EventType) Sound {
	switch t {
	case object.EventTorpedoFired:
		return SoundFire
	case object.EventTorpedoEmpty:
		return SoundEmpty
	case object.EventHyperspaceEnter:
		return SoundHyperspaceIn
	case object.EventHyperspaceExit:
		return SoundHyperspaceOut
	case object.EventShipDestroyed:
		return SoundExplosion
	case object.EventRoundEndCue:
		return SoundRoundCue
	case object.EventRoundStart:
		return SoundRoundStart
	case object.EventMatchOver:
		return SoundMatchOver
	default:
		return SoundNone
	}
}

// build synthesizes a finite streamer for s.
func build(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundFire:
		d := 90 * time.Millisecond
		return withVolume(newEnvelope(newGlide(WaveSquare, 1400, 500, d, rate), d, 2*time.Millisecond, 40*time.Millisecond, rate), 0.25)
	case SoundEmpty:
		d := 30 * time.Millisecond
		return withVolume(newEnvelope(newTone(WaveSaw, 180, d, rate), d, time.Millisecond, 10*time.Millisecond, rate), 0.3)
	case SoundHyperspaceIn:
		d := 350 * time.Millisecond
		return withVolume(newEnvelope(newGlide(WaveSine, 300, 1800, d, rate), d, 20*time.Millisecond, 120*time.Millisecond, rate), 0.3)
	case SoundHyperspaceOut:
		d := 300 * time.Millisecond
		return withVolume(newEnvelope(newGlide(WaveSine, 1800, 300, d, rate), d, 10*time.Millisecond, 150*time.Millisecond, rate), 0.3)
	case SoundExplosion:
		d := 700 * time.Millisecond
		noise := newEnvelope(newTone(WaveNoise, 0, d, rate), d, 5*time.Millisecond, 600*time.Millisecond, rate)
		boom := newEnvelope(newGlide(WaveSine, 120, 40, d, rate), d, 5*time.Millisecond, 500*time.Millisecond, rate)
		return withVolume(beep.Mix(withVolume(noise, 0.6), withVolume(boom, 0.8)), 0.5)
	case SoundRoundCue:
		return chime(rate, 0.3, 660, 880)
	case SoundRoundStart:
		return chime(rate, 0.25, 440, 660)
	case SoundMatchOver:
		return chime(rate, 0.3, 523.25, 659.25, 783.99, 1046.5)
	default:
		return nil
	}
}

// chime plays short sine notes in sequence.
func chime(rate beep.SampleRate, gain float64, freqs ...float64) beep.Streamer {
	const d = 120 * time.Millisecond
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = newEnvelope(newTone(WaveSine, f, d, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	}
	return withVolume(beep.Seq(notes...), gain)
}
