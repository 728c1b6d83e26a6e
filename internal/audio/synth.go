package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator whose frequency glides linearly from
// freq to endFreq over its duration.
type tone struct {
	wave     Wave
	freq     float64
	endFreq  float64
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
	rng      *rand.Rand
}

// newTone returns a constant-pitch tone.
func newTone(wave Wave, freq float64, d time.Duration, rate beep.SampleRate) *tone {
	return newGlide(wave, freq, freq, d, rate)
}

// newGlide returns a tone sweeping from freq to endFreq.
func newGlide(wave Wave, freq, endFreq float64, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{
		wave:    wave,
		freq:    freq,
		endFreq: endFreq,
		length:  rate.N(d),
		rate:    rate,
		rng:     rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		v := sample(t.wave, t.phase, t.rng)
		samples[i][0] = v
		samples[i][1] = v

		progress := float64(t.position) / float64(t.length)
		freq := t.freq + (t.endFreq-t.freq)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func sample(w Wave, phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope shapes a streamer with a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// rumble is an endless low engine drone: filtered noise over a low sine.
type rumble struct {
	rate  beep.SampleRate
	phase float64
	last  float64
	rng   *rand.Rand
}

func newRumble(rate beep.SampleRate, seed int64) *rumble {
	return &rumble{rate: rate, rng: rand.New(rand.NewSource(seed))}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		// One-pole low-pass keeps only the low end of the noise.
		r.last += 0.05 * ((r.rng.Float64()*2 - 1) - r.last)
		v := 0.6*r.last + 0.25*math.Sin(2*math.Pi*r.phase)
		samples[i][0] = v
		samples[i][1] = v

		r.phase += 55 / float64(r.rate)
		r.phase -= math.Floor(r.phase)
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// withVolume scales s by a linear gain. Zero or less is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
