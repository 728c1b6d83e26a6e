// Command sim runs matches headlessly with random inputs and reports the
// results. It exercises the simulation without a terminal.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starduel/internal/config"
	"github.com/tomz197/starduel/internal/input"
	"github.com/tomz197/starduel/internal/loop"
	simconfig "github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, closer, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	stats := simulate(cfg, seed, logger)
	logger.Info("simulation finished",
		"frames", stats.Frames,
		"sim_time", stats.SimTime,
		"wall_time", time.Since(start).Round(time.Millisecond),
		"rounds", stats.Rounds,
		"matches", stats.Matches,
		"score_a", stats.Scores[object.PlayerA],
		"score_b", stats.Scores[object.PlayerB],
		"torpedoes", stats.Fired,
		"jumps", stats.Jumps,
		"peak_particles", stats.PeakParticles,
	)
}

// Stats summarizes a simulation run.
type Stats struct {
	Frames        int
	SimTime       time.Duration
	Rounds        int
	Matches       int
	Scores        [object.PlayerCount]int
	Fired         int
	Jumps         int
	PeakParticles int
}

// simulate drives one match for cfg.SimFrames ticks. Input comes from a
// separate generator so the match RNG stays untouched by the driver.
func simulate(cfg config.Options, seed int64, logger *log.Logger) Stats {
	m := loop.NewMatch(loop.Options{
		Seed:        seed,
		ShipTypes:   cfg.ShipTypes,
		TargetScore: cfg.TargetScore,
		Logger:      logger,
	})
	driver := newDriver(rand.New(rand.NewSource(seed ^ 0x5eed)))

	var stats Stats
	for i := 0; i < cfg.SimFrames; i++ {
		frame := driver.next(m.Scene)
		for _, ev := range m.Update(simconfig.TickTime, frame) {
			switch ev.Type {
			case object.EventTorpedoFired:
				stats.Fired++
			case object.EventHyperspaceEnter:
				stats.Jumps++
			case object.EventRoundOver:
				stats.Rounds++
			case object.EventMatchOver:
				stats.Matches++
				logger.Info("match result", "banner", m.Banner, "score_a", m.Scores[object.PlayerA], "score_b", m.Scores[object.PlayerB])
			}
		}
		stats.PeakParticles = max(stats.PeakParticles, len(m.Particles.Particles()))
		stats.Frames++
		stats.SimTime += simconfig.TickTime
	}
	stats.Scores = m.Scores
	return stats
}

// driver produces held-key style random input: each control stays in its
// state for a random number of frames.
type driver struct {
	rng   *rand.Rand
	held  [object.PlayerCount]input.Input
	hold  [object.PlayerCount]int
	title int
}

func newDriver(rng *rand.Rand) *driver {
	return &driver{rng: rng}
}

func (d *driver) next(scene loop.Scene) input.Frame {
	var frame input.Frame
	if scene == loop.SceneTitle {
		d.title++
		frame.Confirm = d.title > 10
		return frame
	}
	for p := range d.held {
		if d.hold[p] <= 0 {
			d.held[p] = input.Input{
				Thrust:      d.rng.Float64() < 0.4,
				RotateLeft:  d.rng.Float64() < 0.3,
				RotateRight: d.rng.Float64() < 0.3,
				Fire:        d.rng.Float64() < 0.35,
				Hyperspace:  d.rng.Float64() < 0.02,
			}
			d.hold[p] = 5 + d.rng.Intn(40)
		}
		d.hold[p]--
		frame.Players[p] = d.held[p]
	}
	return frame
}
