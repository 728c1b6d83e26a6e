package loop

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
	"github.com/tomz197/starduel/internal/particle"
	"github.com/tomz197/starduel/internal/physics"
	"github.com/tomz197/starduel/internal/timer"
)

// Scene is the current phase of a match.
type Scene int

const (
	SceneTitle    Scene = iota // Waiting for confirm
	ScenePlay                  // Ships fly and fight
	SceneEndRound              // Round result on screen
	SceneEndMatch              // Match result on screen
)

func (s Scene) String() string {
	switch s {
	case SceneTitle:
		return "title"
	case ScenePlay:
		return "play"
	case SceneEndRound:
		return "end_round"
	case SceneEndMatch:
		return "end_match"
	default:
		return "unknown"
	}
}

// Outcome records who took the last round. Decided is false when both
// ships were lost.
type Outcome struct {
	Decided bool
	Winner  object.PlayerID
	Ship    object.ShipType
}

// Options configures a new match.
type Options struct {
	Seed        int64 // 0 picks a time-based seed
	ShipTypes   [object.PlayerCount]object.ShipType
	TargetScore int // 0 uses config.TargetScore
	Logger      *log.Logger
}

// DefaultOptions gives player A the Wedge and player B the Needle.
func DefaultOptions() Options {
	return Options{ShipTypes: [object.PlayerCount]object.ShipType{object.Wedge, object.Needle}}
}

// Match holds the entire simulation state of one two-player match. It is
// not safe for concurrent use; a single loop owns it.
type Match struct {
	ID        string
	Players   [object.PlayerCount]object.Player
	Star      object.Star
	Torpedoes *object.Torpedoes
	Particles *particle.System
	Scores    [object.PlayerCount]int
	Round     int // Rounds finished this match
	Scene     Scene
	Outcome   Outcome
	Banner    string
	Clock     time.Duration // Total simulated time

	TargetScore int
	Bounds      physics.Bounds
	Gravity     physics.Gravity

	roundTimer timer.Timer
	matchTimer timer.Timer
	cueFired   bool

	rng    *rand.Rand
	logger *log.Logger
	events object.Events
	ships  [object.PlayerCount]*object.Ship
}

// NewMatch creates a match sitting on the title scene.
func NewMatch(opts Options) *Match {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	target := opts.TargetScore
	if target <= 0 {
		target = config.TargetScore
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	id := uuid.NewString()
	rng := rand.New(rand.NewSource(seed))
	logger = logger.With("match", id)

	m := &Match{
		ID:          id,
		Star:        object.NewStar(),
		Torpedoes:   object.NewTorpedoes(config.TorpedoCapacity),
		Particles:   particle.NewSystem(rng, logger),
		Scene:       SceneTitle,
		TargetScore: target,
		Bounds:      physics.CenteredBounds(config.PlayfieldWidth, config.PlayfieldHeight),
		Gravity: physics.Gravity{
			G:             config.GravityConstant,
			MetersPerUnit: config.MetersPerUnit,
			MaxAccel:      config.MaxGravityAccel,
		},
		roundTimer: timer.New(config.EndRoundDuration),
		matchTimer: timer.New(config.EndMatchDuration),
		rng:        rng,
		logger:     logger,
		events:     make(object.Events, 0, 32),
	}
	for pid := object.PlayerA; pid < object.PlayerCount; pid++ {
		m.Players[pid] = object.NewPlayer(pid, opts.ShipTypes[pid])
		m.ships[pid] = &m.Players[pid].Ship
	}

	logger.Info("match created", "seed", seed, "ship_a", opts.ShipTypes[object.PlayerA], "ship_b", opts.ShipTypes[object.PlayerB], "target", target)
	return m
}

// Ship returns the ship flown by a player.
func (m *Match) Ship(id object.PlayerID) *object.Ship {
	return &m.Players[id].Ship
}

// RoundTimer exposes the end-of-round countdown for display.
func (m *Match) RoundTimer() *timer.Timer { return &m.roundTimer }

// MatchTimer exposes the end-of-match countdown for display.
func (m *Match) MatchTimer() *timer.Timer { return &m.matchTimer }

// Leader returns the player with the higher score, or false on a tie.
func (m *Match) Leader() (object.PlayerID, bool) {
	a, b := m.Scores[object.PlayerA], m.Scores[object.PlayerB]
	switch {
	case a > b:
		return object.PlayerA, true
	case b > a:
		return object.PlayerB, true
	default:
		return 0, false
	}
}

func roundBanner(o Outcome) string {
	if !o.Decided {
		return "BOTH DESTROYED"
	}
	return fmt.Sprintf("%s WINS THE ROUND", strings.ToUpper(o.Ship.String()))
}

func matchBanner(m *Match) string {
	leader, ok := m.Leader()
	if !ok {
		return "MATCH DRAWN"
	}
	return fmt.Sprintf("%s WINS THE MATCH", strings.ToUpper(m.Players[leader].ShipType.String()))
}
