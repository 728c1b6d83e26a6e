package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starduel/internal/object"
)

// ErrUnknownShipType is returned for a ship name that matches no hull.
var ErrUnknownShipType = errors.New("unknown ship type")

// ErrDuplicateShipType is returned when both players pick the same hull.
// Each hull owns a single thrust emitter, so the pair must differ.
var ErrDuplicateShipType = errors.New("duplicate ship type")

// Environment variables read by Load.
const (
	EnvSeed        = "STARDUEL_SEED"
	EnvLogLevel    = "STARDUEL_LOG_LEVEL"
	EnvLogFile     = "STARDUEL_LOG_FILE"
	EnvAudio       = "STARDUEL_AUDIO"
	EnvVolume      = "STARDUEL_VOLUME"
	EnvShipA       = "STARDUEL_SHIP_A"
	EnvShipB       = "STARDUEL_SHIP_B"
	EnvTargetScore = "STARDUEL_TARGET_SCORE"
	EnvSSHHost     = "SSH_HOST"
	EnvSSHPort     = "SSH_PORT"
	EnvSSHHostKey  = "SSH_HOST_KEY"
	EnvSimFrames   = "SIM_FRAMES"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultSimFrames   = 120 * 60 * 5 // Five minutes at the fixed tick
)

// Options are the runtime settings shared by the entry points.
type Options struct {
	Seed        int64 // 0 picks a time-based seed
	LogLevel    log.Level
	LogFile     string
	Audio       bool
	Volume      float64
	ShipTypes   [object.PlayerCount]object.ShipType
	TargetScore int // 0 uses the built-in target

	SSHHost    string
	SSHPort    string
	SSHHostKey string

	SimFrames int
}

// Load reads Options from the environment. Unset variables take their
// defaults; malformed ones are errors.
func Load() (Options, error) {
	opts := Options{
		LogLevel:   log.InfoLevel,
		LogFile:    GetEnv(EnvLogFile, ""),
		ShipTypes:  [object.PlayerCount]object.ShipType{object.Wedge, object.Needle},
		SSHHost:    GetEnv(EnvSSHHost, defaultHost),
		SSHPort:    GetEnv(EnvSSHPort, defaultPort),
		SSHHostKey: GetEnv(EnvSSHHostKey, defaultHostKeyPath),
	}

	seed, err := GetEnvInt(EnvSeed, 0)
	if err != nil {
		return opts, err
	}
	opts.Seed = int64(seed)

	if level := GetEnv(EnvLogLevel, ""); level != "" {
		opts.LogLevel, err = log.ParseLevel(level)
		if err != nil {
			return opts, fmt.Errorf("env %s: %w", EnvLogLevel, err)
		}
	}

	if opts.Audio, err = GetEnvBool(EnvAudio, false); err != nil {
		return opts, err
	}
	volume, err := GetEnvInt(EnvVolume, 70)
	if err != nil {
		return opts, err
	}
	opts.Volume = float64(max(0, min(100, volume))) / 100

	for id, key := range [object.PlayerCount]string{EnvShipA, EnvShipB} {
		name := GetEnv(key, "")
		if name == "" {
			continue
		}
		t, err := ParseShipType(name)
		if err != nil {
			return opts, fmt.Errorf("env %s: %w", key, err)
		}
		opts.ShipTypes[id] = t
	}
	if a := opts.ShipTypes[object.PlayerA]; a == opts.ShipTypes[object.PlayerB] {
		return opts, fmt.Errorf("env %s/%s: %w: %s", EnvShipA, EnvShipB, ErrDuplicateShipType, a)
	}

	if opts.TargetScore, err = GetEnvInt(EnvTargetScore, 0); err != nil {
		return opts, err
	}
	if opts.TargetScore < 0 {
		return opts, fmt.Errorf("env %s: must not be negative", EnvTargetScore)
	}

	if opts.SimFrames, err = GetEnvInt(EnvSimFrames, defaultSimFrames); err != nil {
		return opts, err
	}
	return opts, nil
}

// ParseShipType resolves a ship name, case-insensitively.
func ParseShipType(name string) (object.ShipType, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for t := object.ShipType(0); t < object.ShipTypeCount; t++ {
		if t.String() == needle {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShipType, name)
}

// NewLogger builds the process logger at the configured level. Output goes
// to LogFile when set, otherwise to fallback. The returned closer releases
// the file.
func (o Options) NewLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = nopCloser{}
	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           o.LogLevel,
		ReportTimestamp: true,
		Prefix:          "starduel",
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
