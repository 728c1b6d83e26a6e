package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/starduel/internal/audio"
	"github.com/tomz197/starduel/internal/config"
	"github.com/tomz197/starduel/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal is the game screen, so logs go to a file or nowhere.
	logger, closer, err := cfg.NewLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := loop.SessionOptions{
		Match: loop.Options{
			Seed:        cfg.Seed,
			ShipTypes:   cfg.ShipTypes,
			TargetScore: cfg.TargetScore,
			Logger:      logger,
		},
	}

	if cfg.Audio {
		player := audio.New(cfg.Volume, logger)
		if err := player.Start(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer player.Close()
			opts.Events = player
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		logger.Error("game ended with error", "err", err)
		return err
	}
	return nil
}
