package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/orbitdefense/internal/config"
	"github.com/tomz197/orbitdefense/internal/logger"
	"github.com/tomz197/orbitdefense/internal/loop"
	"github.com/tomz197/orbitdefense/internal/sound"
)

func main() {
	// The game owns the terminal; logs only go somewhere when LOG_FILE is set.
	if err := logger.Init(io.Discard); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	opts, err := optionsFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	enableSound, err := config.GetEnvBool("GAME_SOUND", false)
	if err != nil {
		logger.Log.WithError(err).Warn("ignoring GAME_SOUND")
	}
	if enableSound {
		synth, err := sound.NewSynth(0.5)
		if err != nil {
			logger.Log.WithError(err).Warn("sound disabled")
		} else {
			defer synth.Close()
			opts.Sound = synth
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(ctx, reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func optionsFromEnv() (loop.Options, error) {
	opts := loop.Options{
		Username: config.GetEnv("USER", "local"),
		SaveCode: config.GetEnv("GAME_LOAD_CODE", ""),
	}
	var err error
	if opts.Level, err = config.GetEnvInt("GAME_LEVEL", 1); err != nil {
		return opts, err
	}
	if opts.Difficulty, err = config.GetEnvInt("GAME_DIFFICULTY", 0); err != nil {
		return opts, err
	}
	if opts.Seed, err = config.GetEnvInt64("GAME_SEED", 0); err != nil {
		return opts, err
	}
	return opts, nil
}
