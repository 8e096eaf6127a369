// Package loop runs a complete local game: an in-process server hosting a
// single client on the caller's terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/orbitdefense/internal/draw"
	"github.com/tomz197/orbitdefense/internal/loop/client"
	"github.com/tomz197/orbitdefense/internal/loop/server"
	"github.com/tomz197/orbitdefense/internal/sound"
)

// Options configure a local game.
type Options struct {
	Username     string
	Difficulty   int
	Level        int
	Seed         int64
	SaveCode     string
	Sound        sound.Player
	TermSizeFunc draw.TermSizeFunc
}

// Run starts the server loop, plays one client on r and w, and stops the
// server when the client quits.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := server.NewServer()
	done := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(done)
	}()

	c := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Difficulty:   opts.Difficulty,
		Level:        opts.Level,
		Seed:         opts.Seed,
		SaveCode:     opts.SaveCode,
		Sound:        opts.Sound,
	})
	err := c.Run()

	cancel()
	<-done
	return err
}
