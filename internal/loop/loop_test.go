package loop

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/orbitdefense/internal/draw"
)

func TestRunQuits(t *testing.T) {
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, Options{
			Username:     "local",
			TermSizeFunc: draw.FixedSize(80, 30),
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if out.Len() == 0 {
		t.Error("nothing was drawn")
	}
}
