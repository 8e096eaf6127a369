package draw

import (
	"bytes"
	"strings"
	"testing"
)

func litCount(c *Canvas) int {
	n := 0
	for _, p := range c.pixels {
		if p {
			n++
		}
	}
	return n
}

func TestProject(t *testing.T) {
	c := NewCanvas(48, 16, 24, 16)
	tests := []struct {
		name   string
		x, y   float64
		wantPX float64
		wantPY float64
	}{
		{"center", 0, 0, 24, 16},
		{"top left", -24, 16, 0, 0},
		{"bottom right", 24, -16, 48, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.Project(tt.x, tt.y)
			if p.X != tt.wantPX || p.Y != tt.wantPY {
				t.Errorf("Project(%v, %v) = %v, want {%v %v}", tt.x, tt.y, p, tt.wantPX, tt.wantPY)
			}
		})
	}
}

func TestRenderOnlyRewritesChanges(t *testing.T) {
	c := NewCanvas(10, 5, 5, 5)
	c.Plot(0, 0)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsAny(first.String(), string([]rune{BlockUpperHalf, BlockLowerHalf, BlockFull})) {
		t.Errorf("first render %q has no block glyph", first.String())
	}

	var second bytes.Buffer
	if err := c.Render(&second); err != nil {
		t.Fatal(err)
	}
	if second.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	if err := c.Render(&third); err != nil {
		t.Fatal(err)
	}
	if third.Len() == 0 {
		t.Error("cleared pixel was not erased")
	}

	c.ForceRedraw()
	var full bytes.Buffer
	c.Render(&full)
	if got := strings.Count(full.String(), " "); got != 50 {
		t.Errorf("forced redraw wrote %d blank cells, want 50", got)
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := NewCanvas(10, 5, 5, 5)
	c.Render(&bytes.Buffer{})

	c.MarkTextDirty(3, 2, 4)
	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 4 {
		t.Errorf("repainted %d cells, want 4", got)
	}

	// Out of range marks are ignored.
	c.MarkTextDirty(1, 99, 3)
	c.MarkTextDirty(-5, 1, 2)
}

func TestDiscDensity(t *testing.T) {
	solid := NewCanvas(40, 20, 10, 10)
	solid.Disc(0, 0, 4, 1)
	half := NewCanvas(40, 20, 10, 10)
	half.Disc(0, 0, 4, 0.5)
	none := NewCanvas(40, 20, 10, 10)
	none.Disc(0, 0, 4, 0)

	if litCount(solid) == 0 {
		t.Fatal("solid disc lit nothing")
	}
	if h, s := litCount(half), litCount(solid); h >= s || h == 0 {
		t.Errorf("half-density disc lit %d of %d", h, s)
	}
	if litCount(none) != 0 {
		t.Error("zero-density disc lit pixels")
	}
}

func TestPolygonAndCircle(t *testing.T) {
	c := NewCanvas(40, 20, 10, 10)
	c.Polygon([]float64{-2, -2, 2, -2, 2, 2, -2, 2}, true)
	filled := litCount(c)

	c.Clear()
	c.Polygon([]float64{-2, -2, 2, -2, 2, 2, -2, 2}, false)
	outline := litCount(c)
	if outline == 0 || filled <= outline {
		t.Errorf("filled = %d outline = %d, want filled > outline > 0", filled, outline)
	}

	c.Clear()
	c.Polygon([]float64{1, 1}, false)
	if litCount(c) != 0 {
		t.Error("degenerate polygon drew pixels")
	}

	c.Circle(0, 0, 3)
	if litCount(c) == 0 {
		t.Error("circle drew nothing")
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(4, 2, 2, 2)
	var none bytes.Buffer
	c.RenderBorder(&none)
	if none.Len() != 0 {
		t.Errorf("border drawn without offset: %q", none.String())
	}

	c.SetOffset(2, 2)
	var out bytes.Buffer
	c.RenderBorder(&out)
	for _, corner := range []string{"┌", "┐", "└", "┘", "│"} {
		if !strings.Contains(out.String(), corner) {
			t.Errorf("border missing %q", corner)
		}
	}
}

func TestTextDraw(t *testing.T) {
	var buf bytes.Buffer
	if err := (Text{X: 0, Y: 3, Value: "hi"}).Draw(&buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "\033[3;1Hhi"; got != want {
		t.Errorf("Draw() wrote %q, want %q", got, want)
	}

	cw := NewChunkWriter(&buf, 1, 1)
	if n := cw.WriteText(Text{X: 2, Y: 2, Value: "héllo"}); n != 5 {
		t.Errorf("WriteText() = %d, want 5", n)
	}
}
