package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// cell glyphs, indexed by (top | bottom<<1).
var glyphs = [4]rune{BlockEmpty, BlockUpperHalf, BlockLowerHalf, BlockFull}

// cellUnknown marks a terminal cell whose on-screen content is not known,
// for example after text was written over it.
const cellUnknown = 0xff

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Drawing happens in a centered world space (y up) that is
// scaled to the terminal. Render only rewrites cells that changed since the
// previous frame.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []bool // [y*termWidth + x]
	shown          []byte // Glyph index on screen per cell, or cellUnknown

	worldHalfWidth  float64
	worldHalfHeight float64
	scaleX          float64
	scaleY          float64

	// 0-based terminal offset of the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas of termWidth x termHeight cells showing the
// world rectangle [-halfWidth, halfWidth] x [-halfHeight, halfHeight].
func NewCanvas(termWidth, termHeight int, halfWidth, halfHeight float64) *Canvas {
	c := &Canvas{worldHalfWidth: halfWidth, worldHalfHeight: halfHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// world size. A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.shown = make([]byte, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.scaleX = float64(c.termWidth) / (2 * c.worldHalfWidth)
	c.scaleY = float64(c.subPixelHeight) / (2 * c.worldHalfHeight)
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the canvas row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = cellUnknown
	}
}

// MarkTextDirty records that n cells starting at 1-based (col, row) were
// overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.shown[r*c.termWidth+x] = cellUnknown
	}
}

// Project maps world coordinates to sub-pixel canvas space.
func (c *Canvas) Project(x, y float64) Point {
	return Point{
		X: (x + c.worldHalfWidth) * c.scaleX,
		Y: (c.worldHalfHeight - y) * c.scaleY,
	}
}

// WorldToTerminal converts world coordinates to a 1-based terminal position.
func (c *Canvas) WorldToTerminal(x, y float64) (col, row int) {
	p := c.Project(x, y)
	return int(math.Round(p.X)) + 1, int(p.Y)/2 + 1
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Plot lights the pixel under world point (x, y).
func (c *Canvas) Plot(x, y float64) {
	p := c.Project(x, y)
	c.setPixel(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// Line draws a world-space line using Bresenham's algorithm.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.line(c.Project(x1, y1), c.Project(x2, y2))
}

func (c *Canvas) line(p1, p2 Point) {
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// Circle draws a world-space circle outline.
func (c *Canvas) Circle(x, y, r float64) {
	segments := max(12, int(r*math.Max(c.scaleX, c.scaleY)*2))
	pts := c.BorrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = c.Project(x+r*math.Cos(a), y+r*math.Sin(a))
	}
	c.outline(pts)
}

// Disc fills a world-space circle. Density below 1 dithers the fill, which
// is how fading explosions are drawn.
func (c *Canvas) Disc(x, y, r, density float64) {
	if r <= 0 || density <= 0 {
		return
	}
	center := c.Project(x, y)
	rx, ry := r*c.scaleX, r*c.scaleY
	for py := int(math.Floor(center.Y - ry)); py <= int(math.Ceil(center.Y+ry)); py++ {
		for px := int(math.Floor(center.X - rx)); px <= int(math.Ceil(center.X+rx)); px++ {
			nx := (float64(px) - center.X) / rx
			ny := (float64(py) - center.Y) / ry
			if nx*nx+ny*ny <= 1 && dithered(px, py, density) {
				c.setPixel(px, py)
			}
		}
	}
}

// Polygon draws a closed world-space polygon given as alternating x, y
// coordinates.
func (c *Canvas) Polygon(coords []float64, filled bool) {
	n := len(coords) / 2
	if n < 2 {
		return
	}
	pts := c.BorrowPoints(n)
	for i := range pts {
		pts[i] = c.Project(coords[2*i], coords[2*i+1])
	}
	if filled {
		c.fillPolygon(pts)
	}
	c.outline(pts)
}

func (c *Canvas) outline(pts []Point) {
	for i := range pts {
		c.line(pts[i], pts[(i+1)%len(pts)])
	}
}

// fillPolygon fills a sub-pixel polygon using scanline intersection.
func (c *Canvas) fillPolygon(points []Point) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Ceil(minY)); y <= int(math.Floor(maxY)); y++ {
		scanY := float64(y)
		xs := c.intersectionBuf[:0]
		for i := range points {
			p1 := points[i]
			p2 := points[(i+1)%len(points)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
		c.intersectionBuf = xs
	}
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes every cell whose glyph changed since the last Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	lastRow, lastCol := -1, -1

	for row := 0; row < c.termHeight; row++ {
		top := row * 2 * c.termWidth
		bottom := top + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			g := 0
			if c.pixels[top+col] {
				g |= 1
			}
			if c.pixels[bottom+col] {
				g |= 2
			}
			idx := row*c.termWidth + col
			if c.shown[idx] == byte(g) {
				continue
			}
			c.shown[idx] = byte(g)

			if row != lastRow || col != lastCol+1 {
				c.moveTo(row+1+c.offsetRow, col+1+c.offsetCol)
			}
			c.renderBuf.WriteRune(glyphs[g])
			lastRow, lastCol = row, col
		}
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) moveTo(row, col int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render area. Horizontal bars need a row offset, vertical bars
// a column offset.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + bar + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + bar + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left+1) + "H" + bar)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left+1) + "H" + bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}
