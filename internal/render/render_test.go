package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"
	"time"

	"github.com/arnavsurve/logo/internal/turtle"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blue = color.RGBA{0, 0, 255, 255}

func blank(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// hidden is a pen-down turtle state without a sprite.
func hidden(x, y float64) turtle.State {
	s := turtle.Initial()
	s.X, s.Y = x, y
	s.Visible = false
	return s
}

// --- Flood fill ---

func TestFloodFillIsIdempotent(t *testing.T) {
	img := blank(10, 10, turtle.White)

	assert.True(t, FloodFill(img, image.Pt(3, 3), blue, false))
	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, blue, img.RGBAAt(9, 9))

	assert.False(t, FloodFill(img, image.Pt(3, 3), blue, false), "second fill changes nothing")
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	img := blank(10, 10, turtle.White)
	for y := 0; y < 10; y++ {
		img.SetRGBA(5, y, turtle.Black)
	}

	FloodFill(img, image.Pt(1, 1), blue, false)
	assert.Equal(t, blue, img.RGBAAt(4, 9))
	assert.Equal(t, turtle.Black, img.RGBAAt(5, 4))
	assert.Equal(t, turtle.White, img.RGBAAt(6, 4))
}

func TestFloodFillReverse(t *testing.T) {
	img := blank(4, 4, turtle.White)
	assert.True(t, FloodFill(img, image.Pt(0, 0), blue, true))
	assert.Equal(t, turtle.Black, img.RGBAAt(2, 2), "white inverts to black")
}

func TestFloodFillOutsideImage(t *testing.T) {
	img := blank(4, 4, turtle.White)
	assert.False(t, FloodFill(img, image.Pt(10, 10), blue, false))
}

// --- Queue ---

func TestQueueRunsTasksInOrder(t *testing.T) {
	a := New(10, 10, turtle.White)
	var order []string

	a.Enqueue(func(done func()) {
		order = append(order, "sync")
		done()
	})
	a.Enqueue(func(done func()) {
		a.requestFrame(func() {
			order = append(order, "async")
			done()
		})
	})
	a.Enqueue(func(done func()) {
		order = append(order, "after")
		done()
	})

	assert.Equal(t, []string{"sync"}, order, "the async task holds the queue")
	require.NoError(t, a.RunUntilIdle(context.Background()))
	assert.Equal(t, []string{"sync", "async", "after"}, order)
	assert.True(t, a.Idle())
}

func TestLongSynchronousChainDoesNotRecurse(t *testing.T) {
	a := New(10, 10, turtle.White)
	n := 0
	for i := 0; i < 100000; i++ {
		a.Enqueue(func(done func()) {
			n++
			done()
		})
	}
	assert.Equal(t, 100000, n)
	assert.True(t, a.Idle())
}

func TestCancelDropsPendingWork(t *testing.T) {
	a := New(10, 10, turtle.White)
	var late func()
	ran := false

	a.Enqueue(func(done func()) { late = done })
	a.Enqueue(func(done func()) {
		ran = true
		done()
	})
	assert.False(t, a.Idle())

	a.Cancel()
	assert.True(t, a.Idle())

	// A task from before the cancel finishing late must not restart the queue.
	late()
	assert.False(t, ran)
	assert.True(t, a.Idle())
}

func TestRunUntilIdleReportsStall(t *testing.T) {
	a := New(10, 10, turtle.White)
	a.Enqueue(func(func()) {})
	assert.ErrorIs(t, a.RunUntilIdle(context.Background()), ErrStalled)
}

func TestRunUntilIdleHonoursContext(t *testing.T) {
	a := New(10, 10, turtle.White)
	a.Wait(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.RunUntilIdle(ctx), context.Canceled)
	assert.True(t, a.Idle())
}

func TestWaitUsesVirtualClock(t *testing.T) {
	a := New(10, 10, turtle.White, WithFrame(10*time.Millisecond))
	a.Wait(100 * time.Millisecond)
	require.NoError(t, a.RunUntilIdle(context.Background()))
	assert.GreaterOrEqual(t, a.Now(), 100*time.Millisecond)
	assert.Less(t, a.Now(), 130*time.Millisecond)
}

func TestMotionSteps(t *testing.T) {
	tests := []struct {
		dx, dy float64
		speed  int
		want   int
	}{
		{0, 0, 50, 5},
		{100, 0, 50, 100},
		{1000, 0, 50, 250},
		{100, 0, 0, 5},
		{3, -40, 100, 40},
		{2.2, 0, 100, 5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, motionSteps(tc.dx, tc.dy, tc.speed), "%v,%v at speed %d", tc.dx, tc.dy, tc.speed)
	}
}

// --- Drawing ---

func TestMoveStrokesWithPenDown(t *testing.T) {
	a := New(21, 21, turtle.White)
	a.Move(hidden(0, 0), hidden(0, 5))
	up := hidden(5, 5)
	up.PenDown = false
	a.Move(hidden(0, 5), up)
	require.NoError(t, a.RunUntilIdle(context.Background()))

	for y := 0; y <= 5; y++ {
		assert.Equal(t, turtle.Black, a.At(0, float64(y)), "y=%d", y)
	}
	assert.Equal(t, turtle.White, a.At(1, 3))
	assert.Equal(t, turtle.White, a.At(3, 5), "pen was up")
}

func TestWidePen(t *testing.T) {
	a := New(21, 21, turtle.White)
	from, to := hidden(-5, 0), hidden(5, 0)
	to.PenSize = 3
	a.Move(from, to)
	require.NoError(t, a.RunUntilIdle(context.Background()))

	assert.Equal(t, turtle.Black, a.At(0, 1))
	assert.Equal(t, turtle.Black, a.At(0, -1))
	assert.Equal(t, turtle.White, a.At(0, 2))
}

func TestReverseInvertsOncePerMove(t *testing.T) {
	a := New(21, 21, turtle.White)
	from, to := hidden(-8, 0), hidden(8, 0)
	to.PenMode = turtle.PenReverse
	a.Move(from, to)
	require.NoError(t, a.RunUntilIdle(context.Background()))

	// Segment joints are shared by consecutive frames; they still flip once.
	for x := -8; x <= 8; x++ {
		assert.Equal(t, turtle.Black, a.At(float64(x), 0), "x=%d", x)
	}

	// A second pass restores the background.
	back := from
	back.PenMode = turtle.PenReverse
	a.Move(to, back)
	require.NoError(t, a.RunUntilIdle(context.Background()))
	assert.Equal(t, turtle.White, a.At(0, 0))
}

func TestEraseUsesBackground(t *testing.T) {
	a := New(21, 21, turtle.White)
	a.Move(hidden(-5, 0), hidden(5, 0))
	erase := hidden(-5, 0)
	erase.PenMode = turtle.PenErase
	a.Move(hidden(5, 0), erase)
	require.NoError(t, a.RunUntilIdle(context.Background()))
	assert.Equal(t, turtle.White, a.At(0, 0))
}

func TestFillFromTurtle(t *testing.T) {
	a := New(21, 21, turtle.White)
	s := hidden(3, 3)
	s.PenColor = blue
	a.Fill(s)
	require.NoError(t, a.RunUntilIdle(context.Background()))
	assert.Equal(t, blue, a.At(-9, -9))
}

func TestBackgroundKeepsDrawing(t *testing.T) {
	a := New(21, 21, turtle.White)
	a.Move(hidden(0, 0), hidden(0, 5))
	s := hidden(0, 5)
	s.Background = blue
	a.Background(turtle.White, s)
	require.NoError(t, a.RunUntilIdle(context.Background()))

	assert.Equal(t, turtle.Black, a.At(0, 3))
	assert.Equal(t, blue, a.At(5, 5))
}

func TestClearRepaints(t *testing.T) {
	a := New(21, 21, turtle.White)
	a.Move(hidden(0, 0), hidden(0, 5))
	s := hidden(0, 0)
	s.Background = blue
	a.Clear(s)
	require.NoError(t, a.RunUntilIdle(context.Background()))
	assert.Equal(t, blue, a.At(0, 3))
}

func TestSpriteIsLeftOutOfImage(t *testing.T) {
	a := New(41, 41, turtle.White)
	s := turtle.Initial()
	a.Turn(s)
	require.NoError(t, a.RunUntilIdle(context.Background()))

	center := a.toRaster(0, 0)
	assert.NotEqual(t, turtle.White, a.img.RGBAAt(center.X, center.Y), "sprite is on the live raster")
	assert.Equal(t, turtle.White, a.Image().RGBAAt(center.X, center.Y))
	assert.Equal(t, turtle.White, a.At(0, 0))

	s.Visible = false
	a.Visibility(s)
	require.NoError(t, a.RunUntilIdle(context.Background()))
	assert.Equal(t, turtle.White, a.img.RGBAAt(center.X, center.Y))
}

func TestExportScalesImage(t *testing.T) {
	a := New(30, 20, turtle.White)
	a.Move(hidden(0, 0), hidden(0, 5))
	require.NoError(t, a.RunUntilIdle(context.Background()))

	path := filepath.Join(t.TempDir(), "nested", "drawing.png")
	require.NoError(t, a.Export(path, 2))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	assert.Error(t, a.Export(path, 0))
}
