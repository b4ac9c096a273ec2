package turtle

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// recorder is a Canvas that logs which effects it received.
type recorder struct {
	calls []string
	moves [][2]State
	waits []time.Duration
	speed int
}

func (r *recorder) Move(from, to State) {
	r.calls = append(r.calls, "move")
	r.moves = append(r.moves, [2]State{from, to})
}
func (r *recorder) Turn(State) { r.calls = append(r.calls, "turn") }
func (r *recorder) Fill(State) { r.calls = append(r.calls, "fill") }
func (r *recorder) Wait(d time.Duration) {
	r.calls = append(r.calls, "wait")
	r.waits = append(r.waits, d)
}
func (r *recorder) Clear(State)                  { r.calls = append(r.calls, "clear") }
func (r *recorder) Background(color.RGBA, State) { r.calls = append(r.calls, "background") }
func (r *recorder) Visibility(State)             { r.calls = append(r.calls, "visibility") }
func (r *recorder) SetSpeed(speed int)           { r.calls = append(r.calls, "speed"); r.speed = speed }
func (r *recorder) Cancel()                      { r.calls = append(r.calls, "cancel") }

func TestForwardBackRoundTrip(t *testing.T) {
	tt := New()
	tt.Right(37)
	tt.Forward(100)
	tt.Back(100)

	s := tt.State()
	assert.InDelta(t, 0, s.X, eps)
	assert.InDelta(t, 0, s.Y, eps)
}

func TestSquareReturnsHome(t *testing.T) {
	rec := &recorder{}
	tt := New(WithCanvas(rec))
	for i := 0; i < 4; i++ {
		tt.Forward(100)
		tt.Right(90)
	}

	s := tt.State()
	assert.InDelta(t, 0, s.X, eps)
	assert.InDelta(t, 0, s.Y, eps)
	assert.InDelta(t, 0, Compass(s.Heading), eps)
	assert.Equal(t, []string{"move", "turn", "move", "turn", "move", "turn", "move", "turn"}, rec.calls)

	// The first side goes straight up.
	first := rec.moves[0][1]
	assert.InDelta(t, 0, first.X, eps)
	assert.InDelta(t, 100, first.Y, eps)
}

func TestHeadingConventions(t *testing.T) {
	tt := New()
	assert.Equal(t, HomeHeading, tt.State().Heading)
	assert.InDelta(t, 0, Compass(tt.State().Heading), eps)

	tt.Right(90)
	assert.InDelta(t, 90, Compass(tt.State().Heading), eps)
	tt.Forward(10)
	assert.InDelta(t, 10, tt.State().X, eps)

	// LEFT and RIGHT do not normalize.
	tt.Left(500)
	assert.InDelta(t, 500, tt.State().Heading, eps)

	tt.SetHeading(180)
	assert.InDelta(t, 270, tt.State().Heading, eps)
	assert.InDelta(t, 180, Compass(tt.State().Heading), eps)

	tt.SetHeading(-90)
	assert.InDelta(t, 270, Compass(tt.State().Heading), eps)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0}, {360, 0}, {720, 0}, {-90, 270}, {450, 90}, {-0.0, 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, Normalize(tc.in), eps, "Normalize(%v)", tc.in)
	}
}

func TestSetPositionKeepsNilAxis(t *testing.T) {
	tt := New()
	x := 30.0
	tt.SetPosition(&x, nil)
	assert.Equal(t, 30.0, tt.State().X)
	assert.Equal(t, 0.0, tt.State().Y)

	y := -12.0
	tt.SetPosition(nil, &y)
	assert.Equal(t, 30.0, tt.State().X)
	assert.Equal(t, -12.0, tt.State().Y)
}

func TestHomeRestoresPoseAndDraws(t *testing.T) {
	rec := &recorder{}
	tt := New(WithCanvas(rec))
	tt.Right(45)
	tt.Forward(50)
	tt.Home()

	s := tt.State()
	assert.InDelta(t, 0, s.X, eps)
	assert.InDelta(t, 0, s.Y, eps)
	assert.Equal(t, HomeHeading, s.Heading)
	assert.Equal(t, []string{"turn", "move", "move", "turn"}, rec.calls)
}

func TestPenModes(t *testing.T) {
	tt := New()
	tt.PenUp()
	assert.False(t, tt.State().PenDown)

	tt.PenErase()
	assert.True(t, tt.State().PenDown)
	assert.Equal(t, PenErase, tt.State().PenMode)

	tt.PenReverse()
	assert.Equal(t, PenReverse, tt.State().PenMode)

	tt.PenPaint()
	assert.Equal(t, PenPaint, tt.State().PenMode)

	tt.SetPenSize(0)
	assert.Equal(t, 1.0, tt.State().PenSize)
}

func TestClearKeepsBackground(t *testing.T) {
	rec := &recorder{}
	tt := New(WithCanvas(rec))
	tt.SetBackgroundColor(Palette[1])
	tt.SetColor(Palette[4])
	tt.HideTurtle()
	tt.Forward(20)
	tt.Clear()

	s := tt.State()
	assert.Equal(t, Palette[1], s.Background)
	assert.Equal(t, Black, s.PenColor)
	assert.True(t, s.Visible)
	assert.Equal(t, 0.0, s.Y)
	assert.Equal(t, "clear", rec.calls[len(rec.calls)-1])
}

func TestWaitAndSpeedForwarding(t *testing.T) {
	rec := &recorder{}
	tt := New(WithCanvas(rec))
	tt.Wait(500)
	tt.Wait(0)
	tt.SetAnimationSpeed(150)

	require.Len(t, rec.waits, 1)
	assert.Equal(t, 500*time.Millisecond, rec.waits[0])
	assert.Equal(t, 100, tt.Speed())
	assert.Equal(t, 100, rec.speed)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, Palette[4], c)

	c, err = ParseColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 136, B: 0, A: 255}, c)

	c, err = ParseColor("15")
	require.NoError(t, err)
	assert.Equal(t, Palette[15], c)

	_, err = ParseColor("chartreuse")
	assert.Error(t, err)
	_, err = PaletteColor(16)
	assert.Error(t, err)

	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 128, A: 255}, RGB(300, -4, 127.6))
}
