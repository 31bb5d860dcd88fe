package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsIsInclusive(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	assert.True(t, r.Contains(NewPoint2D(25, 35)))
	for _, c := range r.Corners() {
		assert.True(t, r.Contains(c), "corner %v", c)
	}
	assert.False(t, r.Contains(NewPoint2D(9.99, 30)))
	assert.False(t, r.Contains(NewPoint2D(25, 60.01)))
}

func TestSquareAround(t *testing.T) {
	sq := SquareAround(NewPoint2D(100, 100), 5)
	assert.Equal(t, NewRect(95, 95, 10, 10), sq)
	assert.Equal(t, NewPoint2D(100, 100), sq.Center())
}

func TestDistanceToLine(t *testing.T) {
	tests := []struct {
		name      string
		p         Point2D
		slope     float64
		intercept float64
		want      float64
	}{
		{"near diagonal", NewPoint2D(10, 11), 1, 0, math.Sqrt2 / 2},
		{"far diagonal", NewPoint2D(10, 20), 1, 0, 10 / math.Sqrt2},
		{"horizontal", NewPoint2D(3, 7), 0, 4, 3},
		{"vertical", NewPoint2D(12, 99), math.Inf(1), 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceToLine(tt.p, tt.slope, tt.intercept), 1e-9)
		})
	}
}

func TestSlopeThrough(t *testing.T) {
	slope, intercept := SlopeThrough(NewPoint2D(0, 1), NewPoint2D(2, 5))
	assert.Equal(t, 2.0, slope)
	assert.Equal(t, 1.0, intercept)

	slope, intercept = SlopeThrough(NewPoint2D(4, 1), NewPoint2D(4, 9))
	assert.True(t, math.IsInf(slope, 1))
	assert.Equal(t, 4.0, intercept)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo(1.2345, 2))
	assert.Equal(t, -0.5, RoundTo(-0.499, 1))
	assert.False(t, math.Signbit(RoundTo(-0.001, 2)), "negative zero is dropped")
	assert.Equal(t, NewPoint2D(1.5, -2.25), NewPoint2D(1.4999, -2.2501).Round(2))
}
