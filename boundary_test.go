package patternbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pb "github.com/setanarut/patternbuilder"
)

func TestOnBoundary_NonPeriodic(t *testing.T) {
	const w, h = 7, 5
	for _, n := range []int{1, 2, 3} {
		for y := range h {
			for x := range w {
				want := x > w-n || y > h-n
				assert.Equal(t, want, pb.OnBoundary(x, y, n, w, h, false), "n=%d (%d,%d)", n, x, y)
			}
		}
		assert.True(t, pb.OnBoundary(-1, 0, n, w, h, false))
		assert.True(t, pb.OnBoundary(0, -1, n, w, h, false))
	}
}

func TestOnBoundary_Periodic(t *testing.T) {
	for y := -1; y <= 5; y++ {
		for x := -1; x <= 7; x++ {
			assert.False(t, pb.OnBoundary(x, y, 3, 7, 5, true))
		}
	}
}
