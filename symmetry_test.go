package patternbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pb "github.com/setanarut/patternbuilder"
)

func TestRotateReflect(t *testing.T) {
	p := pb.Pattern{
		0, 1,
		2, 3,
	}
	assert.Equal(t, pb.Pattern{1, 3, 0, 2}, pb.Rotate(p, 2))
	assert.Equal(t, pb.Pattern{1, 0, 3, 2}, pb.Reflect(p, 2))
}

func TestRotate_FourTimesIsIdentity(t *testing.T) {
	g := randomGrid(5, 5, 4, 7)
	for _, n := range []int{1, 2, 3, 4} {
		p := pb.PatternAt(g, 1, 1, n)
		r := p
		for range 4 {
			r = pb.Rotate(r, n)
		}
		assert.Equal(t, p, r, "n=%d", n)
		assert.Equal(t, p, pb.Reflect(pb.Reflect(p, n), n), "n=%d", n)
	}
}

func TestExpand_Order(t *testing.T) {
	p := pb.PatternAt(randomGrid(4, 4, 5, 3), 0, 0, 3)
	ps := pb.Expand(p, 3)
	assert.Equal(t, p, ps[0])
	for k := 0; k < pb.MaxSymmetry; k += 2 {
		assert.Equal(t, pb.Reflect(ps[k], 3), ps[k+1], "variant %d", k+1)
		if k > 0 {
			assert.Equal(t, pb.Rotate(ps[k-2], 3), ps[k], "variant %d", k)
		}
	}
}

func TestExpand_SingleCellIsInvariant(t *testing.T) {
	for _, v := range pb.Expand(pb.Pattern{4}, 1) {
		assert.Equal(t, pb.Pattern{4}, v)
	}
}

func TestPatternAt_Wraps(t *testing.T) {
	_, g := quantize(t,
		"ab",
		"cd",
	)
	// a=0 b=1 c=2 d=3
	assert.Equal(t, pb.Pattern{3, 2, 1, 0}, pb.PatternAt(g, 1, 1, 2))
}
