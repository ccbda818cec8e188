package patternbuilder

// MaxSymmetry is the size of the dihedral group of the square.
const MaxSymmetry = 8

// PatternAt samples the N×N window whose top-left corner is (x,y), wrapping
// reads around the grid edges.
func PatternAt(g Grid, x, y, n int) Pattern {
	p := make(Pattern, n*n)
	for dy := range n {
		for dx := range n {
			p[dx+dy*n] = g.Wrapped(x+dx, y+dy)
		}
	}
	return p
}

// Rotate returns p rotated by 90 degrees.
func Rotate(p Pattern, n int) Pattern {
	r := make(Pattern, n*n)
	for y := range n {
		for x := range n {
			r[x+y*n] = p[n-1-y+x*n]
		}
	}
	return r
}

// Reflect returns p mirrored left to right.
func Reflect(p Pattern, n int) Pattern {
	r := make(Pattern, n*n)
	for y := range n {
		for x := range n {
			r[x+y*n] = p[n-1-x+y*n]
		}
	}
	return r
}

// Expand returns the eight orientations of base. Even entries are successive
// 90 degree rotations, each odd entry is the reflection of the one before it.
func Expand(base Pattern, n int) [MaxSymmetry]Pattern {
	var ps [MaxSymmetry]Pattern
	ps[0] = base
	ps[1] = Reflect(ps[0], n)
	for k := 2; k < MaxSymmetry; k += 2 {
		ps[k] = Rotate(ps[k-2], n)
		ps[k+1] = Reflect(ps[k], n)
	}
	return ps
}
