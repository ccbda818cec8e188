package patternbuilder

// OnBoundary reports whether an N×N pattern placed with its top-left corner at
// (x,y) would run past the edge of a width×height output. A periodic output
// wraps, so no cell is ever on the boundary.
func OnBoundary(x, y, n, width, height int, periodic bool) bool {
	return !periodic && (x+n > width || y+n > height || x < 0 || y < 0)
}
