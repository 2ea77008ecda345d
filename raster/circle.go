package raster

// Circle plots the outline of a circle with the midpoint algorithm
// Octant pixels may repeat where octants meet
func Circle(cx, cy, r int, plot Plot) {
	if r < 0 {
		return
	}
	x, y := r, 0
	p := 1 - r
	for x >= y {
		plot(cx+x, cy+y)
		plot(cx+y, cy+x)
		plot(cx-y, cy+x)
		plot(cx-x, cy+y)
		plot(cx-x, cy-y)
		plot(cx-y, cy-x)
		plot(cx+y, cy-x)
		plot(cx+x, cy-y)

		y++
		if p <= 0 {
			p += 2*y + 1
		} else {
			x--
			p += 2*(y-x) + 1
		}
	}
}
