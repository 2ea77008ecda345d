package vmath

import "math"

// Vec2 is a point or direction in continuous world space
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromAngle returns the unit vector (cos a, sin a)
func FromAngle(a float64) Vec2 {
	return Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }
func (v Vec2) Eq(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Rotate rotates counter-clockwise by a radians in a y-up frame
// On a y-down screen this reads as clockwise for positive a
func (v Vec2) Rotate(a float64) Vec2 {
	s, c := math.Sincos(a)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Normalize returns the unit vector, zero vector stays zero
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// DistToSegment returns the shortest distance from p to segment ab
func DistToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}

// PointInPolygon reports whether p lies inside the closed polygon (even-odd rule)
func PointInPolygon(p Vec2, poly []Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
