// seehuhn.de/go/outline - a 2D outline construction library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package outline

import "seehuhn.de/go/geom/vec"

// Curve flattening constants.
const (
	// flattenTolerance is the maximum perpendicular distance between a
	// Bézier curve and its polyline approximation. Outlines are built at
	// a known output resolution, so the tolerance is fixed rather than
	// caller-configurable. 0.25 is below the threshold of visual
	// perception at device resolution.
	flattenTolerance = 0.25

	// maxSplitDepth bounds the recursive midpoint subdivision of a
	// curve. Numerically degenerate control polygons can fail the
	// flatness test forever; the depth cap guarantees termination with
	// at most 2^maxSplitDepth segments per curve.
	maxSplitDepth = 10
)

// CubeTo appends a cubic Bézier curve from the current point via the
// control points c1 and c2 to p. The curve is flattened into a chain of
// edges by recursive midpoint subdivision; the chain ends exactly at p.
//
// If no subpath has been started, CubeTo behaves like MoveTo(p): the
// current point is set to p and no edges are appended.
func (o *Outline) CubeTo(c1, c2, p vec.Vec2) *Outline {
	if !o.hasCurrent {
		return o.MoveTo(p)
	}
	flattenCubic(o.current, c1, c2, p, flattenTolerance, 0, o.appendEdge)
	o.current = p
	return o
}

// QuadTo appends a quadratic Bézier curve from the current point via
// the control point c to p, flattened like CubeTo.
//
// If no subpath has been started, QuadTo behaves like MoveTo(p).
func (o *Outline) QuadTo(c, p vec.Vec2) *Outline {
	if !o.hasCurrent {
		return o.MoveTo(p)
	}
	flattenQuadratic(o.current, c, p, flattenTolerance, 0, o.appendEdge)
	o.current = p
	return o
}

// flattenCubic subdivides the cubic Bézier p0-p1-p2-p3 at its midpoint
// (de Casteljau) until both control points lie within tol of the chord
// p0-p3, then emits the chord. depth must be 0 on the outermost call.
func flattenCubic(p0, p1, p2, p3 vec.Vec2, tol float64, depth int, emit func(from, to vec.Vec2)) {
	if depth >= maxSplitDepth ||
		(distToChord(p1, p0, p3) <= tol && distToChord(p2, p0, p3) <= tol) {
		emit(p0, p3)
		return
	}

	m01 := midpoint(p0, p1)
	m12 := midpoint(p1, p2)
	m23 := midpoint(p2, p3)
	m012 := midpoint(m01, m12)
	m123 := midpoint(m12, m23)
	m := midpoint(m012, m123)

	flattenCubic(p0, m01, m012, m, tol, depth+1, emit)
	flattenCubic(m, m123, m23, p3, tol, depth+1, emit)
}

// flattenQuadratic subdivides the quadratic Bézier p0-p1-p2 at its
// midpoint until the control point lies within tol of the chord p0-p2,
// then emits the chord.
func flattenQuadratic(p0, p1, p2 vec.Vec2, tol float64, depth int, emit func(from, to vec.Vec2)) {
	if depth >= maxSplitDepth || distToChord(p1, p0, p2) <= tol {
		emit(p0, p2)
		return
	}

	m01 := midpoint(p0, p1)
	m12 := midpoint(p1, p2)
	m := midpoint(m01, m12)

	flattenQuadratic(p0, m01, m, tol, depth+1, emit)
	flattenQuadratic(m, m12, p2, tol, depth+1, emit)
}

// midpoint returns the point halfway between a and b.
func midpoint(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// distToChord returns the distance from p to the segment a-b.
// For a degenerate chord (a == b) the distance to a is returned.
func distToChord(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	ap := p.Sub(a)
	len2 := d.Dot(d)
	if len2 == 0 {
		return ap.Length()
	}
	// project p onto the chord, clamped to the segment
	t := ap.Dot(d) / len2
	t = max(0, min(1, t))
	return ap.Sub(d.Mul(t)).Length()
}
