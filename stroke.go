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

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a line segment of a flattened subpath, with
// precomputed direction vectors.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// Stroker converts paths into stroke outlines. The region covered by
// stroking a path with the given width, caps and joins is built as a
// set of closed polygons and appended to an Outline as edges, to be
// filled by the consuming rasteriser using the nonzero winding rule.
//
// Create one Stroker and reuse it for multiple paths; internal buffers
// grow as needed but never shrink.
type Stroker struct {
	// Width is the stroke thickness. Must be positive.
	Width float64

	// Cap sets the style for stroke endpoints (butt, round, or square).
	Cap graphics.LineCapStyle

	// Join sets the style for stroke corners (miter, round, or bevel).
	Join graphics.LineJoinStyle

	// MiterLimit caps miter join length. Must be at least 1.0.
	MiterLimit float64

	// Dash specifies alternating on/off lengths.
	// All elements must be non-negative, and at least one must be
	// positive. Nil means solid (no dashing).
	Dash []float64

	// DashPhase offsets into the dash pattern.
	DashPhase float64

	// Flatness is the tolerance used when flattening curves of the
	// input path. Must be positive.
	Flatness float64

	segs []strokeSegment // flattened segments of the current subpath
	poly []vec.Vec2      // vertices of the stroke polygon being built
}

// NewStroker returns a Stroker with PDF default parameters:
// width 1, butt caps, miter joins with limit 10, no dash pattern.
func NewStroker() *Stroker {
	return &Stroker{
		Width:      1.0,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
		Flatness:   strokeFlatness,
	}
}

// Append builds the stroke outline of p and appends it to o.
// Each subpath of p contributes one or more closed polygons.
func (s *Stroker) Append(o *Outline, p path.Path) {
	var current, subpathStart vec.Vec2
	inSubpath := false
	sawDrawing := false
	s.segs = s.segs[:0]

	finish := func(closed bool) {
		if !inSubpath {
			return
		}
		if len(s.segs) == 0 {
			if sawDrawing || closed {
				s.strokeDot(o, subpathStart)
			}
		} else if len(s.Dash) > 0 {
			s.strokeDashed(o, s.segs, closed)
		} else {
			s.strokeSubpath(o, s.segs, closed)
		}
		s.segs = s.segs[:0]
		inSubpath = false
		sawDrawing = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			current = pts[0]
			subpathStart = current
			inSubpath = true

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			sawDrawing = true
			s.addSegment(current, pts[0])
			current = pts[0]

		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			sawDrawing = true
			flattenQuadratic(current, pts[0], pts[1], s.Flatness, 0, s.addSegment)
			current = pts[1]

		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			sawDrawing = true
			flattenCubic(current, pts[0], pts[1], pts[2], s.Flatness, 0, s.addSegment)
			current = pts[2]

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if current != subpathStart {
				s.addSegment(current, subpathStart)
			}
			current = subpathStart
			finish(true)
		}
	}
	finish(false)
}

// addSegment appends a flattened segment, skipping degenerate ones.
func (s *Stroker) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	s.segs = append(s.segs, strokeSegment{A: a, B: b, T: t, N: normal(t)})
}

// strokeDot handles a subpath with drawing commands but no extent.
// Such a subpath has no orientation, so only the round cap produces
// ink: a full circle around the point.
func (s *Stroker) strokeDot(o *Outline, p vec.Vec2) {
	if s.Cap != graphics.LineCapRound {
		return
	}
	s.poly = s.poly[:0]
	s.arc(p, s.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
	s.emit(o)
}

// strokeSubpath builds the stroke polygon for one flattened subpath and
// appends its edges to o.
//
// The polygon traverses the left offset side (+N) in path order, then
// the right offset side (-N) in reverse order. For closed subpaths the
// two sides form separate loops connected by a pair of coincident seam
// segments which cancel under the nonzero winding rule.
func (s *Stroker) strokeSubpath(o *Outline, segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := s.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]
	s.poly = s.poly[:0]

	if !closed {
		// start cap, pointing backwards
		s.cap(first.A, first.T.Mul(-1), d)
	}

	// left side, forward
	s.poly = append(s.poly, first.A.Add(first.N.Mul(d)))
	for i := 0; i < len(segs)-1; i++ {
		s.corner(segs[i].B, segs[i].T, segs[i+1].T, d, true)
	}
	s.poly = append(s.poly, last.B.Add(last.N.Mul(d)))

	if closed {
		// closing corner and seam to the right side
		s.corner(first.A, last.T, first.T, d, true)
		s.corner(first.A, last.T, first.T, d, false)
	} else {
		s.cap(last.B, last.T, d)
	}

	// right side, backward
	s.poly = append(s.poly, last.B.Sub(last.N.Mul(d)))
	for i := len(segs) - 1; i > 0; i-- {
		s.corner(segs[i].A, segs[i-1].T, segs[i].T, d, false)
	}
	s.poly = append(s.poly, first.A.Sub(first.N.Mul(d)))

	s.emit(o)
}

// corner adds the offset vertices for the corner at P, where the
// forward tangent changes from t1 to t2. left selects the +N side
// (traversed in path order) or the -N side (traversed backwards).
func (s *Stroker) corner(P, t1, t2 vec.Vec2, d float64, left bool) {
	sinTheta := t1.X*t2.Y - t1.Y*t2.X
	n1 := normal(t1)
	n2 := normal(t2)

	// offset points in traversal order
	var o1, o2 vec.Vec2
	if left {
		o1 = P.Add(n1.Mul(d))
		o2 = P.Add(n2.Mul(d))
	} else {
		o1 = P.Sub(n2.Mul(d))
		o2 = P.Sub(n1.Mul(d))
	}

	if math.Abs(sinTheta) < collinearityThreshold {
		s.poly = append(s.poly, o1, o2)
		return
	}

	inner := (sinTheta > 0) == left
	if inner {
		if ip, ok := innerIntersection(P, t1, t2, d, left); ok {
			s.poly = append(s.poly, ip)
		} else {
			s.poly = append(s.poly, o1, o2)
		}
		return
	}

	s.poly = append(s.poly, o1)
	s.join(P, t1, t2, d, left)
	s.poly = append(s.poly, o2)
}

// innerIntersection returns the intersection point of the two inner
// offset lines at a corner, or ok=false if the segments are too close
// to collinear for a meaningful intersection.
func innerIntersection(P, t1, t2 vec.Vec2, d float64, left bool) (vec.Vec2, bool) {
	cosTheta := t1.Dot(t2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}

	// cos(θ/2) = sqrt((1 + cos θ) / 2)
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := normal(t1).Add(normal(t2))
	if !left {
		dir = dir.Mul(-1)
	}
	dirLen := dir.Length()
	if dirLen < 1e-9 {
		return vec.Vec2{}, false
	}
	dir = dir.Mul(1 / dirLen)

	return P.Add(dir.Mul(d / halfAngle)), true
}

// join adds the outer join geometry at P where the forward tangent
// changes from t1 to t2, on the side selected by left.
func (s *Stroker) join(P, t1, t2 vec.Vec2, d float64, left bool) {
	cosTheta := t1.Dot(t2)
	sinTheta := t1.X*t2.Y - t1.Y*t2.X

	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	// path doubling back on itself: emit two caps instead of a join
	if cosTheta < cuspCosineThreshold {
		s.cap(P, t1, d)
		s.cap(P, t2.Mul(-1), d)
		return
	}

	switch s.Join {
	case graphics.LineJoinMiter:
		// miterLength = 1/sin(φ/2) where φ is the interior angle of the
		// stroke; sin(φ/2) = cos(θ/2) = sqrt((1 + cos θ)/2)
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= s.MiterLimit+miterEpsilon {
			bisector := normal(t1).Add(normal(t2))
			if !left {
				bisector = bisector.Mul(-1)
			}
			bisectorLen := bisector.Length()
			if bisectorLen > zeroLengthThreshold {
				bisector = bisector.Mul(1 / bisectorLen)
				s.poly = append(s.poly, P.Add(bisector.Mul(d/sinHalf)))
			}
			return
		}
		// miter limit exceeded
		fallthrough

	case graphics.LineJoinBevel:
		// the two offset points added by the caller form the bevel

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if left {
			// arc from the +N offset of t1 to the +N offset of t2
			if sinTheta > 0 {
				s.arc(P, d, normal(t1), angle, false)
			} else {
				s.arc(P, d, normal(t1), -angle, false)
			}
		} else {
			// backward traversal: arc from the -N offset of t2 to the
			// -N offset of t1, sweep reversed
			n2 := normal(t2).Mul(-1)
			if sinTheta > 0 {
				s.arc(P, d, n2, -angle, false)
			} else {
				s.arc(P, d, n2, angle, false)
			}
		}
	}
}

// cap adds a line cap at P. T is the outward tangent (pointing away
// from the stroked line), d is half the stroke width.
func (s *Stroker) cap(P, T vec.Vec2, d float64) {
	N := normal(T)

	switch s.Cap {
	case graphics.LineCapButt:
		// the adjacent offset points form the butt edge

	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		s.poly = append(s.poly, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))

	case graphics.LineCapRound:
		// semicircle curving outward through the T direction
		s.arc(P, d, N, -math.Pi, true)
	}
}

// square adds a width×width square around P, oriented by the tangent T.
// Used for zero-length dash segments with square caps.
func (s *Stroker) square(P, T vec.Vec2, d float64) {
	N := normal(T)
	s.poly = append(s.poly,
		P.Add(T.Mul(d)).Add(N.Mul(d)),
		P.Add(T.Mul(d)).Sub(N.Mul(d)),
		P.Sub(T.Mul(d)).Sub(N.Mul(d)),
		P.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}

// arc adds vertices approximating a circular arc around center.
// startDir is the unit vector from center to the arc's start point,
// sweep the signed sweep angle (positive = CCW). includeStart controls
// whether the start point itself is added.
func (s *Stroker) arc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	if radius < s.Flatness {
		// arc smaller than the tolerance: endpoints suffice
		if includeStart {
			s.poly = append(s.poly, center.Add(startDir.Mul(radius)))
		}
		s.poly = append(s.poly, center.Add(rotate(startDir, sweep).Mul(radius)))
		return
	}

	// A chord subtending the angle θ deviates from the circle by the
	// sagitta radius*(1-cos(θ/2)). Choose θ so the sagitta equals the
	// flattening tolerance.
	angleStep := 2 * math.Acos(1-s.Flatness/radius)
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/angleStep)), 1)

	dt := sweep / float64(n)
	startI := 0
	if !includeStart {
		startI = 1
	}
	for i := startI; i <= n; i++ {
		dir := rotate(startDir, float64(i)*dt)
		s.poly = append(s.poly, center.Add(dir.Mul(radius)))
	}
}

// emit appends the current stroke polygon to o as edges and clears it.
// Degenerate polygons (fewer than three vertices) are discarded.
func (s *Stroker) emit(o *Outline) {
	if len(s.poly) >= 3 {
		o.MoveTo(s.poly[0])
		for _, q := range s.poly[1:] {
			o.LineTo(q)
		}
		o.Close()
	}
	s.poly = s.poly[:0]
}

// normal returns the 90° CCW rotation of t.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

// rotate returns v rotated by the angle a (positive = CCW).
func rotate(v vec.Vec2, a float64) vec.Vec2 {
	sin, cos := math.Sincos(a)
	return vec.Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Stroking constants, matching PDF/PostScript defaults.
const (
	// strokeFlatness is the default curve flattening tolerance for
	// stroked paths.
	strokeFlatness = 0.25

	// defaultMiterLimit converts miter joins to bevels when the
	// interior angle is less than approximately 11.5 degrees.
	defaultMiterLimit = 10.0

	// zeroLengthThreshold is the minimum length for a stroke segment.
	// Shorter segments are skipped.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold detects nearly collinear adjacent segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects the path doubling back on itself.
	// cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
