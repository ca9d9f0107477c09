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

// Package outline builds polyline outlines for scanline rasterisation.
//
// An Outline accumulates drawing commands (move, line, curve, close) into
// an ordered list of directed line segments. Cubic and quadratic Bézier
// curves are flattened into line segments during construction. The
// finished edge list can be transformed by an affine matrix and is then
// consumed read-only by a scanline rasteriser.
package outline

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Edge is a directed line segment from (X0, Y0) to (X1, Y1).
//
// The vertical extent and winding direction needed by a scanline
// rasteriser are derived from the endpoints on demand, so they remain
// valid after the outline has been transformed.
type Edge struct {
	X0, Y0 float64 // start point
	X1, Y1 float64 // end point
}

// YMin returns the smaller y coordinate of the two endpoints.
func (e Edge) YMin() float64 {
	return min(e.Y0, e.Y1)
}

// YMax returns the larger y coordinate of the two endpoints.
func (e Edge) YMax() float64 {
	return max(e.Y0, e.Y1)
}

// Winding returns the scanline crossing direction of the edge:
// +1 if the edge points downwards (Y1 > Y0), -1 if it points upwards,
// and 0 for horizontal edges, which never cross a scanline.
func (e Edge) Winding() int {
	switch {
	case e.Y1 > e.Y0:
		return +1
	case e.Y1 < e.Y0:
		return -1
	default:
		return 0
	}
}

// Outline is a mutable, append-only path builder.
//
// The zero value is an empty outline ready for use. Methods return the
// receiver so that calls can be chained.
//
// An Outline is not safe for concurrent use.
type Outline struct {
	edges []Edge

	current    vec.Vec2 // pen position (start of the next segment)
	start      vec.Vec2 // first point of the current subpath
	hasCurrent bool     // false until the first MoveTo
}

// New returns a new, empty Outline.
func New() *Outline {
	return &Outline{}
}

// MoveTo starts a new subpath at p. No edge is appended.
func (o *Outline) MoveTo(p vec.Vec2) *Outline {
	o.current = p
	o.start = p
	o.hasCurrent = true
	return o
}

// LineTo appends an edge from the current point to p and moves the
// current point to p.
//
// If no subpath has been started, LineTo behaves like MoveTo: the
// current point is set to p and no edge is appended.
func (o *Outline) LineTo(p vec.Vec2) *Outline {
	if !o.hasCurrent {
		return o.MoveTo(p)
	}
	o.appendEdge(o.current, p)
	o.current = p
	return o
}

// Close appends an edge from the current point back to the start of the
// current subpath, unless the two coincide, and moves the current point
// to the subpath start. Without a subpath, Close does nothing.
// Calling Close twice in a row appends at most one edge.
func (o *Outline) Close() *Outline {
	if !o.hasCurrent {
		return o
	}
	if o.current != o.start {
		o.appendEdge(o.current, o.start)
		o.current = o.start
	}
	return o
}

// Transform applies the affine matrix m to every stored edge endpoint
// and to the pen state, in place. The mapping follows the geom
// convention: x' = m[0]x + m[2]y + m[4], y' = m[1]x + m[3]y + m[5].
//
// Applying Transform twice composes the two transforms. Non-finite
// results are passed through unchecked; rejecting degenerate geometry
// is the consuming rasteriser's concern.
func (o *Outline) Transform(m matrix.Matrix) *Outline {
	for i := range o.edges {
		e := &o.edges[i]
		e.X0, e.Y0 = m[0]*e.X0+m[2]*e.Y0+m[4], m[1]*e.X0+m[3]*e.Y0+m[5]
		e.X1, e.Y1 = m[0]*e.X1+m[2]*e.Y1+m[4], m[1]*e.X1+m[3]*e.Y1+m[5]
	}
	o.current = transformVec(m, o.current)
	o.start = transformVec(m, o.start)
	return o
}

// transformVec applies the affine matrix m to a single point.
func transformVec(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// Len returns the number of edges accumulated so far.
func (o *Outline) Len() int {
	return len(o.edges)
}

// Edges returns the accumulated edges as a view into the outline's
// internal storage. The slice is valid until the next mutating call;
// callers must not modify or retain it.
func (o *Outline) Edges() []Edge {
	return o.edges
}

// Bounds returns the bounding box of all edge endpoints.
// For an empty outline the zero rectangle is returned.
func (o *Outline) Bounds() rect.Rect {
	if len(o.edges) == 0 {
		return rect.Rect{}
	}
	e0 := o.edges[0]
	r := rect.Rect{
		LLx: min(e0.X0, e0.X1),
		LLy: min(e0.Y0, e0.Y1),
		URx: max(e0.X0, e0.X1),
		URy: max(e0.Y0, e0.Y1),
	}
	for _, e := range o.edges[1:] {
		r.LLx = min(r.LLx, e.X0, e.X1)
		r.LLy = min(r.LLy, e.Y0, e.Y1)
		r.URx = max(r.URx, e.X0, e.X1)
		r.URy = max(r.URy, e.Y0, e.Y1)
	}
	return r
}

// Reset clears the outline for reuse, preserving the capacity of the
// edge list.
func (o *Outline) Reset() {
	o.edges = o.edges[:0]
	o.current = vec.Vec2{}
	o.start = vec.Vec2{}
	o.hasCurrent = false
}

// appendEdge appends the segment p0→p1 to the edge list.
// Zero-length segments carry no geometric information and are dropped.
func (o *Outline) appendEdge(p0, p1 vec.Vec2) {
	if p0 == p1 {
		return
	}
	o.edges = append(o.edges, Edge{
		X0: p0.X, Y0: p0.Y,
		X1: p1.X, Y1: p1.Y,
	})
}
