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
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestAddPathMatchesBuilder(t *testing.T) {
	p := func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(0, 0)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(20, 0)}) {
			return
		}
		if !yield(path.CmdCubeTo, []vec.Vec2{pt(25, 5), pt(25, 15), pt(20, 20)}) {
			return
		}
		if !yield(path.CmdQuadTo, []vec.Vec2{pt(10, 25), pt(0, 20)}) {
			return
		}
		yield(path.CmdClose, nil)
	}

	a := New()
	a.AddPath(p)

	b := New()
	b.MoveTo(pt(0, 0)).
		LineTo(pt(20, 0)).
		CubeTo(pt(25, 5), pt(25, 15), pt(20, 20)).
		QuadTo(pt(10, 25), pt(0, 20)).
		Close()

	if a.Len() != b.Len() {
		t.Fatalf("AddPath emitted %d edges, builder %d", a.Len(), b.Len())
	}
	for i := range a.Edges() {
		if a.Edges()[i] != b.Edges()[i] {
			t.Errorf("edge %d: %+v vs %+v", i, a.Edges()[i], b.Edges()[i])
		}
	}
}

func TestAddPathDrawingBeforeMove(t *testing.T) {
	// a malformed path starting with a drawing command must not draw
	p := func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdLineTo, []vec.Vec2{pt(5, 5)}) {
			return
		}
		yield(path.CmdLineTo, []vec.Vec2{pt(9, 5)})
	}

	o := New()
	o.AddPath(p)
	if o.Len() != 1 {
		t.Fatalf("got %d edges, want 1", o.Len())
	}
	if e := o.Edges()[0]; e != (Edge{X0: 5, Y0: 5, X1: 9, Y1: 5}) {
		t.Errorf("unexpected edge %+v", e)
	}
}

func TestAddPathPenState(t *testing.T) {
	// after AddPath the pen continues where the path left off
	p := func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(0, 0)}) {
			return
		}
		yield(path.CmdLineTo, []vec.Vec2{pt(10, 0)})
	}

	o := New()
	o.AddPath(p)
	o.LineTo(pt(10, 10)).Close()

	want := []Edge{
		{X0: 0, Y0: 0, X1: 10, Y1: 0},
		{X0: 10, Y0: 0, X1: 10, Y1: 10},
		{X0: 10, Y0: 10, X1: 0, Y1: 0},
	}
	if o.Len() != len(want) {
		t.Fatalf("got %d edges, want %d", o.Len(), len(want))
	}
	for i, e := range o.Edges() {
		if e != want[i] {
			t.Errorf("edge %d: got %+v, want %+v", i, e, want[i])
		}
	}
}

func TestAddPathMultipleSubpaths(t *testing.T) {
	// two rectangles, the second one acting as a hole
	p := func(yield func(path.Command, []vec.Vec2) bool) {
		outer := []vec.Vec2{pt(0, 0), pt(40, 0), pt(40, 40), pt(0, 40)}
		inner := []vec.Vec2{pt(10, 10), pt(10, 30), pt(30, 30), pt(30, 10)}
		for _, loop := range [][]vec.Vec2{outer, inner} {
			if !yield(path.CmdMoveTo, loop[:1]) {
				return
			}
			for _, q := range loop[1:] {
				if !yield(path.CmdLineTo, []vec.Vec2{q}) {
					return
				}
			}
			if !yield(path.CmdClose, nil) {
				return
			}
		}
	}

	o := New()
	o.AddPath(p)
	if o.Len() != 8 {
		t.Fatalf("got %d edges, want 8", o.Len())
	}

	if w := windingAt(o, 5, 5); w == 0 {
		t.Error("point in the outer ring reads as outside")
	}
	if w := windingAt(o, 20, 20); w != 0 {
		t.Errorf("point in the hole has winding %d, want 0", w)
	}
	if w := windingAt(o, 50, 20); w != 0 {
		t.Errorf("point outside has winding %d, want 0", w)
	}
}
