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

import "seehuhn.de/go/geom/path"

// AddPath replays the command stream of p onto the outline, flattening
// any curves. The outline's pen state afterwards reflects the last
// command of the path, so more commands can be appended manually.
//
// Drawing commands before the first MoveTo of p are subject to the same
// tolerance policy as the corresponding Outline methods.
func (o *Outline) AddPath(p path.Path) *Outline {
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			o.MoveTo(pts[0])
		case path.CmdLineTo:
			o.LineTo(pts[0])
		case path.CmdQuadTo:
			o.QuadTo(pts[0], pts[1])
		case path.CmdCubeTo:
			o.CubeTo(pts[0], pts[1], pts[2])
		case path.CmdClose:
			o.Close()
		}
	}
	return o
}
