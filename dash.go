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

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeDashed splits one flattened subpath into dash runs and strokes
// each run as an open subpath. Odd-length dash patterns repeat doubled,
// as in PostScript. For closed subpaths whose first and last dash are
// both "on", the two are merged so no cap is drawn at the subpath
// start.
func (s *Stroker) strokeDashed(o *Outline, segs []strokeSegment, closed bool) {
	dash := s.Dash
	dashLen := len(dash)

	patternLen := 0.0
	for _, d := range dash {
		patternLen += d
	}
	if dashLen%2 == 1 {
		patternLen *= 2
	}
	if patternLen <= 0 {
		// empty pattern: stroke solid
		s.strokeSubpath(o, segs, closed)
		return
	}

	phase := math.Mod(s.DashPhase, patternLen)
	if phase < 0 {
		phase += patternLen
	}

	// find the dash element the phase falls into
	dashIdx := 0
	dist := phase
	for dist >= dash[dashIdx%dashLen] && dash[dashIdx%dashLen] > 0 {
		dist -= dash[dashIdx%dashLen]
		dashIdx++
	}
	remaining := dash[dashIdx%dashLen] - dist
	isOn := dashIdx%2 == 0

	var runs [][]strokeSegment
	var cur []strokeSegment

	// A zero-length "on" element at the very start of the subpath
	// becomes a dot which round and square caps turn into ink.
	if isOn && remaining == 0 && len(segs) > 0 {
		seg := segs[0]
		runs = append(runs, []strokeSegment{{A: seg.A, B: seg.A, T: seg.T, N: seg.N}})
		dashIdx++
		remaining = dash[dashIdx%dashLen]
		isOn = dashIdx%2 == 0
	}

	startedOn := isOn
	firstRun := len(runs)

	// walk segments, splitting at dash boundaries
	segIdx := 0
	segDist := 0.0 // distance already consumed along segs[segIdx]
	for segIdx < len(segs) {
		seg := segs[segIdx]
		segLen := seg.B.Sub(seg.A).Length()
		segRemaining := segLen - segDist

		if remaining >= segRemaining {
			// dash element continues past this segment
			if isOn {
				if segDist > 0 {
					start := seg.A.Add(seg.T.Mul(segDist))
					cur = append(cur, strokeSegment{A: start, B: seg.B, T: seg.T, N: seg.N})
				} else {
					cur = append(cur, seg)
				}
			}
			remaining -= segRemaining
			segIdx++
			segDist = 0
		} else {
			// dash element ends within this segment
			endDist := segDist + remaining
			if isOn {
				start := seg.A.Add(seg.T.Mul(segDist))
				stop := seg.A.Add(seg.T.Mul(endDist))
				if stop.Sub(start).Length() > zeroLengthThreshold {
					cur = append(cur, strokeSegment{A: start, B: stop, T: seg.T, N: seg.N})
				} else if len(cur) == 0 {
					// zero-length dash: dot with the underlying
					// segment's orientation
					cur = append(cur, strokeSegment{A: start, B: start, T: seg.T, N: seg.N})
				}
				if len(cur) > 0 {
					runs = append(runs, cur)
					cur = nil
				}
			}
			segDist = endDist
			dashIdx++
			remaining = dash[dashIdx%dashLen]
			isOn = dashIdx%2 == 0
		}
	}

	if len(cur) > 0 {
		if closed && startedOn && isOn && len(runs) > firstRun {
			// the final dash wraps around the subpath start:
			// merge it with the first dash
			cur = append(cur, runs[firstRun]...)
			runs = append(runs[:firstRun], runs[firstRun+1:]...)
		}
		runs = append(runs, cur)
	}

	for _, run := range runs {
		if len(run) == 1 && run[0].A == run[0].B {
			s.dashDot(o, run[0])
			continue
		}
		s.strokeSubpath(o, run, false)
	}
}

// dashDot draws a zero-length dash segment. Unlike a degenerate
// subpath, it has an orientation, so square caps produce an oriented
// square in addition to the round-cap circle.
func (s *Stroker) dashDot(o *Outline, seg strokeSegment) {
	switch s.Cap {
	case graphics.LineCapRound:
		s.poly = s.poly[:0]
		s.arc(seg.A, s.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
		s.emit(o)
	case graphics.LineCapSquare:
		s.poly = s.poly[:0]
		s.square(seg.A, seg.T, s.Width/2)
		s.emit(o)
	}
}
