// This file is part of m88sound.
//
// m88sound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m88sound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m88sound.  If not, see <https://www.gnu.org/licenses/>.

package ensemble

import (
	"math"

	"github.com/pc88go/m88sound/sound/sources/rhythm"
)

// the number of steps in the pattern. each step is a sixteenth note
const patternLen = 16

// notes are midi note numbers. zero is a rest
var bass = [patternLen]int{
	36, 0, 36, 0, 43, 0, 36, 0,
	41, 0, 41, 0, 43, 0, 38, 0,
}

// chord tones played on the second and third tone channels
var chords = [patternLen][2]int{
	{60, 64}, {}, {}, {}, {67, 71}, {}, {}, {},
	{65, 69}, {}, {}, {}, {67, 71}, {}, {62, 65}, {},
}

var melody = [patternLen]int{
	72, 0, 0, 76, 0, 0, 79, 0,
	77, 0, 76, 0, 74, 0, 0, 0,
}

// drums are a bitmask of rhythm instruments
var drums = [patternLen]int{
	bd | hh | top, 0, hh, 0, sd | hh, 0, hh, bd,
	bd | hh, 0, bd | hh, 0, sd | hh, 0, hh | rim, tom,
}

const (
	bd  = 1 << rhythm.BD
	sd  = 1 << rhythm.SD
	top = 1 << rhythm.TOP
	hh  = 1 << rhythm.HH
	tom = 1 << rhythm.TOM
	rim = 1 << rhythm.RIM
)

// midiToHz converts a midi note number to a frequency
func midiToHz(n int) float64 {
	return 440.0 * math.Pow(2, float64(n-69)/12.0)
}
