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

package sound

// error patterns returned by the sound package. use with curated.Is() and
// curated.Has()
const (
	InitError       = "sound: init: %v"
	NoClockError    = "sound: no virtual clock"
	RateError       = "sound: invalid rate (%d)"
	BufferSizeError = "sound: invalid buffer size (%d)"
)
