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

// Package dumppipe records the audio delivered to the audio device as a WAV
// file. The Pipe type decorates any sound.Provider. Whatever the audio device
// pulls through the Pipe is also written to the file, untouched.
//
// Silence at the start of a recording is not written. A recording begins in
// the Standby state and moves to the Recording state on the first frame that
// is not silent.
package dumppipe
