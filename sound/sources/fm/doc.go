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

// Package fm is a single two operator FM voice. The modulator shifts the
// phase of the carrier. The voice has an instant attack and a linear
// release.
//
// Any number of voices can be connected to the sound.Bus. The voice makes no
// attempt to model the operators, envelopes or registers of any real FM
// chip.
package fm
