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

// Package psg is a programmable sound generator with three square wave tone
// channels and one noise channel. It is a sound.Source and is intended to be
// connected to the sound.Bus.
//
// The generator is not a model of any particular chip. Volume is in 16 steps
// of 2dB, with zero being silence, in the manner of the SSG found in many
// home computers.
package psg
