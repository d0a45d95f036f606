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

// Package playmode runs the emulation in real time with the sound system
// connected to an audio device. The machine is advanced one frame at a time,
// paced by the limiter, and the sound system is updated at the end of every
// frame.
//
// The ensemble plays its pattern on the machine's scheduler and the terminal
// hotkeys control recording, mixing precision, speed and the lead voice.
package playmode
