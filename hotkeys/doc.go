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

// Package hotkeys reads single key presses from the controlling terminal and
// converts them into events for the PLAY and RECORD modes.
//
// The terminal is put into cbreak mode for the lifetime of the Reader, so key
// presses are delivered immediately without echo. Close() must be called to
// restore the terminal.
//
// Key bindings:
//
//	r	toggle recording
//	p	toggle precise mixing
//	+ -	increase or decrease the emulation speed
//	1-7	play a note (C4 to B4)
//	q	quit (also ESC and ctrl-c)
package hotkeys
