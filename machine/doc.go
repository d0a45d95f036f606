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

// Package machine is a minimal virtual machine that drives the sound system.
// It owns a monotonic tick counter, an effective speed, and a scheduler of
// events on the virtual time line. It satisfies the sound.Clock and
// sound.Scheduler interfaces.
//
// The tick counter only moves when Run() is called. Events are fired in
// deadline order and the tick counter is exactly the deadline of the event
// while the event function is running.
package machine
