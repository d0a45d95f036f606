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

// Package prefs facilitates the storage of preferences. Preference values are
// typed (Bool, Int, String) and are safe to read and write from more than
// one goroutine. Hook functions can be attached to a value and will be called
// before and after a new value is stored.
//
// Values can be grouped together under string keys with the Group type. A
// Group can be updated from a command line "prefs string" of the form:
//
//	"sound.rate::48000; sound.precise::true"
//
// The command line stack is managed with PushCommandLineStack() and
// PopCommandLineStack(). A value found on the stack is removed when it is
// used, so it is only applied once.
//
// Preferences are held in memory only.
package prefs
