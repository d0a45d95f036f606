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

// Package logger is the central log for the application. Entries are tagged
// with the name of the area of the program making the entry and repeated
// entries are merged into a single entry with a repeat count.
//
// Logging requires a Permission. Most code will use logger.Allow but
// components that can run in more than one context (for example, a sound
// system used for an offline render) can pass an implementation that
// decides whether entries should be made.
//
// The package level functions log to the central logger. Independent loggers
// can be created with NewLogger(), which is mostly useful for testing.
package logger
