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

package logger

// Permission implementations indicate whether the code making a log request
// is allowed to create new log entries. For example, a sound source being
// driven by a test harness might deny logging to keep the log free of noise.
type Permission interface {
	AllowLogging() bool
}

// Permit is a Permission with a fixed answer.
type Permit bool

// AllowLogging implements the Permission interface.
func (p Permit) AllowLogging() bool {
	return bool(p)
}

// Allow and Deny are the two Permit values. Allow is the default for code
// that should always log.
const (
	Allow Permit = true
	Deny  Permit = false
)

// PermissionFunc adapts an ordinary function to the Permission interface.
type PermissionFunc func() bool

// AllowLogging implements the Permission interface.
func (f PermissionFunc) AllowLogging() bool {
	return f()
}
