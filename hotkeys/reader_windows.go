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

//go:build windows

package hotkeys

import "fmt"

// DefaultDevice is unused on windows.
const DefaultDevice = ""

// Reader is not supported on windows.
type Reader struct{}

// Open always fails on windows.
func Open(_ string) (*Reader, error) {
	return nil, fmt.Errorf("hotkeys: not supported on this platform")
}

// Events returns nil on windows.
func (r *Reader) Events() <-chan Event {
	return nil
}

// Close does nothing on windows.
func (r *Reader) Close() error {
	return nil
}
